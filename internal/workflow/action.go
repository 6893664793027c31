package workflow

import (
	"strings"

	"docflow/pkg/apperror"
)

// Action is a validation step submitted by an actor, normalized for storage.
type Action string

const (
	ActionApprove Action = "Approve"
	ActionReject  Action = "Reject"
)

var actionAliases = map[string]Action{
	"approve":  ActionApprove,
	"aprobar":  ActionApprove,
	"reject":   ActionReject,
	"rechazar": ActionReject,
}

// ParseAction normalizes a raw action string. Matching is case-insensitive.
func ParseAction(raw string) (Action, error) {
	if a, ok := actionAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return a, nil
	}
	return "", apperror.New(apperror.KindInvalidAction, "invalid action %q: must be Approve or Reject", raw)
}

func (a Action) String() string { return string(a) }
