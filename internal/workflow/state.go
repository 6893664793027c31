package workflow

import (
	"strings"

	"docflow/pkg/apperror"
)

// State is the stored single-letter code of a document's lifecycle state.
type State string

const (
	StatePending  State = "P"
	StateApproved State = "A"
	StateRejected State = "R"
)

var stateNames = map[State]string{
	StatePending:  "Pending",
	StateApproved: "Approved",
	StateRejected: "Rejected",
}

// String returns the name exposed to callers.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return string(s)
}

func (s State) IsValid() bool {
	_, ok := stateNames[s]
	return ok
}

// IsTerminal returns true once the document has been resolved.
func (s State) IsTerminal() bool {
	return s == StateApproved || s == StateRejected
}

// ParseState accepts either the stored code or the exposed name, case-insensitively.
func ParseState(raw string) (State, error) {
	v := strings.TrimSpace(raw)
	for code, name := range stateNames {
		if strings.EqualFold(v, string(code)) || strings.EqualFold(v, name) {
			return code, nil
		}
	}
	return "", apperror.Validation("unknown state %q: must be one of Pending, Approved, Rejected", raw)
}
