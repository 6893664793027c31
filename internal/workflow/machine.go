package workflow

import "docflow/pkg/apperror"

// transitions maps each non-terminal state to the state each action resolves it to.
// Pending is the only state with outgoing edges: the first resolving action decides.
var transitions = map[State]map[Action]State{
	StatePending: {
		ActionApprove: StateApproved,
		ActionReject:  StateRejected,
	},
}

// Next returns the state that action moves current into.
func Next(current State, action Action) (State, error) {
	edges, ok := transitions[current]
	if !ok {
		if current.IsTerminal() {
			return "", apperror.New(apperror.KindIllegalTransition,
				"document is already %s and accepts no further actions", current)
		}
		return "", apperror.New(apperror.KindIllegalTransition, "unknown document state %q", string(current))
	}
	next, ok := edges[action]
	if !ok {
		return "", apperror.New(apperror.KindIllegalTransition,
			"action %s is not allowed from state %s", action, current)
	}
	return next, nil
}

// Decide parses rawAction and applies it to current. An unrecognized action is
// rejected before the current state is considered.
func Decide(current State, rawAction string) (Action, State, error) {
	action, err := ParseAction(rawAction)
	if err != nil {
		return "", "", err
	}
	next, err := Next(current, action)
	if err != nil {
		return "", "", err
	}
	return action, next, nil
}

// CanTransition reports whether any action leads from current to next.
func CanTransition(current, next State) bool {
	for _, to := range transitions[current] {
		if to == next {
			return true
		}
	}
	return false
}
