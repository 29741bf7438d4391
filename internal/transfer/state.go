package transfer

import "fmt"

// State is a step of the transfer lifecycle.
type State int

const (
	StateInit State = iota
	StateConfigLoaded
	StateWindowResolved
	StateStepsExecuted
	StatePayloadDecision
	StateTransferring
	StateSkippedPayload
	StateCompleted
	StateAborted
)

var stateNames = [...]string{
	StateInit:            "init",
	StateConfigLoaded:    "config_loaded",
	StateWindowResolved:  "window_resolved",
	StateStepsExecuted:   "steps_executed",
	StatePayloadDecision: "payload_decision",
	StateTransferring:    "transferring",
	StateSkippedPayload:  "skipped_payload",
	StateCompleted:       "completed",
	StateAborted:         "aborted",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateAborted
}

// allowed lists the forward transitions. Aborting is allowed from every
// non-terminal state and is checked separately.
func allowed(from, to State) bool {
	switch from {
	case StateInit:
		return to == StateConfigLoaded
	case StateConfigLoaded:
		return to == StateWindowResolved
	case StateWindowResolved:
		return to == StateStepsExecuted
	case StateStepsExecuted:
		return to == StatePayloadDecision
	case StatePayloadDecision:
		return to == StateTransferring || to == StateSkippedPayload
	case StateTransferring, StateSkippedPayload:
		return to == StateCompleted
	default:
		return false
	}
}

// transition moves the job to state to, or fails without changing it.
func (j *Job) transition(to State) error {
	from := j.State
	if from.Terminal() {
		return fmt.Errorf("job %s: no transition from terminal state %s", j.ID, from)
	}
	if to != StateAborted && !allowed(from, to) {
		return fmt.Errorf("job %s: disallowed transition %s -> %s", j.ID, from, to)
	}
	j.State = to
	j.history = append(j.history, to)
	j.logger.Debug("state", "from", from, "to", to)
	return nil
}
