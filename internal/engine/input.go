package engine

import (
	"errors"
	"fmt"
)

// DecisionType tags the variant of an operator decision.
type DecisionType string

const (
	// DecisionApprove approves all pending actions.
	DecisionApprove DecisionType = "approve"
	// DecisionReject rejects all pending actions.
	DecisionReject DecisionType = "reject"
	// DecisionCustom carries an engine-defined structured payload.
	DecisionCustom DecisionType = "custom"
)

// Decision is the operator's response to a pause, fed back to resume the run.
type Decision struct {
	Type    DecisionType   `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Approve returns an approve-all decision.
func Approve() Decision {
	return Decision{Type: DecisionApprove}
}

// Reject returns a reject-all decision.
func Reject() Decision {
	return Decision{Type: DecisionReject}
}

// Custom returns a decision carrying an engine-defined payload.
func Custom(payload map[string]any) Decision {
	return Decision{Type: DecisionCustom, Payload: payload}
}

// Input is the engine invocation payload. Exactly one of Message or
// Decisions is set: a fresh message starts a run, a decision batch resumes
// a paused one. The engine dispatches on which variant is present.
type Input struct {
	Message   string     `json:"message,omitempty"`
	Decisions []Decision `json:"decisions,omitempty"`
	resume    bool
}

// IsResume reports whether the input resumes a paused run.
func (in Input) IsResume() bool {
	return in.resume
}

// NewMessageInput builds the input for starting a fresh run.
func NewMessageInput(message string) Input {
	return Input{Message: message}
}

// NewDecisionsInput builds the input for resuming a paused run.
func NewDecisionsInput(decisions []Decision) Input {
	return Input{Decisions: decisions, resume: true}
}

// BuildInput constructs an engine invocation payload from exactly one of a
// fresh message or a decision batch. Supplying both or neither is a caller
// contract violation and is rejected loudly rather than coerced.
func BuildInput(message string, decisions []Decision) (Input, error) {
	hasMessage := message != ""
	hasDecisions := len(decisions) > 0

	switch {
	case hasMessage && hasDecisions:
		return Input{}, errors.New("build input: message and decisions are mutually exclusive")
	case hasMessage:
		return NewMessageInput(message), nil
	case hasDecisions:
		return NewDecisionsInput(decisions), nil
	default:
		return Input{}, fmt.Errorf("build input: either a message or a decision batch is required")
	}
}
