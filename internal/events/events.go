// Package events defines the event vocabulary shared between the graph
// engine boundary and the rest of weir. Raw events arrive as untyped maps
// owned by the engine; Classify turns them into a closed set of typed
// events that the renderer and run driver can dispatch on.
package events

// Raw is an engine-defined event record. Its shape is opaque to everything
// except Classify.
type Raw map[string]any

// Event is a classified engine event. The set of implementations is closed;
// consumers switch on the concrete type.
type Event interface {
	isEvent()
}

// TextDelta is an incremental text fragment produced by a node.
type TextDelta struct {
	Node string
	Text string
}

// ToolCall is a single tool invocation requested by a node.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

// ToolInvocation carries one or more tool calls emitted by a node.
type ToolInvocation struct {
	Node  string
	Calls []ToolCall
}

// TaskItem is one entry of a node's task list.
type TaskItem struct {
	Status  string
	Content string
}

// TaskListUpdate carries the current task list of a node.
type TaskListUpdate struct {
	Node  string
	Items []TaskItem
}

// ActionRequest is one action the engine wants reviewed before it proceeds.
type ActionRequest struct {
	Tool        string
	CallID      string
	Description string
	Args        map[string]any
}

// Pause signals that the engine halted awaiting an operator decision.
// Once observed, no further events arrive on the same stream attempt.
type Pause struct {
	Requests            []ActionRequest
	AllowedDecisionSets [][]string
}

// Completed signals natural completion of the run.
type Completed struct{}

// Failed carries an engine-reported failure. It is display-only; the run
// ends when the stream exhausts, not when a Failed event is seen.
type Failed struct {
	Message string
}

func (TextDelta) isEvent()      {}
func (ToolInvocation) isEvent() {}
func (TaskListUpdate) isEvent() {}
func (Pause) isEvent()          {}
func (Completed) isEvent()      {}
func (Failed) isEvent()         {}
