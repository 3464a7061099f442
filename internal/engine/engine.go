// Package engine defines the boundary to the external graph engine. The
// engine owns node execution, graph topology, and resumption semantics;
// weir only drives it through the interfaces declared here.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/weirlabs/weir/internal/events"
)

// StreamMode selects the granularity of events the engine emits.
type StreamMode string

const (
	// StreamModeUpdates emits incremental updates as nodes progress.
	StreamModeUpdates StreamMode = "updates"
	// StreamModeValues emits full state values after each step.
	StreamModeValues StreamMode = "values"
)

// ParseStreamMode validates a stream mode string. An empty string resolves
// to StreamModeUpdates.
func ParseStreamMode(s string) (StreamMode, error) {
	switch StreamMode(s) {
	case "":
		return StreamModeUpdates, nil
	case StreamModeUpdates:
		return StreamModeUpdates, nil
	case StreamModeValues:
		return StreamModeValues, nil
	default:
		return "", fmt.Errorf("unknown stream mode %q (expected %q or %q)",
			s, StreamModeUpdates, StreamModeValues)
	}
}

// Config is an opaque mapping passed through to every engine invocation.
// The engine owns its meaning; weir never mutates it.
type Config map[string]any

// EventIterator is a blocking pull over an event stream. Next blocks until
// the next event is available and returns io.EOF once the stream exhausts.
type EventIterator interface {
	Next() (events.Raw, error)
}

// AsyncStream is the suspension-capable counterpart of EventIterator.
// Events is closed when the stream exhausts; Err reports a stream fault and
// is valid only after the channel closes.
type AsyncStream interface {
	Events() <-chan events.Raw
	Err() error
}

// Graph is a runnable graph exposed by the engine. Feeding a decision-batch
// Input resumes exactly the paused run; that correlation is engine-internal.
type Graph interface {
	Stream(ctx context.Context, input Input, cfg Config, mode StreamMode) (EventIterator, error)
	StreamAsync(ctx context.Context, input Input, cfg Config, mode StreamMode) (AsyncStream, error)
}

// ErrGraphNotFound is returned by Registry.Get for unregistered names.
var ErrGraphNotFound = errors.New("graph not found")

// Registry is a named-graph provider. Loading and name resolution live in
// the CLI layer; the core only ever sees a resolved Graph.
type Registry struct {
	graphs map[string]Graph
}

// NewRegistry creates an empty graph registry.
func NewRegistry() *Registry {
	return &Registry{graphs: make(map[string]Graph)}
}

// Register binds a graph to a name, replacing any previous binding.
func (r *Registry) Register(name string, g Graph) {
	r.graphs[name] = g
}

// Get resolves a graph by name.
func (r *Registry) Get(name string) (Graph, error) {
	g, ok := r.graphs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrGraphNotFound, name)
	}
	return g, nil
}

// Names returns the registered graph names, for error messages.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.graphs))
	for name := range r.graphs {
		names = append(names, name)
	}
	return names
}
