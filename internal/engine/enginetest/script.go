// Package enginetest provides a scripted Graph implementation for tests.
package enginetest

import (
	"context"
	"io"
	"sync"

	"github.com/weirlabs/weir/internal/engine"
	"github.com/weirlabs/weir/internal/events"
)

// Call records one engine invocation made against a ScriptedGraph.
type Call struct {
	Input engine.Input
	Cfg   engine.Config
	Mode  engine.StreamMode
}

// ScriptedGraph plays back pre-scripted event batches, one batch per
// invocation, and records every invocation it receives. Once the script is
// exhausted further invocations yield empty streams.
type ScriptedGraph struct {
	mu      sync.Mutex
	batches [][]events.Raw
	calls   []Call

	// Fault, when set, is surfaced as a stream fault after each batch's
	// events instead of normal exhaustion.
	Fault error
}

// NewScriptedGraph creates a graph that emits the given batches in order.
func NewScriptedGraph(batches ...[]events.Raw) *ScriptedGraph {
	return &ScriptedGraph{batches: batches}
}

// Calls returns the invocations recorded so far.
func (g *ScriptedGraph) Calls() []Call {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Call(nil), g.calls...)
}

func (g *ScriptedGraph) nextBatch(input engine.Input, cfg engine.Config, mode engine.StreamMode) []events.Raw {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls = append(g.calls, Call{Input: input, Cfg: cfg, Mode: mode})

	if len(g.batches) == 0 {
		return nil
	}
	batch := g.batches[0]
	g.batches = g.batches[1:]
	return batch
}

// Stream implements engine.Graph.
func (g *ScriptedGraph) Stream(_ context.Context, input engine.Input, cfg engine.Config, mode engine.StreamMode) (engine.EventIterator, error) {
	return &sliceIterator{events: g.nextBatch(input, cfg, mode), fault: g.Fault}, nil
}

// StreamAsync implements engine.Graph.
func (g *ScriptedGraph) StreamAsync(_ context.Context, input engine.Input, cfg engine.Config, mode engine.StreamMode) (engine.AsyncStream, error) {
	batch := g.nextBatch(input, cfg, mode)

	ch := make(chan events.Raw, len(batch))
	for _, ev := range batch {
		ch <- ev
	}
	close(ch)

	return &chanStream{ch: ch, fault: g.Fault}, nil
}

type sliceIterator struct {
	events []events.Raw
	pos    int
	fault  error
}

func (it *sliceIterator) Next() (events.Raw, error) {
	if it.pos >= len(it.events) {
		if it.fault != nil {
			return nil, it.fault
		}
		return nil, io.EOF
	}
	ev := it.events[it.pos]
	it.pos++
	return ev, nil
}

type chanStream struct {
	ch    chan events.Raw
	fault error
}

func (s *chanStream) Events() <-chan events.Raw { return s.ch }

func (s *chanStream) Err() error { return s.fault }
