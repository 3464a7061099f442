package engine

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/weirlabs/weir/internal/events"
)

// echoGraph is a built-in demo graph: it streams the input message back one
// word at a time and completes. The reviewed variant pauses for an operator
// decision first. Useful for trying weir without a real engine attached.
type echoGraph struct {
	pauseBeforeReply bool

	mu      sync.Mutex
	pending string
}

// NewEchoGraph returns the built-in echo demo graph.
func NewEchoGraph() Graph {
	return &echoGraph{}
}

// NewReviewedEchoGraph returns an echo graph that pauses for an operator
// decision before replying, exercising the full interrupt loop.
func NewReviewedEchoGraph() Graph {
	return &echoGraph{pauseBeforeReply: true}
}

func (g *echoGraph) script(input Input) []events.Raw {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pauseBeforeReply && !input.IsResume() {
		g.pending = input.Message
		return []events.Raw{
			{
				"status": "interrupt",
				"interrupt": map[string]any{
					"action_requests": []any{
						map[string]any{
							"tool":         "echo",
							"tool_call_id": "echo-1",
							"description":  "Echo the message back to the operator",
							"args":         map[string]any{"message": input.Message},
						},
					},
					"review_configs": []any{
						map[string]any{"allowed_decisions": []any{"approve", "reject"}},
					},
				},
			},
		}
	}

	message := input.Message
	if input.IsResume() {
		if len(input.Decisions) > 0 && input.Decisions[0].Type == DecisionReject {
			g.pending = ""
			return []events.Raw{
				{"status": "streaming", "chunk": "(echo rejected)\n", "node": "echo"},
				{"status": "complete"},
			}
		}
		message = g.pending
		g.pending = ""
	}

	script := make([]events.Raw, 0, 8)
	for _, word := range strings.Fields(message) {
		script = append(script, events.Raw{
			"status": "streaming",
			"chunk":  word + " ",
			"node":   "echo",
		})
	}
	script = append(script,
		events.Raw{"status": "streaming", "chunk": "\n", "node": "echo"},
		events.Raw{"status": "complete"},
	)
	return script
}

func (g *echoGraph) Stream(_ context.Context, input Input, _ Config, _ StreamMode) (EventIterator, error) {
	return &scriptIterator{script: g.script(input)}, nil
}

func (g *echoGraph) StreamAsync(_ context.Context, input Input, _ Config, _ StreamMode) (AsyncStream, error) {
	script := g.script(input)
	ch := make(chan events.Raw, len(script))
	for _, ev := range script {
		ch <- ev
	}
	close(ch)
	return &scriptStream{ch: ch}, nil
}

type scriptIterator struct {
	script []events.Raw
	pos    int
}

func (it *scriptIterator) Next() (events.Raw, error) {
	if it.pos >= len(it.script) {
		return nil, io.EOF
	}
	ev := it.script[it.pos]
	it.pos++
	return ev, nil
}

type scriptStream struct {
	ch chan events.Raw
}

func (s *scriptStream) Events() <-chan events.Raw { return s.ch }

func (s *scriptStream) Err() error { return nil }
