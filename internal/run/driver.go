// Package run implements the execution-and-interrupt control loop. The
// Driver repeatedly starts or resumes a graph run, renders its event
// stream, and when the engine pauses for review, collects an operator
// decision and feeds it back in — until a run finishes with no pending
// pause.
package run

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/weirlabs/weir/internal/engine"
	"github.com/weirlabs/weir/internal/events"
	"github.com/weirlabs/weir/internal/logger"
	"github.com/weirlabs/weir/internal/output"
)

// Outcome is the terminal state of the control loop.
type Outcome string

const (
	// OutcomeCompleted means the final run exhausted with no pending pause.
	OutcomeCompleted Outcome = "completed"
	// OutcomePausedNonInteractive means a pause was observed but interactive
	// mode is off, so the loop stopped without resuming.
	OutcomePausedNonInteractive Outcome = "paused"
	// OutcomeUserExit means the operator chose to stop at a pause. The
	// embedding caller decides whether to unwind the process.
	OutcomeUserExit Outcome = "user_exit"
)

// phase tracks where the state machine is; used for log correlation only,
// the transitions themselves are encoded in the loop structure.
type phase string

const (
	phaseRunning          phase = "running"
	phaseAwaitingDecision phase = "awaiting_decision"
	phaseResuming         phase = "resuming"
	phaseDone             phase = "done"
)

// DecisionPrompt resolves a pause into an operator decision. The second
// return is true when the operator chose to exit.
type DecisionPrompt interface {
	Resolve(pause events.Pause) (engine.Decision, bool)
}

// Options configures a Driver.
type Options struct {
	// Config is passed through to every engine invocation, unmodified.
	Config engine.Config
	// Mode selects the engine's event granularity.
	Mode engine.StreamMode
	// Interactive enables decision collection on pause. When off, a pause
	// terminates the loop without resuming.
	Interactive bool
	// Renderer receives every classified event in arrival order.
	Renderer *output.Renderer
	// Prompt collects decisions; required only when Interactive is set.
	Prompt DecisionPrompt
}

// Driver owns the run state machine. One logical run at a time; the driver
// never requests the next event before the previous one is fully handled.
type Driver struct {
	graph       engine.Graph
	cfg         engine.Config
	mode        engine.StreamMode
	interactive bool
	renderer    *output.Renderer
	prompt      DecisionPrompt
}

// New creates a driver for the given graph.
func New(graph engine.Graph, opts Options) *Driver {
	return &Driver{
		graph:       graph,
		cfg:         opts.Config,
		mode:        opts.Mode,
		interactive: opts.Interactive,
		renderer:    opts.Renderer,
		prompt:      opts.Prompt,
	}
}

// nextEvent yields the next raw event of the current stream attempt. The
// second return is false once the stream exhausts. How the event is
// obtained (blocking pull vs channel receive) is the only difference
// between the sync and async variants.
type nextEvent func() (events.Raw, bool, error)

// RunSync drives the graph using the engine's blocking event interface.
func (d *Driver) RunSync(ctx context.Context, message string) (Outcome, error) {
	input, err := engine.BuildInput(message, nil)
	if err != nil {
		return "", err
	}
	return d.loop(ctx, input, d.syncAttempt)
}

// RunAsync drives the graph using the engine's suspension-capable event
// interface. State transitions and rendering are identical to RunSync.
func (d *Driver) RunAsync(ctx context.Context, message string) (Outcome, error) {
	input, err := engine.BuildInput(message, nil)
	if err != nil {
		return "", err
	}
	return d.loop(ctx, input, d.asyncAttempt)
}

func (d *Driver) syncAttempt(ctx context.Context, input engine.Input) (nextEvent, error) {
	it, err := d.graph.Stream(ctx, input, d.cfg, d.mode)
	if err != nil {
		return nil, err
	}

	return func() (events.Raw, bool, error) {
		raw, err := it.Next()
		if errors.Is(err, io.EOF) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		return raw, true, nil
	}, nil
}

func (d *Driver) asyncAttempt(ctx context.Context, input engine.Input) (nextEvent, error) {
	stream, err := d.graph.StreamAsync(ctx, input, d.cfg, d.mode)
	if err != nil {
		return nil, err
	}

	return func() (events.Raw, bool, error) {
		select {
		case <-ctx.Done():
			return nil, false, ctx.Err()
		case raw, ok := <-stream.Events():
			if !ok {
				if err := stream.Err(); err != nil {
					return nil, false, err
				}
				return nil, false, nil
			}
			return raw, true, nil
		}
	}, nil
}

// loop is the shared transition core. attempt abstracts how a stream is
// started and how its events are obtained, so both variants run the exact
// same state machine.
func (d *Driver) loop(ctx context.Context, input engine.Input, attempt func(context.Context, engine.Input) (nextEvent, error)) (Outcome, error) {
	for {
		attemptID := uuid.NewString()
		log := logger.WithFields(map[string]interface{}{
			"attempt_id": attemptID,
			"resume":     input.IsResume(),
		})
		log.WithField("phase", phaseRunning).Debug("Starting event stream")

		next, err := attempt(ctx, input)
		if err != nil {
			return "", fmt.Errorf("failed to start event stream: %w", err)
		}

		pause, err := d.drain(next, log)
		if err != nil {
			// Stream faults are not recovered here; the boundary layer
			// maps them to process exit.
			return "", fmt.Errorf("event stream fault: %w", err)
		}

		if pause == nil {
			log.WithField("phase", phaseDone).Debug("Run completed with no pending pause")
			return OutcomeCompleted, nil
		}

		if !d.interactive {
			log.WithField("phase", phaseDone).Debug("Pause observed in non-interactive mode")
			return OutcomePausedNonInteractive, nil
		}

		log.WithField("phase", phaseAwaitingDecision).Debug("Pause observed, collecting decision")
		decision, exit := d.prompt.Resolve(*pause)
		if exit {
			log.WithField("phase", phaseDone).Debug("Operator chose to exit")
			return OutcomeUserExit, nil
		}

		log.WithFields(map[string]interface{}{
			"phase":    phaseResuming,
			"decision": decision.Type,
		}).Debug("Resuming with decision")

		input, err = engine.BuildInput("", []engine.Decision{decision})
		if err != nil {
			return "", err
		}
	}
}

// drain consumes one stream attempt to exhaustion, classifying and
// rendering each event in arrival order. It returns the last observed
// pause payload, if any. The engine contract says a pause terminates the
// sequence, but drain does not rely on that: it always lets the stream
// exhaust before deciding the next state.
func (d *Driver) drain(next nextEvent, log *logger.Logger) (*events.Pause, error) {
	var pause *events.Pause
	seen := 0

	for {
		raw, ok, err := next()
		if err != nil {
			return nil, err
		}
		if !ok {
			log.WithFields(map[string]interface{}{
				"events": seen,
				"paused": pause != nil,
			}).Debug("Event stream exhausted")
			return pause, nil
		}
		seen++

		ev, known := events.Classify(raw)
		if !known {
			// Forward-compatibility policy: unrecognized shapes drop.
			continue
		}

		d.renderer.Render(ev)

		if p, isPause := ev.(events.Pause); isPause {
			pause = &p
		}
	}
}
