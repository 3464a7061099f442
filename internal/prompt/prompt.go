// Package prompt collects operator decisions when a run pauses. It is a
// line-oriented request/response surface: any reader that answers one
// choice (and optionally one JSON line) per pause can stand in for the
// terminal.
package prompt

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/weirlabs/weir/internal/engine"
	"github.com/weirlabs/weir/internal/events"
	"github.com/weirlabs/weir/internal/logger"
	"github.com/weirlabs/weir/internal/output"
)

// Prompt collects a Decision for each pause from a line-oriented input.
type Prompt struct {
	in      *bufio.Reader
	printer *output.Printer
}

// New creates a prompt reading operator choices from in.
func New(in io.Reader, printer *output.Printer) *Prompt {
	return &Prompt{
		in:      bufio.NewReader(in),
		printer: printer,
	}
}

// Resolve presents the pause to the operator and returns their decision.
// The second return is true when the operator chose to exit; the caller
// treats that as a terminal state rather than terminating the process here.
// The default choice on empty input is approve-all.
func (p *Prompt) Resolve(pause events.Pause) (engine.Decision, bool) {
	logger.WithField("action_requests", len(pause.Requests)).Debug("Collecting operator decision")

	p.printer.Println()
	p.printer.Info("How would you like to proceed?")
	p.printer.Detail("1. Approve all actions")
	p.printer.Detail("2. Reject all actions")
	p.printer.Detail("3. Provide custom decision (JSON)")
	p.printer.Detail("4. Exit")

	for {
		p.printer.Print("Enter your choice [1]: ")

		line, err := p.readLine()
		if err != nil {
			// Input is gone; fall back to the default policy.
			logger.WithField("error", err).Debug("Prompt read failed, defaulting to approve")
			return engine.Approve(), false
		}

		switch line {
		case "", "1":
			return engine.Approve(), false
		case "2":
			return engine.Reject(), false
		case "3":
			return p.resolveCustom(), false
		case "4":
			return engine.Decision{}, true
		default:
			p.printer.Warning("Invalid choice: %q", line)
		}
	}
}

// resolveCustom reads a free-form JSON decision. A parse failure is
// reported and downgraded to reject-all; it never propagates.
func (p *Prompt) resolveCustom() engine.Decision {
	p.printer.Print(`Decision JSON (e.g. {"type": "approve"}): `)

	line, err := p.readLine()
	if err != nil {
		p.printer.Error("Failed to read decision: %v", err)
		return engine.Reject()
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		p.printer.Error("Invalid JSON: %v", err)
		return engine.Reject()
	}

	return engine.Custom(payload)
}

func (p *Prompt) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
