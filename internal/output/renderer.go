package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/weirlabs/weir/internal/events"
)

// taskGlyphs maps task statuses to display glyphs. Unknown statuses render
// with the fallback glyph rather than failing.
var taskGlyphs = map[string]string{
	"pending":     "○",
	"in_progress": "◐",
	"completed":   "●",
}

const unknownTaskGlyph = "?"

// Renderer writes classified events to the printer in arrival order. It is
// stateless apart from the incremental text stream it appends to, so a
// single renderer can serve consecutive runs.
type Renderer struct {
	printer *Printer
	verbose bool
}

// NewRenderer creates a renderer over the given printer.
func NewRenderer(printer *Printer, verbose bool) *Renderer {
	return &Renderer{printer: printer, verbose: verbose}
}

// Render emits one classified event. Events must be rendered in the order
// the stream produced them.
func (r *Renderer) Render(ev events.Event) {
	switch e := ev.(type) {
	case events.TextDelta:
		r.renderTextDelta(e)
	case events.ToolInvocation:
		r.renderToolInvocation(e)
	case events.TaskListUpdate:
		r.renderTaskList(e)
	case events.Pause:
		r.renderPause(e)
	case events.Completed:
		r.printer.Success("Complete")
	case events.Failed:
		r.printer.Error("%s", e.Message)
	}
}

func (r *Renderer) renderTextDelta(e events.TextDelta) {
	if r.verbose {
		node := e.Node
		if node == "" {
			node = "unknown"
		}
		r.printer.Dim("[%s] %s", node, e.Text)
		return
	}
	// Token-by-token display: the fragment is emitted exactly as received,
	// with no label and no line break.
	r.printer.Print("%s", e.Text)
}

func (r *Renderer) renderToolInvocation(e events.ToolInvocation) {
	for _, call := range e.Calls {
		r.printer.Step("Tool Call: %s", call.Name)
		r.printer.Detail("ID:   %s", valueOrNA(call.ID))
		r.printer.Detail("Name: %s", call.Name)
		r.printer.Detail("Args: %s", indentJSON(call.Args, "        "))
		if r.verbose {
			r.printer.Detail("Node: %s", valueOrNA(e.Node))
		}
	}
}

func (r *Renderer) renderTaskList(e events.TaskListUpdate) {
	r.printer.Step("Tasks")
	for _, item := range e.Items {
		glyph, ok := taskGlyphs[item.Status]
		if !ok {
			glyph = unknownTaskGlyph
		}
		r.printer.Detail("%s %-12s %s", glyph, item.Status, valueOrNA(item.Content))
	}
}

func (r *Renderer) renderPause(e events.Pause) {
	r.printer.Attention("Interrupt")

	if len(e.Requests) > 0 {
		r.printer.Detail("Action Requests:")
		for i, req := range e.Requests {
			r.printer.Detail("%d. Tool: %s", i+1, req.Tool)
			r.printer.Detail("   ID: %s", req.CallID)
			if req.Description != "" {
				r.printer.Detail("   Description: %s", req.Description)
			}
			r.printer.Detail("   Args: %s", indentJSON(req.Args, "         "))
		}
	}

	for i, set := range e.AllowedDecisionSets {
		r.printer.Detail("%d. Allowed decisions: %s", i+1, strings.Join(set, ", "))
	}
}

// indentJSON pretty-prints a payload with 2-space indentation, shifting
// continuation lines by prefix so the block lines up under its label.
// json.Marshal sorts map keys, so output ordering is stable.
func indentJSON(v map[string]any, prefix string) string {
	if v == nil {
		v = map[string]any{}
	}
	data, err := json.MarshalIndent(v, prefix, "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func valueOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
