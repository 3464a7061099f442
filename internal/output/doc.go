// Package output provides colored terminal output for weir.
//
// The package offers a simple API for printing colored messages to the
// terminal with automatic color detection and graceful fallback for
// non-terminal environments, plus the Renderer that turns classified
// engine events into operator-readable output.
//
// Features:
//   - Automatic terminal detection
//   - NO_COLOR environment variable support
//   - Different message types (success, error, warning, info, step, detail)
//   - Test-friendly with custom writers
//
// Example usage:
//
//	printer := output.NewPrinter()
//	printer.Success("Operation completed")
//	printer.Error("Failed to process: %v", err)
//
//	renderer := output.NewRenderer(printer, false)
//	renderer.Render(events.TextDelta{Node: "agent", Text: "Hi"})
package output
