// Package cli wires the weir command line: flag and environment
// resolution, graph lookup, engine config loading, and mapping run
// outcomes to process behavior. The control loop itself lives in
// internal/run; this layer only feeds it.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/weirlabs/weir/internal/config"
	"github.com/weirlabs/weir/internal/engine"
	"github.com/weirlabs/weir/internal/logger"
	"github.com/weirlabs/weir/internal/output"
	"github.com/weirlabs/weir/internal/prompt"
	"github.com/weirlabs/weir/internal/run"
)

const version = "0.1.0"

// Execute runs the CLI with the built-in graph registry.
func Execute() error {
	cmd := NewRootCommand(DefaultRegistry())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		output.NewPrinter().Warning("\nInterrupt received, shutting down...")
		cancel()
	}()

	return cmd.ExecuteContext(ctx)
}

// DefaultRegistry returns the registry of graphs built into the binary.
// Embedding callers register their own graphs instead.
func DefaultRegistry() *engine.Registry {
	reg := engine.NewRegistry()
	reg.Register("graph", engine.NewEchoGraph())
	reg.Register("echo", engine.NewEchoGraph())
	reg.Register("reviewed-echo", engine.NewReviewedEchoGraph())
	return reg
}

// NewRootCommand creates the root command over the given graph registry.
func NewRootCommand(registry *engine.Registry) *cobra.Command {
	var (
		showVersion   bool
		graphName     string
		message       string
		configSource  string
		streamMode    string
		noInteractive bool
		asyncMode     bool
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "weir [graph-name]",
		Short: "weir - interactive runner for streamed graph engines",
		Long: `weir drives a node-based graph engine from the terminal: it streams the
run's events, and when the engine pauses for review it collects your
decision and resumes the run with it.

Environment variables (flags take precedence):
  WEIR_GRAPH           Graph name to run (default: "graph")
  WEIR_CONFIG          Engine config: inline JSON or a JSON/YAML file path
  WEIR_STREAM_MODE     Event granularity: "updates" or "values"
  WEIR_WORKSPACE_ROOT  Directory to change into before running

Examples:
  weir echo -m "Hello, agent!"
  weir reviewed-echo -m "Deploy it" --verbose
  weir -m "Hello!" -c '{"configurable": {"thread_id": "1"}}'
  weir echo --no-interactive -m "Hello!"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "weir version "+version)
				return err
			}

			opts := runOptions{
				graphArg:     firstOrEmpty(args),
				graphFlag:    graphName,
				message:      message,
				configSource: configSource,
				streamMode:   streamMode,
				interactive:  !noInteractive,
				async:        asyncMode,
				verbose:      verbose,
			}
			return runGraph(cmd.Context(), registry, opts)
		},
	}

	cmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
	cmd.Flags().StringVarP(&graphName, "graph", "g", "", "Name of the graph to run (default: \"graph\")")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Input message to send to the graph")
	cmd.Flags().StringVarP(&configSource, "config", "c", "", "Engine config: JSON string or path to a JSON/YAML file")
	cmd.Flags().StringVar(&streamMode, "stream-mode", "", "Stream mode: \"updates\" or \"values\"")
	cmd.Flags().BoolVar(&noInteractive, "no-interactive", false, "Do not collect decisions on pause; stop instead")
	cmd.Flags().BoolVar(&asyncMode, "async", false, "Use the engine's suspension-capable streaming interface")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show verbose output including node names")

	return cmd
}

type runOptions struct {
	graphArg     string
	graphFlag    string
	message      string
	configSource string
	streamMode   string
	interactive  bool
	async        bool
	verbose      bool
}

// runGraph resolves the boundary inputs and hands control to the driver.
// Every resolution failure is returned as an error; main maps them to a
// non-zero exit.
func runGraph(ctx context.Context, registry *engine.Registry, opts runOptions) error {
	logger.SetVerbosity(opts.verbose)

	env := config.New()
	printer := output.NewPrinter()

	graphName := env.GraphName
	if opts.graphFlag != "" {
		graphName = opts.graphFlag
	}
	if opts.graphArg != "" {
		graphName = opts.graphArg
	}

	if env.WorkspaceRoot != "" {
		if err := os.Chdir(env.WorkspaceRoot); err != nil {
			printer.Warning("Workspace root not usable: %v", err)
		} else {
			logger.WithField("workspace", env.WorkspaceRoot).Debug("Changed working directory")
		}
	}

	graph, err := registry.Get(graphName)
	if err != nil {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(registry.Names(), ", "))
	}
	logger.WithField("graph", graphName).Debug("Graph resolved")

	configSource := env.EngineConfig
	if opts.configSource != "" {
		configSource = opts.configSource
	}
	engineCfg, err := config.ResolveEngineConfig(configSource)
	if err != nil {
		return err
	}

	modeStr := env.StreamMode
	if opts.streamMode != "" {
		modeStr = opts.streamMode
	}
	mode, err := engine.ParseStreamMode(modeStr)
	if err != nil {
		return err
	}

	message := opts.message
	if message == "" {
		printer.Print("Enter your message: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}
		message = strings.TrimSpace(line)
	}
	if message == "" {
		return fmt.Errorf("message cannot be empty")
	}

	printer.Info("Running graph %q", graphName)
	printer.Step("Message: %s", message)

	driver := run.New(graph, run.Options{
		Config:      engineCfg,
		Mode:        mode,
		Interactive: opts.interactive,
		Renderer:    output.NewRenderer(printer, opts.verbose),
		Prompt:      prompt.New(os.Stdin, printer),
	})

	var outcome run.Outcome
	if opts.async {
		outcome, err = driver.RunAsync(ctx, message)
	} else {
		outcome, err = driver.RunSync(ctx, message)
	}
	if err != nil {
		return err
	}

	switch outcome {
	case run.OutcomePausedNonInteractive:
		printer.Warning("Run paused awaiting a decision; re-run without --no-interactive to resume")
	case run.OutcomeUserExit:
		printer.Info("Exited at operator request")
	}
	return nil
}

func firstOrEmpty(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
