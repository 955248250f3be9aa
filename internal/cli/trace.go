package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/latticeforge/tessera/internal/ruleset"
	"github.com/latticeforge/tessera/internal/solver"
	"github.com/latticeforge/tessera/internal/wfcerr"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Width  int
	Height int
	Seed   string
}

// NewTraceCommand builds `tessera trace <ruleset.json>`: run the solver
// once with step-by-step logging enabled, so every observe/collapse and
// every possibility-set shrink is visible on stderr while the final grid
// (or contradiction) goes to stdout.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace <ruleset.json>",
		Short: "Run the solver with step-by-step logging",
		Long: `Run the solver once with debug logging attached.

Each observe/collapse step and each propagation-driven possibility
reduction is logged to stderr as a structured event; the resulting grid
(or the contradiction) is printed to stdout exactly as "generate" would
print it.

Examples:
  tessera trace ruleset.json --width 8 --height 8 --seed 42
  tessera trace ruleset.json --width 4 --height 4 2>trace.log`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Width, "width", 8, "grid width")
	cmd.Flags().IntVar(&opts.Height, "height", 8, "grid height")
	cmd.Flags().StringVar(&opts.Seed, "seed", "", "RNG seed (decimal uint64; omit for OS entropy)")

	return cmd
}

func runTrace(opts *TraceOptions, rulesetPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	data, err := os.ReadFile(rulesetPath)
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "reading ruleset file", err)
	}

	rs, err := ruleset.Parse(data)
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidRuleSet, err.Error(), nil)
		return WrapExitError(ExitCommandError, "parsing ruleset", err)
	}

	seed, err := parseSeed(opts.Seed)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "parsing seed", err)
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	model, err := solver.NewModel(opts.Width, opts.Height, rs, seed, solver.WithLogger(logger))
	if err != nil {
		_ = formatter.Error(ErrCodeSolve, err.Error(), nil)
		return WrapExitError(ExitCommandError, "constructing solver", err)
	}

	grid, runErr := model.Run()
	if runErr != nil {
		cell, _ := wfcerr.AsContradiction(runErr)
		if formatter.Format == "json" {
			_ = formatter.Success(GenerateResult{Outcome: "contradiction", Contradiction: &cell})
			return WrapExitError(ExitFailure, "solver contradiction", runErr)
		}
		fmt.Fprintf(formatter.Writer, "contradiction at cell %d\n", cell)
		return WrapExitError(ExitFailure, "solver contradiction", runErr)
	}

	if formatter.Format == "json" {
		return formatter.Success(GenerateResult{Outcome: "success", Grid: grid.String()})
	}
	fmt.Fprint(formatter.Writer, grid.String())
	return nil
}
