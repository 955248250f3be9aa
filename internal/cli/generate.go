package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/latticeforge/tessera/internal/ruleset"
	"github.com/latticeforge/tessera/internal/solver"
	"github.com/latticeforge/tessera/internal/store"
	"github.com/latticeforge/tessera/internal/wfcerr"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Width   int
	Height  int
	Seed    string // decimal uint64, empty means OS entropy
	StoreDB string // provenance database path, empty disables recording
}

// GenerateResult is the JSON success payload for `tessera generate`.
type GenerateResult struct {
	RunID         string `json:"run_id,omitempty"`
	Outcome       string `json:"outcome"`
	Grid          string `json:"grid,omitempty"`
	Contradiction *int   `json:"contradiction_cell,omitempty"`
}

// NewGenerateCommand builds `tessera generate <ruleset.json>`: run the
// solver once over a width x height grid and print the resulting tile
// grid, optionally recording provenance to a SQLite store for later
// replay.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "generate <ruleset.json>",
		Short:         "Run the solver and print a collapsed grid",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Width, "width", 8, "grid width")
	cmd.Flags().IntVar(&opts.Height, "height", 8, "grid height")
	cmd.Flags().StringVar(&opts.Seed, "seed", "", "RNG seed (decimal uint64; omit for OS entropy)")
	cmd.Flags().StringVar(&opts.StoreDB, "store", "", "record run provenance to this SQLite database")

	return cmd
}

func runGenerate(opts *GenerateOptions, rulesetPath string, cmd *cobra.Command) error {
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

	model, err := solver.NewModel(opts.Width, opts.Height, rs, seed)
	if err != nil {
		_ = formatter.Error(ErrCodeSolve, err.Error(), nil)
		return WrapExitError(ExitCommandError, "constructing solver", err)
	}

	grid, runErr := model.Run()

	runID, recordErr := maybeRecordRun(opts, rs, grid, runErr, seed)
	if recordErr != nil {
		formatter.VerboseLog("provenance recording failed: %v", recordErr)
	}

	if runErr != nil {
		cell, _ := wfcerr.AsContradiction(runErr)
		if formatter.Format == "json" {
			_ = formatter.Success(GenerateResult{RunID: runID, Outcome: store.OutcomeContradiction, Contradiction: &cell})
			return WrapExitError(ExitFailure, "solver contradiction", runErr)
		}
		fmt.Fprintf(formatter.Writer, "contradiction at cell %d\n", cell)
		return WrapExitError(ExitFailure, "solver contradiction", runErr)
	}

	if formatter.Format == "json" {
		return formatter.Success(GenerateResult{RunID: runID, Outcome: store.OutcomeSuccess, Grid: grid.String()})
	}
	fmt.Fprint(formatter.Writer, grid.String())
	if runID != "" {
		formatter.VerboseLog("recorded run %s", runID)
	}
	return nil
}

func parseSeed(s string) (*uint64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid seed %q: %w", s, err)
	}
	return &v, nil
}

// maybeRecordRun records provenance for this generate invocation when
// --store was given. A recording failure never fails the command: the
// grid was already produced, and provenance is a convenience for later
// replay, not part of the solve contract.
func maybeRecordRun(opts *GenerateOptions, rs *ruleset.RuleSet, grid solver.Grid, runErr error, seed *uint64) (string, error) {
	if opts.StoreDB == "" {
		return "", nil
	}

	s, err := store.Open(opts.StoreDB)
	if err != nil {
		return "", err
	}
	defer s.Close()

	run := store.Run{
		ID:          uuid.NewString(),
		RuleSetHash: rs.Hash(),
		Width:       opts.Width,
		Height:      opts.Height,
		Seed:        seed,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if runErr != nil {
		cell, _ := wfcerr.AsContradiction(runErr)
		run.Outcome = store.OutcomeContradiction
		run.Contradiction = &cell
	} else {
		run.Outcome = store.OutcomeSuccess
		run.Grid = grid.String()
	}

	if err := s.RecordRun(context.Background(), run); err != nil {
		return "", err
	}
	return run.ID, nil
}
