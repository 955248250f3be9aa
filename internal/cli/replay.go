package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/latticeforge/tessera/internal/ruleset"
	"github.com/latticeforge/tessera/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	StoreDB string
}

// ReplayCmdResult is the JSON success payload for `tessera replay`.
type ReplayCmdResult struct {
	RunID     string `json:"run_id"`
	Identical bool   `json:"identical"`
	Outcome   string `json:"outcome"`
}

// NewReplayCommand builds `tessera replay <run-id> <ruleset.json>`:
// re-run a recorded run against its ruleset and report whether the
// outcome matches what was recorded, exiting non-zero on mismatch.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "replay <run-id> <ruleset.json>",
		Short:         "Re-run a recorded run and verify it reproduces exactly",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.StoreDB, "store", "", "provenance database path (required)")
	cmd.MarkFlagRequired("store")

	return cmd
}

func runReplay(opts *ReplayOptions, runID, rulesetPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	s, err := store.Open(opts.StoreDB)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "opening store", err)
	}
	defer s.Close()

	run, err := s.GetRun(context.Background(), runID)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "looking up run", err)
	}
	if run == nil {
		err := fmt.Errorf("no run recorded with id %s", runID)
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "run not found", err)
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

	result, err := store.Replay(*run, rs)
	if err != nil {
		_ = formatter.Error(ErrCodeReplayMismatch, err.Error(), nil)
		return WrapExitError(ExitCommandError, "replay failed", err)
	}

	if formatter.Format == "json" {
		if err := formatter.Success(ReplayCmdResult{RunID: run.ID, Identical: result.Identical, Outcome: run.Outcome}); err != nil {
			return err
		}
	} else if result.Identical {
		fmt.Fprintf(formatter.Writer, "replay of %s: identical\n", run.ID)
	} else {
		fmt.Fprintf(formatter.Writer, "replay of %s: MISMATCH (recorded outcome %s)\n", run.ID, run.Outcome)
	}

	if !result.Identical {
		return WrapExitError(ExitFailure, "replay did not reproduce recorded run", nil)
	}
	return nil
}
