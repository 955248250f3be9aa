package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/latticeforge/tessera/internal/ruleset"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
}

// ValidateResult is the JSON success payload for `tessera validate`.
type ValidateResult struct {
	TileCount int      `json:"tile_count"`
	Tiles     []string `json:"tiles"`
	Hash      string   `json:"hash"`
}

// NewValidateCommand builds `tessera validate <ruleset.json>`: parse the
// canonical RuleSet JSON and report its tile count, tile ids, and content
// hash, failing with a non-zero exit code on any parse error.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "validate <ruleset.json>",
		Short:         "Validate a RuleSet file",
		Long:          "Parse a canonical RuleSet JSON file, verifying every adjacency entry references a declared tile, and report its tile count and content hash.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "reading ruleset file", err)
	}

	rs, err := ruleset.Parse(data)
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidRuleSet, err.Error(), nil)
		return WrapExitError(ExitFailure, "ruleset is invalid", err)
	}

	tiles := make([]string, rs.TileCount())
	for i, id := range rs.Tiles() {
		tiles[i] = string(id)
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidateResult{TileCount: rs.TileCount(), Tiles: tiles, Hash: rs.Hash()})
	}

	fmt.Fprintf(formatter.Writer, "OK: %d tile(s), hash %s\n", rs.TileCount(), rs.Hash())
	for _, t := range tiles {
		fmt.Fprintf(formatter.Writer, "  %s\n", t)
	}
	return nil
}
