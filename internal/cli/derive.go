package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/latticeforge/tessera/internal/ruleset"
	"github.com/latticeforge/tessera/internal/socket"
)

// DeriveOptions holds flags for the derive command.
type DeriveOptions struct {
	*RootOptions
	Output string
}

// DeriveResult is the JSON success payload for `tessera derive`.
type DeriveResult struct {
	TileCount int    `json:"tile_count"`
	Hash      string `json:"hash"`
}

// NewDeriveCommand builds `tessera derive <specs-dir>`: load CUE socket
// specs, expand symmetry, derive adjacency, and print (or save) the
// canonical RuleSet JSON.
func NewDeriveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeriveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "derive <specs-dir>",
		Short: "Derive a RuleSet from socket-described base tiles",
		Long: `Load CUE base-tile specs (each with a symmetry class and four
edge-socket lists), expand each into its symmetry variants, derive
adjacency from socket compatibility, and emit the canonical RuleSet JSON
the solver consumes.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDerive(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path (default: stdout)")
	return cmd
}

func runDerive(opts *DeriveOptions, specsDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	bases, err := socket.LoadBaseTiles(specsDir)
	if err != nil {
		return outputDeriveError(formatter, err)
	}
	formatter.VerboseLog("loaded %d base tile(s) from %s", len(bases), specsDir)

	rs, err := socket.Derive(bases)
	if err != nil {
		return outputDeriveError(formatter, err)
	}
	formatter.VerboseLog("derived %d tile variant(s)", rs.TileCount())

	data, err := rs.Serialize()
	if err != nil {
		return WrapExitError(ExitCommandError, "serializing ruleset", err)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, data, 0o644); err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("writing %s", opts.Output), err)
		}
	}

	return outputDeriveSuccess(formatter, rs, data, opts.Output)
}

func outputDeriveSuccess(formatter *OutputFormatter, rs *ruleset.RuleSet, data []byte, outputPath string) error {
	if formatter.Format == "json" {
		return formatter.Success(DeriveResult{TileCount: rs.TileCount(), Hash: rs.Hash()})
	}

	if outputPath != "" {
		fmt.Fprintf(formatter.Writer, "Derived %d tile variant(s) (hash %s) -> %s\n", rs.TileCount(), rs.Hash(), outputPath)
		return nil
	}
	fmt.Fprintf(formatter.Writer, "%s\n", data)
	return nil
}

func outputDeriveError(formatter *OutputFormatter, err error) error {
	_ = formatter.Error(ErrCodeDerive, err.Error(), nil)
	return WrapExitError(ExitCommandError, "derive failed", err)
}
