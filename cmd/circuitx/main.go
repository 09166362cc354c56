// Command circuitx reads a wire layer from stdin, reports how many
// (horizontal, vertical) crossings it contains, and exits non-zero on
// malformed input or an internal invariant failure.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// errNaiveMismatch is returned when --verify-naive disagrees with the
// sweep; main maps it to exit code 2, distinct from every other failure.
var errNaiveMismatch = errors.New("circuitx: sweep and reference checker disagree")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "circuitx:", err)
		if errors.Is(err, errNaiveMismatch) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:           "circuitx",
		Short:         "Detect crossings between axis-aligned wires on an IC layer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd.OutOrStdout(), cmd.ErrOrStderr(), cmd.InOrStdin(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.trace, "trace", "", `trace mode: "list" or "jsonp"; overrides the TRACE env var`)
	flags.StringVar(&opts.stats, "stats", "", "print a circuitbits band report to stderr; optional band width")
	flags.Lookup("stats").NoOptDefVal = "default"
	flags.BoolVar(&opts.verifyNaive, "verify-naive", false, "cross-check the sweep against the O(N^2) reference checker")

	cmd.AddCommand(newWatchCmd())
	return cmd
}
