package cmd

import (
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "ownerinfer",
	Short: "Run the ownership/borrow inference pass against serialized IR",
	Long: `ownerinfer drives the ownership-inference core against JSON IR
fixtures, the way a compiler author exercises a single pass in isolation
during development. It is not a language runner: it never lexes, parses,
typechecks, or executes anything — it only runs the core's data-flow
analysis over an already-built function body and prints the resulting
data-flow paths and canonical ownership signature.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print progress detail: per-fixture status in batch, the output path in run")
}
