package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/siko-lang/ownerinfer/internal/irfixture"
	"github.com/siko-lang/ownerinfer/internal/ownership"
)

var (
	runOutput string
)

var runCmd = &cobra.Command{
	Use:   "run <fixture.json>",
	Short: "Run inference over a single JSON IR fixture",
	Long: `Run parses a JSON IR fixture into a function body and runs the
ownership-inference pipeline over it. Upstream ownership-dependency and
ownership-kind data (the information a full compiler's earlier passes would
have computed) is outside this harness's scope, so run always supplies an
empty FunctionInputs — every member the core discovers is reported, and
signature borrow-filtering degenerates to "nothing is known to be a
borrow yet".`,
	Args: cobra.ExactArgs(1),
	RunE: runFixture,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "write JSON result here instead of stdout")
}

func runFixture(_ *cobra.Command, args []string) error {
	res, err := runOneFixture(args[0])
	if err != nil {
		return err
	}
	return writeResult(res)
}

func runOneFixture(path string) (*ownership.FunctionResult, error) {
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %q: %w", path, err)
	}
	fn, err := irfixture.ParseFunction(doc)
	if err != nil {
		return nil, err
	}
	res, infErr := ownership.NewOrchestrator().RunFunction(fn, ownership.FunctionInputs{})
	if infErr != nil {
		return nil, infErr
	}
	return res, nil
}

func writeResult(res *ownership.FunctionResult) error {
	encoded, err := irfixture.EncodeFunctionResult(res)
	if err != nil {
		return err
	}
	if runOutput == "" {
		fmt.Println(string(encoded))
		return nil
	}
	if err := os.WriteFile(runOutput, encoded, 0o644); err != nil {
		return fmt.Errorf("writing result to %q: %w", runOutput, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "wrote %s\n", runOutput)
	}
	return nil
}
