package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/siko-lang/ownerinfer/internal/irfixture"
)

// Manifest lists a batch of fixtures to run in one invocation, each
// optionally checked against a golden signature string for regression
// testing.
type Manifest struct {
	Fixtures []ManifestEntry `yaml:"fixtures"`
}

// ManifestEntry names one fixture file and, optionally, the exact
// canonical signature string its run is expected to produce.
type ManifestEntry struct {
	Path              string `yaml:"path"`
	ExpectedSignature string `yaml:"expected_signature,omitempty"`
}

var batchOutDir string

var batchCmd = &cobra.Command{
	Use:   "batch <manifest.yaml>",
	Short: "Run inference over every fixture listed in a YAML manifest",
	Long: `Batch reads a YAML manifest naming one or more fixture files and runs
each through the same pipeline as run. When an entry carries an
expected_signature, batch compares the computed canonical signature string
against it and reports a mismatch as a failure, the way a regression suite
checks golden output.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", "", "write one JSON result file per fixture into this directory")
}

func runBatch(_ *cobra.Command, args []string) error {
	manifestBytes, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading manifest %q: %w", args[0], err)
	}
	var manifest Manifest
	if err := yaml.Unmarshal(manifestBytes, &manifest); err != nil {
		return fmt.Errorf("parsing manifest %q: %w", args[0], err)
	}
	if len(manifest.Fixtures) == 0 {
		return fmt.Errorf("manifest %q lists no fixtures", args[0])
	}

	var failures []string
	for _, entry := range manifest.Fixtures {
		res, err := runOneFixture(entry.Path)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", entry.Path, err))
			continue
		}

		got := res.Signature.String()
		if entry.ExpectedSignature != "" && got != entry.ExpectedSignature {
			failures = append(failures, fmt.Sprintf("%s: signature mismatch\n  want %s\n  got  %s", entry.Path, entry.ExpectedSignature, got))
			continue
		}

		if batchOutDir != "" {
			encoded, err := irfixture.EncodeFunctionResult(res)
			if err != nil {
				failures = append(failures, fmt.Sprintf("%s: %v", entry.Path, err))
				continue
			}
			outPath := batchOutDir + "/" + res.Function + ".json"
			if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
				failures = append(failures, fmt.Sprintf("%s: writing %q: %v", entry.Path, outPath, err))
				continue
			}
		}

		if verbose {
			fmt.Printf("%s: ok (%s)\n", entry.Path, got)
		}
	}

	if len(failures) > 0 {
		for _, f := range failures {
			fmt.Fprintln(os.Stderr, f)
		}
		return fmt.Errorf("%d of %d fixture(s) failed", len(failures), len(manifest.Fixtures))
	}
	fmt.Printf("%d fixture(s) passed\n", len(manifest.Fixtures))
	return nil
}
