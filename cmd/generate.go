package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/secreport/pkg/collector"
	"github.com/user/secreport/pkg/config"
	"github.com/user/secreport/pkg/engine"
	"github.com/user/secreport/pkg/render"
	"github.com/user/secreport/pkg/report"
)

var (
	outputFormat string
	outputFile   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Collect scanner output and generate the aggregated report",
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, err := buildReport()
		if err != nil {
			return err
		}

		var out []byte
		switch outputFormat {
		case "json":
			out, err = render.JSON(rep)
			if err != nil {
				return err
			}
		case "markdown":
			out = []byte(render.Markdown(rep))
		default:
			return fmt.Errorf("unknown output format: %s", outputFormat)
		}

		if outputFile != "" {
			if err := os.WriteFile(outputFile, out, 0644); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "[Report] written to %s\n", outputFile)
			return nil
		}

		_, err = os.Stdout.Write(out)
		return err
	},
}

// buildReport runs the full pipeline: collect, resolve context, aggregate.
// Per-document diagnostics go to stderr; only a missing input root or an
// empty result set fail the run. Finding severity never does.
func buildReport() (report.SecurityReport, error) {
	results, diags, err := collector.Collect(inputDir)
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "[Collector] %s\n", d)
	}
	if err != nil {
		return report.SecurityReport{}, err
	}
	if len(results) == 0 {
		return report.SecurityReport{}, fmt.Errorf("no scan results found in %s", inputDir)
	}

	ctx, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[Config] ignoring %s: %v\n", configFile, err)
	}

	return engine.Aggregate(results, ctx.Resolve(), time.Now()), nil
}

func init() {
	generateCmd.Flags().StringVarP(&outputFormat, "output", "o", "markdown", "Output format (json or markdown)")
	generateCmd.Flags().StringVarP(&outputFile, "output-file", "f", "", "Write the report to a file instead of stdout")
	rootCmd.AddCommand(generateCmd)
}
