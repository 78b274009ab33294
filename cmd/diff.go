package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/secreport/pkg/engine"
)

var (
	baselinePath string
	saveBaseline bool
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compare the current scan results against a saved baseline snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, err := buildReport()
		if err != nil {
			return err
		}

		snap := engine.TakeSnapshot(rep, time.Now())

		if saveBaseline {
			if err := snap.Save(baselinePath); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "[Snapshot] saved %d findings to %s\n", len(snap.Findings), baselinePath)
			return nil
		}

		baseline, err := engine.LoadSnapshot(baselinePath)
		if err != nil {
			return fmt.Errorf("loading baseline %s: %w (run 'secreport diff --save' to create one)", baselinePath, err)
		}

		fmt.Print(formatDiff(snap.Compare(baseline), baselinePath))
		return nil
	},
}

func formatDiff(diff engine.SnapshotDiff, baseline string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Snapshot Comparison (vs %s):\n", baseline))
	sb.WriteString("--------------------------------------------------\n")

	sb.WriteString(fmt.Sprintf("NEW RISKS: %d\n", len(diff.New)))
	for _, f := range diff.New {
		sb.WriteString(fmt.Sprintf("  [+] [%s] %s (%s) - %s:%d\n", f.Severity, f.Title, f.Scanner, f.FilePath, f.LineNumber))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("FIXED RISKS: %d\n", len(diff.Fixed)))
	for _, f := range diff.Fixed {
		sb.WriteString(fmt.Sprintf("  [-] [%s] %s (%s) - %s:%d\n", f.Severity, f.Title, f.Scanner, f.FilePath, f.LineNumber))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("UNCHANGED RISKS: %d\n", len(diff.Unchanged)))
	if len(diff.Unchanged) > 0 {
		count := 0
		for _, f := range diff.Unchanged {
			sb.WriteString(fmt.Sprintf("  [=] [%s] %s (%s) - %s:%d\n", f.Severity, f.Title, f.Scanner, f.FilePath, f.LineNumber))
			count++
			if count >= 10 {
				sb.WriteString(fmt.Sprintf("  ... and %d more.\n", len(diff.Unchanged)-10))
				break
			}
		}
	}

	return sb.String()
}

func init() {
	diffCmd.Flags().StringVar(&baselinePath, "baseline", engine.DefaultSnapshotPath, "Path of the baseline snapshot")
	diffCmd.Flags().BoolVar(&saveBaseline, "save", false, "Save the current findings as the new baseline instead of comparing")
	rootCmd.AddCommand(diffCmd)
}
