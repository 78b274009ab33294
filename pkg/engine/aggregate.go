// Package engine turns collected scan results into the final aggregated
// report and supports comparing runs against a saved baseline.
package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/user/secreport/pkg/config"
	"github.com/user/secreport/pkg/report"
)

// Aggregate builds the SecurityReport from the collected results: summed
// per-severity totals, repository context, recommendations, and a generation
// timestamp. Pure function of its arguments apart from the report ID draw.
func Aggregate(results []report.ScanResult, ctx config.Context, now time.Time) report.SecurityReport {
	totals := make(report.Summary)
	for _, r := range results {
		for severity, count := range r.Summary {
			totals[severity] += count
		}
	}

	return report.SecurityReport{
		ID:                   uuid.NewString(),
		GeneratedAt:          now.Format(time.RFC3339),
		Repository:           ctx.Repository,
		Branch:               ctx.Branch,
		Commit:               ctx.Commit,
		ScanResults:          results,
		TotalVulnerabilities: totals,
		Recommendations:      Recommend(results),
	}
}
