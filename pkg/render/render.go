// Package render serializes a SecurityReport for machine or human
// consumption. Both renderers are pure: the same report always produces
// byte-identical output.
package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/user/secreport/pkg/report"
)

// detailLimit caps how many findings are listed per severity group in the
// Markdown detail sections.
const detailLimit = 10

// JSON renders the full report losslessly, nested per the data model.
func JSON(rep report.SecurityReport) ([]byte, error) {
	return json.MarshalIndent(rep, "", "  ")
}

// Markdown renders the human-readable report: context header, fixed-order
// severity summary table, recommendations, and per-scanner detail sections.
func Markdown(rep report.SecurityReport) string {
	var sb strings.Builder

	sb.WriteString("# Security Scan Report\n\n")
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n", rep.GeneratedAt))
	sb.WriteString(fmt.Sprintf("**Repository:** %s\n", rep.Repository))
	sb.WriteString(fmt.Sprintf("**Branch:** %s\n", rep.Branch))
	sb.WriteString(fmt.Sprintf("**Commit:** %s\n\n", rep.Commit))

	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Severity | Count |\n")
	sb.WriteString("|----------|-------|\n")
	for _, severity := range report.SeverityOrder {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", severity, rep.TotalVulnerabilities[severity]))
	}

	sb.WriteString("\n## Recommendations\n\n")
	for _, rec := range rep.Recommendations {
		sb.WriteString(fmt.Sprintf("- %s\n", rec))
	}

	sb.WriteString("\n## Detailed Findings\n\n")
	for _, result := range rep.ScanResults {
		sb.WriteString(fmt.Sprintf("### %s\n\n", result.Scanner))

		bySeverity := make(map[report.Severity][]report.Vulnerability)
		for _, v := range result.Vulnerabilities {
			bySeverity[v.Severity] = append(bySeverity[v.Severity], v)
		}

		for _, severity := range severityGroups(bySeverity) {
			vulns := bySeverity[severity]
			sb.WriteString(fmt.Sprintf("#### %s (%d)\n\n", severity, len(vulns)))

			shown := vulns
			if len(shown) > detailLimit {
				shown = shown[:detailLimit]
			}
			for _, v := range shown {
				sb.WriteString(fmt.Sprintf("- **%s** (%s)\n", v.Title, v.ID))
				if v.FilePath != "" {
					sb.WriteString(fmt.Sprintf("  - File: `%s`:%d\n", v.FilePath, v.LineNumber))
				}
				if v.Remediation != "" {
					sb.WriteString(fmt.Sprintf("  - Fix: %s\n", truncate(v.Remediation, 100)))
				}
				sb.WriteString("\n")
			}

			if len(vulns) > detailLimit {
				sb.WriteString(fmt.Sprintf("  *...and %d more*\n\n", len(vulns)-detailLimit))
			}
		}
	}

	return sb.String()
}

// severityGroups returns the canonical severities that occur in bySeverity,
// in canonical order, followed by any tolerated non-canonical labels in
// sorted order so no finding is dropped from the report.
func severityGroups(bySeverity map[report.Severity][]report.Vulnerability) []report.Severity {
	var groups []report.Severity
	for _, severity := range report.SeverityOrder {
		if len(bySeverity[severity]) > 0 {
			groups = append(groups, severity)
		}
	}

	var extra []report.Severity
	for severity := range bySeverity {
		if !severity.IsCanonical() {
			extra = append(extra, severity)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })

	return append(groups, extra...)
}

func truncate(s string, limit int) string {
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
