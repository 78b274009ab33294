package engine

import (
	"fmt"
	"strings"

	"github.com/user/secreport/pkg/report"
)

// sastMarker identifies a static-analysis scanner by substring match on the
// scanner name.
const sastMarker = "semgrep"

// Recommend derives the ordered advisory list from the collected results.
// Rules fire in a fixed order; the closing reassurance message is emitted
// only when no other rule fired.
func Recommend(results []report.ScanResult) []string {
	var recs []string

	totalCritical := 0
	totalHigh := 0
	for _, r := range results {
		totalCritical += r.Summary[report.SeverityCritical]
		totalHigh += r.Summary[report.SeverityHigh]
	}

	if totalCritical > 0 {
		recs = append(recs, fmt.Sprintf(
			"CRITICAL: %d critical vulnerabilities found. These must be addressed immediately before deployment.",
			totalCritical))
	}

	if totalHigh > 0 {
		recs = append(recs, fmt.Sprintf(
			"HIGH: %d high severity vulnerabilities found. Plan to remediate these within 7 days.",
			totalHigh))
	}

	hasSAST := false
	for _, r := range results {
		if strings.Contains(strings.ToLower(r.Scanner), sastMarker) {
			hasSAST = true
			break
		}
	}
	if !hasSAST {
		recs = append(recs, "Consider enabling SAST scanning with Semgrep for code analysis.")
	}

	if len(recs) == 0 {
		recs = append(recs, "No critical or high severity vulnerabilities found. Continue monitoring and keep dependencies updated.")
	}

	return recs
}
