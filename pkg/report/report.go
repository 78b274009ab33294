package report

import "time"

// Severity is the canonical severity scale all scanner output is normalized into.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
	SeverityInfo     Severity = "INFO"
)

// SeverityOrder is the fixed rendering order for summaries and detail sections.
var SeverityOrder = []Severity{
	SeverityCritical,
	SeverityHigh,
	SeverityMedium,
	SeverityLow,
	SeverityInfo,
}

// IsCanonical reports whether s is one of the five canonical severities.
// Trivy output may carry other labels, which are tolerated and passed through.
func (s Severity) IsCanonical() bool {
	for _, c := range SeverityOrder {
		if s == c {
			return true
		}
	}
	return false
}

// Vulnerability represents a single normalized security finding from one scanner.
// Constructed once by a parser; never merged or mutated afterwards.
type Vulnerability struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Source      string   `json:"source"`
	FilePath    string   `json:"file_path"`
	LineNumber  int      `json:"line_number"`
	CWE         string   `json:"cwe"`
	CVSS        float64  `json:"cvss"`
	Remediation string   `json:"remediation"`
	References  []string `json:"references"`
}

// Summary maps severity to finding count.
type Summary map[Severity]int

// NewSummary counts vulnerabilities per severity. Summaries are always
// recomputed from a vulnerability list, never edited by hand.
func NewSummary(vulns []Vulnerability) Summary {
	s := make(Summary)
	for _, v := range vulns {
		s[v.Severity]++
	}
	return s
}

// Total returns the sum of all counts in the summary.
func (s Summary) Total() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}

// ScanResult holds one scanner's findings plus its per-severity summary.
type ScanResult struct {
	Scanner         string          `json:"scanner"`
	Timestamp       string          `json:"timestamp"`
	Vulnerabilities []Vulnerability `json:"vulnerabilities"`
	Summary         Summary         `json:"summary"`
}

// NewScanResult builds a ScanResult with its summary computed from vulns.
func NewScanResult(scanner string, capturedAt time.Time, vulns []Vulnerability) ScanResult {
	return ScanResult{
		Scanner:         scanner,
		Timestamp:       capturedAt.Format(time.RFC3339),
		Vulnerabilities: vulns,
		Summary:         NewSummary(vulns),
	}
}

// SecurityReport is the aggregated artifact consumed by the renderers.
// Built exactly once per run; read-only afterwards.
type SecurityReport struct {
	ID                   string       `json:"id"`
	GeneratedAt          string       `json:"generated_at"`
	Repository           string       `json:"repository"`
	Branch               string       `json:"branch"`
	Commit               string       `json:"commit"`
	ScanResults          []ScanResult `json:"scan_results"`
	TotalVulnerabilities Summary      `json:"total_vulnerabilities"`
	Recommendations      []string     `json:"recommendations"`
}
