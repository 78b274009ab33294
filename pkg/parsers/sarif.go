// Package parsers converts raw scanner output documents into normalized
// vulnerability records. One file per input format. Parsers only return an
// error when the document cannot be decoded at all; missing fields resolve
// to their zero defaults.
package parsers

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/user/secreport/pkg/report"
)

// SARIF schema subset (Semgrep, Trivy SARIF mode, CodeQL, etc.)
type sarifDocument struct {
	Runs []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name  string      `json:"name"`
	Rules []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string              `json:"id"`
	ShortDescription sarifMessage        `json:"shortDescription"`
	Help             sarifMessage        `json:"help"`
	Properties       sarifRuleProperties `json:"properties"`
}

type sarifRuleProperties struct {
	// Emitted as a string by GitHub-flavored tools and as a number by others.
	SecuritySeverity interface{} `json:"security-severity"`
	CWE              string      `json:"cwe"`
	Tags             []string    `json:"tags"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

// ParseSARIF converts a SARIF document into normalized vulnerabilities.
// Severity resolves in two layers: the result level maps error/warning/note
// to HIGH/MEDIUM/LOW, then a numeric security-severity score on the matching
// rule overrides that mapping when present.
func ParseSARIF(data []byte) ([]report.Vulnerability, error) {
	var doc sarifDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	var vulns []report.Vulnerability
	for _, run := range doc.Runs {
		toolName := run.Tool.Driver.Name
		if toolName == "" {
			toolName = "Unknown"
		}

		rules := make(map[string]sarifRule, len(run.Tool.Driver.Rules))
		for _, r := range run.Tool.Driver.Rules {
			rules[r.ID] = r
		}

		for _, result := range run.Results {
			rule := rules[result.RuleID]

			severity := levelSeverity(result.Level)
			cvss := 0.0
			if score, ok := securityScore(rule.Properties.SecuritySeverity); ok {
				severity = scoreSeverity(score)
				cvss = score
			}

			title := rule.ShortDescription.Text
			if title == "" {
				title = result.RuleID
			}

			var filePath string
			var lineNumber int
			if len(result.Locations) > 0 {
				loc := result.Locations[0].PhysicalLocation
				filePath = loc.ArtifactLocation.URI
				lineNumber = loc.Region.StartLine
			}

			var refs []string
			for _, tag := range rule.Properties.Tags {
				if strings.HasPrefix(tag, "http") {
					refs = append(refs, tag)
				}
			}

			vulns = append(vulns, report.Vulnerability{
				ID:          result.RuleID,
				Title:       title,
				Severity:    severity,
				Description: result.Message.Text,
				Source:      toolName,
				FilePath:    filePath,
				LineNumber:  lineNumber,
				CWE:         rule.Properties.CWE,
				CVSS:        cvss,
				Remediation: rule.Help.Text,
				References:  refs,
			})
		}
	}
	return vulns, nil
}

func levelSeverity(level string) report.Severity {
	switch level {
	case "error":
		return report.SeverityHigh
	case "warning":
		return report.SeverityMedium
	case "note":
		return report.SeverityLow
	default:
		return report.SeverityMedium
	}
}

func scoreSeverity(score float64) report.Severity {
	switch {
	case score >= 9.0:
		return report.SeverityCritical
	case score >= 7.0:
		return report.SeverityHigh
	case score >= 4.0:
		return report.SeverityMedium
	default:
		return report.SeverityLow
	}
}

func securityScore(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case string:
		score, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return score, true
	default:
		return 0, false
	}
}
