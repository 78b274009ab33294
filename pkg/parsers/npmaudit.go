package parsers

import (
	"encoding/json"
	"sort"

	"github.com/user/secreport/pkg/report"
)

// npm audit v7+ schema subset
type npmAuditDocument struct {
	Vulnerabilities map[string]npmAuditEntry `json:"vulnerabilities"`
}

type npmAuditEntry struct {
	Name     string `json:"name"`
	Severity string `json:"severity"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	// Either a bool or an object describing the fix; only the object form
	// carries a remediation target.
	FixAvailable json.RawMessage `json:"fixAvailable"`
}

type npmAuditFix struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ParseNPMAudit converts npm audit JSON output into normalized
// vulnerabilities. Advisory IDs are emitted in sorted order so repeated runs
// over the same document produce the same sequence.
func ParseNPMAudit(data []byte) ([]report.Vulnerability, error) {
	var doc npmAuditDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(doc.Vulnerabilities))
	for id := range doc.Vulnerabilities {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var vulns []report.Vulnerability
	for _, id := range ids {
		entry := doc.Vulnerabilities[id]

		title := entry.Name
		if title == "" {
			title = id
		}

		var refs []string
		if entry.URL != "" {
			refs = append(refs, entry.URL)
		}

		vulns = append(vulns, report.Vulnerability{
			ID:          id,
			Title:       title,
			Severity:    npmSeverity(entry.Severity),
			Description: entry.Title,
			Source:      "npm audit",
			FilePath:    "package.json",
			Remediation: npmRemediation(entry.FixAvailable),
			References:  refs,
		})
	}
	return vulns, nil
}

func npmSeverity(native string) report.Severity {
	switch native {
	case "critical":
		return report.SeverityCritical
	case "high":
		return report.SeverityHigh
	case "moderate":
		return report.SeverityMedium
	case "low":
		return report.SeverityLow
	default:
		return report.SeverityMedium
	}
}

// npmRemediation extracts the fix target package name. fixAvailable is a
// plain bool when npm has no concrete fix to name.
func npmRemediation(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var fix npmAuditFix
	if err := json.Unmarshal(raw, &fix); err != nil {
		return ""
	}
	return fix.Name
}
