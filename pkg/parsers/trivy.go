package parsers

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/user/secreport/pkg/report"
)

// Trivy JSON schema subset
type trivyDocument struct {
	Results []trivyResult `json:"Results"`
}

type trivyResult struct {
	Target          string               `json:"Target"`
	Vulnerabilities []trivyVulnerability `json:"Vulnerabilities"`
}

type trivyVulnerability struct {
	VulnerabilityID string               `json:"VulnerabilityID"`
	PkgName         string               `json:"PkgName"`
	Title           string               `json:"Title"`
	Description     string               `json:"Description"`
	Severity        string               `json:"Severity"`
	FixedVersion    string               `json:"FixedVersion"`
	CVSS            map[string]trivyCVSS `json:"CVSS"`
	References      []string             `json:"References"`
}

type trivyCVSS struct {
	V3Score float64 `json:"V3Score"`
}

// ParseTrivy converts Trivy JSON output into normalized vulnerabilities.
// Trivy already emits canonical-looking severity labels, so they pass
// through upper-cased without a remapping table; an unrecognized label is
// tolerated rather than rejected.
func ParseTrivy(data []byte) ([]report.Vulnerability, error) {
	var doc trivyDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	var vulns []report.Vulnerability
	for _, result := range doc.Results {
		for _, v := range result.Vulnerabilities {
			title := v.Title
			if title == "" {
				title = v.VulnerabilityID
			}

			severity := v.Severity
			if severity == "" {
				severity = "UNKNOWN"
			}

			fixed := v.FixedVersion
			if fixed == "" {
				fixed = "N/A"
			}

			refs := v.References
			if len(refs) > 3 {
				refs = refs[:3]
			}

			vulns = append(vulns, report.Vulnerability{
				ID:          v.VulnerabilityID,
				Title:       title,
				Severity:    report.Severity(strings.ToUpper(severity)),
				Description: v.Description,
				Source:      "Trivy",
				FilePath:    result.Target,
				CVSS:        trivyScore(v.CVSS),
				Remediation: fmt.Sprintf("Update %s to %s", v.PkgName, fixed),
				References:  refs,
			})
		}
	}
	return vulns, nil
}

// trivyScore reads the first available CVSS v3 score, preferring NVD.
func trivyScore(sources map[string]trivyCVSS) float64 {
	if cvss, ok := sources["nvd"]; ok && cvss.V3Score > 0 {
		return cvss.V3Score
	}

	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if score := sources[name].V3Score; score > 0 {
			return score
		}
	}
	return 0
}
