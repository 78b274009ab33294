package parsers

import (
	"testing"

	"github.com/user/secreport/pkg/report"
)

const trivyDoc = `{
  "Results": [
    {
      "Target": "alpine:3.18 (alpine 3.18.0)",
      "Vulnerabilities": [
        {
          "VulnerabilityID": "CVE-2023-0001",
          "PkgName": "openssl",
          "Title": "openssl: buffer overflow",
          "Description": "A buffer overflow in openssl.",
          "Severity": "HIGH",
          "References": ["https://a", "https://b", "https://c", "https://d"]
        },
        {
          "VulnerabilityID": "CVE-2023-0002",
          "PkgName": "musl",
          "Severity": "critical",
          "FixedVersion": "1.2.4",
          "CVSS": {"nvd": {"V3Score": 9.8}, "redhat": {"V3Score": 9.1}}
        }
      ]
    }
  ]
}`

func TestParseTrivySeverityPassthrough(t *testing.T) {
	vulns, err := ParseTrivy([]byte(trivyDoc))
	if err != nil {
		t.Fatalf("ParseTrivy failed: %v", err)
	}
	if len(vulns) != 2 {
		t.Fatalf("Expected 2 vulnerabilities, got %d", len(vulns))
	}

	// No CVSS object: score defaults to 0, missing fix renders as N/A.
	v := vulns[0]
	if v.Severity != report.SeverityHigh {
		t.Errorf("Expected HIGH, got %s", v.Severity)
	}
	if v.CVSS != 0 {
		t.Errorf("Expected CVSS 0 without score, got %v", v.CVSS)
	}
	if v.Remediation != "Update openssl to N/A" {
		t.Errorf("Expected N/A remediation, got %q", v.Remediation)
	}
	if v.FilePath != "alpine:3.18 (alpine 3.18.0)" {
		t.Errorf("Expected target as file path, got %q", v.FilePath)
	}
	if len(v.References) != 3 {
		t.Errorf("Expected references capped at 3, got %d", len(v.References))
	}

	// Lowercase label upper-cases, NVD score wins, fix version is named.
	v = vulns[1]
	if v.Severity != report.SeverityCritical {
		t.Errorf("Expected CRITICAL, got %s", v.Severity)
	}
	if v.CVSS != 9.8 {
		t.Errorf("Expected NVD score 9.8, got %v", v.CVSS)
	}
	if v.Remediation != "Update musl to 1.2.4" {
		t.Errorf("Expected fix version remediation, got %q", v.Remediation)
	}
	if v.Title != "CVE-2023-0002" {
		t.Errorf("Expected id fallback title, got %q", v.Title)
	}
}

func TestParseTrivyNonCanonicalLabelTolerated(t *testing.T) {
	doc := `{"Results":[{"Target":"img","Vulnerabilities":[{"VulnerabilityID":"CVE-1","PkgName":"p","Severity":"negligible"}]}]}`
	vulns, err := ParseTrivy([]byte(doc))
	if err != nil {
		t.Fatalf("ParseTrivy failed: %v", err)
	}
	if vulns[0].Severity != report.Severity("NEGLIGIBLE") {
		t.Errorf("Expected NEGLIGIBLE passed through, got %s", vulns[0].Severity)
	}
}

func TestParseTrivyMissingSeverityDefaultsUnknown(t *testing.T) {
	doc := `{"Results":[{"Target":"img","Vulnerabilities":[{"VulnerabilityID":"CVE-1","PkgName":"p"}]}]}`
	vulns, err := ParseTrivy([]byte(doc))
	if err != nil {
		t.Fatalf("ParseTrivy failed: %v", err)
	}
	if vulns[0].Severity != report.Severity("UNKNOWN") {
		t.Errorf("Expected UNKNOWN default, got %s", vulns[0].Severity)
	}
}

func TestParseTrivyFallbackScoreSource(t *testing.T) {
	doc := `{"Results":[{"Target":"img","Vulnerabilities":[{"VulnerabilityID":"CVE-1","PkgName":"p","Severity":"LOW","CVSS":{"redhat":{"V3Score":3.1}}}]}]}`
	vulns, err := ParseTrivy([]byte(doc))
	if err != nil {
		t.Fatalf("ParseTrivy failed: %v", err)
	}
	if vulns[0].CVSS != 3.1 {
		t.Errorf("Expected fallback score 3.1, got %v", vulns[0].CVSS)
	}
}

func TestParseTrivyMalformed(t *testing.T) {
	if _, err := ParseTrivy([]byte("[]")); err == nil {
		t.Error("Expected error for document with wrong shape")
	}
}
