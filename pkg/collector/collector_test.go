package collector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/user/secreport/pkg/report"
)

const sarifFixture = `{"runs":[{"tool":{"driver":{"name":"Semgrep"}},"results":[{"ruleId":"r1","level":"error","message":{"text":"finding"}}]}]}`
const emptySarifFixture = `{"runs":[{"tool":{"driver":{"name":"Semgrep"}},"results":[]}]}`
const npmFixture = `{"vulnerabilities":{"lodash":{"name":"lodash","severity":"low"}}}`
const trivyFixture = `{"Results":[{"Target":"img","Vulnerabilities":[{"VulnerabilityID":"CVE-1","PkgName":"p","Severity":"HIGH"}]}]}`

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture %s: %v", name, err)
	}
}

func TestCollectOrderingAndNaming(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "semgrep.sarif", sarifFixture)
	writeFixture(t, dir, "npm-audit.json", npmFixture)
	writeFixture(t, dir, "trivy-image.json", trivyFixture)

	results, diags, err := Collect(dir)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("Expected no diagnostics, got %v", diags)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 scan results, got %d", len(results))
	}

	// Adapter-family order: SARIF, then npm audit, then Trivy.
	expected := []string{"semgrep", "npm-audit", "trivy-trivy-image"}
	for i, name := range expected {
		if results[i].Scanner != name {
			t.Errorf("Expected result %d scanner %q, got %q", i, name, results[i].Scanner)
		}
	}

	for _, r := range results {
		if r.Summary.Total() != len(r.Vulnerabilities) {
			t.Errorf("Scanner %s summary total %d does not match %d vulnerabilities",
				r.Scanner, r.Summary.Total(), len(r.Vulnerabilities))
		}
	}
}

func TestCollectOmitsEmptyDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "empty.sarif", emptySarifFixture)
	writeFixture(t, dir, "semgrep.sarif", sarifFixture)

	results, diags, err := Collect(dir)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("Expected no diagnostics, got %v", diags)
	}
	if len(results) != 1 {
		t.Fatalf("Expected zero-finding document to be omitted, got %d results", len(results))
	}
	if results[0].Scanner != "semgrep" {
		t.Errorf("Expected semgrep result, got %q", results[0].Scanner)
	}
}

func TestCollectSkipsMalformedDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "trivy-broken.json", "{not valid json")
	writeFixture(t, dir, "trivy-image.json", trivyFixture)

	results, diags, err := Collect(dir)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(diags) != 1 {
		t.Fatalf("Expected 1 diagnostic for the broken document, got %d", len(diags))
	}
	if len(results) != 1 {
		t.Fatalf("Expected the valid document to still be collected, got %d results", len(results))
	}
}

func TestCollectMissingRootIsFatal(t *testing.T) {
	_, _, err := Collect(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("Expected error for missing input root")
	}
}

func TestDiscoverClassification(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "semgrep.sarif", sarifFixture)
	writeFixture(t, dir, "frontend-npm-audit.json", npmFixture)
	writeFixture(t, dir, "trivy-fs.json", trivyFixture)
	writeFixture(t, dir, "unrelated.txt", "ignored")

	docs, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("Expected 3 documents, got %d", len(docs))
	}
	kinds := []FormatKind{KindSARIF, KindNPMAudit, KindTrivy}
	for i, kind := range kinds {
		if docs[i].Kind != kind {
			t.Errorf("Expected document %d kind %s, got %s", i, kind, docs[i].Kind)
		}
	}
}

func TestCollectSeverityNormalized(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "semgrep.sarif", sarifFixture)

	results, _, err := Collect(dir)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if results[0].Vulnerabilities[0].Severity != report.SeverityHigh {
		t.Errorf("Expected normalized HIGH severity, got %s", results[0].Vulnerabilities[0].Severity)
	}
}
