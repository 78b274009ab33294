// Package collector discovers scanner output documents under a root
// directory, routes each to its format parser, and assembles the ordered
// list of scan results. A document that fails to decode is recorded as a
// diagnostic and skipped; one bad file never aborts the run.
package collector

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/user/secreport/pkg/parsers"
	"github.com/user/secreport/pkg/report"
)

// FormatKind identifies which adapter family a discovered document belongs to.
type FormatKind int

const (
	KindSARIF FormatKind = iota
	KindNPMAudit
	KindTrivy
)

func (k FormatKind) String() string {
	switch k {
	case KindSARIF:
		return "sarif"
	case KindNPMAudit:
		return "npm-audit"
	case KindTrivy:
		return "trivy"
	default:
		return "unknown"
	}
}

// Document is one discovered input file tagged with its format.
type Document struct {
	Path string
	Kind FormatKind
}

// Diagnostic records a non-fatal per-document failure.
type Diagnostic struct {
	Path string
	Err  error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("skipped %s: %v", d.Path, d.Err)
}

var parserFor = map[FormatKind]func([]byte) ([]report.Vulnerability, error){
	KindSARIF:    parsers.ParseSARIF,
	KindNPMAudit: parsers.ParseNPMAudit,
	KindTrivy:    parsers.ParseTrivy,
}

// Discover walks root and returns matching documents grouped by adapter
// family: all SARIF documents first, then npm audit, then Trivy, each group
// in lexical walk order. Returns an error when root does not exist.
func Discover(root string) ([]Document, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("input directory %s does not exist", root)
	}

	var sarif, npm, trivy []Document
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		base := d.Name()
		switch {
		case strings.HasSuffix(base, ".sarif"):
			sarif = append(sarif, Document{Path: path, Kind: KindSARIF})
		case strings.HasSuffix(base, "npm-audit.json"):
			npm = append(npm, Document{Path: path, Kind: KindNPMAudit})
		case strings.Contains(base, "trivy") && strings.HasSuffix(base, ".json"):
			trivy = append(trivy, Document{Path: path, Kind: KindTrivy})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(sarif)+len(npm)+len(trivy))
	docs = append(docs, sarif...)
	docs = append(docs, npm...)
	docs = append(docs, trivy...)
	return docs, nil
}

// Collect runs the full discovery and parse pass. Documents producing zero
// vulnerabilities are omitted; decode failures become diagnostics.
func Collect(root string) ([]report.ScanResult, []Diagnostic, error) {
	docs, err := Discover(root)
	if err != nil {
		return nil, nil, err
	}

	var results []report.ScanResult
	var diags []Diagnostic
	for _, doc := range docs {
		data, err := os.ReadFile(doc.Path)
		if err != nil {
			diags = append(diags, Diagnostic{Path: doc.Path, Err: err})
			continue
		}

		vulns, err := parserFor[doc.Kind](data)
		if err != nil {
			diags = append(diags, Diagnostic{Path: doc.Path, Err: err})
			continue
		}
		if len(vulns) == 0 {
			continue
		}

		results = append(results, report.NewScanResult(scannerName(doc), time.Now(), vulns))
	}
	return results, diags, nil
}

// scannerName derives the result label from the document, matching the
// naming of the report consumers downstream.
func scannerName(doc Document) string {
	stem := strings.TrimSuffix(filepath.Base(doc.Path), filepath.Ext(doc.Path))
	switch doc.Kind {
	case KindNPMAudit:
		return "npm-audit"
	case KindTrivy:
		return "trivy-" + stem
	default:
		return stem
	}
}
