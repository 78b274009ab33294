package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/user/secreport/pkg/report"
)

// DefaultSnapshotPath is where the diff command looks for a baseline.
const DefaultSnapshotPath = ".secreport-snapshot.json"

// Snapshot is a flattened view of one report's findings, saved between runs
// so later reports can be compared against a baseline.
type Snapshot struct {
	SavedAt  string            `json:"saved_at"`
	Findings []SnapshotFinding `json:"findings"`
}

// SnapshotFinding carries just enough of a finding to identify it across
// runs. Scanner, id, and location form the comparison key.
type SnapshotFinding struct {
	Scanner    string          `json:"scanner"`
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Severity   report.Severity `json:"severity"`
	FilePath   string          `json:"file_path"`
	LineNumber int             `json:"line_number"`
}

// SnapshotDiff groups the comparison outcome into new, fixed, and unchanged
// findings.
type SnapshotDiff struct {
	New       []SnapshotFinding
	Fixed     []SnapshotFinding
	Unchanged []SnapshotFinding
}

// TakeSnapshot flattens a report's findings in scan-result order.
func TakeSnapshot(rep report.SecurityReport, now time.Time) Snapshot {
	snap := Snapshot{SavedAt: now.Format(time.RFC3339)}
	for _, result := range rep.ScanResults {
		for _, v := range result.Vulnerabilities {
			snap.Findings = append(snap.Findings, SnapshotFinding{
				Scanner:    result.Scanner,
				ID:         v.ID,
				Title:      v.Title,
				Severity:   v.Severity,
				FilePath:   v.FilePath,
				LineNumber: v.LineNumber,
			})
		}
	}
	return snap
}

// Save writes the snapshot as JSON.
func (s Snapshot) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSnapshot reads a snapshot written by Save.
func LoadSnapshot(path string) (Snapshot, error) {
	var snap Snapshot
	data, err := os.ReadFile(path)
	if err != nil {
		return snap, err
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, err
	}
	return snap, nil
}

// Compare matches this snapshot's findings against a baseline. Findings
// present in both are unchanged, present only here are new, present only in
// the baseline are fixed. Output order follows the input orders.
func (s Snapshot) Compare(baseline Snapshot) SnapshotDiff {
	baseKeys := make(map[string]bool, len(baseline.Findings))
	for _, f := range baseline.Findings {
		baseKeys[f.key()] = true
	}
	currentKeys := make(map[string]bool, len(s.Findings))
	for _, f := range s.Findings {
		currentKeys[f.key()] = true
	}

	var diff SnapshotDiff
	for _, f := range s.Findings {
		if baseKeys[f.key()] {
			diff.Unchanged = append(diff.Unchanged, f)
		} else {
			diff.New = append(diff.New, f)
		}
	}
	for _, f := range baseline.Findings {
		if !currentKeys[f.key()] {
			diff.Fixed = append(diff.Fixed, f)
		}
	}
	return diff
}

func (f SnapshotFinding) key() string {
	return fmt.Sprintf("%s|%s|%s:%d", f.Scanner, f.ID, f.FilePath, f.LineNumber)
}
