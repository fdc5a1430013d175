package recorder

import (
	"strings"

	"AlphaLens/internal/collector"
	"AlphaLens/internal/model"
)

// VerdictSnapshot holds everything persisted for one analyzed symbol.
type VerdictSnapshot struct {
	RunID  string
	Symbol string
	Report *collector.Report
}

// Recorder persists verdict history for later review.
type Recorder interface {
	RecordVerdict(snap *VerdictSnapshot) error
	Close() error
}

// NewSnapshot builds a snapshot from a report and scan run id.
func NewSnapshot(runID string, report *collector.Report) *VerdictSnapshot {
	return &VerdictSnapshot{
		RunID:  runID,
		Symbol: report.Symbol,
		Report: report,
	}
}

// joinNotes flattens analysis notes for storage, preserving order.
func joinNotes(analysis *model.AnalysisResult) string {
	return strings.Join(analysis.Notes, "\n")
}
