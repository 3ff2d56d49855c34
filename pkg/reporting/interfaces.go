// Package reporting renders the run history of a launcher session
package reporting

import (
	"io"

	"github.com/ducminhle1904/freqtrade-launcher/internal/session"
)

// ConsoleReporter defines interface for console output
type ConsoleReporter interface {
	RenderHistory(w io.Writer, frontend string, history []session.RunRecord)
}

// FileReporter defines interface for file output
type FileReporter interface {
	WriteHistoryCSV(history []session.RunRecord, path string) error
	WriteHistoryXLSX(history []session.RunRecord, path string) error
	WriteHistoryJSON(history []session.RunRecord, path string) error
}

// Reporter combines all reporting interfaces
type Reporter interface {
	ConsoleReporter
	FileReporter
}

// ExcelStyles holds Excel formatting styles
type ExcelStyles struct {
	HeaderStyle  int
	BaseStyle    int
	OkStyle      int
	FailureStyle int
	SummaryStyle int
}
