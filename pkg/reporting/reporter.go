package reporting

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ducminhle1904/freqtrade-launcher/internal/session"
)

// DefaultReporter implements the complete Reporter interface
type DefaultReporter struct {
	console *DefaultConsoleReporter
	csv     *DefaultCSVReporter
	excel   *DefaultExcelReporter
	json    *DefaultJSONFormatter
}

// NewDefaultReporter creates a new default reporter with all functionality
func NewDefaultReporter() *DefaultReporter {
	return &DefaultReporter{
		console: NewDefaultConsoleReporter(),
		csv:     NewDefaultCSVReporter(),
		excel:   NewDefaultExcelReporter(),
		json:    NewDefaultJSONFormatter(),
	}
}

func (r *DefaultReporter) RenderHistory(w io.Writer, frontend string, history []session.RunRecord) {
	r.console.RenderHistory(w, frontend, history)
}

func (r *DefaultReporter) WriteHistoryCSV(history []session.RunRecord, path string) error {
	return r.csv.WriteHistoryCSV(history, path)
}

func (r *DefaultReporter) WriteHistoryXLSX(history []session.RunRecord, path string) error {
	return r.excel.WriteHistoryXLSX(history, path)
}

func (r *DefaultReporter) WriteHistoryJSON(history []session.RunRecord, path string) error {
	return r.json.WriteHistoryJSON(history, path)
}

// WriteHistory picks the writer from the file extension of path
func (r *DefaultReporter) WriteHistory(history []session.RunRecord, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return r.WriteHistoryXLSX(history, path)
	case ".csv":
		return r.WriteHistoryCSV(history, path)
	case ".json":
		return r.WriteHistoryJSON(history, path)
	}
	return fmt.Errorf("unsupported history format %q (want .xlsx, .csv or .json)", filepath.Ext(path))
}
