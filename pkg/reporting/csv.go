package reporting

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/ducminhle1904/freqtrade-launcher/internal/session"
)

// DefaultCSVReporter implements CSV output functionality
type DefaultCSVReporter struct{}

// NewDefaultCSVReporter creates a new CSV reporter
func NewDefaultCSVReporter() *DefaultCSVReporter {
	return &DefaultCSVReporter{}
}

// WriteHistoryCSV writes the run history to a CSV file
func (r *DefaultCSVReporter) WriteHistoryCSV(history []session.RunRecord, path string) error {
	if err := EnsureDirectoryExists(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(append(append([]string{}, historyHeaders...), "Error")); err != nil {
		return err
	}

	for _, row := range Rows(history) {
		if err := w.Write([]string{
			strconv.Itoa(row.Attempt),
			row.Reason,
			row.Started,
			strconv.FormatFloat(row.Duration, 'f', 3, 64),
			strconv.Itoa(row.ExitCode),
			row.Status,
			row.Command,
			row.Error,
		}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
