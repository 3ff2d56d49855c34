package reporting

import (
	"encoding/json"
	"os"

	"github.com/ducminhle1904/freqtrade-launcher/internal/session"
)

// DefaultJSONFormatter implements JSON output functionality
type DefaultJSONFormatter struct{}

// NewDefaultJSONFormatter creates a new JSON formatter
func NewDefaultJSONFormatter() *DefaultJSONFormatter {
	return &DefaultJSONFormatter{}
}

// FormatHistory formats the history rows as indented JSON
func (f *DefaultJSONFormatter) FormatHistory(history []session.RunRecord) ([]byte, error) {
	return json.MarshalIndent(Rows(history), "", "  ")
}

// WriteHistoryJSON writes the history rows to path
func (f *DefaultJSONFormatter) WriteHistoryJSON(history []session.RunRecord, path string) error {
	if err := EnsureDirectoryExists(path); err != nil {
		return err
	}
	data, err := f.FormatHistory(history)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
