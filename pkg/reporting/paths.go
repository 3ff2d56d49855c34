package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// AutoHistory is the -history value that picks DefaultHistoryPath
const AutoHistory = "auto"

// DefaultHistoryPath returns results/<frontend>_<timestamp>.<ext>
func DefaultHistoryPath(frontend, ext string, now time.Time) string {
	f := strings.ToLower(strings.TrimSpace(frontend))
	if f == "" {
		f = "session"
	}
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = "xlsx"
	}
	return filepath.Join("results", fmt.Sprintf("%s_%s.%s", f, now.Format("20060102_150405"), ext))
}

// EnsureDirectoryExists creates the parent directory of path if needed
func EnsureDirectoryExists(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}
