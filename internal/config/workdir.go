package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ducminhle1904/freqtrade-launcher/internal/console"
	lerrors "github.com/ducminhle1904/freqtrade-launcher/internal/errors"
)

// WorkDir enforces the expected process working directory
type WorkDir struct {
	Expected string
	Console  *console.Console

	getwd func() (string, error)
	chdir func(string) error
}

// NewWorkDir creates a checker for the expected directory
func NewWorkDir(expected string, con *console.Console) *WorkDir {
	return &WorkDir{
		Expected: expected,
		Console:  con,
		getwd:    os.Getwd,
		chdir:    os.Chdir,
	}
}

// Ensure switches into the expected directory when the current one differs.
// Failing to switch is fatal.
func (w *WorkDir) Ensure() error {
	cwd, err := w.getwd()
	if err == nil && samePath(cwd, w.Expected) {
		return nil
	}

	if w.Console != nil {
		w.Console.Warning("Switching to expected working directory: %s", w.Expected)
	}
	if err := w.chdir(w.Expected); err != nil {
		return lerrors.Fatal(err, "config", "chdir",
			fmt.Sprintf("Failed to change directory to %s. %v", w.Expected, err))
	}
	return nil
}

func samePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ra, errA := filepath.EvalSymlinks(a)
	rb, errB := filepath.EvalSymlinks(b)
	return errA == nil && errB == nil && ra == rb
}
