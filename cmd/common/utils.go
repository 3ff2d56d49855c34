package common

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/ducminhle1904/freqtrade-launcher/internal/console"
)

// EnvLoader provides environment loading utilities
type EnvLoader struct {
	con *console.Console
}

// NewEnvLoader creates a new environment loader
func NewEnvLoader(con *console.Console) *EnvLoader {
	return &EnvLoader{con: con}
}

// LoadEnvFile loads environment variables from a file. A missing file is not
// an error; variables already set in the process environment win.
func (e *EnvLoader) LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		e.con.Debug("Environment file %s not found, using system environment", path)
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		e.con.Warning("Could not load environment file %s: %v", path, err)
		return fmt.Errorf("load env file %s: %w", path, err)
	}

	e.con.Debug("Environment loaded from %s", path)
	return nil
}
