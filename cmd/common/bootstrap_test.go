package common

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducminhle1904/freqtrade-launcher/internal/command"
	"github.com/ducminhle1904/freqtrade-launcher/internal/runner"
)

type fakeRunner struct {
	specs []command.Spec
}

func (f *fakeRunner) Run(_ context.Context, spec command.Spec) runner.Result {
	f.specs = append(f.specs, spec)
	return runner.Result{}
}

// projectDir creates a project with settings pointing at itself and makes it the cwd
func projectDir(t *testing.T, configs ...string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)

	if len(configs) > 0 {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "user_data"), 0755))
		for _, c := range configs {
			require.NoError(t, os.WriteFile(filepath.Join(dir, "user_data", c), []byte("{}"), 0644))
		}
	}

	settings := filepath.Join(dir, "launcher.yml")
	require.NoError(t, os.WriteFile(settings, []byte("project_dir: "+filepath.ToSlash(dir)+"\n"), 0644))
	return dir, settings
}

func TestApp_DownloadDefaults(t *testing.T) {
	dir, settings := projectDir(t)
	r := &fakeRunner{}
	app := App{Name: "download-data", Frontend: "download-data", Runner: r}

	var out bytes.Buffer
	code := app.Run([]string{"-settings", settings, "-no-colors", "-history", "runs.csv"},
		strings.NewReader("yes\nretry\nexit\n"), &out)

	assert.Equal(t, ExitOK, code)
	require.Len(t, r.specs, 2)
	assert.Contains(t, out.String(), "Running command: docker-compose run --name DataDownload")
	assert.Contains(t, out.String(), "DOWNLOAD-DATA SESSION HISTORY")
	assert.FileExists(t, filepath.Join(dir, "runs.csv"))

	logs, err := os.ReadDir(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestApp_AutoHistoryPath(t *testing.T) {
	dir, settings := projectDir(t)
	app := App{Name: "download-data", Frontend: "download-data", Runner: &fakeRunner{}}

	var out bytes.Buffer
	code := app.Run([]string{"-settings", settings, "-no-colors", "-no-audit", "-history", "auto"},
		strings.NewReader("yes\nexit\n"), &out)
	require.Equal(t, ExitOK, code)

	files, err := filepath.Glob(filepath.Join(dir, "results", "download-data_*.xlsx"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestApp_BacktestMissingConfigsExitsFatal(t *testing.T) {
	_, settings := projectDir(t)
	r := &fakeRunner{}
	app := App{Name: "backtest", Frontend: "backtest", Runner: r}

	var out bytes.Buffer
	code := app.Run([]string{"-settings", settings, "-no-colors", "-no-audit"}, strings.NewReader(""), &out)

	assert.Equal(t, ExitFatal, code)
	assert.Empty(t, r.specs)
	assert.Contains(t, out.String(), "Directory 'user_data' does not exist.")
	assert.Contains(t, out.String(), "No backtest option selected. Exiting...")
}

func TestApp_MissingProjectDirIsFatal(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	missing := filepath.Join(dir, "typo-project")
	settings := filepath.Join(dir, "launcher.yml")
	require.NoError(t, os.WriteFile(settings, []byte("project_dir: "+filepath.ToSlash(missing)+"\n"), 0644))

	r := &fakeRunner{}
	app := App{Name: "download-data", Frontend: "download-data", Runner: r}

	var out bytes.Buffer
	code := app.Run([]string{"-settings", settings, "-no-colors"}, strings.NewReader("yes\nexit\n"), &out)

	assert.Equal(t, ExitFatal, code)
	assert.Empty(t, r.specs)
	assert.Contains(t, out.String(), "Failed to change directory to "+filepath.ToSlash(missing)+".")
	assert.NoDirExists(t, missing)
}

func TestApp_InputClosedIsFatal(t *testing.T) {
	_, settings := projectDir(t, "config-1.json")
	app := App{Name: "backtest", Frontend: "backtest", Runner: &fakeRunner{}}

	var out bytes.Buffer
	code := app.Run([]string{"-settings", settings, "-no-colors", "-no-audit"}, strings.NewReader("1\nyes\n"), &out)
	assert.Equal(t, ExitFatal, code)
	assert.Contains(t, out.String(), "operator input closed")
}

func TestApp_VersionAndHelp(t *testing.T) {
	app := App{Name: "hyperopt", Frontend: "hyperopt", Description: "Interactive hyperopt launcher"}

	var out bytes.Buffer
	assert.Equal(t, ExitOK, app.Run([]string{"-version"}, strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "hyperopt v"+ProjectVersion)

	out.Reset()
	assert.Equal(t, ExitOK, app.Run([]string{"-help"}, strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "Interactive hyperopt launcher")
	assert.Contains(t, out.String(), "-metrics-addr")
}

func TestApp_BadFlags(t *testing.T) {
	app := App{Name: "hyperopt", Frontend: "hyperopt"}

	var out bytes.Buffer
	assert.Equal(t, ExitUsage, app.Run([]string{"-unknown"}, strings.NewReader(""), &out))

	out.Reset()
	assert.Equal(t, ExitUsage, app.Run([]string{"-history", "runs.txt", "-no-colors"}, strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "history extension must be one of")

	out.Reset()
	assert.Equal(t, ExitUsage, app.Run([]string{"-settings", "/does/not/exist.yml"}, strings.NewReader(""), &out))
}

func TestFlagValidator(t *testing.T) {
	v := NewFlagValidator().
		ValidateChoice("ordering", "natural", []string{"natural", "lexical"}).
		ValidateAddr("metrics-addr", ":9109")
	assert.False(t, v.HasErrors())
	assert.NoError(t, v.GetError())

	v.ValidateAddr("metrics-addr", "9109").ValidateExtension("history", "a.pdf", []string{".xlsx"})
	assert.True(t, v.HasErrors())
	assert.Contains(t, v.GetError().Error(), "validation errors:")
}

func TestRegisterCommonFlags_Defaults(t *testing.T) {
	fs := flag.NewFlagSet("t", flag.ContinueOnError)
	f := RegisterCommonFlags(fs)
	require.NoError(t, fs.Parse(nil))

	assert.Equal(t, ".env", *f.EnvFile)
	assert.Equal(t, "", *f.Settings)
	assert.False(t, *f.NoAudit)
	assert.Equal(t, "", *f.MetricsAddr)
}

// chdir changes the working directory for the test and restores it on cleanup
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
