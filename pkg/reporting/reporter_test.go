package reporting

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ducminhle1904/freqtrade-launcher/internal/command"
	"github.com/ducminhle1904/freqtrade-launcher/internal/runner"
	"github.com/ducminhle1904/freqtrade-launcher/internal/session"
)

func sampleHistory() []session.RunRecord {
	started := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	spec := command.New("docker-compose", "run", "--name", "Hyperopt", "--rm", "freqtrade", "hyperopt")
	return []session.RunRecord{
		{Frontend: "hyperopt", Attempt: 1, Reason: session.ReasonInitial, Command: spec,
			Result: runner.Result{Started: started, Duration: 90 * time.Second}},
		{Frontend: "hyperopt", Attempt: 2, Reason: session.ReasonRetry, Command: spec,
			Result: runner.Result{Started: started.Add(time.Hour), Duration: 2 * time.Second, ExitCode: 2}},
		{Frontend: "hyperopt", Attempt: 3, Reason: session.ReasonNew, Command: spec,
			Result: runner.Result{Started: started.Add(2 * time.Hour), ExitCode: -1, Err: errors.New("not found")}},
	}
}

func TestRowsAndSummary(t *testing.T) {
	rows := Rows(sampleHistory())
	require.Len(t, rows, 3)
	assert.Equal(t, StatusOK, rows[0].Status)
	assert.Equal(t, "2025-03-01 10:00:00", rows[0].Started)
	assert.Equal(t, "exit 2", rows[1].Status)
	assert.Equal(t, StatusLaunchFailed, rows[2].Status)
	assert.Equal(t, "not found", rows[2].Error)

	sum := Summarize(sampleHistory())
	assert.Equal(t, Summary{Runs: 3, Succeeded: 1, NonZeroExits: 1, LaunchFailure: 1, TotalDuration: 92 * time.Second}, sum)
}

func TestRenderHistory(t *testing.T) {
	var buf bytes.Buffer
	NewDefaultConsoleReporter().RenderHistory(&buf, "hyperopt", sampleHistory())

	out := buf.String()
	assert.Contains(t, out, "HYPEROPT SESSION HISTORY")
	assert.Contains(t, out, "launch failed")
	assert.Contains(t, out, "1 ok / 2 failed")
	assert.Contains(t, out, "Total")
	assert.NotContains(t, out, "TOTAL")

	buf.Reset()
	NewDefaultConsoleReporter().RenderHistory(&buf, "hyperopt", nil)
	assert.Empty(t, buf.String())
}

func TestWriteHistoryXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "history.xlsx")
	require.NoError(t, WriteHistoryXLSX(sampleHistory(), path))

	fx, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer fx.Close()

	assert.Equal(t, []string{RunsSheet, SummarySheet}, fx.GetSheetList())

	rows, err := fx.GetRows(RunsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Attempt", rows[0][0])
	assert.Equal(t, "launch failed", rows[3][5])

	runs, err := fx.GetCellValue(SummarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "3", runs)
}

func TestWriteHistoryCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	require.NoError(t, NewDefaultCSVReporter().WriteHistoryCSV(sampleHistory(), path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "Error", records[0][7])
	assert.Equal(t, "90.000", records[1][3])
	assert.Equal(t, "not found", records[3][7])
}

func TestWriteHistoryCSV_IgnoresExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.xlsx")
	require.NoError(t, NewDefaultCSVReporter().WriteHistoryCSV(sampleHistory(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Attempt,Reason,"))
}

func TestWriteHistory_ByExtension(t *testing.T) {
	dir := t.TempDir()
	r := NewDefaultReporter()

	jsonPath := filepath.Join(dir, "h.json")
	require.NoError(t, r.WriteHistory(sampleHistory(), jsonPath))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var rows []HistoryRow
	require.NoError(t, json.Unmarshal(data, &rows))
	assert.Len(t, rows, 3)

	require.NoError(t, r.WriteHistory(sampleHistory(), filepath.Join(dir, "h.xlsx")))
	assert.FileExists(t, filepath.Join(dir, "h.xlsx"))

	assert.Error(t, r.WriteHistory(sampleHistory(), filepath.Join(dir, "h.txt")))
}

func TestDefaultHistoryPath(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, filepath.Join("results", "backtest_20250102_030405.xlsx"), DefaultHistoryPath("Backtest", "", now))
	assert.Equal(t, filepath.Join("results", "session_20250102_030405.csv"), DefaultHistoryPath("", ".csv", now))
}
