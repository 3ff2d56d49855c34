package reporting

import (
	"fmt"
	"time"

	"github.com/ducminhle1904/freqtrade-launcher/internal/session"
)

// Run outcome labels
const (
	StatusOK           = "ok"
	StatusLaunchFailed = "launch failed"
)

// HistoryRow is the flattened form of a run record shared by all writers
type HistoryRow struct {
	Attempt  int     `json:"attempt"`
	Reason   string  `json:"reason"`
	Started  string  `json:"started"`
	Duration float64 `json:"duration_seconds"`
	ExitCode int     `json:"exit_code"`
	Status   string  `json:"status"`
	Error    string  `json:"error,omitempty"`
	Command  string  `json:"command"`
}

var historyHeaders = []string{"Attempt", "Reason", "Started", "Duration (s)", "Exit Code", "Status", "Command"}

// Rows flattens history in attempt order
func Rows(history []session.RunRecord) []HistoryRow {
	rows := make([]HistoryRow, 0, len(history))
	for _, rec := range history {
		row := HistoryRow{
			Attempt:  rec.Attempt,
			Reason:   string(rec.Reason),
			Duration: rec.Result.Duration.Seconds(),
			ExitCode: rec.Result.ExitCode,
			Status:   status(rec),
			Command:  rec.Command.String(),
		}
		if !rec.Result.Started.IsZero() {
			row.Started = rec.Result.Started.Format(time.DateTime)
		}
		if rec.Result.Err != nil {
			row.Error = rec.Result.Err.Error()
		}
		rows = append(rows, row)
	}
	return rows
}

func status(rec session.RunRecord) string {
	switch {
	case rec.Result.Err != nil:
		return StatusLaunchFailed
	case rec.Result.ExitCode != 0:
		return fmt.Sprintf("exit %d", rec.Result.ExitCode)
	default:
		return StatusOK
	}
}

// Summary counts runs by outcome
type Summary struct {
	Runs          int
	Succeeded     int
	NonZeroExits  int
	LaunchFailure int
	TotalDuration time.Duration
}

// Summarize aggregates history
func Summarize(history []session.RunRecord) Summary {
	var s Summary
	for _, rec := range history {
		s.Runs++
		s.TotalDuration += rec.Result.Duration
		switch {
		case rec.Result.Err != nil:
			s.LaunchFailure++
		case rec.Result.ExitCode != 0:
			s.NonZeroExits++
		default:
			s.Succeeded++
		}
	}
	return s
}
