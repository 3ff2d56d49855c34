package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ducminhle1904/freqtrade-launcher/internal/session"
)

// DefaultConsoleReporter implements console output functionality
type DefaultConsoleReporter struct {
	// CommandWidth caps the command column; longer commands wrap
	CommandWidth int
}

// NewDefaultConsoleReporter creates a new console reporter
func NewDefaultConsoleReporter() *DefaultConsoleReporter {
	return &DefaultConsoleReporter{CommandWidth: 80}
}

// RenderHistory prints the session history as a table. Nothing is printed
// for an empty history.
func (r *DefaultConsoleReporter) RenderHistory(w io.Writer, frontend string, history []session.RunRecord) {
	if len(history) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(strings.ToUpper(frontend) + " SESSION HISTORY")
	style := table.StyleRounded
	style.Format.Footer = text.FormatDefault
	t.SetStyle(style)

	header := make(table.Row, len(historyHeaders))
	for i, h := range historyHeaders {
		header[i] = h
	}
	t.AppendHeader(header)

	for _, row := range Rows(history) {
		t.AppendRow(table.Row{
			row.Attempt,
			row.Reason,
			row.Started,
			fmt.Sprintf("%.1f", row.Duration),
			row.ExitCode,
			row.Status,
			row.Command,
		})
	}

	sum := Summarize(history)
	t.AppendFooter(table.Row{
		"", "", "Total",
		fmt.Sprintf("%.1f", sum.TotalDuration.Seconds()),
		"",
		fmt.Sprintf("%d ok / %d failed", sum.Succeeded, sum.NonZeroExits+sum.LaunchFailure),
		"",
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 7, WidthMax: r.CommandWidth, Align: text.AlignLeft},
	})

	t.Render()
}
