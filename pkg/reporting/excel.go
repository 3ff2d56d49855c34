package reporting

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ducminhle1904/freqtrade-launcher/internal/session"
)

// Sheet names of the history workbook
const (
	RunsSheet    = "Runs"
	SummarySheet = "Summary"
)

// DefaultExcelReporter implements Excel output functionality
type DefaultExcelReporter struct{}

// NewDefaultExcelReporter creates a new Excel reporter
func NewDefaultExcelReporter() *DefaultExcelReporter {
	return &DefaultExcelReporter{}
}

// WriteHistoryXLSX writes the run history to an Excel workbook
func (r *DefaultExcelReporter) WriteHistoryXLSX(history []session.RunRecord, path string) error {
	if err := EnsureDirectoryExists(path); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	fx := excelize.NewFile()
	defer fx.Close()

	fx.SetSheetName(fx.GetSheetName(0), RunsSheet)
	if _, err := fx.NewSheet(SummarySheet); err != nil {
		return err
	}

	styles, err := r.createExcelStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writeRunsSheet(fx, RunsSheet, history, styles); err != nil {
		return err
	}
	if err := r.writeSummarySheet(fx, SummarySheet, history, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}

func (r *DefaultExcelReporter) createExcelStyles(fx *excelize.File) (ExcelStyles, error) {
	var styles ExcelStyles
	var err error

	styles.HeaderStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorder(),
	})
	if err != nil {
		return styles, err
	}

	styles.BaseStyle, err = fx.NewStyle(&excelize.Style{
		Border: thinBorder(),
	})
	if err != nil {
		return styles, err
	}

	styles.OkStyle, err = fx.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Color: "008000"},
		Border: thinBorder(),
	})
	if err != nil {
		return styles, err
	}

	styles.FailureStyle, err = fx.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Color: "C00000", Bold: true},
		Border: thinBorder(),
	})
	if err != nil {
		return styles, err
	}

	styles.SummaryStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"E7E6E6"},
			Pattern: 1,
		},
		Border: thinBorder(),
	})
	return styles, err
}

func (r *DefaultExcelReporter) writeRunsSheet(fx *excelize.File, sheet string, history []session.RunRecord, styles ExcelStyles) error {
	fx.SetColWidth(sheet, "A", "A", 9)  // Attempt
	fx.SetColWidth(sheet, "B", "B", 10) // Reason
	fx.SetColWidth(sheet, "C", "C", 20) // Started
	fx.SetColWidth(sheet, "D", "E", 12) // Duration, Exit
	fx.SetColWidth(sheet, "F", "F", 14) // Status
	fx.SetColWidth(sheet, "G", "G", 120)

	for i, h := range historyHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		fx.SetCellValue(sheet, cell, h)
		fx.SetCellStyle(sheet, cell, cell, styles.HeaderStyle)
	}

	for i, row := range Rows(history) {
		rowNum := i + 2
		values := []interface{}{
			row.Attempt, row.Reason, row.Started, row.Duration, row.ExitCode, row.Status, row.Command,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return err
			}
			if err := fx.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
			fx.SetCellStyle(sheet, cell, cell, styles.BaseStyle)
		}

		statusCell, _ := excelize.CoordinatesToCellName(6, rowNum)
		if row.Status == StatusOK {
			fx.SetCellStyle(sheet, statusCell, statusCell, styles.OkStyle)
		} else {
			fx.SetCellStyle(sheet, statusCell, statusCell, styles.FailureStyle)
		}
	}

	return fx.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func (r *DefaultExcelReporter) writeSummarySheet(fx *excelize.File, sheet string, history []session.RunRecord, styles ExcelStyles) error {
	fx.SetColWidth(sheet, "A", "A", 22)
	fx.SetColWidth(sheet, "B", "B", 14)

	sum := Summarize(history)
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Runs", sum.Runs},
		{"Succeeded", sum.Succeeded},
		{"Non-zero exits", sum.NonZeroExits},
		{"Launch failures", sum.LaunchFailure},
		{"Total duration (s)", sum.TotalDuration.Seconds()},
	}

	for i, row := range rows {
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+1)
			if err := fx.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
			style := styles.BaseStyle
			if i == 0 {
				style = styles.HeaderStyle
			} else if col == 0 {
				style = styles.SummaryStyle
			}
			fx.SetCellStyle(sheet, cell, cell, style)
		}
	}
	return nil
}

// WriteHistoryXLSX is a package-level convenience wrapper
func WriteHistoryXLSX(history []session.RunRecord, path string) error {
	return NewDefaultExcelReporter().WriteHistoryXLSX(history, path)
}
