// Package export renders ledger queries as spreadsheet downloads.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"parlour-api/models"
)

const (
	AttendanceSheet = "Attendance"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var attendanceHeaders = []interface{}{"Date", "Time", "Employee", "Email", "Position", "Action", "Location", "Notes"}

// AttendanceWorkbook writes events, in the given order, to a single-sheet workbook.
// Dates and times are rendered in loc.
func AttendanceWorkbook(events []models.AttendanceWithEmployee, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.UTC
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), AttendanceSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(AttendanceSheet, "A1", &attendanceHeaders); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(AttendanceSheet, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, e := range events {
		ts := e.Timestamp.In(loc)
		row := []interface{}{
			ts.Format("2006-01-02"),
			ts.Format("15:04:05"),
			e.Employee.Name,
			e.Employee.Email,
			e.Employee.Position,
			actionLabel(e.Action),
			e.Location,
			e.Notes,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(AttendanceSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(AttendanceSheet, "A", "H", 18); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// AttendanceFilename names an export generated at now.
func AttendanceFilename(now time.Time) string {
	return fmt.Sprintf("attendance_export_%s.xlsx", now.Format("20060102_150405"))
}

func actionLabel(a models.AttendanceAction) string {
	switch a {
	case models.ActionPunchIn:
		return "Punch in"
	case models.ActionPunchOut:
		return "Punch out"
	default:
		return string(a)
	}
}
