package formatter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/desertthunder/roster/internal/models"
	"github.com/xuri/excelize/v2"
)

// RosterSheet is the sheet name written by [ExportStudentsXLSX].
const RosterSheet = "Students"

// ErrNoSheets is returned when a workbook has no worksheet to import from.
var ErrNoSheets = errors.New("excel file does not contain any sheets")

// ExportStudentsXLSX writes a workbook with one header row and one row per student.
//
// Column A holds the name so the file can be fed back to [ImportStudentNamesXLSX].
func ExportStudentsXLSX(w io.Writer, students []models.Student, courses []models.Course) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", RosterSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(RosterSheet, "A1", &[]any{"Name", "ID", "Courses"}); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	table := StudentsTable(students, courses)
	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(RosterSheet, cell, &[]any{row[1], int(students[i].ID), row[2]}); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteStudentsXLSX writes [ExportStudentsXLSX] output to path, defaulting to students.xlsx.
func WriteStudentsXLSX(students []models.Student, courses []models.Course, path string) (string, error) {
	if path == "" {
		path = "students." + FormatXLSX
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := ExportStudentsXLSX(file, students, courses); err != nil {
		return "", err
	}
	return path, file.Close()
}

// ImportStudentNamesXLSX reads student names from column A of the first sheet.
//
// The first row is treated as a header. Rows with a blank name are skipped.
func ImportStudentNamesXLSX(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from sheet %s: %w", sheetName, err)
	}

	var names []string
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		if name := strings.TrimSpace(row[0]); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}
