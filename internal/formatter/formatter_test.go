package formatter

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/shared"
	th "github.com/desertthunder/roster/internal/testing"
	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func fixtures() ([]models.Student, []models.Course, []models.Instructor) {
	students := []models.Student{
		{ID: 1, Name: "Ada", Courses: []models.ID{1, 2}},
		{ID: 2, Name: "Linus", Courses: []models.ID{9}},
	}
	courses := []models.Course{
		{ID: 1, Name: "Compilers", Credits: 4.5, Instructors: []models.ID{1}},
		{ID: 2, Name: "Databases", Credits: 3, Instructors: []models.ID{}},
	}
	instructors := []models.Instructor{
		{ID: 1, Name: "Grace", Department: "CS"},
		{ID: 2, Name: "Barbara"},
	}
	return students, courses, instructors
}

func TestTables(t *testing.T) {
	students, courses, instructors := fixtures()

	t.Run("StudentsTable", func(t *testing.T) {
		got := StudentsTable(students, courses)
		want := [][]string{
			{"1", "Ada", "Compilers; Databases"},
			{"2", "Linus", "#9"},
		}
		if diff := cmp.Diff(want, got.Rows); diff != "" {
			t.Errorf("rows mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("CoursesTable", func(t *testing.T) {
		got := CoursesTable(courses, instructors)
		want := [][]string{
			{"1", "Compilers", "4.5", "Grace"},
			{"2", "Databases", "3", ""},
		}
		if diff := cmp.Diff(want, got.Rows); diff != "" {
			t.Errorf("rows mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("InstructorsTable", func(t *testing.T) {
		got := InstructorsTable(instructors)
		if len(got.Rows) != 2 || got.Rows[1][2] != "" {
			t.Errorf("unexpected rows: %v", got.Rows)
		}
	})
}

func TestExporters(t *testing.T) {
	students, courses, _ := fixtures()
	table := StudentsTable(students, courses)

	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(table)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "ID,Name,Courses\n") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "1,Ada,Compilers; Databases") {
			t.Errorf("CSV missing first student, got: %s", output)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(table)
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{"# Students", "**Records**: 2", "| ID | Name | Courses |", "| 2 | Linus | #9 |"} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got: %s", want, output)
			}
		}
	})

	t.Run("ExportToMarkdown escapes pipes", func(t *testing.T) {
		data, _ := ExportToMarkdown(InstructorsTable([]models.Instructor{{ID: 1, Name: "A|B"}}))
		if !strings.Contains(string(data), `A\|B`) {
			t.Errorf("pipe not escaped: %s", data)
		}
	})

	t.Run("ExportToMarkdown empty", func(t *testing.T) {
		data, _ := ExportToMarkdown(InstructorsTable(nil))
		if !strings.Contains(string(data), "_No records._") {
			t.Errorf("expected empty marker, got: %s", data)
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(InstructorsTable([]models.Instructor{{ID: 1, Name: "Grace", Department: "CS"}, {ID: 2, Name: "Barbara"}}))
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Instructors: 2") {
			t.Errorf("text missing count, got: %s", output)
		}
		if !strings.Contains(output, "1. ID: 1, Name: Grace, Department: CS") {
			t.Errorf("text missing first line, got: %s", output)
		}
		if !strings.Contains(output, "2. ID: 2, Name: Barbara\n") {
			t.Errorf("blank department should be omitted, got: %s", output)
		}
	})
}

func TestWriteExport(t *testing.T) {
	students, courses, _ := fixtures()
	table := StudentsTable(students, courses)

	t.Run("WithDefaultPath", func(t *testing.T) {
		tempDir := t.TempDir()
		originalDir := th.MustGetwd(t)
		th.MustChdir(t, tempDir)
		defer th.MustChdir(t, originalDir)

		path, err := WriteExport(table, FormatCSV, "")
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if path != "students.csv" {
			t.Errorf("expected 'students.csv', got '%s'", path)
		}
		th.AssertFileExists(t, path)
	})

	t.Run("WithNestedPath", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out", "students.md")

		got, err := WriteExport(table, FormatMarkdown, path)
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if !strings.Contains(th.MustReadFile(t, got), "# Students") {
			t.Error("markdown file missing title")
		}
	})

	t.Run("UnsupportedFormat", func(t *testing.T) {
		_, err := WriteExport(table, "pdf", filepath.Join(t.TempDir(), "x.pdf"))
		if !errors.Is(err, shared.ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})
}

func TestXLSX(t *testing.T) {
	students, courses, _ := fixtures()

	t.Run("round trip", func(t *testing.T) {
		var buf bytes.Buffer
		if err := ExportStudentsXLSX(&buf, students, courses); err != nil {
			t.Fatalf("ExportStudentsXLSX failed: %v", err)
		}

		names, err := ImportStudentNamesXLSX(&buf)
		if err != nil {
			t.Fatalf("ImportStudentNamesXLSX failed: %v", err)
		}
		if diff := cmp.Diff([]string{"Ada", "Linus"}, names); diff != "" {
			t.Errorf("names mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("skips header and blank rows", func(t *testing.T) {
		f := excelize.NewFile()
		defer f.Close()

		rows := [][]any{{"Student"}, {" Ada "}, {""}, {"Grace"}}
		for i, row := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
				t.Fatalf("failed to write row: %v", err)
			}
		}

		var buf bytes.Buffer
		if err := f.Write(&buf); err != nil {
			t.Fatalf("failed to write workbook: %v", err)
		}

		names, err := ImportStudentNamesXLSX(&buf)
		if err != nil {
			t.Fatalf("ImportStudentNamesXLSX failed: %v", err)
		}
		if diff := cmp.Diff([]string{"Ada", "Grace"}, names); diff != "" {
			t.Errorf("names mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("rejects non-workbooks", func(t *testing.T) {
		if _, err := ImportStudentNamesXLSX(strings.NewReader("name\nAda\n")); err == nil {
			t.Error("expected error for plain text input")
		}
	})

	t.Run("WriteStudentsXLSX", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "roster.xlsx")
		got, err := WriteStudentsXLSX(students, courses, path)
		if err != nil {
			t.Fatalf("WriteStudentsXLSX failed: %v", err)
		}
		th.AssertFileExists(t, got)

		f, err := excelize.OpenFile(got)
		if err != nil {
			t.Fatalf("failed to open workbook: %v", err)
		}
		defer f.Close()

		if name := f.GetSheetName(0); name != RosterSheet {
			t.Errorf("expected sheet %q, got %q", RosterSheet, name)
		}
		if v, _ := f.GetCellValue(RosterSheet, "B2"); v != "1" {
			t.Errorf("expected id 1 in B2, got %q", v)
		}
	})
}
