// package formatter exports the roster collections to CSV, Markdown and plain text,
// and reads and writes student rosters as Excel workbooks.
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/shared"
)

// Format names accepted by [WriteExport].
const (
	FormatCSV      = "csv"
	FormatMarkdown = "md"
	FormatText     = "txt"
	FormatXLSX     = "xlsx"
)

// Table is a collection flattened into display rows.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// StudentsTable flattens students, resolving enrolled course ids to names where known.
func StudentsTable(students []models.Student, courses []models.Course) Table {
	names := make(map[models.ID]string, len(courses))
	for _, c := range courses {
		names[c.ID] = c.Name
	}

	t := Table{Title: "Students", Headers: []string{"ID", "Name", "Courses"}}
	for _, s := range students {
		enrolled := make([]string, 0, len(s.Courses))
		for _, id := range s.Courses {
			enrolled = append(enrolled, labelFor(names, id))
		}
		t.Rows = append(t.Rows, []string{formatID(s.ID), s.Name, strings.Join(enrolled, "; ")})
	}
	return t
}

// CoursesTable flattens courses, resolving instructor ids to names where known.
func CoursesTable(courses []models.Course, instructors []models.Instructor) Table {
	names := make(map[models.ID]string, len(instructors))
	for _, i := range instructors {
		names[i.ID] = i.Name
	}

	t := Table{Title: "Courses", Headers: []string{"ID", "Name", "Credits", "Instructors"}}
	for _, c := range courses {
		assigned := make([]string, 0, len(c.Instructors))
		for _, id := range c.Instructors {
			assigned = append(assigned, labelFor(names, id))
		}
		t.Rows = append(t.Rows, []string{formatID(c.ID), c.Name, FormatCredits(c.Credits), strings.Join(assigned, "; ")})
	}
	return t
}

// InstructorsTable flattens instructors.
func InstructorsTable(instructors []models.Instructor) Table {
	t := Table{Title: "Instructors", Headers: []string{"ID", "Name", "Department"}}
	for _, i := range instructors {
		t.Rows = append(t.Rows, []string{formatID(i.ID), i.Name, i.Department})
	}
	return t
}

// FormatCredits renders credits without trailing zeros (3, 4.5).
func FormatCredits(credits float64) string {
	return strconv.FormatFloat(credits, 'f', -1, 64)
}

func formatID(id models.ID) string {
	return strconv.Itoa(int(id))
}

func labelFor(names map[models.ID]string, id models.ID) string {
	if name, ok := names[id]; ok {
		return name
	}
	return "#" + formatID(id)
}

// ExportToCSV writes the table's headers followed by one record per row
func ExportToCSV(t Table) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(t.Headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders the table as a titled Markdown table
func ExportToMarkdown(t Table) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", t.Title))
	buf.WriteString(fmt.Sprintf("**Records**: %d\n\n", len(t.Rows)))

	if len(t.Rows) == 0 {
		buf.WriteString("_No records._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("| " + strings.Join(t.Headers, " | ") + " |\n")
	dividers := make([]string, len(t.Headers))
	for i := range dividers {
		dividers[i] = "---"
	}
	buf.WriteString("| " + strings.Join(dividers, " | ") + " |\n")

	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = strings.ReplaceAll(cell, "|", `\|`)
		}
		buf.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	return buf.Bytes(), nil
}

// ExportToText renders the table as a numbered plain text list
func ExportToText(t Table) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s: %d\n\n", t.Title, len(t.Rows)))

	for i, row := range t.Rows {
		parts := make([]string, 0, len(row))
		for j, cell := range row {
			if cell == "" || j >= len(t.Headers) {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s: %s", t.Headers[j], cell))
		}
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, strings.Join(parts, ", ")))
	}

	return buf.Bytes(), nil
}

// WriteExport renders t in format and writes it to path.
//
// Defaults to {title}.{format} in the working directory when path is empty.
func WriteExport(t Table, format, path string) (string, error) {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatCSV:
		data, err = ExportToCSV(t)
	case FormatMarkdown:
		data, err = ExportToMarkdown(t)
	case FormatText:
		data, err = ExportToText(t)
	default:
		return "", fmt.Errorf("%w: %q", shared.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if path == "" {
		path = strings.ToLower(t.Title) + "." + format
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", format, err)
	}
	return path, nil
}
