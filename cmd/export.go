package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/roster/internal/formatter"
	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/shared"
	"github.com/desertthunder/roster/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export writes one collection to a file in the requested format.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	collection := cmd.String("collection")
	format := cmd.String("format")
	output := cmd.String("output")

	if err := r.open(); err != nil {
		return err
	}
	if cmd.Bool("all") {
		return r.exportAll(ctx, strings.Split(format, ","), output, int(cmd.Int("workers")))
	}

	if format == formatter.FormatXLSX {
		if collection != models.StudentsCollection {
			return fmt.Errorf("%w: xlsx export is only available for students", shared.ErrInvalidArgument)
		}
		path, err := formatter.WriteStudentsXLSX(r.repos.Students.List(), r.repos.Courses.List(), output)
		if err != nil {
			return fmt.Errorf("failed to export students: %w", err)
		}
		r.logger.Info("exported workbook", "path", path)
		return r.writePlain("✓ Exported students to %s\n", path)
	}

	var table formatter.Table
	switch collection {
	case models.StudentsCollection:
		table = formatter.StudentsTable(r.repos.Students.List(), r.repos.Courses.List())
	case models.CoursesCollection:
		table = formatter.CoursesTable(r.repos.Courses.List(), r.repos.Instructors.List())
	case models.InstructorsCollection:
		table = formatter.InstructorsTable(r.repos.Instructors.List())
	default:
		return fmt.Errorf("%w: %q", shared.ErrUnknownCollection, collection)
	}

	path, err := formatter.WriteExport(table, format, output)
	if err != nil {
		return fmt.Errorf("failed to export %s: %w", collection, err)
	}

	r.logger.Info("exported collection", "collection", collection, "format", format, "path", path)
	return r.writePlain("✓ Exported %d %s to %s\n", len(table.Rows), collection, path)
}

// exportAll writes every collection in each format to dir and prints the manifest summary.
func (r *Runner) exportAll(ctx context.Context, formats []string, dir string, workers int) error {
	engine := tasks.NewExportEngine(r.store, r.logger)

	progressCh := make(chan tasks.ProgressUpdate, 20)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.TakeSnapshot:
				r.writePlain("📸 %s\n", update.Message)
			case tasks.ExportCollection:
				r.writePlain("   %s\n", update.Message)
			case tasks.WriteManifest:
				r.writePlain("📝 %s\n", update.Message)
			}
		}
	}()

	result, err := engine.BulkExport(ctx, progressCh, tasks.BulkExportOpts{
		Formats:    formats,
		OutputDir:  dir,
		NumWorkers: workers,
	})
	close(progressCh)
	<-done

	if err != nil {
		return fmt.Errorf("failed to export collections: %w", err)
	}

	r.writePlainHeader("Export Complete")
	r.writePlain("Directory: %s\n", result.OutputDirectory)
	r.writePlain("Files: %d/%d written\n", result.SuccessfulExports, result.TotalJobs)
	for _, res := range result.Results {
		if !res.Success {
			r.writePlain("  ✗ %s.%s: %s\n", res.Collection, res.Format, res.ErrorMessage)
		}
	}
	return nil
}

// Import creates a student for every name in column A of an XLSX file.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	names, err := formatter.ImportStudentNamesXLSX(file)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	if err := r.open(); err != nil {
		return err
	}

	created := 0
	for _, name := range names {
		student, err := r.repos.Students.Create(name)
		if err != nil {
			return fmt.Errorf("failed to import %q after %d students: %w", name, created, err)
		}
		r.logger.Debug("imported student", "id", student.ID, "name", student.Name)
		created++
	}

	r.logger.Info("import complete", "path", path, "students", created)
	return r.writePlain("✓ Imported %d student(s) from %s\n", created, path)
}
