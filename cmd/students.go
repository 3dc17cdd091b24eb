package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/roster/internal/formatter"
	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/shared"
	"github.com/urfave/cli/v3"
)

// StudentAdd creates a student and optionally enrolls them.
func (r *Runner) StudentAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	student, err := r.repos.Students.Create(cmd.StringArg("name"))
	if err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	r.logger.Info("student created", "id", student.ID, "name", student.Name)

	ids, rejected := models.ParseIDList(cmd.String("courses"))
	for _, id := range ids {
		if student, err = r.repos.Enrollments.Enroll(student.ID, id); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				rejected = append(rejected, fmt.Sprint(int(id)))
				continue
			}
			return fmt.Errorf("failed to enroll student: %w", err)
		}
	}
	if len(rejected) > 0 {
		r.logger.Warn("ignored unknown courses", "courses", strings.Join(rejected, ","))
	}

	return r.writePlain("✓ Created student %d: %s\n", student.ID, student.Name)
}

// StudentList prints every student.
func (r *Runner) StudentList(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	students := r.repos.Students.List()
	if cmd.Bool("json") {
		return r.writeJSON(students, cmd.Bool("pretty"))
	}
	return r.writeTable(formatter.StudentsTable(students, r.repos.Courses.List()))
}

// StudentShow prints one student and the courses they are enrolled in.
func (r *Runner) StudentShow(ctx context.Context, cmd *cli.Command) error {
	id, err := r.idArg(cmd, "id")
	if err != nil {
		return err
	}
	if err := r.open(); err != nil {
		return err
	}

	student, err := r.repos.Students.Get(id)
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return r.writeJSON(student, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Student %d: %s", student.ID, student.Name))
	if len(student.Courses) == 0 {
		return r.writePlain("Not enrolled in any course\n")
	}
	for _, courseID := range student.Courses {
		if c, err := r.repos.Courses.Get(courseID); err == nil {
			r.writePlain("  • %s (#%d, %s credits)\n", c.Name, c.ID, formatter.FormatCredits(c.Credits))
		} else {
			r.writePlain("  • #%d (missing)\n", courseID)
		}
	}
	return nil
}

// StudentEdit renames a student.
func (r *Runner) StudentEdit(ctx context.Context, cmd *cli.Command) error {
	id, err := r.idArg(cmd, "id")
	if err != nil {
		return err
	}

	var patch models.StudentPatch
	if cmd.IsSet("name") {
		name := cmd.String("name")
		patch.Name = &name
	}
	if patch.Name == nil {
		return fmt.Errorf("%w: nothing to update, pass --name", shared.ErrMissingArgument)
	}

	if err := r.open(); err != nil {
		return err
	}
	student, err := r.repos.Students.Update(id, patch)
	if err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}

	r.logger.Info("student updated", "id", student.ID)
	return r.writePlain("✓ Updated student %d: %s\n", student.ID, student.Name)
}

// StudentDelete deletes a student when --yes is given.
func (r *Runner) StudentDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := r.idArg(cmd, "id")
	if err != nil {
		return err
	}
	if err := r.open(); err != nil {
		return err
	}

	deleted, err := r.repos.Students.Delete(id, cmd.Bool("yes"))
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	if !deleted {
		return r.confirmDelete("student", id)
	}

	r.logger.Info("student deleted", "id", id)
	return r.writePlain("✓ Deleted student %d\n", id)
}

// writeTable prints t as numbered plain text.
func (r *Runner) writeTable(t formatter.Table) error {
	data, err := formatter.ExportToText(t)
	if err != nil {
		return err
	}
	_, err = r.output.Write(data)
	return err
}
