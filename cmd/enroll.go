package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/roster/internal/formatter"
	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/repositories"
	"github.com/urfave/cli/v3"
)

func (r *Runner) enrollmentArgs(cmd *cli.Command) (student, course models.ID, err error) {
	if student, err = r.idArg(cmd, "student"); err != nil {
		return 0, 0, err
	}
	if course, err = r.idArg(cmd, "course"); err != nil {
		return 0, 0, err
	}
	return student, course, nil
}

// EnrollAdd enrolls a student in a course.
func (r *Runner) EnrollAdd(ctx context.Context, cmd *cli.Command) error {
	studentID, courseID, err := r.enrollmentArgs(cmd)
	if err != nil {
		return err
	}
	if err := r.open(); err != nil {
		return err
	}

	student, err := r.repos.Enrollments.Enroll(studentID, courseID)
	if err != nil {
		return fmt.Errorf("failed to enroll: %w", err)
	}

	r.logger.Info("enrolled", "student", studentID, "course", courseID)
	return r.writePlain("✓ %s is enrolled in %d course(s)\n", student.Name, len(student.Courses))
}

// EnrollDrop removes a student from a course.
func (r *Runner) EnrollDrop(ctx context.Context, cmd *cli.Command) error {
	studentID, courseID, err := r.enrollmentArgs(cmd)
	if err != nil {
		return err
	}
	if err := r.open(); err != nil {
		return err
	}

	student, err := r.repos.Enrollments.Drop(studentID, courseID)
	if err != nil {
		return fmt.Errorf("failed to drop: %w", err)
	}

	r.logger.Info("dropped", "student", studentID, "course", courseID)
	return r.writePlain("✓ %s is enrolled in %d course(s)\n", student.Name, len(student.Courses))
}

// Stats prints the dashboard counts.
func (r *Runner) Stats(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	summary := repositories.Summarize(r.store)
	if cmd.Bool("json") {
		return r.writeJSON(summary, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Dashboard")
	r.writePlain("Students:        %d\n", summary.Students)
	r.writePlain("Courses:         %d\n", summary.Courses)
	r.writePlain("Instructors:     %d\n", summary.Instructors)
	r.writePlain("Enrollments:     %d\n", summary.Enrollments)
	return r.writePlain("Credits offered: %s\n", formatter.FormatCredits(summary.Credits))
}
