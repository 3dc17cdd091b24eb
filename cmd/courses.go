package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/roster/internal/formatter"
	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/shared"
	"github.com/urfave/cli/v3"
)

// CourseAdd creates a course.
func (r *Runner) CourseAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	course, err := r.repos.Courses.Create(cmd.StringArg("name"), cmd.Float("credits"))
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	r.logger.Info("course created", "id", course.ID, "name", course.Name)
	return r.writePlain("✓ Created course %d: %s (%s credits)\n", course.ID, course.Name, formatter.FormatCredits(course.Credits))
}

// CourseList prints every course.
func (r *Runner) CourseList(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	courses := r.repos.Courses.List()
	if cmd.Bool("json") {
		return r.writeJSON(courses, cmd.Bool("pretty"))
	}
	return r.writeTable(formatter.CoursesTable(courses, r.repos.Instructors.List()))
}

// courseDetail is the JSON shape of `course show`.
type courseDetail struct {
	models.Course
	Roster []models.Student `json:"roster"`
}

// CourseShow prints a course, its instructors and its roster.
func (r *Runner) CourseShow(ctx context.Context, cmd *cli.Command) error {
	id, err := r.idArg(cmd, "id")
	if err != nil {
		return err
	}
	if err := r.open(); err != nil {
		return err
	}

	course, err := r.repos.Courses.Get(id)
	if err != nil {
		return err
	}
	roster, err := r.repos.Enrollments.Roster(id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		if roster == nil {
			roster = []models.Student{}
		}
		return r.writeJSON(courseDetail{Course: course, Roster: roster}, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Course %d: %s (%s credits)", course.ID, course.Name, formatter.FormatCredits(course.Credits)))

	names := make([]string, 0, len(course.Instructors))
	for _, instructorID := range course.Instructors {
		if i, err := r.repos.Instructors.Get(instructorID); err == nil {
			names = append(names, i.Name)
		}
	}
	if len(names) == 0 {
		r.writePlain("Instructors: none\n")
	} else {
		r.writePlain("Instructors: %s\n", strings.Join(names, ", "))
	}

	r.writePlain("Enrolled: %d\n", len(roster))
	for _, s := range roster {
		r.writePlain("  • %s (#%d)\n", s.Name, s.ID)
	}
	return nil
}

// CourseEdit changes a course's name or credits.
func (r *Runner) CourseEdit(ctx context.Context, cmd *cli.Command) error {
	id, err := r.idArg(cmd, "id")
	if err != nil {
		return err
	}

	var patch models.CoursePatch
	if cmd.IsSet("name") {
		name := cmd.String("name")
		patch.Name = &name
	}
	if cmd.IsSet("credits") {
		credits := cmd.Float("credits")
		patch.Credits = &credits
	}
	if patch.Name == nil && patch.Credits == nil {
		return fmt.Errorf("%w: nothing to update, pass --name or --credits", shared.ErrMissingArgument)
	}

	if err := r.open(); err != nil {
		return err
	}
	course, err := r.repos.Courses.Update(id, patch)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	r.logger.Info("course updated", "id", course.ID)
	return r.writePlain("✓ Updated course %d: %s (%s credits)\n", course.ID, course.Name, formatter.FormatCredits(course.Credits))
}

// CourseAssign replaces a course's instructors.
func (r *Runner) CourseAssign(ctx context.Context, cmd *cli.Command) error {
	id, err := r.idArg(cmd, "id")
	if err != nil {
		return err
	}
	if err := r.open(); err != nil {
		return err
	}

	course, skipped, err := r.repos.Enrollments.AssignInstructors(id, cmd.String("instructors"))
	if err != nil {
		return fmt.Errorf("failed to assign instructors: %w", err)
	}
	if len(skipped) > 0 {
		r.logger.Warn("ignored unknown instructors", "ids", strings.Join(skipped, ","))
	}

	r.logger.Info("instructors assigned", "course", course.ID, "count", len(course.Instructors))
	return r.writePlain("✓ Course %d now has %d instructor(s)\n", course.ID, len(course.Instructors))
}

// CourseDelete deletes a course and unenrolls its students when --yes is given.
func (r *Runner) CourseDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := r.idArg(cmd, "id")
	if err != nil {
		return err
	}
	if err := r.open(); err != nil {
		return err
	}

	deleted, err := r.repos.Courses.Delete(id, cmd.Bool("yes"))
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	if !deleted {
		return r.confirmDelete("course", id)
	}

	r.logger.Info("course deleted", "id", id)
	return r.writePlain("✓ Deleted course %d\n", id)
}
