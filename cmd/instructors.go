package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/roster/internal/formatter"
	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/shared"
	"github.com/urfave/cli/v3"
)

// InstructorAdd creates an instructor.
func (r *Runner) InstructorAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	instructor, err := r.repos.Instructors.Create(cmd.StringArg("name"), cmd.String("department"))
	if err != nil {
		return fmt.Errorf("failed to create instructor: %w", err)
	}

	r.logger.Info("instructor created", "id", instructor.ID, "name", instructor.Name)
	return r.writePlain("✓ Created instructor %d: %s\n", instructor.ID, instructor.Name)
}

// InstructorList prints every instructor.
func (r *Runner) InstructorList(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	instructors := r.repos.Instructors.List()
	if cmd.Bool("json") {
		return r.writeJSON(instructors, cmd.Bool("pretty"))
	}
	return r.writeTable(formatter.InstructorsTable(instructors))
}

// InstructorShow prints an instructor and the courses they teach.
func (r *Runner) InstructorShow(ctx context.Context, cmd *cli.Command) error {
	id, err := r.idArg(cmd, "id")
	if err != nil {
		return err
	}
	if err := r.open(); err != nil {
		return err
	}

	instructor, err := r.repos.Instructors.Get(id)
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return r.writeJSON(instructor, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Instructor %d: %s", instructor.ID, instructor.Name))
	if instructor.Department != "" {
		r.writePlain("Department: %s\n", instructor.Department)
	}

	var teaching []models.Course
	for _, c := range r.repos.Courses.List() {
		for _, assigned := range c.Instructors {
			if assigned == instructor.ID {
				teaching = append(teaching, c)
				break
			}
		}
	}

	r.writePlain("Courses: %d\n", len(teaching))
	for _, c := range teaching {
		r.writePlain("  • %s (#%d)\n", c.Name, c.ID)
	}
	return nil
}

// InstructorEdit changes an instructor's name or department.
func (r *Runner) InstructorEdit(ctx context.Context, cmd *cli.Command) error {
	id, err := r.idArg(cmd, "id")
	if err != nil {
		return err
	}

	var patch models.InstructorPatch
	if cmd.IsSet("name") {
		name := cmd.String("name")
		patch.Name = &name
	}
	if cmd.IsSet("department") {
		dept := cmd.String("department")
		patch.Department = &dept
	}
	if patch.Name == nil && patch.Department == nil {
		return fmt.Errorf("%w: nothing to update, pass --name or --department", shared.ErrMissingArgument)
	}

	if err := r.open(); err != nil {
		return err
	}
	instructor, err := r.repos.Instructors.Update(id, patch)
	if err != nil {
		return fmt.Errorf("failed to update instructor: %w", err)
	}

	r.logger.Info("instructor updated", "id", instructor.ID)
	return r.writePlain("✓ Updated instructor %d: %s\n", instructor.ID, instructor.Name)
}

// InstructorDelete deletes an instructor and unassigns them when --yes is given.
func (r *Runner) InstructorDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := r.idArg(cmd, "id")
	if err != nil {
		return err
	}
	if err := r.open(); err != nil {
		return err
	}

	deleted, err := r.repos.Instructors.Delete(id, cmd.Bool("yes"))
	if err != nil {
		return fmt.Errorf("failed to delete instructor: %w", err)
	}
	if !deleted {
		return r.confirmDelete("instructor", id)
	}

	r.logger.Info("instructor deleted", "id", id)
	return r.writePlain("✓ Deleted instructor %d\n", id)
}
