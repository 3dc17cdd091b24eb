package models

import (
	"fmt"
	"math"
	"strings"

	"github.com/desertthunder/roster/internal/shared"
)

// Course is an offering students enroll in and instructors teach.
type Course struct {
	ID          ID      `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Credits     float64 `json:"credits" yaml:"credits"`
	Instructors []ID    `json:"instructors" yaml:"instructors"`
}

// NewCourse builds a [Course] with a trimmed name and no instructors.
func NewCourse(id ID, name string, credits float64) Course {
	return Course{ID: id, Name: strings.TrimSpace(name), Credits: credits, Instructors: []ID{}}
}

func (c Course) RecordID() ID { return c.ID }

func (c Course) Validate() error {
	if blank(c.Name) {
		return fmt.Errorf("%w: course name is required", shared.ErrValidation)
	}
	if math.IsNaN(c.Credits) || math.IsInf(c.Credits, 0) {
		return fmt.Errorf("%w: credits must be a finite number, got %v", shared.ErrValidation, c.Credits)
	}
	if c.Credits < 0 {
		return fmt.Errorf("%w: credits must not be negative, got %v", shared.ErrValidation, c.Credits)
	}
	return nil
}

// Unassign removes instructorID from the course. Reports false when it was not assigned.
func (c *Course) Unassign(instructorID ID) bool {
	var removed bool
	c.Instructors, removed = removeID(c.Instructors, instructorID)
	return removed
}

// SetInstructors replaces the instructor list, dropping duplicates.
func (c *Course) SetInstructors(ids []ID) {
	c.Instructors = uniqueIDs(ids)
}

// Normalize collapses duplicate instructors and replaces a nil instructor list.
func (c *Course) Normalize() {
	c.Instructors = uniqueIDs(c.Instructors)
}

// CoursePatch carries the fields of a partial course update. Nil fields are left untouched.
type CoursePatch struct {
	Name    *string
	Credits *float64
}

// Apply writes the non-nil fields of p onto c.
func (p CoursePatch) Apply(c *Course) {
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Credits != nil {
		c.Credits = *p.Credits
	}
}
