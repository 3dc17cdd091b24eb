package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/desertthunder/roster/internal/shared"
)

// Student is a person who can be enrolled in courses.
type Student struct {
	ID      ID     `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Courses []ID   `json:"courses" yaml:"courses"`
}

// NewStudent builds a [Student] with a trimmed name and no enrollments.
func NewStudent(id ID, name string) Student {
	return Student{ID: id, Name: strings.TrimSpace(name), Courses: []ID{}}
}

func (s Student) RecordID() ID { return s.ID }

func (s Student) Validate() error {
	if blank(s.Name) {
		return fmt.Errorf("%w: student name is required", shared.ErrValidation)
	}
	return nil
}

// Enroll adds courseID to the student's courses. Reports false when already enrolled.
func (s *Student) Enroll(courseID ID) bool {
	var added bool
	s.Courses, added = addID(s.Courses, courseID)
	return added
}

// Drop removes courseID from the student's courses. Reports false when not enrolled.
func (s *Student) Drop(courseID ID) bool {
	var removed bool
	s.Courses, removed = removeID(s.Courses, courseID)
	return removed
}

// EnrolledIn reports whether the student holds courseID.
func (s Student) EnrolledIn(courseID ID) bool {
	return slices.Contains(s.Courses, courseID)
}

// Normalize collapses duplicate enrollments and replaces a nil course list.
func (s *Student) Normalize() {
	s.Courses = uniqueIDs(s.Courses)
}

// StudentPatch carries the fields of a partial student update. Nil fields are left untouched.
type StudentPatch struct {
	Name *string
}

// Apply writes the non-nil fields of p onto s.
func (p StudentPatch) Apply(s *Student) {
	if p.Name != nil {
		s.Name = strings.TrimSpace(*p.Name)
	}
}
