package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/roster/internal/shared"
)

// Instructor teaches courses and belongs to a department.
type Instructor struct {
	ID         ID     `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Department string `json:"department" yaml:"department"`
}

// NewInstructor builds an [Instructor] with trimmed fields.
func NewInstructor(id ID, name, department string) Instructor {
	return Instructor{ID: id, Name: strings.TrimSpace(name), Department: strings.TrimSpace(department)}
}

func (i Instructor) RecordID() ID { return i.ID }

func (i Instructor) Validate() error {
	if blank(i.Name) {
		return fmt.Errorf("%w: instructor name is required", shared.ErrValidation)
	}
	return nil
}

// InstructorPatch carries the fields of a partial instructor update.
//
// A non-nil Department pointing at "" clears the department.
type InstructorPatch struct {
	Name       *string
	Department *string
}

// Apply writes the non-nil fields of p onto i.
func (p InstructorPatch) Apply(i *Instructor) {
	if p.Name != nil {
		i.Name = strings.TrimSpace(*p.Name)
	}
	if p.Department != nil {
		i.Department = strings.TrimSpace(*p.Department)
	}
}
