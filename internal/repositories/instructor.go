package repositories

import (
	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/store"
)

// InstructorRepository manages the instructors collection.
type InstructorRepository struct {
	store *store.Store
	c     collection[models.Instructor]
}

// NewInstructorRepository creates a new [InstructorRepository] over s
func NewInstructorRepository(s *store.Store) *InstructorRepository {
	return &InstructorRepository{store: s, c: collection[models.Instructor]{
		name:  models.InstructorsCollection,
		kind:  "instructor",
		store: s,
		read:  s.Instructors,
		write: s.SaveInstructors,
	}}
}

// Create adds an instructor. department may be empty.
func (r *InstructorRepository) Create(name, department string) (models.Instructor, error) {
	return r.c.create(func(id models.ID) models.Instructor {
		return models.NewInstructor(id, name, department)
	})
}

// List returns every instructor in insertion order
func (r *InstructorRepository) List() []models.Instructor {
	return r.c.list()
}

// Get retrieves an instructor by ID
func (r *InstructorRepository) Get(id models.ID) (models.Instructor, error) {
	return r.c.get(id)
}

// Update applies the non-nil fields of patch
func (r *InstructorRepository) Update(id models.ID, patch models.InstructorPatch) (models.Instructor, error) {
	return r.c.update(id, patch.Apply)
}

// Delete removes an instructor once confirmed, unassigning it from every course first.
func (r *InstructorRepository) Delete(id models.ID, confirmed bool) (bool, error) {
	if !confirmed {
		return false, nil
	}
	if !r.c.exists(id) {
		return false, r.c.notFound(id)
	}

	if err := pruneAssignments(r.store, id); err != nil {
		return false, err
	}
	if err := r.c.remove(id); err != nil {
		return false, err
	}
	return true, nil
}
