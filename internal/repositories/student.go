package repositories

import (
	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/store"
)

// StudentRepository manages the students collection.
type StudentRepository struct {
	c collection[models.Student]
}

// NewStudentRepository creates a new [StudentRepository] over s
func NewStudentRepository(s *store.Store) *StudentRepository {
	return &StudentRepository{c: collection[models.Student]{
		name:  models.StudentsCollection,
		kind:  "student",
		store: s,
		read:  s.Students,
		write: s.SaveStudents,
	}}
}

// Create adds a student with no enrollments
func (r *StudentRepository) Create(name string) (models.Student, error) {
	return r.c.create(func(id models.ID) models.Student {
		return models.NewStudent(id, name)
	})
}

// List returns every student in insertion order
func (r *StudentRepository) List() []models.Student {
	return r.c.list()
}

// Get retrieves a student by ID
func (r *StudentRepository) Get(id models.ID) (models.Student, error) {
	return r.c.get(id)
}

// Update applies the non-nil fields of patch
func (r *StudentRepository) Update(id models.ID, patch models.StudentPatch) (models.Student, error) {
	return r.c.update(id, patch.Apply)
}

// Delete removes a student once confirmed.
//
// Nothing references a student, so no other collection is touched.
// Without confirmation it returns false and a nil error.
func (r *StudentRepository) Delete(id models.ID, confirmed bool) (bool, error) {
	if !confirmed {
		return false, nil
	}
	if err := r.c.remove(id); err != nil {
		return false, err
	}
	return true, nil
}
