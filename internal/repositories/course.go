package repositories

import (
	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/store"
)

// CourseRepository manages the courses collection.
type CourseRepository struct {
	store *store.Store
	c     collection[models.Course]
}

// NewCourseRepository creates a new [CourseRepository] over s
func NewCourseRepository(s *store.Store) *CourseRepository {
	return &CourseRepository{store: s, c: collection[models.Course]{
		name:  models.CoursesCollection,
		kind:  "course",
		store: s,
		read:  s.Courses,
		write: s.SaveCourses,
	}}
}

// Create adds a course with no instructors
func (r *CourseRepository) Create(name string, credits float64) (models.Course, error) {
	return r.c.create(func(id models.ID) models.Course {
		return models.NewCourse(id, name, credits)
	})
}

// List returns every course in insertion order
func (r *CourseRepository) List() []models.Course {
	return r.c.list()
}

// Get retrieves a course by ID
func (r *CourseRepository) Get(id models.ID) (models.Course, error) {
	return r.c.get(id)
}

// Update applies the non-nil fields of patch
func (r *CourseRepository) Update(id models.ID, patch models.CoursePatch) (models.Course, error) {
	return r.c.update(id, patch.Apply)
}

// Delete removes a course once confirmed.
//
// Enrollments in the course are pruned and saved before the course itself is removed, so an interrupted delete
// can leave an unreferenced course but never a student enrolled in a missing one.
func (r *CourseRepository) Delete(id models.ID, confirmed bool) (bool, error) {
	if !confirmed {
		return false, nil
	}
	if !r.c.exists(id) {
		return false, r.c.notFound(id)
	}

	if err := pruneEnrollments(r.store, id); err != nil {
		return false, err
	}
	if err := r.c.remove(id); err != nil {
		return false, err
	}
	return true, nil
}
