package repositories

import (
	"fmt"

	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/shared"
	"github.com/desertthunder/roster/internal/store"
)

// NextID returns one more than the largest positive ID in items, or 1 when there is none.
func NextID[T models.Record](items []T) models.ID {
	var highest models.ID
	for _, item := range items {
		if id := item.RecordID(); id > highest {
			highest = id
		}
	}
	return highest + 1
}

// FindByID returns the first record with id and its index.
func FindByID[T models.Record](items []T, id models.ID) (T, int, bool) {
	for i, item := range items {
		if item.RecordID() == id {
			return item, i, true
		}
	}
	var zero T
	return zero, -1, false
}

// RemoveByID returns a new slice without any record carrying id, and whether one was removed.
func RemoveByID[T models.Record](items []T, id models.ID) ([]T, bool) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item.RecordID() != id {
			out = append(out, item)
		}
	}
	return out, len(out) != len(items)
}

// Repositories bundles the managers sharing one [store.Store].
type Repositories struct {
	Students    *StudentRepository
	Courses     *CourseRepository
	Instructors *InstructorRepository
	Enrollments *Enrollments
}

// NewRepositories creates every manager over s.
func NewRepositories(s *store.Store) *Repositories {
	return &Repositories{
		Students:    NewStudentRepository(s),
		Courses:     NewCourseRepository(s),
		Instructors: NewInstructorRepository(s),
		Enrollments: NewEnrollments(s),
	}
}

// collection is the CRUD logic shared by the three repositories.
type collection[T models.Record] struct {
	name  string
	kind  string
	store *store.Store
	read  func() []T
	write func([]T) error
}

func (c collection[T]) list() []T {
	return c.read()
}

func (c collection[T]) get(id models.ID) (T, error) {
	rec, _, ok := FindByID(c.read(), id)
	if !ok {
		return rec, c.notFound(id)
	}
	return rec, nil
}

// create allocates an ID, builds the record, validates and appends it.
func (c collection[T]) create(build func(models.ID) T) (T, error) {
	items := c.read()

	id := NextID(items)
	if floor := c.store.HighWater(c.name) + 1; floor > id {
		id = floor
	}

	rec := build(id)
	if err := rec.Validate(); err != nil {
		var zero T
		return zero, err
	}

	if err := c.write(append(items, rec)); err != nil {
		var zero T
		return zero, err
	}
	return rec, nil
}

// update applies patch to the record with id, then validates and saves.
func (c collection[T]) update(id models.ID, patch func(*T)) (T, error) {
	items := c.read()

	rec, idx, ok := FindByID(items, id)
	if !ok {
		return rec, c.notFound(id)
	}

	patch(&rec)
	if err := rec.Validate(); err != nil {
		var zero T
		return zero, err
	}

	items[idx] = rec
	if err := c.write(items); err != nil {
		var zero T
		return zero, err
	}
	return rec, nil
}

// remove drops the record with id and saves.
func (c collection[T]) remove(id models.ID) error {
	items, removed := RemoveByID(c.read(), id)
	if !removed {
		return c.notFound(id)
	}
	return c.write(items)
}

func (c collection[T]) exists(id models.ID) bool {
	_, _, ok := FindByID(c.read(), id)
	return ok
}

func (c collection[T]) notFound(id models.ID) error {
	return fmt.Errorf("%w: %s %d", shared.ErrNotFound, c.kind, id)
}
