package store

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/shared"
)

// ErrAbsent is returned by a [Backend] when the named collection has never been saved.
var ErrAbsent = fmt.Errorf("collection absent")

// Backend loads and saves a named collection. v is a pointer to a slice of records.
type Backend interface {
	Load(name string, v any) error
	Save(name string, v any) error
}

// Store holds the students, courses and instructors collections.
//
// Reads take a read lock so the HTTP view can serve snapshots concurrently; mutation is expected from a single writer.
type Store struct {
	mu          sync.RWMutex
	backend     Backend
	students    []models.Student
	courses     []models.Course
	instructors []models.Instructor
	highWater   map[string]models.ID
}

// New creates an empty [Store] over backend. Call [Store.Load] to read persisted state.
func New(backend Backend) *Store {
	return &Store{
		backend:     backend,
		students:    []models.Student{},
		courses:     []models.Course{},
		instructors: []models.Instructor{},
		highWater:   map[string]models.ID{},
	}
}

// Open creates a [Store] over backend and loads all three collections.
func Open(backend Backend) (*Store, error) {
	s := New(backend)
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the in-memory collections with the persisted ones.
func (s *Store) Load() error {
	students, err := load[models.Student](s.backend, models.StudentsCollection)
	if err != nil {
		return err
	}
	courses, err := load[models.Course](s.backend, models.CoursesCollection)
	if err != nil {
		return err
	}
	instructors, err := load[models.Instructor](s.backend, models.InstructorsCollection)
	if err != nil {
		return err
	}

	for i := range students {
		students[i].Normalize()
	}
	for i := range courses {
		courses[i].Normalize()
	}
	assignMissingIDs(students, func(r *models.Student) *models.ID { return &r.ID })
	assignMissingIDs(courses, func(r *models.Course) *models.ID { return &r.ID })
	assignMissingIDs(instructors, func(r *models.Instructor) *models.ID { return &r.ID })

	s.mu.Lock()
	defer s.mu.Unlock()

	s.students, s.courses, s.instructors = students, courses, instructors
	s.highWater = map[string]models.ID{}
	raise(s.highWater, models.StudentsCollection, students)
	raise(s.highWater, models.CoursesCollection, courses)
	raise(s.highWater, models.InstructorsCollection, instructors)
	return nil
}

// Backend returns the backend s persists through.
func (s *Store) Backend() Backend {
	return s.backend
}

// Students returns a copy of the students collection in insertion order.
func (s *Store) Students() []models.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Student, len(s.students))
	for i, st := range s.students {
		st.Courses = slices.Clone(st.Courses)
		out[i] = st
	}
	return out
}

// Courses returns a copy of the courses collection in insertion order.
func (s *Store) Courses() []models.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Course, len(s.courses))
	for i, c := range s.courses {
		c.Instructors = slices.Clone(c.Instructors)
		out[i] = c
	}
	return out
}

// Instructors returns a copy of the instructors collection in insertion order.
func (s *Store) Instructors() []models.Instructor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.instructors)
}

// SaveStudents persists students and, on success, makes it the in-memory collection.
func (s *Store) SaveStudents(students []models.Student) error {
	return commit(s, models.StudentsCollection, &s.students, students)
}

// SaveCourses persists courses and, on success, makes it the in-memory collection.
func (s *Store) SaveCourses(courses []models.Course) error {
	return commit(s, models.CoursesCollection, &s.courses, courses)
}

// SaveInstructors persists instructors and, on success, makes it the in-memory collection.
func (s *Store) SaveInstructors(instructors []models.Instructor) error {
	return commit(s, models.InstructorsCollection, &s.instructors, instructors)
}

// HighWater returns the largest ID the named collection has held since it was loaded.
//
// The allocator uses it so an ID freed by deleting the newest record is not handed out again in the same run.
func (s *Store) HighWater(name string) models.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.highWater[name]
}

func commit[T models.Record](s *Store, name string, dst *[]T, items []T) error {
	if items == nil {
		items = []T{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Save(name, items); err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}

	*dst = items
	raise(s.highWater, name, items)
	return nil
}

// raise lifts the high-water mark of name to the largest ID in items. Callers hold the write lock.
func raise[T models.Record](highWater map[string]models.ID, name string, items []T) {
	for _, r := range items {
		if id := r.RecordID(); id > highWater[name] {
			highWater[name] = id
		}
	}
}

// assignMissingIDs numbers records that loaded without a usable ID, counting up from the largest ID present.
// The new IDs are written back on the next save of the collection.
func assignMissingIDs[T models.Record](items []T, id func(*T) *models.ID) {
	var next models.ID
	for _, r := range items {
		next = max(next, r.RecordID())
	}
	for i := range items {
		if p := id(&items[i]); *p == 0 {
			next++
			*p = next
		}
	}
}

func load[T models.Record](b Backend, name string) ([]T, error) {
	var items []T
	err := b.Load(name, &items)
	switch {
	case errors.Is(err, ErrAbsent):
		return []T{}, nil
	case err != nil:
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}

	if items == nil {
		items = []T{}
	}
	return items, nil
}

// checkName rejects names outside the three known collections.
func checkName(name string) error {
	switch name {
	case models.StudentsCollection, models.CoursesCollection, models.InstructorsCollection:
		return nil
	default:
		return fmt.Errorf("%w: %q", shared.ErrUnknownCollection, name)
	}
}
