package repositories

import (
	"fmt"

	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/shared"
	"github.com/desertthunder/roster/internal/store"
)

// Enrollments maintains the student to course links and course to instructor assignments.
type Enrollments struct {
	store *store.Store
}

// NewEnrollments creates a new [Enrollments] over s
func NewEnrollments(s *store.Store) *Enrollments {
	return &Enrollments{store: s}
}

// Enroll adds courseID to the student's courses. Enrolling twice is a no-op.
func (e *Enrollments) Enroll(studentID, courseID models.ID) (models.Student, error) {
	if _, _, ok := FindByID(e.store.Courses(), courseID); !ok {
		return models.Student{}, fmt.Errorf("%w: course %d", shared.ErrNotFound, courseID)
	}

	students := e.store.Students()
	student, idx, ok := FindByID(students, studentID)
	if !ok {
		return student, fmt.Errorf("%w: student %d", shared.ErrNotFound, studentID)
	}

	if !student.Enroll(courseID) {
		return student, nil
	}

	students[idx] = student
	if err := e.store.SaveStudents(students); err != nil {
		return models.Student{}, err
	}
	return student, nil
}

// Drop removes courseID from the student's courses. Dropping a course the student is not in is a no-op.
func (e *Enrollments) Drop(studentID, courseID models.ID) (models.Student, error) {
	students := e.store.Students()
	student, idx, ok := FindByID(students, studentID)
	if !ok {
		return student, fmt.Errorf("%w: student %d", shared.ErrNotFound, studentID)
	}

	if !student.Drop(courseID) {
		return student, nil
	}

	students[idx] = student
	if err := e.store.SaveStudents(students); err != nil {
		return models.Student{}, err
	}
	return student, nil
}

// AssignInstructors replaces the course's instructors with the comma-separated ids in raw.
//
// Entries that do not parse or do not name an existing instructor are dropped and returned in skipped.
func (e *Enrollments) AssignInstructors(courseID models.ID, raw string) (models.Course, []string, error) {
	courses := e.store.Courses()
	course, idx, ok := FindByID(courses, courseID)
	if !ok {
		return course, nil, fmt.Errorf("%w: course %d", shared.ErrNotFound, courseID)
	}

	ids, skipped := models.ParseIDList(raw)
	instructors := e.store.Instructors()

	valid := make([]models.ID, 0, len(ids))
	for _, id := range ids {
		if _, _, ok := FindByID(instructors, id); !ok {
			skipped = append(skipped, fmt.Sprint(id))
			continue
		}
		valid = append(valid, id)
	}

	course.SetInstructors(valid)
	courses[idx] = course
	if err := e.store.SaveCourses(courses); err != nil {
		return models.Course{}, nil, err
	}
	return course, skipped, nil
}

// Roster returns the students enrolled in courseID, in collection order.
func (e *Enrollments) Roster(courseID models.ID) ([]models.Student, error) {
	if _, _, ok := FindByID(e.store.Courses(), courseID); !ok {
		return nil, fmt.Errorf("%w: course %d", shared.ErrNotFound, courseID)
	}

	var enrolled []models.Student
	for _, s := range e.store.Students() {
		if s.EnrolledIn(courseID) {
			enrolled = append(enrolled, s)
		}
	}
	return enrolled, nil
}

// pruneEnrollments drops courseID from every student and saves when anything changed.
func pruneEnrollments(s *store.Store, courseID models.ID) error {
	students := s.Students()
	changed := false
	for i := range students {
		if students[i].Drop(courseID) {
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.SaveStudents(students)
}

// pruneAssignments drops instructorID from every course and saves when anything changed.
func pruneAssignments(s *store.Store, instructorID models.ID) error {
	courses := s.Courses()
	changed := false
	for i := range courses {
		if courses[i].Unassign(instructorID) {
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.SaveCourses(courses)
}
