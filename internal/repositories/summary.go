package repositories

import "github.com/desertthunder/roster/internal/store"

// Summary holds the dashboard counts.
type Summary struct {
	Students    int     `json:"students"`
	Courses     int     `json:"courses"`
	Instructors int     `json:"instructors"`
	Enrollments int     `json:"enrollments"`
	Credits     float64 `json:"credits"`
}

// Summarize counts the records in s. Enrollments is the total of every student's course list.
func Summarize(s *store.Store) Summary {
	students := s.Students()
	courses := s.Courses()

	sum := Summary{
		Students:    len(students),
		Courses:     len(courses),
		Instructors: len(s.Instructors()),
	}
	for _, st := range students {
		sum.Enrollments += len(st.Courses)
	}
	for _, c := range courses {
		sum.Credits += c.Credits
	}
	return sum
}
