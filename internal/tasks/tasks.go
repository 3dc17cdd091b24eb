package tasks

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/roster/internal/formatter"
	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/store"
)

// ExportEngine writes store snapshots to disk.
type ExportEngine struct {
	store  *store.Store
	logger *log.Logger
}

// NewExportEngine creates an engine reading from s. A nil logger discards output.
func NewExportEngine(s *store.Store, logger *log.Logger) *ExportEngine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &ExportEngine{store: s, logger: logger}
}

// sendProgress sends without blocking; updates are dropped when nobody is reading.
func (e *ExportEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// snapshot is a point-in-time copy of every collection.
type snapshot struct {
	students    []models.Student
	courses     []models.Course
	instructors []models.Instructor
}

func (e *ExportEngine) snapshot() snapshot {
	return snapshot{
		students:    e.store.Students(),
		courses:     e.store.Courses(),
		instructors: e.store.Instructors(),
	}
}

func (s snapshot) table(collection string) formatter.Table {
	switch collection {
	case models.CoursesCollection:
		return formatter.CoursesTable(s.courses, s.instructors)
	case models.InstructorsCollection:
		return formatter.InstructorsTable(s.instructors)
	default:
		return formatter.StudentsTable(s.students, s.courses)
	}
}
