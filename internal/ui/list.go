package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/roster/internal/formatter"
	"github.com/desertthunder/roster/internal/models"
)

// Entity selects which collection a list or form works on.
type Entity int

const (
	StudentEntity Entity = iota
	CourseEntity
	InstructorEntity
)

func (e Entity) String() string {
	switch e {
	case StudentEntity:
		return "student"
	case CourseEntity:
		return "course"
	case InstructorEntity:
		return "instructor"
	default:
		return "record"
	}
}

// Plural is the collection title shown above a list.
func (e Entity) Plural() string {
	switch e {
	case StudentEntity:
		return "Students"
	case CourseEntity:
		return "Courses"
	case InstructorEntity:
		return "Instructors"
	default:
		return "Records"
	}
}

// recordItem is a [list.Item] backed by one stored record.
type recordItem interface {
	list.Item
	recordID() models.ID
}

var (
	_ recordItem = studentItem{}
	_ recordItem = courseItem{}
	_ recordItem = instructorItem{}
	_ list.Item  = menuItem{}
)

// studentItem wraps [models.Student] to implement [list.Item].
type studentItem struct {
	student models.Student
}

func (i studentItem) recordID() models.ID { return i.student.ID }
func (i studentItem) FilterValue() string { return i.student.Name }
func (i studentItem) Title() string       { return i.student.Name }
func (i studentItem) Description() string {
	return fmt.Sprintf("#%d • %d courses", i.student.ID, len(i.student.Courses))
}

// courseItem wraps [models.Course] to implement [list.Item].
type courseItem struct {
	course models.Course
}

func (i courseItem) recordID() models.ID { return i.course.ID }
func (i courseItem) FilterValue() string { return i.course.Name }
func (i courseItem) Title() string       { return i.course.Name }
func (i courseItem) Description() string {
	return fmt.Sprintf("#%d • %s credits • %d instructors", i.course.ID, formatter.FormatCredits(i.course.Credits), len(i.course.Instructors))
}

// instructorItem wraps [models.Instructor] to implement [list.Item].
type instructorItem struct {
	instructor models.Instructor
}

func (i instructorItem) recordID() models.ID { return i.instructor.ID }
func (i instructorItem) FilterValue() string { return i.instructor.Name }
func (i instructorItem) Title() string       { return i.instructor.Name }
func (i instructorItem) Description() string {
	desc := fmt.Sprintf("#%d", i.instructor.ID)
	if i.instructor.Department != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.instructor.Department)
	}
	return desc
}

// menuItem is one entry of the main menu.
type menuItem struct {
	title  string
	desc   string
	view   ViewState
	entity Entity
}

func (i menuItem) FilterValue() string { return i.title }
func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }

func menuItems() []list.Item {
	return []list.Item{
		menuItem{title: "Students", desc: "Add, edit and enroll students", view: ListView, entity: StudentEntity},
		menuItem{title: "Courses", desc: "Manage courses and their instructors", view: ListView, entity: CourseEntity},
		menuItem{title: "Instructors", desc: "Manage the teaching staff", view: ListView, entity: InstructorEntity},
		menuItem{title: "Dashboard", desc: "Record counts", view: DashboardView},
	}
}

func toListItems(items []recordItem) []list.Item {
	out := make([]list.Item, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

func joinIDs(ids []models.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(int(id))
	}
	return strings.Join(parts, ",")
}
