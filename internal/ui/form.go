package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/roster/internal/formatter"
	"github.com/desertthunder/roster/internal/models"
)

// form is the add/edit screen for one record. id is zero when adding.
type form struct {
	entity Entity
	id     models.ID
	labels []string
	inputs []textinput.Model
	focus  int
	err    error
}

func newInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 120
	ti.Width = 40
	ti.SetValue(value)
	return ti
}

// newForm builds the fields for entity, prefilled from item when editing.
func newForm(entity Entity, item recordItem) form {
	f := form{entity: entity}

	switch entity {
	case StudentEntity:
		var s models.Student
		if it, ok := item.(studentItem); ok {
			s = it.student
		}
		f.id = s.ID
		f.labels = []string{"Name", "Courses"}
		f.inputs = []textinput.Model{
			newInput("Ada Lovelace", s.Name),
			newInput("course ids, e.g. 1,3", joinIDs(s.Courses)),
		}
	case CourseEntity:
		var c models.Course
		credits := ""
		if it, ok := item.(courseItem); ok {
			c = it.course
			credits = formatter.FormatCredits(c.Credits)
		}
		f.id = c.ID
		f.labels = []string{"Name", "Credits", "Instructors"}
		f.inputs = []textinput.Model{
			newInput("Compilers", c.Name),
			newInput("0", credits),
			newInput("instructor ids, e.g. 2", joinIDs(c.Instructors)),
		}
	case InstructorEntity:
		var i models.Instructor
		if it, ok := item.(instructorItem); ok {
			i = it.instructor
		}
		f.id = i.ID
		f.labels = []string{"Name", "Department"}
		f.inputs = []textinput.Model{
			newInput("Grace Hopper", i.Name),
			newInput("Computer Science", i.Department),
		}
	}
	return f
}

func (f *form) title() string {
	if f.id == 0 {
		return fmt.Sprintf("New %s", f.entity)
	}
	return fmt.Sprintf("Edit %s #%d", f.entity, f.id)
}

func (f *form) values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = strings.TrimSpace(in.Value())
	}
	return out
}

// focusOn moves the cursor to field i, wrapping around.
func (f *form) focusOn(i int) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	i = (i + len(f.inputs)) % len(f.inputs)
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	f.focus = i
	return f.inputs[i].Focus()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) view() string {
	var b strings.Builder
	for i, in := range f.inputs {
		b.WriteString(styles.label.Render(f.labels[i]))
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	return b.String()
}
