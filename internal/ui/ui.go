package ui

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/roster/internal/formatter"
	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/repositories"
	"github.com/desertthunder/roster/internal/shared"
	"github.com/desertthunder/roster/internal/store"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	MenuView ViewState = iota
	ListView
	FormView
	ConfirmView
	DashboardView
)

// Model represents the TUI application state.
type Model struct {
	view    ViewState
	entity  Entity
	repos   *repositories.Repositories
	store   *store.Store
	logger  *log.Logger
	width   int
	height  int
	menu    list.Model
	records list.Model
	form    form
	pending recordItem
	summary repositories.Summary
	status  string
	err     error
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model over the repositories sharing s.
func NewModel(repos *repositories.Repositories, s *store.Store, logger *log.Logger) *Model {
	m := &Model{
		view:   MenuView,
		repos:  repos,
		store:  s,
		logger: logger,
		width:  80,
		height: 24,
		help:   help.New(),
		keys:   newKeyMap(),
	}

	m.menu = list.New(menuItems(), list.NewDefaultDelegate(), m.width-4, m.height-8)
	m.menu.Title = "Roster"
	m.menu.SetShowStatusBar(false)
	m.menu.SetFilteringEnabled(false)

	m.records = list.New(nil, list.NewDefaultDelegate(), m.width-4, m.height-8)
	return m
}

// ViewState reports which screen is showing.
func (m *Model) ViewState() ViewState { return m.view }

func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.menu.SetSize(msg.Width-4, msg.Height-8)
		m.records.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case MenuView:
			return m.handleMenuKeys(msg)
		case ListView:
			return m.handleListKeys(msg)
		case FormView:
			return m.handleFormKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case DashboardView:
			return m.handleDashboardKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgRecordsLoaded:
		data := msg.data.(recordsLoaded)
		if data.entity != m.entity {
			return m, nil
		}
		m.records.Title = data.entity.Plural()
		return m, m.records.SetItems(toListItems(data.items))

	case MsgRecordSaved:
		data := msg.data.(recordSaved)
		if data.err != nil && data.status == "" {
			m.logger.Warn("save rejected", "entity", data.entity, "error", data.err)
			m.form.err = data.err
			return m, nil
		}
		if data.err != nil {
			m.logger.Error("save partially applied", "entity", data.entity, "status", data.status, "error", data.err)
			m.status, m.err = data.status, data.err
			m.view = ListView
			return m, m.load(data.entity)
		}
		m.logger.Info("record saved", "entity", data.entity, "status", data.status)
		m.status = data.status
		m.err = nil
		m.view = ListView
		return m, m.load(data.entity)

	case MsgRecordDeleted:
		data := msg.data.(recordDeleted)
		m.pending = nil
		m.view = ListView
		if data.err != nil {
			m.logger.Error("delete failed", "entity", data.entity, "error", data.err)
			m.err = data.err
		} else {
			m.logger.Info("record deleted", "entity", data.entity, "label", data.label)
			m.status = fmt.Sprintf("Deleted %s %q", data.entity, data.label)
			m.err = nil
		}
		return m, m.load(data.entity)

	case MsgSummaryLoaded:
		m.summary = msg.data.(repositories.Summary)
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case MenuView:
		return m.renderMenu()
	case ListView:
		return m.renderList()
	case FormView:
		return m.renderForm()
	case ConfirmView:
		return m.renderConfirm()
	case DashboardView:
		return m.renderDashboard()
	default:
		return ""
	}
}

func (m *Model) handleMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		item, ok := m.menu.SelectedItem().(menuItem)
		if !ok {
			return m, nil
		}
		m.status, m.err = "", nil
		if item.view == DashboardView {
			m.view = DashboardView
			return m, m.loadSummary()
		}
		m.entity = item.entity
		m.view = ListView
		m.records.Title = item.entity.Plural()
		m.records.ResetSelected()
		return m, m.load(item.entity)
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.records.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.records, cmd = m.records.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = MenuView
		return m, nil
	case key.Matches(msg, m.keys.add):
		return m.openForm(nil)
	case key.Matches(msg, m.keys.edit), key.Matches(msg, m.keys.enter):
		if item := m.selected(); item != nil {
			return m.openForm(item)
		}
		return m, nil
	case key.Matches(msg, m.keys.del):
		if item := m.selected(); item != nil {
			m.pending = item
			m.view = ConfirmView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.records, cmd = m.records.Update(msg)
	return m, cmd
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.abort):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.form = form{}
		m.view = ListView
		return m, nil
	case key.Matches(msg, m.keys.enter):
		m.form.err = nil
		return m, m.save(m.form.entity, m.form.id, m.form.values())
	case key.Matches(msg, m.keys.next):
		return m, m.form.focusOn(m.form.focus + 1)
	case key.Matches(msg, m.keys.prev):
		return m, m.form.focusOn(m.form.focus - 1)
	}
	return m, m.form.update(msg)
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.abort):
		return m, tea.Quit
	case key.Matches(msg, m.keys.yes):
		if m.pending == nil {
			m.view = ListView
			return m, nil
		}
		return m, m.remove(m.entity, m.pending)
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back):
		m.pending = nil
		m.status = "Delete cancelled"
		m.view = ListView
		return m, nil
	}
	return m, nil
}

func (m *Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = MenuView
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case MenuView:
		m.menu, cmd = m.menu.Update(msg)
	case ListView:
		m.records, cmd = m.records.Update(msg)
	case FormView:
		cmd = m.form.update(msg)
	}
	return m, cmd
}

func (m *Model) openForm(item recordItem) (tea.Model, tea.Cmd) {
	m.form = newForm(m.entity, item)
	m.view = FormView
	return m, m.form.focusOn(0)
}

func (m *Model) selected() recordItem {
	item, _ := m.records.SelectedItem().(recordItem)
	return item
}

// load reads the entity's collection into list items.
func (m *Model) load(entity Entity) tea.Cmd {
	return func() tea.Msg {
		var items []recordItem
		switch entity {
		case StudentEntity:
			for _, s := range m.repos.Students.List() {
				items = append(items, studentItem{s})
			}
		case CourseEntity:
			for _, c := range m.repos.Courses.List() {
				items = append(items, courseItem{c})
			}
		case InstructorEntity:
			for _, i := range m.repos.Instructors.List() {
				items = append(items, instructorItem{i})
			}
		}
		return recordsLoadedMsg(entity, items)
	}
}

func (m *Model) loadSummary() tea.Cmd {
	return func() tea.Msg {
		return summaryLoadedMsg(repositories.Summarize(m.store))
	}
}

// save creates or updates a record from the form values. When the record is written but its enrollments or
// instructors are not, the message carries both the status and the error.
func (m *Model) save(entity Entity, id models.ID, values []string) tea.Cmd {
	return func() tea.Msg {
		status, err := m.apply(entity, id, values)
		return recordSavedMsg(entity, status, err)
	}
}

func (m *Model) apply(entity Entity, id models.ID, values []string) (string, error) {
	var (
		label   string
		skipped []string
	)

	switch entity {
	case StudentEntity:
		name := values[0]
		var (
			st  models.Student
			err error
		)
		if id == 0 {
			st, err = m.repos.Students.Create(name)
		} else {
			st, err = m.repos.Students.Update(id, models.StudentPatch{Name: &name})
		}
		if err != nil {
			return "", err
		}
		label = fmt.Sprintf("%s #%d", st.Name, st.ID)
		if skipped, err = m.syncEnrollments(st, values[1]); err != nil {
			return partialSave(entity, label, "enrollments", err)
		}

	case CourseEntity:
		name := values[0]
		credits, err := parseCredits(values[1])
		if err != nil {
			return "", err
		}
		var c models.Course
		if id == 0 {
			c, err = m.repos.Courses.Create(name, credits)
		} else {
			c, err = m.repos.Courses.Update(id, models.CoursePatch{Name: &name, Credits: &credits})
		}
		if err != nil {
			return "", err
		}
		label = fmt.Sprintf("%s #%d", c.Name, c.ID)
		if id != 0 || values[2] != "" {
			if _, skipped, err = m.repos.Enrollments.AssignInstructors(c.ID, values[2]); err != nil {
				return partialSave(entity, label, "instructors", err)
			}
		}

	case InstructorEntity:
		name, dept := values[0], values[1]
		var (
			i   models.Instructor
			err error
		)
		if id == 0 {
			i, err = m.repos.Instructors.Create(name, dept)
		} else {
			i, err = m.repos.Instructors.Update(id, models.InstructorPatch{Name: &name, Department: &dept})
		}
		if err != nil {
			return "", err
		}
		label = fmt.Sprintf("%s #%d", i.Name, i.ID)
	}

	status := fmt.Sprintf("Saved %s %s", entity, label)
	if len(skipped) > 0 {
		status += fmt.Sprintf(" (ignored: %s)", strings.Join(skipped, ", "))
	}
	return status, nil
}

// partialSave reports a record that was written while the named follow-up update failed.
func partialSave(entity Entity, label, part string, err error) (string, error) {
	return fmt.Sprintf("Saved %s %s", entity, label), fmt.Errorf("saved %s %s but %s were not updated: %w", entity, label, part, err)
}

// syncEnrollments makes the student's courses match the ids in raw. Unknown course ids are skipped.
func (m *Model) syncEnrollments(st models.Student, raw string) ([]string, error) {
	ids, skipped := models.ParseIDList(raw)

	for _, id := range ids {
		if st.EnrolledIn(id) {
			continue
		}
		if _, err := m.repos.Enrollments.Enroll(st.ID, id); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				skipped = append(skipped, strconv.Itoa(int(id)))
				continue
			}
			return nil, err
		}
	}

	for _, id := range st.Courses {
		if slices.Contains(ids, id) {
			continue
		}
		if _, err := m.repos.Enrollments.Drop(st.ID, id); err != nil {
			return nil, err
		}
	}
	return skipped, nil
}

func parseCredits(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	credits, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: credits must be a number, got %q", shared.ErrInvalidInput, raw)
	}
	return credits, nil
}

// remove deletes the record behind item. The confirm view is the confirmation.
func (m *Model) remove(entity Entity, item recordItem) tea.Cmd {
	return func() tea.Msg {
		var err error
		switch entity {
		case StudentEntity:
			_, err = m.repos.Students.Delete(item.recordID(), true)
		case CourseEntity:
			_, err = m.repos.Courses.Delete(item.recordID(), true)
		case InstructorEntity:
			_, err = m.repos.Instructors.Delete(item.recordID(), true)
		}
		return recordDeletedMsg(entity, item.FilterValue(), err)
	}
}

func (m *Model) renderMenu() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.menu.View(), helpView)
}

func (m *Model) renderList() string {
	var notice string
	switch {
	case m.err != nil:
		notice = styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	case m.status != "":
		notice = styles.ok.Render(m.status)
	}

	helpKeys := []key.Binding{m.keys.add, m.keys.edit, m.keys.del, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n\n%s", m.records.View(), notice, helpView)
}

func (m *Model) renderForm() string {
	title := styles.title.Render(m.form.title())

	var errView string
	if m.form.err != nil {
		errView = "\n" + styles.err.Render(fmt.Sprintf("Error: %v", m.form.err)) + "\n"
	}

	saveKey := key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	)
	helpKeys := []key.Binding{m.keys.next, saveKey, m.keys.back, m.keys.abort}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n%s", title, m.form.view(), errView, helpView)
}

func (m *Model) renderConfirm() string {
	if m.pending == nil {
		return ""
	}
	title := styles.title.Render(fmt.Sprintf("Delete %s '%s'?", m.entity, m.pending.FilterValue()))

	var note string
	switch m.entity {
	case CourseEntity:
		note = styles.warn.Render("Students enrolled in this course will be unenrolled.")
	case InstructorEntity:
		note = styles.warn.Render("The instructor will be removed from every course.")
	}

	helpKeys := []key.Binding{m.keys.yes, m.keys.no}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, note, helpView)
}

func (m *Model) renderDashboard() string {
	title := styles.title.Render("Dashboard")
	info := fmt.Sprintf(
		"Students: %d\nCourses: %d\nInstructors: %d\nEnrollments: %d\nCredits offered: %s",
		m.summary.Students,
		m.summary.Courses,
		m.summary.Instructors,
		m.summary.Enrollments,
		formatter.FormatCredits(m.summary.Credits),
	)

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}
