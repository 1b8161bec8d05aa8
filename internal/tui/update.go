package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/keiki-saito/habit100-app/internal/calendar"
	"github.com/keiki-saito/habit100-app/internal/dateutil"
	"github.com/keiki-saito/habit100-app/internal/models"
)

const gridColumns = 10

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	switch m.state {
	case stateAddHabit:
		return m.updateHabitForm(msg)
	case stateEditNote:
		return m.updateNoteForm(msg)
	default:
		return m.updateCalendar(msg)
	}
}

func (m Model) updateCalendar(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(keyMsg, m.keys.Add):
		if m.habit != nil {
			m.status = "a habit is already registered"
			return m, nil
		}
		m.habitForm = &HabitFormModel{}
		m.form = newHabitForm(m.habitForm)
		m.state = stateAddHabit
		return m, m.form.Init()

	case key.Matches(keyMsg, m.keys.Up):
		m.moveCursor(-gridColumns)
	case key.Matches(keyMsg, m.keys.Down):
		m.moveCursor(gridColumns)
	case key.Matches(keyMsg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(keyMsg, m.keys.Right):
		m.moveCursor(1)

	case key.Matches(keyMsg, m.keys.Today):
		m.cursor = m.todayIndex()
		m.status = ""

	case key.Matches(keyMsg, m.keys.Toggle):
		return m.toggleSelected()

	case key.Matches(keyMsg, m.keys.Note):
		return m.openNoteForm()
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	if len(m.days) == 0 {
		return
	}
	next := m.cursor + delta
	if next < 0 || next >= len(m.days) {
		return
	}
	m.cursor = next
	m.status = ""
}

// toggleSelected flips the selected day between achieved and missed. A
// day without a record becomes achieved. Future days are rejected before
// the repository is even asked.
func (m Model) toggleSelected() (tea.Model, tea.Cmd) {
	day, ok := m.selectedDay()
	if !ok {
		return m, nil
	}
	if day.IsFuture {
		m.status = "future days cannot be edited"
		return m, nil
	}

	achieved := true
	note := ""
	if rec, exists := m.records[day.Date]; exists {
		achieved = !rec.Achieved
		note = rec.Note
	}

	if _, err := m.repo.RecordDay(m.habit.ID, models.RecordDayInput{
		Date:     day.Date,
		Achieved: achieved,
		Note:     note,
	}); err != nil {
		m.status = err.Error()
		return m, nil
	}

	if err := m.reload(); err != nil {
		m.status = err.Error()
		return m, nil
	}
	if achieved {
		m.status = "marked " + day.Date + " as achieved"
	} else {
		m.status = "marked " + day.Date + " as missed"
	}
	return m, nil
}

func (m Model) openNoteForm() (tea.Model, tea.Cmd) {
	day, ok := m.selectedDay()
	if !ok {
		return m, nil
	}
	if day.IsFuture {
		m.status = "future days cannot be edited"
		return m, nil
	}

	fm := &NoteFormModel{Achieved: day.State == calendar.StateAchieved}
	if rec, exists := m.records[day.Date]; exists {
		fm.Achieved = rec.Achieved
		fm.Note = rec.Note
	}

	m.noteForm = fm
	m.noteDate = day.Date
	m.form = newNoteForm(fm, day.Date)
	m.state = stateEditNote
	return m, m.form.Init()
}

func (m Model) updateHabitForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = stateCalendar
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		start := m.habitForm.StartDate
		if start == "" {
			start = dateutil.Today()
		}
		if _, err := m.repo.CreateHabit(models.CreateHabitInput{
			Name:      m.habitForm.Name,
			Color:     m.habitForm.Color,
			StartDate: start,
		}); err != nil {
			m.status = err.Error()
			m.form.State = huh.StateNormal
			return m, cmd
		}
		if err := m.reload(); err != nil {
			m.status = err.Error()
		}
		m.cursor = m.todayIndex()
		m.state = stateCalendar
	case huh.StateAborted:
		m.state = stateCalendar
	}
	return m, cmd
}

func (m Model) updateNoteForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = stateCalendar
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if _, err := m.repo.RecordDay(m.habit.ID, models.RecordDayInput{
			Date:     m.noteDate,
			Achieved: m.noteForm.Achieved,
			Note:     m.noteForm.Note,
		}); err != nil {
			m.status = err.Error()
			m.form.State = huh.StateNormal
			return m, cmd
		}
		if err := m.reload(); err != nil {
			m.status = err.Error()
		} else {
			m.status = "saved " + m.noteDate
		}
		m.state = stateCalendar
	case huh.StateAborted:
		m.state = stateCalendar
	}
	return m, cmd
}
