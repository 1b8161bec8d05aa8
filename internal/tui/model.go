// Package tui is the interactive challenge board: a full-screen 100-day
// calendar with a movable cursor, day toggling, note editing, and a habit
// creation form. All writes go through the repository, so the same
// temporal rules apply as everywhere else; in particular future days are
// never editable.
package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/keiki-saito/habit100-app/internal/calendar"
	"github.com/keiki-saito/habit100-app/internal/constants"
	"github.com/keiki-saito/habit100-app/internal/dateutil"
	"github.com/keiki-saito/habit100-app/internal/models"
	"github.com/keiki-saito/habit100-app/internal/repository"
)

type sessionState int

const (
	stateCalendar sessionState = iota
	stateAddHabit
	stateEditNote
)

type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Note   key.Binding
	Add    key.Binding
	Today  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle day"),
		),
		Note: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "edit note"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add habit"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "jump to today"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Note, k.Today, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Toggle, k.Note, k.Add, k.Today},
		{k.Help, k.Quit},
	}
}

type HabitFormModel struct {
	Name      string
	StartDate string
	Color     string
}

type NoteFormModel struct {
	Achieved bool
	Note     string
}

type Model struct {
	repo  *repository.Repository
	state sessionState
	keys  KeyMap
	help  help.Model

	habit      *models.Habit
	days       []calendar.Day
	records    map[string]models.DailyRecord // keyed by date
	recordList []models.DailyRecord          // ascending by date

	cursor    int
	form      *huh.Form
	habitForm *HabitFormModel
	noteForm  *NoteFormModel
	noteDate  string
	status    string
	loadErr   error
	quitting  bool
	width     int
	height    int
}

func NewModel(repo *repository.Repository) Model {
	m := Model{
		repo:  repo,
		state: stateCalendar,
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
	m.loadErr = m.reload()
	m.cursor = m.todayIndex()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// reload pulls the habit and its records and rebuilds the board. With no
// habit registered, the board stays empty and the habit form is offered.
func (m *Model) reload() error {
	habits, err := m.repo.GetHabits()
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		m.habit = nil
		m.days = nil
		m.records = nil
		m.recordList = nil
		return nil
	}

	habit := habits[0]
	records, err := m.repo.GetRecords(habit.ID, "", "")
	if err != nil {
		return err
	}

	byDate := make(map[string]models.DailyRecord, len(records))
	for _, r := range records {
		byDate[r.Date] = r
	}

	m.habit = &habit
	m.records = byDate
	m.recordList = records
	m.days = calendar.Build(habit.StartDate, constants.ChallengeDays, records)
	return nil
}

// todayIndex returns the cursor position for today, or the first day when
// today is outside the window.
func (m Model) todayIndex() int {
	for i, d := range m.days {
		if d.IsToday {
			return i
		}
	}
	return 0
}

func (m Model) selectedDay() (calendar.Day, bool) {
	if m.cursor < 0 || m.cursor >= len(m.days) {
		return calendar.Day{}, false
	}
	return m.days[m.cursor], true
}

func newHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(validateHabitName),
			huh.NewInput().
				Title("Start Date (YYYY-MM-DD, empty = today)").
				Value(&fm.StartDate).
				Validate(validateStartDate),
			huh.NewInput().
				Title("Color (hex, optional)").
				Value(&fm.Color),
		),
	).WithTheme(huh.ThemeDracula())
}

func newNoteForm(fm *NoteFormModel, date string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Achieved on "+date+"?").
				Affirmative("Yes").
				Negative("No").
				Value(&fm.Achieved),
			huh.NewText().
				Title("Note").
				CharLimit(constants.MaxNoteLen).
				Value(&fm.Note),
		),
	).WithTheme(huh.ThemeDracula())
}

var (
	errInvalidDate = errors.New("date must be YYYY-MM-DD")
	errFutureStart = errors.New("start date must not be in the future")
)

func validateHabitName(s string) error {
	_, err := repository.ValidateName(s)
	return err
}

func validateStartDate(s string) error {
	if s == "" {
		return nil
	}
	if !dateutil.Valid(s) {
		return errInvalidDate
	}
	if s > dateutil.Today() {
		return errFutureStart
	}
	return nil
}
