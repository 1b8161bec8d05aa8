package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/keiki-saito/habit100-app/internal/calendar"
	"github.com/keiki-saito/habit100-app/internal/stats"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.loadErr != nil {
		return boardStyle.Render("Error: " + m.loadErr.Error())
	}

	switch m.state {
	case stateAddHabit, stateEditNote:
		return boardStyle.Render(m.form.View())
	}

	if m.habit == nil {
		return boardStyle.Render(lipgloss.JoinVertical(
			lipgloss.Left,
			boardTitleStyle.Render("No challenge yet"),
			"",
			"Press 'a' to register a habit and start the 100-day challenge.",
			"",
			m.help.View(m.keys),
		))
	}

	sections := []string{
		boardTitleStyle.Render(m.habit.Name + " — 100-day challenge"),
		"",
		m.viewGrid(),
		"",
		m.viewDetail(),
		m.viewStats(),
	}
	if m.status != "" {
		sections = append(sections, statusStyle.Render(m.status))
	}
	sections = append(sections, "", m.help.View(m.keys))

	return boardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) viewGrid() string {
	var rows []string
	var row strings.Builder
	for i, d := range m.days {
		row.WriteString(m.renderCell(d, i == m.cursor))
		if d.Index%gridColumns == 0 {
			rows = append(rows, row.String())
			row.Reset()
		} else {
			row.WriteString(" ")
		}
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderCell(d calendar.Day, isCursor bool) string {
	label := fmt.Sprintf("%3d", d.Index)

	if isCursor {
		return cursorCellStyle.Render(label)
	}
	if d.IsToday {
		return todayCellStyle.Render(label)
	}
	switch d.State {
	case calendar.StateAchieved:
		return achievedCellStyle.Render(label)
	case calendar.StateFailed:
		return failedCellStyle.Render(label)
	default:
		return unreachedCellStyle.Render(label)
	}
}

// viewDetail describes the day under the cursor, including its note.
func (m Model) viewDetail() string {
	day, ok := m.selectedDay()
	if !ok {
		return ""
	}

	state := string(day.State)
	if day.IsFuture {
		state += " (locked)"
	}
	line := fmt.Sprintf("Day %d  %s  %s", day.Index, day.Date, state)
	if rec, exists := m.records[day.Date]; exists && rec.Note != "" {
		line += "  — " + rec.Note
	}
	return detailStyle.Render(line)
}

func (m Model) viewStats() string {
	challenge := stats.Challenge(m.recordList, m.habit.StartDate)
	return detailStyle.Render(fmt.Sprintf(
		"Completed %d/%d   streak %d   longest %d   today-anchored %d",
		challenge.CompletedDays, challenge.TotalDays,
		challenge.CurrentStreak, challenge.LongestStreak,
		stats.CurrentStreak(m.recordList),
	))
}
