package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"cripes/internal/constants"
	"cripes/internal/logger"
	"cripes/internal/models"
	"cripes/internal/notifier"
)

const tabCount = 4

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		due := m.scheduler.Check()
		if len(due) > 0 {
			names := ""
			for i, h := range due {
				if i > 0 {
					names += ", "
				}
				names += h.Name
			}
			m.banner = fmt.Sprintf("🔔 Time for: %s", names)
			if err := notifier.New().Notify(m.banner); err != nil {
				logger.Debug("tray notification skipped", "error", err)
			}
		}
		return m, tickCmd()
	}

	switch m.state {
	case constants.StateAddHabit:
		return m.updateAddHabit(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			m.cursor = 0
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			m.cursor = 0
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.visibleHabits())-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			return m.toggleSelected(models.CompletionPrimary)
		case key.Matches(msg, m.keys.Backup):
			return m.toggleSelected(models.CompletionBackup)
		case key.Matches(msg, m.keys.Add):
			if m.state == constants.StateHabits || m.state == constants.StateToday {
				m.habitForm = &HabitFormModel{
					Category:  "Physical",
					Frequency: models.FrequencyDaily,
				}
				m.form = newHabitForm(m.habitForm, m.db.Categories())
				m.previousState = m.state
				m.state = constants.StateAddHabit
				return m, m.form.Init()
			}
		case key.Matches(msg, m.keys.Archive):
			if m.state == constants.StateHabits {
				habits := m.visibleHabits()
				if m.cursor < len(habits) {
					habit := habits[m.cursor]
					habit.Archived = true
					habit.UpdatedAt = time.Now()
					_ = m.db.SaveHabit(habit)
					m.refresh()
					m.syncTray()
				}
			}
		case key.Matches(msg, m.keys.Delete):
			if m.state == constants.StateHabits {
				habits := m.visibleHabits()
				if m.cursor < len(habits) {
					m.habitToDelete = habits[m.cursor].ID
					m.previousState = m.state
					m.state = constants.StateConfirmDelete
				}
			}
		}
	}

	return m, nil
}

// syncTray hands the current reminder schedule to the tray app, if one
// is running. Absence of the tray is a normal condition.
func (m Model) syncTray() {
	if err := notifier.New().SetReminders(m.scheduler.ActiveReminders()); err != nil {
		logger.Debug("tray reminder sync skipped", "error", err)
	}
}

// toggleSelected runs the completion toggle for the habit under the
// cursor. Only the Today tab records completions.
func (m Model) toggleSelected(kind models.CompletionKind) (tea.Model, tea.Cmd) {
	if m.state != constants.StateToday {
		return m, nil
	}
	habits := m.visibleHabits()
	if m.cursor >= len(habits) {
		return m, nil
	}
	_, _, _ = m.tracker.Toggle(habits[m.cursor].ID, kind)
	m.refresh()
	return m, nil
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		fm := m.habitForm
		frequency := models.FrequencyRule{Type: fm.Frequency}
		switch fm.Frequency {
		case models.FrequencyTimesPerWeek:
			frequency.TimesPerWeek = 3
		case models.FrequencyInterval:
			frequency.IntervalDays = 2
		}
		now := time.Now()
		habit := models.Habit{
			ID:           uuid.New().String(),
			Name:         fm.Name,
			BackupName:   fm.Backup,
			Category:     fm.Category,
			Frequency:    frequency,
			ReminderTime: fm.Remind,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := habit.Validate(); err == nil {
			_ = m.db.SaveHabit(habit)
			m.syncTray()
		}
		m.refresh()
		m.state = m.previousState
		m.form = nil
		return m, nil
	case huh.StateAborted:
		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			_ = m.db.DeleteHabit(m.habitToDelete)
			m.habitToDelete = ""
			m.refresh()
			m.syncTray()
			m.state = m.previousState
		case "n", "N", "esc", "q":
			m.habitToDelete = ""
			m.state = m.previousState
		}
	}
	return m, nil
}
