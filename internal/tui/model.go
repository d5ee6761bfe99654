package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"cripes/internal/constants"
	"cripes/internal/models"
	"cripes/internal/reminder"
	"cripes/internal/rewards"
	"cripes/internal/storage"
	"cripes/internal/tracker"
)

// tickMsg drives the reminder poll while the dashboard is open.
type tickMsg time.Time

type HabitFormModel struct {
	Name      string
	Backup    string
	Category  string
	Frequency models.FrequencyType
	Remind    string
}

type Model struct {
	db        *storage.DB
	tracker   *tracker.Tracker
	ledger    *rewards.Ledger
	scheduler *reminder.Scheduler

	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model

	habits  []models.Habit
	entries []models.Entry
	cursor  int

	form          *huh.Form
	habitForm     *HabitFormModel
	habitToDelete string

	banner   string
	quitting bool
	width    int
	height   int
}

func NewModel(db *storage.DB, trk *tracker.Tracker, ledger *rewards.Ledger, sched *reminder.Scheduler) Model {
	m := Model{
		db:        db,
		tracker:   trk,
		ledger:    ledger,
		scheduler: sched,
		state:     constants.StateToday,
		keys:      DefaultKeyMap(),
		help:      help.New(),
	}
	m.refresh()
	return m
}

// refresh reloads the working set from the store after any mutation.
func (m *Model) refresh() {
	m.habits = m.db.ActiveHabits()
	m.entries = m.db.Entries()
	if m.cursor >= len(m.visibleHabits()) && m.cursor > 0 {
		m.cursor = len(m.visibleHabits()) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// visibleHabits returns the habit list for the current tab: today's due
// habits on the Today tab, every active habit on the Habits tab.
func (m *Model) visibleHabits() []models.Habit {
	if m.state != constants.StateToday {
		return m.habits
	}
	now := time.Now()
	var due []models.Habit
	for _, h := range m.habits {
		if h.IsDueOn(now) {
			due = append(due, h)
		}
	}
	return due
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateToday:
		keys = append(keys, m.keys.Toggle, m.keys.Backup)
	case constants.StateHabits:
		keys = append(keys, m.keys.Add, m.keys.Archive, m.keys.Delete)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Toggle, m.keys.Backup}

	var actions []key.Binding
	if m.state == constants.StateHabits {
		actions = []key.Binding{m.keys.Add, m.keys.Archive, m.keys.Delete}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(constants.ReminderPollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func newHabitForm(fm *HabitFormModel, categories []string) *huh.Form {
	options := make([]huh.Option[string], len(categories))
	for i, c := range categories {
		options[i] = huh.NewOption(c, c)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit name").
				Value(&fm.Name),
			huh.NewInput().
				Title("Backup variant").
				Description("A reduced-effort fallback (optional)").
				Value(&fm.Backup),
			huh.NewSelect[string]().
				Title("Category").
				Options(options...).
				Value(&fm.Category),
			huh.NewSelect[models.FrequencyType]().
				Title("Frequency").
				Options(
					huh.NewOption("Daily", models.FrequencyDaily),
					huh.NewOption("Weekdays", models.FrequencyWeekdays),
					huh.NewOption("3x per week", models.FrequencyTimesPerWeek),
					huh.NewOption("Every other day", models.FrequencyInterval),
				).
				Value(&fm.Frequency),
			huh.NewInput().
				Title("Reminder time (HH:MM)").
				Placeholder("leave empty for none").
				Value(&fm.Remind),
		),
	).WithTheme(huh.ThemeDracula())
}
