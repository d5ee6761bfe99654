package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cripes/internal/constants"
	"cripes/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateToday:
		content = docStyle.Render(m.viewToday())
	case constants.StateHabits:
		content = docStyle.Render(m.viewHabits())
	case constants.StateJournal:
		content = docStyle.Render(m.viewJournal())
	case constants.StateRewards:
		content = docStyle.Render(m.viewRewards())
	case constants.StateAddHabit:
		content = m.form.View()
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	sections := []string{m.viewTabs()}
	if m.banner != "" {
		sections = append(sections, bannerStyle.Render(m.banner))
	}
	sections = append(sections, content, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "Habits", "Journal", "Rewards"} {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	habits := m.visibleHabits()
	if len(habits) == 0 {
		return mutedStyle.Render("No habits due today. Press 'a' to add one.")
	}

	settings := m.db.Settings()
	today := m.tracker.Today()

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s — %s\n\n", settings.DisplayName, today)

	done := 0
	for i, habit := range habits {
		marker := "[ ]"
		line := habit.Name
		if completion, ok := m.tracker.CompletionFor(habit.ID, today); ok {
			done++
			if completion.Kind == models.CompletionBackup {
				marker = backupStyle.Render("[b]")
				if habit.BackupName != "" {
					line = habit.BackupName
				}
			} else {
				marker = doneStyle.Render("[x]")
			}
		}
		if habit.ReminderTime != "" {
			line += mutedStyle.Render(fmt.Sprintf("  %s", habit.ReminderTime))
		}
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		fmt.Fprintf(&b, "%s %s\n", marker, line)
	}

	fmt.Fprintf(&b, "\n%d/%d done | %d XP (level %d)\n", done, len(habits), m.ledger.Balance(), m.ledger.Level())
	return b.String()
}

func (m Model) viewHabits() string {
	if len(m.habits) == 0 {
		return mutedStyle.Render("No habits yet. Press 'a' to add one.")
	}

	var b strings.Builder
	for i, habit := range m.habits {
		line := fmt.Sprintf("%-25s %-13s %s", habit.Name, habit.Category, habit.FormatFrequency())
		if streak := m.tracker.Streak(habit.ID); streak > 0 {
			line += fmt.Sprintf("  🔥%d", streak)
		}
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) viewJournal() string {
	if len(m.entries) == 0 {
		return mutedStyle.Render("No journal entries. Use 'cripes journal add' to write one.")
	}

	templates := make(map[string]string)
	for _, t := range m.db.Templates() {
		templates[t.ID] = t.Name
	}

	var b strings.Builder
	shown := 0
	for i := len(m.entries) - 1; i >= 0 && shown < 15; i-- {
		e := m.entries[i]
		name := templates[e.TemplateID]
		if name == "" {
			name = "unknown template"
		}
		mood := ""
		if e.Mood > 0 {
			mood = fmt.Sprintf("  mood %d/10", e.Mood)
		}
		fmt.Fprintf(&b, "%s  %s%s\n", e.LocalDate, name, mood)
		shown++
	}
	return b.String()
}

func (m Model) viewRewards() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Level %d — %d XP earned, %d XP spendable\n\n", m.ledger.Level(), m.ledger.Earned(), m.ledger.Balance())

	rewards := m.db.Rewards()
	if len(rewards) == 0 {
		b.WriteString(mutedStyle.Render("No rewards defined. Use 'cripes reward add' to create one."))
		return b.String()
	}

	balance := m.ledger.Balance()
	for _, r := range rewards {
		if !r.Active {
			continue
		}
		line := fmt.Sprintf("%-30s %4d XP", r.Title, r.CostXP)
		if r.CostXP > balance {
			line = mutedStyle.Render(line + "  (locked)")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete this habit? Past completions are kept."),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
