package storage

import (
	"encoding/json"
	"fmt"

	"cripes/internal/constants"
	"cripes/internal/logger"
	"cripes/internal/models"
)

// DB exposes typed repositories over a Provider, one per collection.
// Collections are persisted as JSON arrays because insertion order is
// meaningful: saving an existing entity replaces it at its position,
// never moves it to the end.
//
// Reads never fail on absent or corrupt data; they fall back to the
// collection's default value. Every mutation is a complete synchronous
// read-modify-write with no interleaving point exposed to callers.
type DB struct {
	provider Provider
}

func NewDB(p Provider) *DB {
	return &DB{provider: p}
}

// Provider returns the underlying provider, used by the export/import
// protocol which operates on raw stored values.
func (d *DB) Provider() Provider {
	return d.provider
}

// decode unmarshals a stored collection value into out. A missing key or
// unparsable payload leaves out untouched and reports false; corrupted
// data is logged, never surfaced.
func (d *DB) decode(key string, out any) bool {
	raw, ok, err := d.provider.GetRaw(key)
	if err != nil || !ok {
		if err != nil {
			logger.Warn("failed to read collection, using default", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		logger.Warn("corrupt collection data, using default", "key", key, "error", err)
		return false
	}
	return true
}

func (d *DB) encode(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize collection %q: %w", key, err)
	}
	return d.provider.SetRaw(key, raw)
}

// --- Habits ---

func (d *DB) Habits() []models.Habit {
	var habits []models.Habit
	if !d.decode(constants.KeyHabits, &habits) {
		return nil
	}
	return habits
}

// SaveHabit upserts a habit: an existing id is replaced in place,
// preserving the order of its neighbors; a new id is appended.
func (d *DB) SaveHabit(habit models.Habit) error {
	habits := d.Habits()
	replaced := false
	for i := range habits {
		if habits[i].ID == habit.ID {
			habits[i] = habit
			replaced = true
			break
		}
	}
	if !replaced {
		habits = append(habits, habit)
	}
	return d.encode(constants.KeyHabits, habits)
}

// DeleteHabit removes the habit with the given id. Deleting an unknown id
// is a no-op, not an error.
func (d *DB) DeleteHabit(id string) error {
	habits := d.Habits()
	kept := habits[:0]
	for _, h := range habits {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	return d.encode(constants.KeyHabits, kept)
}

// GetHabit looks up a habit by id.
func (d *DB) GetHabit(id string) (models.Habit, error) {
	for _, h := range d.Habits() {
		if h.ID == id {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit not found: %s", id)
}

// ActiveHabits returns all non-archived habits.
func (d *DB) ActiveHabits() []models.Habit {
	var active []models.Habit
	for _, h := range d.Habits() {
		if !h.Archived {
			active = append(active, h)
		}
	}
	return active
}

// --- Completions ---

func (d *DB) Completions() []models.Completion {
	var completions []models.Completion
	if !d.decode(constants.KeyCompletions, &completions) {
		return nil
	}
	return completions
}

// AddCompletion appends unconditionally. The one-per-day invariant is
// the toggle protocol's responsibility, not the store's.
func (d *DB) AddCompletion(c models.Completion) error {
	completions := append(d.Completions(), c)
	return d.encode(constants.KeyCompletions, completions)
}

// RemoveCompletion deletes by (habit, local date) composite match,
// regardless of completion kind.
func (d *DB) RemoveCompletion(habitID, localDate string) error {
	completions := d.Completions()
	kept := completions[:0]
	for _, c := range completions {
		if !(c.HabitID == habitID && c.LocalDate == localDate) {
			kept = append(kept, c)
		}
	}
	return d.encode(constants.KeyCompletions, kept)
}

// DeleteCompletionByID supports direct deletion from the history list.
func (d *DB) DeleteCompletionByID(id string) error {
	completions := d.Completions()
	kept := completions[:0]
	for _, c := range completions {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	return d.encode(constants.KeyCompletions, kept)
}

// --- Journal templates ---

func (d *DB) Templates() []models.Template {
	var templates []models.Template
	if !d.decode(constants.KeyTemplates, &templates) {
		return models.DefaultTemplates()
	}
	return templates
}

func (d *DB) SaveTemplate(t models.Template) error {
	templates := d.Templates()
	replaced := false
	for i := range templates {
		if templates[i].ID == t.ID {
			templates[i] = t
			replaced = true
			break
		}
	}
	if !replaced {
		templates = append(templates, t)
	}
	return d.encode(constants.KeyTemplates, templates)
}

func (d *DB) GetTemplate(id string) (models.Template, error) {
	for _, t := range d.Templates() {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Template{}, fmt.Errorf("template not found: %s", id)
}

// --- Journal entries ---

func (d *DB) Entries() []models.Entry {
	var entries []models.Entry
	if !d.decode(constants.KeyEntries, &entries) {
		return nil
	}
	return entries
}

func (d *DB) SaveEntry(e models.Entry) error {
	entries := d.Entries()
	replaced := false
	for i := range entries {
		if entries[i].ID == e.ID {
			entries[i] = e
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, e)
	}
	return d.encode(constants.KeyEntries, entries)
}

func (d *DB) DeleteEntry(id string) error {
	entries := d.Entries()
	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	return d.encode(constants.KeyEntries, kept)
}

// --- Rewards ---

func (d *DB) Rewards() []models.Reward {
	var rewards []models.Reward
	if !d.decode(constants.KeyRewards, &rewards) {
		return nil
	}
	return rewards
}

func (d *DB) SaveReward(r models.Reward) error {
	rewards := d.Rewards()
	replaced := false
	for i := range rewards {
		if rewards[i].ID == r.ID {
			rewards[i] = r
			replaced = true
			break
		}
	}
	if !replaced {
		rewards = append(rewards, r)
	}
	return d.encode(constants.KeyRewards, rewards)
}

func (d *DB) DeleteReward(id string) error {
	rewards := d.Rewards()
	kept := rewards[:0]
	for _, r := range rewards {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	return d.encode(constants.KeyRewards, kept)
}

func (d *DB) GetReward(id string) (models.Reward, error) {
	for _, r := range d.Rewards() {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Reward{}, fmt.Errorf("reward not found: %s", id)
}

// --- Redemptions ---

func (d *DB) Redemptions() []models.Redemption {
	var redemptions []models.Redemption
	if !d.decode(constants.KeyRedemptions, &redemptions) {
		return nil
	}
	return redemptions
}

// AddRedemption appends to the redemption log. The log is append-only.
func (d *DB) AddRedemption(r models.Redemption) error {
	redemptions := append(d.Redemptions(), r)
	return d.encode(constants.KeyRedemptions, redemptions)
}

// --- Settings singleton ---

func (d *DB) Settings() models.Settings {
	var settings models.Settings
	if !d.decode(constants.KeySettings, &settings) {
		return models.DefaultSettings()
	}
	return settings
}

// SaveSettings replaces the entire stored settings value.
func (d *DB) SaveSettings(s models.Settings) error {
	return d.encode(constants.KeySettings, s)
}

// --- Categories ---

func (d *DB) Categories() []string {
	var categories []string
	if !d.decode(constants.KeyCategories, &categories) {
		return models.DefaultCategories()
	}
	return categories
}

// SaveCategories replaces the entire stored category list.
func (d *DB) SaveCategories(categories []string) error {
	return d.encode(constants.KeyCategories, categories)
}

// ClearAll wipes every collection. The caller must reload all in-memory
// state afterwards.
func (d *DB) ClearAll() error {
	return d.provider.ClearAll()
}
