package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// FieldType enumerates the supported journal field kinds
type FieldType string

const (
	FieldShortText    FieldType = "short_text"
	FieldLongText     FieldType = "long_text"
	FieldSlider       FieldType = "slider"
	FieldSingleChoice FieldType = "single_choice"
	FieldMultiChoice  FieldType = "multi_choice"
	FieldDate         FieldType = "date"
	FieldTime         FieldType = "time"
	FieldNumber       FieldType = "number"
	FieldYesNo        FieldType = "yes_no"
)

// Field is a single question definition inside a journal template. The
// Key is stable across template edits and is what entry data is keyed by.
type Field struct {
	ID          string    `json:"id"`
	Key         string    `json:"key"`
	Label       string    `json:"label"`
	Description string    `json:"description,omitempty"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required"`
	Options     []string  `json:"options,omitempty"`
	SliderMin   int       `json:"sliderMin,omitempty"`
	SliderMax   int       `json:"sliderMax,omitempty"`
}

// Template is a reusable ordered set of journal question definitions
// used to shape journal entries. Editing a template never reshapes
// entries created against an earlier version of it.
type Template struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Fields    []Field   `json:"fields"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("template name cannot be empty")
	}
	if len(t.Fields) == 0 {
		return fmt.Errorf("template must have at least one field")
	}

	seen := make(map[string]bool)
	for _, f := range t.Fields {
		if f.Key == "" {
			return fmt.Errorf("field %q has an empty key", f.Label)
		}
		if seen[f.Key] {
			return fmt.Errorf("duplicate field key: %q", f.Key)
		}
		seen[f.Key] = true

		if f.Type == FieldSlider && f.SliderMin >= f.SliderMax {
			return fmt.Errorf("field %q has invalid slider bounds [%d, %d]", f.Key, f.SliderMin, f.SliderMax)
		}
		if (f.Type == FieldSingleChoice || f.Type == FieldMultiChoice) && len(f.Options) == 0 {
			return fmt.Errorf("field %q has no choice options", f.Key)
		}
	}
	return nil
}

// FieldByKey returns the field definition with the given key, if any.
func (t *Template) FieldByKey(key string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Entry is a journal entry created against a template. Data keys are the
// template's field keys at the time the entry was created.
type Entry struct {
	ID         string                     `json:"id"`
	TemplateID string                     `json:"templateId"`
	LocalDate  string                     `json:"localDate"` // YYYY-MM-DD, device-local
	CreatedAt  time.Time                  `json:"createdAt"`
	Tags       []string                   `json:"tags"`
	Mood       int                        `json:"mood,omitempty"` // 1 to 10
	Data       map[string]json.RawMessage `json:"data"`
	AIFeedback string                     `json:"aiFeedback,omitempty"`
}

// ValidateAgainst checks the entry's data against the template it was
// created from: every required field must have a value, and no key may be
// present that the template does not define.
func (e *Entry) ValidateAgainst(t *Template) error {
	for _, f := range t.Fields {
		if !f.Required {
			continue
		}
		raw, ok := e.Data[f.Key]
		if !ok || len(raw) == 0 || string(raw) == `""` || string(raw) == "null" {
			return fmt.Errorf("required field %q is missing", f.Key)
		}
	}
	for key := range e.Data {
		if _, ok := t.FieldByKey(key); !ok {
			return fmt.Errorf("field %q is not part of template %q", key, t.Name)
		}
	}
	return nil
}

// HasTag reports whether the entry carries the given tag.
func (e *Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
