package models

import (
	"encoding/json"
	"testing"
)

func validTemplate() Template {
	return Template{
		ID:   "t1",
		Name: "Daily",
		Fields: []Field{
			{ID: "f1", Key: "gratitude", Label: "Gratitude", Type: FieldLongText, Required: true},
			{ID: "f2", Key: "energy", Label: "Energy", Type: FieldSlider, SliderMin: 1, SliderMax: 10},
			{ID: "f3", Key: "mood", Label: "Mood", Type: FieldSingleChoice, Options: []string{"good", "bad"}},
		},
	}
}

func TestTemplateValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(tm *Template)
		wantErr bool
	}{
		{"valid", func(tm *Template) {}, false},
		{"empty name", func(tm *Template) { tm.Name = "" }, true},
		{"no fields", func(tm *Template) { tm.Fields = nil }, true},
		{"empty field key", func(tm *Template) { tm.Fields[0].Key = "" }, true},
		{"duplicate keys", func(tm *Template) { tm.Fields[1].Key = "gratitude" }, true},
		{"inverted slider bounds", func(tm *Template) {
			tm.Fields[1].SliderMin = 10
			tm.Fields[1].SliderMax = 1
		}, true},
		{"choice without options", func(tm *Template) { tm.Fields[2].Options = nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := validTemplate()
			tt.mutate(&tm)
			err := tm.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEntryValidateAgainst(t *testing.T) {
	template := validTemplate()

	entry := Entry{
		ID:         "e1",
		TemplateID: "t1",
		LocalDate:  "2026-09-01",
		Data: map[string]json.RawMessage{
			"gratitude": json.RawMessage(`"coffee"`),
			"energy":    json.RawMessage(`7`),
		},
	}
	if err := entry.ValidateAgainst(&template); err != nil {
		t.Errorf("valid entry rejected: %v", err)
	}

	missing := Entry{Data: map[string]json.RawMessage{"energy": json.RawMessage(`7`)}}
	if err := missing.ValidateAgainst(&template); err == nil {
		t.Error("expected error for missing required field")
	}

	empty := Entry{Data: map[string]json.RawMessage{"gratitude": json.RawMessage(`""`)}}
	if err := empty.ValidateAgainst(&template); err == nil {
		t.Error("expected error for empty required field")
	}

	unknown := Entry{Data: map[string]json.RawMessage{
		"gratitude": json.RawMessage(`"x"`),
		"stray":     json.RawMessage(`1`),
	}}
	if err := unknown.ValidateAgainst(&template); err == nil {
		t.Error("expected error for unknown field key")
	}
}

func TestDefaultTemplatesAreValid(t *testing.T) {
	templates := DefaultTemplates()
	if len(templates) != 2 {
		t.Fatalf("expected 2 default templates, got %d", len(templates))
	}
	for _, tm := range templates {
		if err := tm.Validate(); err != nil {
			t.Errorf("default template %q is invalid: %v", tm.Name, err)
		}
	}
	if templates[0].ID != "default-daily" {
		t.Errorf("expected default-daily first, got %s", templates[0].ID)
	}
}

func TestHasTag(t *testing.T) {
	entry := Entry{Tags: []string{"private", "work"}}
	if !entry.HasTag("private") {
		t.Error("expected tag to be found")
	}
	if entry.HasTag("health") {
		t.Error("expected missing tag to be absent")
	}
}
