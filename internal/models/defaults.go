package models

import "time"

// DefaultTemplates returns the two seeded journal templates. Like the
// other collection defaults they are returned when the templates key is
// absent and only persisted once a template is explicitly saved.
func DefaultTemplates() []Template {
	now := time.Now()
	return []Template{
		{
			ID:        "default-daily",
			Name:      "Daily Check-in",
			CreatedAt: now,
			UpdatedAt: now,
			Fields: []Field{
				{ID: "f1", Key: "mood", Label: "How are you feeling?", Type: FieldSlider, Required: true, SliderMin: 1, SliderMax: 10},
				{ID: "f2", Key: "highlights", Label: "What went well today?", Type: FieldLongText, Required: true},
				{ID: "f3", Key: "gratitude", Label: "One thing you are grateful for?", Type: FieldShortText, Required: false},
			},
		},
		{
			ID:        "cripes-methodology",
			Name:      "CRIPES Daily Review",
			CreatedAt: now,
			UpdatedAt: now,
			Fields: []Field{
				{ID: "c1", Key: "career", Label: "Career: What did I build or accomplish?", Type: FieldLongText, Required: true},
				{ID: "c2", Key: "relationships", Label: "Relationships: Who did I connect with?", Type: FieldLongText, Required: true},
				{ID: "c3", Key: "intellectual", Label: "Intellectual: What did I learn today?", Type: FieldLongText, Required: true},
				{ID: "c4", Key: "physical_energy", Label: "Physical: Energy Level (1-10)", Type: FieldSlider, Required: true, SliderMin: 1, SliderMax: 10},
				{ID: "c5", Key: "physical_notes", Label: "Physical: Movement and Nourishment", Type: FieldShortText, Required: false},
				{ID: "c6", Key: "emotional", Label: "Emotional: Primary state of mind", Type: FieldShortText, Required: true},
				{ID: "c7", Key: "spiritual", Label: "Spiritual: Value alignment and peace", Type: FieldLongText, Required: true},
			},
		},
	}
}
