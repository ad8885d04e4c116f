package progression

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestValidate_Valid(t *testing.T) {
	e := Event{
		ID: "e1", Label: "Volunteered", Category: CategoryVolunteer,
		XP: intPtr(10), ImpactHours: floatPtr(1),
		Skill:    &SkillDraft{ID: "care", Title: "Elder care", Source: SourceVolunteering},
		Reminder: &ReminderDraft{Title: "Next shift"},
	}
	if err := Validate(e); err != nil {
		t.Fatalf("expected valid event, got: %v", err)
	}
}

func TestValidate_CollectsAllFields(t *testing.T) {
	e := Event{
		ID:           " ",
		XP:           intPtr(-1),
		ImpactPoints: intPtr(-2),
		ImpactHours:  floatPtr(math.NaN()),
		Skill:        &SkillDraft{Source: "magic"},
		Reminder:     &ReminderDraft{},
	}

	err := Validate(e)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if !errors.Is(err, ErrMalformedEvent) {
		t.Error("ValidationError should match ErrMalformedEvent")
	}

	want := []string{
		"id", "label", "category", "xp", "impactPoints", "impactHours",
		"skill.id", "skill.title", "skill.source", "reminder.title",
	}
	got := make(map[string]bool)
	for _, f := range vErr.Fields {
		got[f.Field] = true
	}
	for _, field := range want {
		if !got[field] {
			t.Errorf("missing field error for %q (got %v)", field, vErr.Fields)
		}
	}
}

func TestValidate_UnknownCategory(t *testing.T) {
	err := Validate(Event{ID: "e1", Label: "x", Category: "party"})
	if err == nil || !strings.Contains(err.Error(), `unknown category "party"`) {
		t.Errorf("err = %v, want unknown category message", err)
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{
		EventID: "e9",
		Fields:  []FieldError{{Field: "label", Message: "is required"}},
	}
	want := `malformed contribution event "e9": label: is required`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestCategory_Valid(t *testing.T) {
	for _, c := range AllCategories() {
		if !c.Valid() {
			t.Errorf("%q should be valid", c)
		}
	}
	if Category("").Valid() || Category("Volunteer").Valid() {
		t.Error("empty and mis-cased categories must be invalid")
	}
}
