package progression

import (
	"fmt"
	"math"
	"strings"
)

// Validate checks that an event is well-formed. It returns a
// *ValidationError listing every problem, or nil.
func Validate(e Event) error {
	var errs []FieldError
	add := func(field, msg string) {
		errs = append(errs, FieldError{Field: field, Message: msg})
	}

	if strings.TrimSpace(e.ID) == "" {
		add("id", "is required")
	}
	if strings.TrimSpace(e.Label) == "" {
		add("label", "is required")
	}
	switch {
	case e.Category == "":
		add("category", "is required")
	case !e.Category.Valid():
		add("category", fmt.Sprintf("unknown category %q", e.Category))
	}

	if e.XP != nil {
		switch {
		case *e.XP < 0:
			add("xp", "must not be negative")
		case *e.XP > MaxEventXP:
			add("xp", fmt.Sprintf("must not exceed %d", MaxEventXP))
		}
	}
	if e.ImpactPoints != nil {
		switch {
		case *e.ImpactPoints < 0:
			add("impactPoints", "must not be negative")
		case *e.ImpactPoints > MaxEventImpactPoints:
			add("impactPoints", fmt.Sprintf("must not exceed %d", MaxEventImpactPoints))
		}
	}
	if e.ImpactHours != nil {
		if h := *e.ImpactHours; h < 0 || math.IsNaN(h) || math.IsInf(h, 0) {
			add("impactHours", "must be a non-negative number")
		} else if h > MaxEventImpactHours {
			add("impactHours", fmt.Sprintf("must not exceed %d", MaxEventImpactHours))
		}
	}

	if s := e.Skill; s != nil {
		if strings.TrimSpace(s.ID) == "" {
			add("skill.id", "is required")
		}
		if strings.TrimSpace(s.Title) == "" {
			add("skill.title", "is required")
		}
		if s.Source != "" && !s.Source.Valid() {
			add("skill.source", fmt.Sprintf("unknown source %q", s.Source))
		}
	}

	if r := e.Reminder; r != nil && strings.TrimSpace(r.Title) == "" {
		add("reminder.title", "is required")
	}

	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{EventID: e.ID, Fields: errs}
}
