package progression

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const eventSchemaURL = "schema://contribution-event.json"

// EventSchema is the JSON schema contribution-event payloads must satisfy.
var EventSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":       map[string]any{"type": "string", "minLength": 1},
		"label":    map[string]any{"type": "string", "minLength": 1},
		"category": map[string]any{"type": "string", "enum": categoryEnum()},
		"xp": map[string]any{
			"type":    "integer",
			"minimum": 0,
			"maximum": MaxEventXP,
		},
		"impactPoints": map[string]any{
			"type":    "integer",
			"minimum": 0,
			"maximum": MaxEventImpactPoints,
		},
		"impactHours": map[string]any{
			"type":    "number",
			"minimum": 0,
			"maximum": MaxEventImpactHours,
		},
		"badgeLabel":    map[string]any{"type": "string"},
		"pathwayNodeId": map[string]any{"type": "string"},
		"taskId":        map[string]any{"type": "string"},
		"skill": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":       map[string]any{"type": "string", "minLength": 1},
				"title":    map[string]any{"type": "string", "minLength": 1},
				"category": map[string]any{"type": "string"},
				"source":   map[string]any{"type": "string", "enum": sourceEnum()},
				"details":  map[string]any{"type": "string"},
				"earnedAt": map[string]any{"type": "string", "format": "date-time"},
			},
			"required":             []any{"id", "title"},
			"additionalProperties": false,
		},
		"reminder": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{"type": "string", "minLength": 1},
				"dueAt": map[string]any{"type": "string", "format": "date-time"},
				"note":  map[string]any{"type": "string"},
			},
			"required":             []any{"title"},
			"additionalProperties": false,
		},
	},
	"required":             []any{"id", "label", "category"},
	"additionalProperties": false,
}

var compiledEventSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// Round-trip through JSON so the compiler sees plain JSON values.
	defBytes, err := json.Marshal(EventSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal event schema: %w", err)
	}
	var def any
	if err := json.Unmarshal(defBytes, &def); err != nil {
		return nil, fmt.Errorf("parse event schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(eventSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(eventSchemaURL)
})

// DecodeEvent parses and validates a JSON contribution-event payload.
// Every failure wraps ErrMalformedEvent.
func DecodeEvent(raw []byte) (Event, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Event{}, &ValidationError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	id := payloadID(parsed)

	schema, err := compiledEventSchema()
	if err != nil {
		return Event{}, fmt.Errorf("compile event schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return Event{}, &ValidationError{EventID: id, Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	var e Event
	if err := json.Unmarshal(raw, &e); err != nil {
		return Event{}, &ValidationError{EventID: id, Err: err}
	}
	if err := Validate(e); err != nil {
		return Event{}, err
	}
	return e, nil
}

func payloadID(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	id, _ := m["id"].(string)
	return id
}

func categoryEnum() []any {
	out := make([]any, 0, len(AllCategories()))
	for _, c := range AllCategories() {
		out = append(out, string(c))
	}
	return out
}

func sourceEnum() []any {
	out := make([]any, 0, len(AllSkillSources()))
	for _, s := range AllSkillSources() {
		out = append(out, string(s))
	}
	return out
}
