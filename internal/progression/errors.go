package progression

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedEvent is wrapped by every validation failure. Malformed
// events never reach the reducer.
var ErrMalformedEvent = errors.New("malformed contribution event")

// FieldError describes a problem with one event field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every problem found on an event.
type ValidationError struct {
	EventID string
	Fields  []FieldError
	Err     error // optional underlying cause, e.g. a schema failure
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(ErrMalformedEvent.Error())
	if e.EventID != "" {
		fmt.Fprintf(&b, " %q", e.EventID)
	}
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			parts = append(parts, f.Field+": "+f.Message)
		}
		b.WriteString(": ")
		b.WriteString(strings.Join(parts, "; "))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Is matches ErrMalformedEvent so callers can use errors.Is.
func (e *ValidationError) Is(target error) bool {
	return target == ErrMalformedEvent
}

func (e *ValidationError) Unwrap() error { return e.Err }
