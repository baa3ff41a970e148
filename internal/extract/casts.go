package extract

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Cast names the conversion applied to a field's raw text content.
type Cast string

const (
	// CastNone keeps the raw text.
	CastNone Cast = ""
	// CastInt parses a base-10 integer.
	CastInt Cast = "int"
	// CastBool maps the literals "true"/"false", case-insensitively.
	CastBool Cast = "bool"
	// CastDateTime parses a full ISO-8601 timestamp with timezone.
	CastDateTime Cast = "datetime"
	// CastDate parses a calendar date with no time of day. Exchange renders
	// recurrence end dates with a trailing zone designator ("2016-05-20Z")
	// that carries no meaning for a whole-day value, so it is dropped.
	CastDate Cast = "date"
)

const dateLayout = "2006-01-02"

func convert(raw string, cast Cast) (any, error) {
	switch cast {
	case CastNone:
		return raw, nil
	case CastInt:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("parse int %q: %w", raw, err)
		}
		return n, nil
	case CastBool:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("parse bool: unexpected literal %q", raw)
	case CastDateTime:
		ts, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("parse timestamp %q: %w", raw, err)
		}
		return ts, nil
	case CastDate:
		trimmed := strings.TrimSuffix(strings.TrimSpace(raw), "Z")
		d, err := time.Parse(dateLayout, trimmed)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", raw, err)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown cast %q", cast)
	}
}

// Time returns the field as a time.Time, or the zero time when absent. Used
// for both datetime and date casts.
func (v Values) Time(key string) time.Time {
	ts, _ := v[key].(time.Time)
	return ts
}
