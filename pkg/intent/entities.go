package intent

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmoraisb/maitred/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Seed holds slot values the router extracted from the initial
// utterance. Absent values stay empty; the waterfall will prompt for
// them.
type Seed struct {
	Time      string
	PartySize string
}

// dateLayouts are the formats accepted for a resolved date-time value.
var dateLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339,
}

const (
	dateOnlyLayout = "2006-01-02"
	slotTimeLayout = "2006-01-02 15:04"
)

// NormalizeTime converts a date-time entity value into the string
// stored in the time slot.
//
// Structured values ({date, time}) are resolved to "2006-01-02 15:04";
// a missing clock component defaults to midnight. Unparseable resolved
// values yield ok=false so the slot remains absent and the dialog still
// prompts for it. Plain non-empty strings pass through untouched as
// natural-language time.
func NormalizeTime(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return "", false
		}
		if normalized, ok := normalizeResolved(v, ""); ok {
			return normalized, true
		}
		return v, true
	case domain.DateTimeValue:
		return normalizeStructured(v)
	case *domain.DateTimeValue:
		if v == nil {
			return "", false
		}
		return normalizeStructured(*v)
	case map[string]any:
		var dt domain.DateTimeValue
		if err := mapstructure.Decode(v, &dt); err != nil {
			return "", false
		}
		return normalizeStructured(dt)
	}
	return "", false
}

func normalizeStructured(dt domain.DateTimeValue) (string, bool) {
	if normalized, ok := normalizeResolved(strings.TrimSpace(dt.Date), strings.TrimSpace(dt.Time)); ok {
		return normalized, true
	}
	// Reject unparseable resolutions; fall back to the surface text
	// when the recognizer kept it.
	if text := strings.TrimSpace(dt.Text); text != "" {
		return text, true
	}
	return "", false
}

// normalizeResolved parses a machine-resolved date (and optional clock)
// into the canonical slot format.
func normalizeResolved(date, clock string) (string, bool) {
	if date == "" {
		return "", false
	}

	if clock != "" {
		if t, err := time.Parse(slotTimeLayout, date+" "+clock); err == nil {
			return t.Format(slotTimeLayout), true
		}
		return "", false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format(slotTimeLayout), true
		}
	}

	// Date without a clock component defaults to midnight.
	if t, err := time.Parse(dateOnlyLayout, date); err == nil {
		return t.Format(slotTimeLayout), true
	}
	return "", false
}

// NormalizePartySize converts a party-size entity value into the string
// stored in the slot. Valid iff it represents a non-negative integer.
func NormalizePartySize(value any) (string, bool) {
	var raw string
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		raw = strings.TrimSpace(v)
	case int:
		raw = strconv.Itoa(v)
	case int64:
		raw = strconv.FormatInt(v, 10)
	case float64:
		if v != float64(int64(v)) {
			return "", false
		}
		raw = strconv.FormatInt(int64(v), 10)
	default:
		raw = strings.TrimSpace(fmt.Sprintf("%v", value))
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return "", false
	}
	return raw, true
}

// SeedFromEntities extracts whatever reservation slots the recognition
// result already answered.
func SeedFromEntities(entities map[string]any) Seed {
	var seed Seed
	if v, ok := NormalizeTime(entities[domain.EntityDateTime]); ok {
		seed.Time = v
	}
	if v, ok := NormalizePartySize(entities[domain.EntityPartySize]); ok {
		seed.PartySize = v
	}
	return seed
}
