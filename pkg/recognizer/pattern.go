// Package recognizer provides an offline, pattern-based implementation
// of the Recognizer port. It covers the bot's small intent surface well
// enough for local runs and tests; production deployments swap in a
// cloud NLU service behind the same interface.
package recognizer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/dmoraisb/maitred/pkg/domain"
)

var (
	reReserve    = regexp.MustCompile(`(?i)\b(reserve|reservation|book)\b`)
	reMenu       = regexp.MustCompile(`(?i)\b(menu|dishes|serving|eat)\b`)
	rePromotions = regexp.MustCompile(`(?i)\b(promotions?|promo|specials?|deals?|offers?)\b`)

	// "for 2", "party of 6", "4 people" -- but never "for tomorrow" or "7pm".
	rePartyOf = regexp.MustCompile(`(?i)\b(?:for|party of)\s+(\d+)(?:\s|$|[^\dapm])`)
	rePeople  = regexp.MustCompile(`(?i)\b(\d+)\s+(?:people|persons|guests|pax)\b`)
	reDayTime = regexp.MustCompile(`(?i)\b(today|tonight|tomorrow)\b(?:\s+(?:at\s+)?(\d{1,2})(?::(\d{2}))?\s*(am|pm)?)?`)
	reClock   = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`)
	reISODate = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})(?:[ T](\d{2}:\d{2}))?\b`)
)

// Pattern is a regexp-driven Recognizer.
type Pattern struct{}

// New creates a Pattern recognizer.
func New() *Pattern {
	return &Pattern{}
}

// Recognize classifies the utterance and extracts reservation entities.
// It never fails; utterances that match nothing yield the None intent
// with a zero score, which the router treats as fallback.
func (p *Pattern) Recognize(ctx context.Context, utterance string) (*domain.RecognitionResult, error) {
	res := &domain.RecognitionResult{
		TopIntent: domain.IntentNone,
		Entities:  map[string]any{},
	}

	switch {
	case reReserve.MatchString(utterance):
		res.TopIntent = domain.IntentReserveTable
		res.Score = 0.9
	case reMenu.MatchString(utterance):
		res.TopIntent = domain.IntentShowMenu
		res.Score = 0.85
	case rePromotions.MatchString(utterance):
		res.TopIntent = domain.IntentPromotions
		res.Score = 0.85
	}

	if size, ok := extractPartySize(utterance); ok {
		res.Entities[domain.EntityPartySize] = size
	}
	if dt, ok := extractDateTime(utterance); ok {
		res.Entities[domain.EntityDateTime] = dt
	}

	return res, nil
}

func extractPartySize(utterance string) (string, bool) {
	if m := rePeople.FindStringSubmatch(utterance); m != nil {
		return m[1], true
	}
	if m := rePartyOf.FindStringSubmatch(utterance); m != nil {
		return m[1], true
	}
	return "", false
}

// extractDateTime returns either a structured value (ISO dates) or the
// natural-language phrase ("tomorrow 19:00").
func extractDateTime(utterance string) (any, bool) {
	if m := reISODate.FindStringSubmatch(utterance); m != nil {
		return domain.DateTimeValue{Date: m[1], Time: m[2], Text: m[0]}, true
	}

	if m := reDayTime.FindStringSubmatch(utterance); m != nil {
		day := strings.ToLower(m[1])
		if m[2] == "" {
			return day, true
		}
		return fmt.Sprintf("%s %s", day, to24h(m[2], m[3], m[4])), true
	}

	if m := reClock.FindStringSubmatch(utterance); m != nil {
		return to24h(m[1], m[2], m[3]), true
	}

	return nil, false
}

// to24h renders hour/minute/meridiem captures as "HH:MM".
func to24h(hour, minute, meridiem string) string {
	h := 0
	fmt.Sscanf(hour, "%d", &h)
	switch strings.ToLower(meridiem) {
	case "pm":
		if h < 12 {
			h += 12
		}
	case "am":
		if h == 12 {
			h = 0
		}
	}
	if minute == "" {
		minute = "00"
	}
	return fmt.Sprintf("%02d:%s", h, minute)
}
