package domain

// Intent is the name of a recognized user intention. Exactly one top
// intent is considered per turn; there is no secondary-intent handling.
type Intent string

const (
	IntentReserveTable Intent = "ReserveTable"
	IntentShowMenu     Intent = "ShowMenu"
	IntentPromotions   Intent = "Promotions"
	IntentNone         Intent = "None"
)

// Entity keys attached to a recognition result.
const (
	EntityDateTime  = "datetime"
	EntityPartySize = "party_size"
)

// RecognitionResult is the ephemeral output of the external recognizer
// for a single turn. It is consumed once by the intent router and never
// persisted.
type RecognitionResult struct {
	// TopIntent is the highest-scoring intent name.
	TopIntent Intent `json:"top_intent"`

	// Score is the recognizer's confidence in TopIntent, 0..1.
	Score float64 `json:"score"`

	// Entities maps entity names to extracted values. Values may be
	// plain strings or structured maps (see DateTimeValue).
	Entities map[string]any `json:"entities,omitempty"`
}

// DateTimeValue is the structured shape a recognizer may use for a
// date-time entity. Time may be empty when the utterance carried no
// clock component; the router then defaults it to midnight.
type DateTimeValue struct {
	Date string `json:"date" mapstructure:"date"`
	Time string `json:"time,omitempty" mapstructure:"time"`
	Text string `json:"text,omitempty" mapstructure:"text"`
}
