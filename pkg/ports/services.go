package ports

import (
	"context"

	"github.com/dmoraisb/maitred/pkg/domain"
)

// Recognizer classifies a user utterance into an intent plus extracted
// entities. A nil result (or an error) is treated by the bot as "no
// intent" and routed to the fallback tier, never as a turn failure.
type Recognizer interface {
	Recognize(ctx context.Context, utterance string) (*domain.RecognitionResult, error)
}

// Answer is one knowledge-base hit, ordered by descending confidence.
type Answer struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Answerer is the knowledge-base collaborator consulted when no intent
// matches confidently. An empty or nil slice means "no answer".
type Answerer interface {
	Answers(ctx context.Context, question string) ([]Answer, error)
}

// SpeechGenerator turns reply text into speech markup for a language
// tag. It is a pure formatting transform; failures degrade to plain
// text, they never fail the turn.
type SpeechGenerator interface {
	Generate(text, languageTag string) (string, error)
}
