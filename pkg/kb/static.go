// Package kb provides a static, keyword-scored knowledge base backing
// the fallback tier. Entries are loaded from YAML; a small built-in
// catalog is embedded for out-of-the-box runs.
package kb

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	_ "embed"

	"github.com/dmoraisb/maitred/pkg/ports"
	"gopkg.in/yaml.v3"
)

//go:embed kb.yaml
var defaultCatalog []byte

// Entry is one question/answer pair. Keywords drive matching; when
// omitted, the question's words are used.
type Entry struct {
	Question string   `yaml:"question"`
	Answer   string   `yaml:"answer"`
	Keywords []string `yaml:"keywords,omitempty"`
}

// Static implements ports.Answerer over a fixed entry list.
type Static struct {
	entries []Entry
}

// New creates a Static knowledge base from entries.
func New(entries []Entry) *Static {
	return &Static{entries: entries}
}

// NewDefault loads the embedded catalog.
func NewDefault() (*Static, error) {
	return parse(defaultCatalog)
}

// NewFromFile loads a catalog from a YAML file.
func NewFromFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read kb catalog: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Static, error) {
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse kb catalog: %w", err)
	}
	return New(entries), nil
}

// Answers scores every entry against the question's words and returns
// the hits ordered by descending confidence. An empty slice means no
// answer; the caller falls through to its generic reply.
func (s *Static) Answers(ctx context.Context, question string) ([]ports.Answer, error) {
	words := tokenize(question)
	if len(words) == 0 {
		return nil, nil
	}

	var answers []ports.Answer
	for _, entry := range s.entries {
		keywords := entry.Keywords
		if len(keywords) == 0 {
			for w := range tokenize(entry.Question) {
				keywords = append(keywords, w)
			}
		}
		score := overlap(words, keywords)
		if score > 0 {
			answers = append(answers, ports.Answer{Text: entry.Answer, Score: score})
		}
	}

	sort.SliceStable(answers, func(i, j int) bool {
		return answers[i].Score > answers[j].Score
	})
	return answers, nil
}

func tokenize(s string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		w = strings.Trim(w, ".,!?;:\"'")
		if len(w) > 2 {
			words[w] = true
		}
	}
	return words
}

// overlap is the fraction of keywords present in the question.
func overlap(words map[string]bool, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	hits := 0
	for _, k := range keywords {
		if words[strings.ToLower(k)] {
			hits++
		}
	}
	return float64(hits) / float64(len(keywords))
}
