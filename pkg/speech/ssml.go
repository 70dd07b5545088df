// Package speech renders reply text as SSML speech markup. It is a
// pure formatting transform: no state, no network, and failures always
// degrade to plain text at the call site.
package speech

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"
)

// DefaultLanguage is used when the turn carries no locale.
const DefaultLanguage = "en-US"

// languageTag matches BCP 47-shaped tags ("en", "en-US", "pt-BR").
var languageTag = regexp.MustCompile(`^[a-zA-Z]{2,3}(-[a-zA-Z0-9]{2,8})*$`)

// SSML implements ports.SpeechGenerator.
type SSML struct{}

// New creates an SSML generator.
func New() *SSML {
	return &SSML{}
}

// Generate wraps text in a minimal SSML document for the language tag.
// An empty tag falls back to DefaultLanguage; a malformed one is an
// error, which callers treat as "speak the plain text".
func (SSML) Generate(text, tag string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty text")
	}
	if tag == "" {
		tag = DefaultLanguage
	}
	if !languageTag.MatchString(tag) {
		return "", fmt.Errorf("invalid language tag %q", tag)
	}

	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(text)); err != nil {
		return "", fmt.Errorf("escape text: %w", err)
	}

	return fmt.Sprintf(
		`<speak version="1.0" xmlns="http://www.w3.org/2001/10/synthesis" xml:lang=%q>%s</speak>`,
		tag, buf.String(),
	), nil
}
