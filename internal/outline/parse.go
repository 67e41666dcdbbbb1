package outline

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ErrBadOutline is returned when the model's completion cannot be parsed
// into the expected outline shape, even after repair.
var ErrBadOutline = errors.New("outline: model response is not a parseable outline")

// outlineDocument is the structured document the model is asked to return.
type outlineDocument struct {
	Slides []Slide `json:"slides"`
}

// parseOutline turns a model completion into a slide list. Providers are
// asked for strict JSON, but that enforcement is not trusted: the raw text
// is parsed locally, and near-JSON (code fences, trailing commas, single
// quotes) is repaired before giving up. A document without a "slides"
// field parses to an empty slide list; an empty deck is a valid result.
func parseOutline(raw string) ([]Slide, error) {
	cleaned := stripCodeFence(raw)

	var doc outlineDocument
	if err := json.Unmarshal([]byte(cleaned), &doc); err == nil {
		return normalizeSlides(doc.Slides), nil
	}

	repaired, err := jsonrepair.JSONRepair(cleaned)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadOutline, err)
	}
	if err := json.Unmarshal([]byte(repaired), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadOutline, err)
	}
	return normalizeSlides(doc.Slides), nil
}

// stripCodeFence removes a surrounding Markdown code fence, which several
// models emit around JSON even when asked not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop an optional language tag such as "json" on the fence line.
	if idx := strings.IndexByte(s, '\n'); idx != -1 {
		first := strings.TrimSpace(s[:idx])
		if len(first) <= 10 && !strings.ContainsAny(first, "{}[]") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// normalizeSlides guarantees every slide has a non-nil bullet list so the
// JSON representation stays `"content": []` rather than null.
func normalizeSlides(slides []Slide) []Slide {
	if slides == nil {
		return []Slide{}
	}
	for i := range slides {
		if slides[i].Content == nil {
			slides[i].Content = []string{}
		}
	}
	return slides
}
