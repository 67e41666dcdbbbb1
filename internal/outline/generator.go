package outline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"deckgen/internal/theme"
)

// ErrNoContent is returned when the model call succeeds but produces an
// empty completion.
var ErrNoContent = errors.New("outline: no content produced")

// SlideSource is the structured-generation capability the generator needs
// from the AI layer. The implementation is expected to request strict JSON
// from the provider, but the result is re-validated here regardless.
type SlideSource interface {
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Store is the persistence the generator needs: write-once inserts of
// finished outlines. The read side and the backend implementations live
// in the store package.
type Store interface {
	Put(ctx context.Context, p *Presentation) error
}

// Generator turns free-form text into stored presentation outlines.
type Generator struct {
	source SlideSource
	store  Store
}

// NewGenerator creates a generator that calls source for slide structure
// and writes finished outlines to st.
func NewGenerator(source SlideSource, st Store) *Generator {
	return &Generator{source: source, store: st}
}

// systemPromptTemplate instructs the model to restructure text into slides.
// The response shape is spelled out explicitly; providers that support a
// JSON output mode get it enabled on top of this.
const systemPromptTemplate = `You are a presentation specialist. You create high-quality presentations from text.
Create slides in the following theme: %s
Aim for approximately %d slides.
Each slide must have a title and a list of content bullet points.
Return the result as a single JSON object in exactly this format:
{
  "slides": [
    {
      "title": "Slide title",
      "content": ["Content item 1", "Content item 2"]
    }
  ]
}`

// Generate produces a presentation outline from raw text, stores it, and
// returns the stored record. Unset or unknown themes fall back to the
// default theme; a non-positive slide count falls back to
// DefaultSlideCount. The IncludeImages option is accepted but inert: no
// image generation backend is wired, so ImageURL is never populated here.
func (g *Generator) Generate(ctx context.Context, text string, opts Options) (*Presentation, error) {
	themeName := opts.Theme
	if themeName == "" || !theme.Known(themeName) {
		themeName = theme.DefaultName
	}
	slideCount := opts.SlideCount
	if slideCount <= 0 {
		slideCount = DefaultSlideCount
	}

	systemPrompt := fmt.Sprintf(systemPromptTemplate, themeName, slideCount)

	start := time.Now()
	completion, err := g.source.GenerateJSON(ctx, systemPrompt, text)
	if err != nil {
		return nil, fmt.Errorf("outline: generate: %w", err)
	}
	if strings.TrimSpace(completion) == "" {
		return nil, ErrNoContent
	}

	slides, err := parseOutline(completion)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	p := &Presentation{
		ID:          id,
		Slides:      slides,
		Theme:       themeName,
		CreatedAt:   time.Now().UTC(),
		DownloadURL: fmt.Sprintf("/%s/download", id),
	}

	if err := g.store.Put(ctx, p); err != nil {
		return nil, fmt.Errorf("outline: store: %w", err)
	}

	slog.Info("outline generated",
		"id", p.ID,
		"theme", p.Theme,
		"slides", len(p.Slides),
		"duration", time.Since(start).String(),
	)
	return p, nil
}
