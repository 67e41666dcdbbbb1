// Package outline defines the presentation outline model and the generator
// that produces outlines from free-form text via an AI provider.
package outline

import "time"

// Slide is one unit of presentation content: a title, ordered bullet
// points, and an optional illustrative image reference.
type Slide struct {
	Title    string   `json:"title"`
	Content  []string `json:"content"`
	ImageURL string   `json:"imageUrl,omitempty"`
}

// Presentation is the generated artifact for one request. Records are
// immutable once created; the id is the external handle for fetch and
// download.
type Presentation struct {
	ID          string    `json:"id"`
	Slides      []Slide   `json:"slides"`
	Theme       string    `json:"theme"`
	CreatedAt   time.Time `json:"createdAt"`
	DownloadURL string    `json:"downloadUrl"`
}

// Default option values, applied when a request leaves them unset.
const (
	DefaultSlideCount = 10
)

// Options is the per-request generation configuration. Zero values mean
// "use the default". IncludeImages is accepted for API compatibility but
// currently has no effect; see Generator.Generate.
type Options struct {
	Theme         string `json:"theme,omitempty"`
	SlideCount    int    `json:"slideCount,omitempty"`
	IncludeImages *bool  `json:"includeImages,omitempty"`
}
