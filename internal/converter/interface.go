package converter

import (
	"context"

	"github.com/nguyentantai21042004/slidecast/internal/pronounce"
)

// Converter runs one deck-to-video conversion.
type Converter interface {
	Convert(ctx context.Context) (*Stats, error)
}

// Options is the immutable configuration of a single run.
type Options struct {
	DeckPath   string
	OutputPath string
	// Selection is the raw --slides string; empty means all slides.
	Selection string
	// Silence is the padding in seconds before and after each slide's
	// narration.
	Silence     float64
	VideoWidth  int
	VideoHeight int
	// UpdateDir is a previous run's working directory. When set, only
	// the selected slides' artifacts are regenerated and the existing
	// concat manifest is reused as-is.
	UpdateDir string
	// QuitAfter discards the document's render cache on close.
	QuitAfter bool
	Mapping   *pronounce.Mapping
}

// Narration is the synthesized text of one slide, post-substitution.
type Narration struct {
	Index int
	Text  string
}

// Stats summarizes a finished run.
type Stats struct {
	// TotalChars counts the characters sent to the speech engine.
	TotalChars int
	// Clips lists the per-slide videos produced by this invocation, in
	// slide order.
	Clips []string
	// Narrations holds the narrated slides' final text, feeding the
	// transcript and description writers.
	Narrations []Narration
	// WorkDir is the working directory, kept after the run.
	WorkDir string
}
