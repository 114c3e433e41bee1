package speech

import (
	"context"
	"fmt"
)

// Engine converts narration text into a speech audio file.
type Engine interface {
	// SynthesizeToFile writes synthesized speech for text to a WAV file
	// at path. A *CancellationError signals the service refused the
	// request; the pipeline stops synthesizing further slides but still
	// assembles the clips produced so far.
	SynthesizeToFile(ctx context.Context, text, path string) error
}

// CancellationError reports a synthesis run the service cancelled, with
// the service's error detail when it supplied one.
type CancellationError struct {
	Reason string
	Detail string
}

func (e *CancellationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("speech synthesis canceled: %s: %s", e.Reason, e.Detail)
	}
	return fmt.Sprintf("speech synthesis canceled: %s", e.Reason)
}
