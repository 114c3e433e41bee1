package describer

import "context"

// Describer turns a narration script into a short publishable video
// description.
type Describer interface {
	Describe(ctx context.Context, narration string) (string, error)
}
