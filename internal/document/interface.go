package document

import "context"

// Service opens presentation documents. It is the capability boundary
// around the slide deck: the converter only ever sees this interface.
type Service interface {
	// Open opens a deck. cacheDir is where the implementation may keep
	// intermediate rendering artifacts between runs.
	Open(ctx context.Context, path, cacheDir string) (Document, error)
}

// Document is an open slide deck. Slide indices are 1-based; an
// out-of-range index is an error at the call site, not at selection
// time.
type Document interface {
	// SlideCount returns the number of slides in presentation order.
	SlideCount() int
	// NotesText returns the speaker notes body text of a slide. A slide
	// without notes yields "".
	NotesText(index int) (string, error)
	// ExportImage rasterizes a slide to a PNG file at the given pixel
	// geometry, replacing any file already at the target path.
	ExportImage(ctx context.Context, index int, target string, width, height int) error
	// Close releases the document. With discardCache the intermediate
	// rendering artifacts are removed instead of kept for the next run.
	Close(discardCache bool) error
}
