package converter

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nguyentantai21042004/slidecast/internal/slides"
	"github.com/nguyentantai21042004/slidecast/internal/speech"
	"github.com/nguyentantai21042004/slidecast/internal/workdir"
)

// Convert runs the whole pipeline: open the deck, generate the silence
// segment, process each selected slide in order, then concatenate the
// clips into the output container. Slides are strictly sequential;
// every external invocation blocks until it completes.
func (c *implConverter) Convert(ctx context.Context) (*Stats, error) {
	startTime := time.Now()

	container := strings.TrimPrefix(filepath.Ext(c.opts.OutputPath), ".")
	if container == "" {
		return nil, fmt.Errorf("output file %s has no extension to derive the container format from", c.opts.OutputPath)
	}

	dir, err := c.openWorkDir()
	if err != nil {
		return nil, err
	}

	doc, err := c.docs.Open(ctx, c.opts.DeckPath, dir.Root)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := doc.Close(c.opts.QuitAfter); err != nil {
			c.logger.Warn(ctx, "Failed to close presentation: %v", err)
		}
	}()

	selected, err := c.selectSlides(doc.SlideCount())
	if err != nil {
		return nil, err
	}

	c.logger.Info(ctx, "Generating %g seconds silence audio file", c.opts.Silence)
	if err := c.generateSilence(ctx, dir); err != nil {
		return nil, err
	}

	stats := &Stats{WorkDir: dir.Root}

	for _, index := range selected {
		if err := c.processSlide(ctx, doc, dir, index, container, stats); err != nil {
			var cancel *speech.CancellationError
			if errors.As(err, &cancel) {
				c.logger.Warn(ctx, "Speech synthesis canceled: %s", cancel.Reason)
				if cancel.Detail != "" {
					c.logger.Error(ctx, "Error details: %s. Did you set the speech resource key and region values?", cancel.Detail)
				}
				// Fail fast: stop synthesizing further slides and
				// assemble whatever was produced so far.
				break
			}
			return nil, err
		}
	}

	if len(stats.Clips) == 0 {
		verb := "created"
		if dir.Reused() {
			verb = "updated"
		}
		c.logger.Info(ctx, "No slide videos %s, exiting", verb)
		return stats, nil
	}

	if err := c.assemble(ctx, dir, stats.Clips); err != nil {
		return nil, err
	}

	c.logger.Info(ctx, "Total characters synthesized: %d", stats.TotalChars)
	c.logger.Info(ctx, "Temporary files kept in %s", dir.Root)
	c.logger.Info(ctx, "Done in %s", time.Since(startTime).Round(time.Second))

	return stats, nil
}

// openWorkDir creates a fresh working directory, or reuses the previous
// run's in update mode.
func (c *implConverter) openWorkDir() (*workdir.Dir, error) {
	if c.opts.UpdateDir != "" {
		return workdir.Reuse(c.opts.UpdateDir)
	}
	return workdir.Create()
}

func (c *implConverter) selectSlides(slideCount int) ([]int, error) {
	if c.opts.Selection == "" {
		return slides.All(slideCount), nil
	}
	return slides.Parse(c.opts.Selection)
}

// generateSilence renders the shared silence segment at the speech
// sample rate, so the later 3-way concat sees uniform inputs.
func (c *implConverter) generateSilence(ctx context.Context, dir *workdir.Dir) error {
	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-f", "lavfi",
		"-i", fmt.Sprintf("anullsrc=r=%d:cl=mono", c.cfg.Speech.SampleRate),
		"-t", strconv.FormatFloat(c.opts.Silence, 'f', -1, 64),
		"-c:a", "pcm_s16le",
		dir.SilenceFile(),
	}

	if _, err := c.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return fmt.Errorf("ffmpeg generate silence: %w", err)
	}
	return nil
}
