package converter

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/nguyentantai21042004/slidecast/internal/document"
	"github.com/nguyentantai21042004/slidecast/internal/workdir"
)

// processSlide runs the five per-slide steps: notes extraction,
// pronunciation substitution, image export, speech synthesis, and
// audio padding + clip composition.
func (c *implConverter) processSlide(ctx context.Context, doc document.Document, dir *workdir.Dir, index int, container string, stats *Stats) error {
	c.logger.Info(ctx, "Processing slide %d", index)

	text, err := doc.NotesText(index)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		// A normal outcome, not an error: the slide just has nothing to
		// narrate, so it contributes no artifacts at all.
		c.logger.Info(ctx, "  Skipping slide %d because no note text found", index)
		return nil
	}

	text = normalize(text)
	text = c.opts.Mapping.Apply(text)
	stats.TotalChars += utf8.RuneCountInString(text)

	c.logger.Info(ctx, "  Exporting slide %d as image", index)
	imagePath := dir.SlideImage(index)
	if err := doc.ExportImage(ctx, index, imagePath, c.opts.VideoWidth, c.opts.VideoHeight); err != nil {
		return fmt.Errorf("export slide %d image: %w", index, err)
	}

	c.logger.Info(ctx, "  Synthesizing audio of slide %d", index)
	rawAudio := dir.RawAudio(index)
	if err := c.engine.SynthesizeToFile(ctx, text, rawAudio); err != nil {
		return err
	}
	// Recorded only once synthesis succeeded: the transcript and the
	// description cover what was actually narrated.
	stats.Narrations = append(stats.Narrations, Narration{Index: index, Text: text})

	paddedAudio := dir.PaddedAudio(index)
	if err := c.padAudio(ctx, dir.SilenceFile(), rawAudio, paddedAudio); err != nil {
		return fmt.Errorf("pad audio of slide %d: %w", index, err)
	}

	c.logger.Info(ctx, "  Creating video of slide %d with synthesized audio and slide image", index)
	clipPath := dir.Clip(index, container)
	if err := c.composeClip(ctx, imagePath, paddedAudio, clipPath); err != nil {
		return fmt.Errorf("compose clip of slide %d: %w", index, err)
	}

	stats.Clips = append(stats.Clips, clipPath)
	return nil
}

// normalize collapses newlines and carriage returns to spaces and trims
// the result, so synthesized speech flows as one continuous narration.
func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.TrimSpace(text)
}

// padAudio concatenates [silence, speech, silence] into one AAC track.
func (c *implConverter) padAudio(ctx context.Context, silence, speech, out string) error {
	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", silence,
		"-i", speech,
		"-i", silence,
		"-filter_complex", "[0:0][1:0][2:0]concat=n=3:v=0:a=1[a]",
		"-map", "[a]",
		"-c:a", c.cfg.FFmpeg.AudioCodec,
		out,
	}

	if _, err := c.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return fmt.Errorf("ffmpeg pad audio: %w", err)
	}
	return nil
}

// composeClip muxes the still slide image with the padded narration,
// holding the image for the audio's duration at a low fixed frame rate.
func (c *implConverter) composeClip(ctx context.Context, image, audio, out string) error {
	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-loop", "1",
		"-framerate", strconv.Itoa(c.cfg.FFmpeg.FrameRate),
		"-i", image,
		"-i", audio,
		"-c:v", c.cfg.FFmpeg.VideoCodec,
		"-tune", c.cfg.FFmpeg.Tune,
		"-pix_fmt", "yuv420p",
		"-c:a", "copy",
		"-shortest",
		out,
	}

	if _, err := c.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return fmt.Errorf("ffmpeg compose clip: %w", err)
	}
	return nil
}
