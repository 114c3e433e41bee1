// Package workdir manages the per-run working directory. Its layout is
// the resume contract for update mode: every artifact is named by slide
// index, so a partial re-run can overwrite files in place.
package workdir

import (
	"fmt"
	"os"
	"path/filepath"
)

// Dir is the working directory of one conversion run.
//
//	<root>/
//	  slides/   slide_<i>.png
//	  audio/    audio_<i>.wav, audio_<i>.m4a
//	  video/    video_<i>.<container>
//	  silence.wav
//	  concat.txt
type Dir struct {
	Root   string
	reused bool
}

// Create makes a fresh temporary working directory with the three
// artifact subdirectories.
func Create() (*Dir, error) {
	root, err := os.MkdirTemp("", "slidecast-*")
	if err != nil {
		return nil, fmt.Errorf("create working directory: %w", err)
	}

	d := &Dir{Root: root}
	for _, dir := range []string{d.SlideDir(), d.AudioDir(), d.VideoDir()} {
		if err := os.Mkdir(dir, 0755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return d, nil
}

// Reuse wraps a previous run's working directory for update mode. The
// directory is taken as-is; nothing is recreated or cleared.
func Reuse(root string) (*Dir, error) {
	d := &Dir{Root: root, reused: true}
	for _, dir := range []string{root, d.SlideDir(), d.AudioDir(), d.VideoDir()} {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("reuse working directory: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("reuse working directory: %s is not a directory", dir)
		}
	}
	return d, nil
}

// Reused reports whether this directory came from a previous run.
func (d *Dir) Reused() bool { return d.reused }

func (d *Dir) SlideDir() string { return filepath.Join(d.Root, "slides") }
func (d *Dir) AudioDir() string { return filepath.Join(d.Root, "audio") }
func (d *Dir) VideoDir() string { return filepath.Join(d.Root, "video") }

// SilenceFile is the shared silence segment generated once per run.
func (d *Dir) SilenceFile() string { return filepath.Join(d.Root, "silence.wav") }

// ManifestFile is the concat demuxer input listing the per-slide clips.
func (d *Dir) ManifestFile() string { return filepath.Join(d.Root, "concat.txt") }

// SlideImage is the rasterized slide for the given index.
func (d *Dir) SlideImage(index int) string {
	return filepath.Join(d.SlideDir(), fmt.Sprintf("slide_%d.png", index))
}

// RawAudio is the synthesized speech before padding.
func (d *Dir) RawAudio(index int) string {
	return filepath.Join(d.AudioDir(), fmt.Sprintf("audio_%d.wav", index))
}

// PaddedAudio is the silence-padded, AAC-encoded narration track.
func (d *Dir) PaddedAudio(index int) string {
	return filepath.Join(d.AudioDir(), fmt.Sprintf("audio_%d.m4a", index))
}

// Clip is the per-slide video in the output container format.
func (d *Dir) Clip(index int, container string) string {
	return filepath.Join(d.VideoDir(), fmt.Sprintf("video_%d.%s", index, container))
}
