package converter

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nguyentantai21042004/slidecast/internal/workdir"
)

// assemble concatenates the per-slide clips into the output container.
// Fresh runs write the manifest from this invocation's clips; update
// runs reuse the previous manifest unmodified, relying on the clips
// having been overwritten in place at their deterministic paths.
func (c *implConverter) assemble(ctx context.Context, dir *workdir.Dir, clips []string) error {
	if !dir.Reused() {
		if err := writeManifest(dir.ManifestFile(), clips); err != nil {
			return err
		}
	}

	c.logger.Info(ctx, "Creating full video by concatenating all slide videos")
	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-f", "concat",
		"-safe", "0",
		"-i", dir.ManifestFile(),
		"-c", "copy",
		c.opts.OutputPath,
	}

	if _, err := c.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return fmt.Errorf("ffmpeg concatenate clips: %w", err)
	}
	return nil
}

// writeManifest emits the concat demuxer input, one clip per line.
func writeManifest(path string, clips []string) error {
	var b strings.Builder
	for _, clip := range clips {
		fmt.Fprintf(&b, "file '%s'\n", clip)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write concat manifest: %w", err)
	}
	return nil
}
