package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ExportImage rasterizes one slide. The deck is converted to PDF once
// per open (LibreOffice has no per-slide image export), then the
// requested page is rendered with pdftoppm at the exact pixel geometry.
func (d *pptxDocument) ExportImage(ctx context.Context, index int, target string, width, height int) error {
	if index < 1 || index > len(d.slideParts) {
		return fmt.Errorf("invalid slide index %d: presentation has %d slides", index, len(d.slideParts))
	}

	pdfPath, err := d.ensurePDF(ctx)
	if err != nil {
		return err
	}

	// Replace, never fail on, a leftover image from a previous run.
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stale slide image %s: %w", target, err)
	}

	// pdftoppm pads page numbers in its output names, so render into an
	// isolated directory and take whatever single file appears.
	pageDir, err := os.MkdirTemp("", "slidecast-page-*")
	if err != nil {
		return fmt.Errorf("create page render dir: %w", err)
	}
	defer os.RemoveAll(pageDir)

	prefix := filepath.Join(pageDir, "page")
	page := strconv.Itoa(index)
	args := []string{
		"-png",
		"-f", page,
		"-l", page,
		"-scale-to-x", strconv.Itoa(width),
		"-scale-to-y", strconv.Itoa(height),
		pdfPath,
		prefix,
	}

	if _, err := d.executor.Execute(ctx, "pdftoppm", args...); err != nil {
		return fmt.Errorf("pdftoppm render slide %d: %w", index, err)
	}

	rendered, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return err
	}
	if len(rendered) != 1 {
		return fmt.Errorf("pdftoppm produced %d files for slide %d, expected 1", len(rendered), index)
	}

	if err := os.Rename(rendered[0], target); err != nil {
		// Rename fails across filesystems; fall back to a copy.
		if err := copyFile(rendered[0], target); err != nil {
			return fmt.Errorf("place slide image %s: %w", target, err)
		}
	}

	return nil
}

// ensurePDF converts the deck to PDF in the cache directory, reusing a
// cached conversion if it is newer than the deck itself.
func (d *pptxDocument) ensurePDF(ctx context.Context) (string, error) {
	pdfPath := d.cachedPDFPath()

	deckInfo, err := os.Stat(d.path)
	if err != nil {
		return "", fmt.Errorf("stat presentation: %w", err)
	}
	if pdfInfo, err := os.Stat(pdfPath); err == nil && pdfInfo.ModTime().After(deckInfo.ModTime()) {
		d.logger.Debug(ctx, "Reusing cached PDF: %s", pdfPath)
		return pdfPath, nil
	}

	soffice, err := d.executor.LookPath("soffice")
	if err != nil {
		return "", fmt.Errorf("LibreOffice is required for slide export: %w", err)
	}

	d.logger.Info(ctx, "Converting presentation to PDF for slide export")
	args := []string{
		"--headless",
		"--convert-to", "pdf",
		"--outdir", d.cacheDir,
		d.path,
	}
	if _, err := d.executor.Execute(ctx, soffice, args...); err != nil {
		return "", fmt.Errorf("soffice convert to pdf: %w", err)
	}

	if _, err := os.Stat(pdfPath); err != nil {
		return "", fmt.Errorf("expected PDF not produced at %s: %w", pdfPath, err)
	}
	return pdfPath, nil
}

func (d *pptxDocument) cachedPDFPath() string {
	base := filepath.Base(d.path)
	return filepath.Join(d.cacheDir, strings.TrimSuffix(base, filepath.Ext(base))+".pdf")
}

func (d *pptxDocument) discardRenderCache() {
	if err := os.Remove(d.cachedPDFPath()); err != nil && !os.IsNotExist(err) {
		d.logger.Warn(context.Background(), "Failed to remove cached PDF: %v", err)
	}
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("write destination: %w", err)
	}
	return nil
}
