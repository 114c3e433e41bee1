// Package transcript writes the narration script of a conversion run to
// a .docx file, one section per narrated slide.
package transcript

import (
	"fmt"

	"github.com/gomutex/godocx"

	"github.com/nguyentantai21042004/slidecast/internal/converter"
)

const (
	fontName = "Calibri"
	fontSize = 12
)

// Write saves the post-substitution narration text under a heading per
// slide. Skipped slides carry no narration and do not appear.
func Write(title string, narrations []converter.Narration, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create transcript document: %w", err)
	}

	doc.AddParagraph("").AddText(title).Font(fontName).Size(16).Color("000000").Bold(true)

	for _, n := range narrations {
		heading := doc.AddParagraph("")
		heading.AddText(fmt.Sprintf("Slide %d", n.Index)).Font(fontName).Size(14).Color("000000").Bold(true)

		body := doc.AddParagraph("")
		body.AddText(n.Text).Font(fontName).Size(fontSize).Color("000000")
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save transcript: %w", err)
	}
	return nil
}
