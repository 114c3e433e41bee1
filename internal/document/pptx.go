package document

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/nguyentantai21042004/slidecast/internal/logger"
	"github.com/nguyentantai21042004/slidecast/pkg/executor"
)

type implService struct {
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Service reading .pptx decks directly (zip + XML) and
// rasterizing slides through LibreOffice and poppler.
func New(exec executor.Executor, log logger.Logger) Service {
	return &implService{executor: exec, logger: log}
}

type pptxDocument struct {
	path       string
	cacheDir   string
	executor   executor.Executor
	logger     logger.Logger
	reader     *zip.ReadCloser
	slideParts []string // part names in presentation order
}

// Open reads the deck's package structure: slide order from
// presentation.xml resolved through its relationships part.
func (s *implService) Open(ctx context.Context, deckPath, cacheDir string) (Document, error) {
	reader, err := zip.OpenReader(deckPath)
	if err != nil {
		return nil, fmt.Errorf("open presentation %s: %w", deckPath, err)
	}

	d := &pptxDocument{
		path:     deckPath,
		cacheDir: cacheDir,
		executor: s.executor,
		logger:   s.logger,
		reader:   reader,
	}

	if err := d.readSlideOrder(); err != nil {
		reader.Close()
		return nil, err
	}

	return d, nil
}

func (d *pptxDocument) SlideCount() int {
	return len(d.slideParts)
}

// NotesText extracts the body placeholder text of the slide's notes
// page, paragraphs separated by newlines.
func (d *pptxDocument) NotesText(index int) (string, error) {
	if index < 1 || index > len(d.slideParts) {
		return "", fmt.Errorf("invalid slide index %d: presentation has %d slides", index, len(d.slideParts))
	}

	slidePart := d.slideParts[index-1]
	notesPart, err := d.notesPartFor(slidePart)
	if err != nil {
		return "", err
	}
	if notesPart == "" {
		return "", nil
	}

	data, err := d.readPart(notesPart)
	if err != nil {
		return "", fmt.Errorf("read notes of slide %d: %w", index, err)
	}

	text, err := notesBodyText(data)
	if err != nil {
		return "", fmt.Errorf("parse notes of slide %d: %w", index, err)
	}
	return text, nil
}

// readSlideOrder resolves the sldIdLst relationship ids against the
// presentation relationships part to get slide parts in deck order.
func (d *pptxDocument) readSlideOrder() error {
	rels, err := d.readRelationships("ppt/_rels/presentation.xml.rels")
	if err != nil {
		return fmt.Errorf("read presentation relationships: %w", err)
	}

	data, err := d.readPart("ppt/presentation.xml")
	if err != nil {
		return fmt.Errorf("read presentation part: %w", err)
	}

	var pres struct {
		SlideIDs []struct {
			RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
		} `xml:"sldIdLst>sldId"`
	}
	if err := decodeXML(data, &pres); err != nil {
		return fmt.Errorf("parse presentation part: %w", err)
	}

	for _, sld := range pres.SlideIDs {
		target, ok := rels[sld.RID]
		if !ok {
			return fmt.Errorf("slide relationship %s not found", sld.RID)
		}
		d.slideParts = append(d.slideParts, resolvePart("ppt", target))
	}

	if len(d.slideParts) == 0 {
		return fmt.Errorf("presentation %s contains no slides", d.path)
	}
	return nil
}

// notesPartFor finds the notesSlide part linked from a slide part, or
// "" when the slide has no notes page.
func (d *pptxDocument) notesPartFor(slidePart string) (string, error) {
	relsPart := path.Join(path.Dir(slidePart), "_rels", path.Base(slidePart)+".rels")
	if !d.hasPart(relsPart) {
		return "", nil
	}

	rels, err := d.readTypedRelationships(relsPart)
	if err != nil {
		return "", fmt.Errorf("read relationships of %s: %w", slidePart, err)
	}

	for _, rel := range rels {
		if strings.HasSuffix(rel.Type, "/notesSlide") {
			return resolvePart(path.Dir(slidePart), rel.Target), nil
		}
	}
	return "", nil
}

type relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

func (d *pptxDocument) readTypedRelationships(part string) ([]relationship, error) {
	data, err := d.readPart(part)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Rels []relationship `xml:"Relationship"`
	}
	if err := decodeXML(data, &doc); err != nil {
		return nil, err
	}
	return doc.Rels, nil
}

func (d *pptxDocument) readRelationships(part string) (map[string]string, error) {
	rels, err := d.readTypedRelationships(part)
	if err != nil {
		return nil, err
	}

	targets := make(map[string]string, len(rels))
	for _, rel := range rels {
		targets[rel.ID] = rel.Target
	}
	return targets, nil
}

func (d *pptxDocument) hasPart(name string) bool {
	for _, f := range d.reader.File {
		if f.Name == name {
			return true
		}
	}
	return false
}

func (d *pptxDocument) readPart(name string) ([]byte, error) {
	for _, f := range d.reader.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("part %s not found in package", name)
}

// resolvePart joins a relationship target (possibly "../"-relative)
// onto the directory of the part that references it.
func resolvePart(baseDir, target string) string {
	return path.Clean(path.Join(baseDir, target))
}

func decodeXML(data []byte, v interface{}) error {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charset.NewReaderLabel
	return decoder.Decode(v)
}

// notesBodyText walks a notesSlide part and collects the text runs of
// the body placeholder. The other placeholders on a notes page (slide
// thumbnail, slide number) carry no narration.
func notesBodyText(data []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charset.NewReaderLabel

	var b strings.Builder
	var inShape, inBody, inText bool

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "sp":
				inShape = true
				inBody = false
			case "ph":
				if inShape {
					for _, attr := range el.Attr {
						if attr.Name.Local == "type" && attr.Value == "body" {
							inBody = true
						}
					}
				}
			case "t":
				if inBody {
					inText = true
				}
			case "br":
				if inBody {
					b.WriteString("\n")
				}
			}
		case xml.CharData:
			if inText {
				b.Write(el)
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				if inBody {
					b.WriteString("\n")
				}
			case "sp":
				inShape = false
				inBody = false
			}
		}
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

// Close releases the package reader and, when asked, drops the cached
// intermediate PDF so the next run starts from the deck again.
func (d *pptxDocument) Close(discardCache bool) error {
	if discardCache {
		d.discardRenderCache()
	}
	return d.reader.Close()
}
