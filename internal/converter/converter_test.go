package converter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/slidecast/internal/config"
	"github.com/nguyentantai21042004/slidecast/internal/document"
	"github.com/nguyentantai21042004/slidecast/internal/logger"
	"github.com/nguyentantai21042004/slidecast/internal/pronounce"
	"github.com/nguyentantai21042004/slidecast/internal/speech"
	"github.com/nguyentantai21042004/slidecast/internal/workdir"
)

// fakeExecutor records every external invocation and succeeds.
type fakeExecutor struct {
	commands [][]string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.commands = append(f.commands, append([]string{name}, args...))
	return "", nil
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func (f *fakeExecutor) LookPath(name string) (string, error) {
	return name, nil
}

// concatCommands returns the recorded concat demuxer invocations.
func (f *fakeExecutor) concatCommands() [][]string {
	var out [][]string
	for _, cmd := range f.commands {
		for _, arg := range cmd {
			if arg == "concat" {
				out = append(out, cmd)
				break
			}
		}
	}
	return out
}

type fakeService struct {
	doc *fakeDoc
}

func (s *fakeService) Open(ctx context.Context, path, cacheDir string) (document.Document, error) {
	return s.doc, nil
}

type fakeDoc struct {
	notes        map[int]string
	count        int
	exported     []int
	closeDiscard bool
}

func (d *fakeDoc) SlideCount() int { return d.count }

func (d *fakeDoc) NotesText(index int) (string, error) {
	if index < 1 || index > d.count {
		return "", fmt.Errorf("invalid slide index %d", index)
	}
	return d.notes[index], nil
}

func (d *fakeDoc) ExportImage(ctx context.Context, index int, target string, width, height int) error {
	d.exported = append(d.exported, index)
	return os.WriteFile(target, []byte("png"), 0644)
}

func (d *fakeDoc) Close(discardCache bool) error {
	d.closeDiscard = discardCache
	return nil
}

type fakeEngine struct {
	texts    []string
	calls    int
	cancelAt int // cancel the n-th call; 0 disables
}

func (e *fakeEngine) SynthesizeToFile(ctx context.Context, text, path string) error {
	e.calls++
	if e.cancelAt > 0 && e.calls == e.cancelAt {
		return &speech.CancellationError{Reason: "Error", Detail: "invalid subscription key"}
	}
	e.texts = append(e.texts, text)
	return os.WriteFile(path, []byte("wav"), 0644)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func testOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		DeckPath:    "deck.pptx",
		OutputPath:  filepath.Join(t.TempDir(), "out.mp4"),
		Silence:     1.5,
		VideoWidth:  1920,
		VideoHeight: 1080,
	}
}

func run(t *testing.T, doc *fakeDoc, engine *fakeEngine, opts Options) (*Stats, *fakeExecutor, error) {
	t.Helper()
	exec := &fakeExecutor{}
	conv := New(testConfig(t), opts, &fakeService{doc: doc}, engine, exec, logger.New("error"))
	stats, err := conv.Convert(context.Background())
	if stats != nil && opts.UpdateDir == "" {
		t.Cleanup(func() { os.RemoveAll(stats.WorkDir) })
	}
	return stats, exec, err
}

func TestConvertSkipsEmptyNotes(t *testing.T) {
	doc := &fakeDoc{
		count: 3,
		notes: map[int]string{
			1: "First slide.",
			2: "   \n  ", // whitespace only
			3: "Third slide.",
		},
	}
	engine := &fakeEngine{}

	stats, _, err := run(t, doc, engine, testOptions(t))
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if len(stats.Clips) != 2 {
		t.Fatalf("clips = %d, want 2", len(stats.Clips))
	}
	if !strings.Contains(stats.Clips[0], "video_1.mp4") || !strings.Contains(stats.Clips[1], "video_3.mp4") {
		t.Errorf("clips = %v, want slides 1 and 3 in order", stats.Clips)
	}

	// Slide 2 contributed no artifacts at all.
	for _, idx := range doc.exported {
		if idx == 2 {
			t.Error("slide 2 image was exported despite empty notes")
		}
	}
	if engine.calls != 2 {
		t.Errorf("engine calls = %d, want 2", engine.calls)
	}

	// Manifest references only slides 1 and 3, in index order.
	manifest, err := os.ReadFile(filepath.Join(stats.WorkDir, "concat.txt"))
	if err != nil {
		t.Fatalf("manifest not written: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(manifest)), "\n")
	if len(lines) != 2 {
		t.Fatalf("manifest lines = %d, want 2: %q", len(lines), manifest)
	}
	if !strings.HasPrefix(lines[0], "file '") || !strings.Contains(lines[0], "video_1.mp4") {
		t.Errorf("manifest line 1 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "video_3.mp4") {
		t.Errorf("manifest line 2 = %q", lines[1])
	}
}

func TestConvertCharacterCount(t *testing.T) {
	doc := &fakeDoc{
		count: 2,
		notes: map[int]string{
			1: "The FDAT value",
			2: "Third slide.",
		},
	}
	engine := &fakeEngine{}

	mappingPath := filepath.Join(t.TempDir(), "mapping.txt")
	if err := os.WriteFile(mappingPath, []byte("FDAT=effdutt\n"), 0644); err != nil {
		t.Fatal(err)
	}
	mapping, err := pronounce.Load(mappingPath)
	if err != nil {
		t.Fatal(err)
	}

	opts := testOptions(t)
	opts.Mapping = mapping

	stats, _, err := run(t, doc, engine, opts)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if engine.texts[0] != "The effdutt value" {
		t.Errorf("synthesized text = %q, want pronunciation applied", engine.texts[0])
	}

	want := len("The effdutt value") + len("Third slide.")
	if stats.TotalChars != want {
		t.Errorf("TotalChars = %d, want %d", stats.TotalChars, want)
	}
}

func TestConvertNormalizesNotes(t *testing.T) {
	doc := &fakeDoc{
		count: 1,
		notes: map[int]string{1: "line one\r\nline two\n"},
	}
	engine := &fakeEngine{}

	_, _, err := run(t, doc, engine, testOptions(t))
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if got := engine.texts[0]; got != "line one  line two" {
		t.Errorf("normalized text = %q", got)
	}
}

func TestConvertCancellationAbortsLoop(t *testing.T) {
	doc := &fakeDoc{
		count: 3,
		notes: map[int]string{1: "one", 2: "two", 3: "three"},
	}
	engine := &fakeEngine{cancelAt: 2}

	stats, exec, err := run(t, doc, engine, testOptions(t))
	if err != nil {
		t.Fatalf("Convert() error = %v, cancellation must degrade gracefully", err)
	}

	// Slide 1 made it through, slide 2 was cancelled, slide 3 never ran.
	if len(stats.Clips) != 1 {
		t.Fatalf("clips = %v, want only slide 1", stats.Clips)
	}
	if engine.calls != 2 {
		t.Errorf("engine calls = %d, want 2 (no attempt after cancellation)", engine.calls)
	}

	// The narration record covers only what was actually synthesized:
	// the cancelled slide's text must not leak into the transcript.
	if len(stats.Narrations) != 1 {
		t.Fatalf("narrations = %v, want only slide 1", stats.Narrations)
	}
	if stats.Narrations[0].Index != 1 || stats.Narrations[0].Text != "one" {
		t.Errorf("narration = %+v, want slide 1 %q", stats.Narrations[0], "one")
	}

	// Final assembly still ran with the partial results.
	if len(exec.concatCommands()) != 1 {
		t.Error("expected final concatenation despite the cancellation")
	}
}

func TestConvertNoClipsSkipsAssembly(t *testing.T) {
	doc := &fakeDoc{
		count: 2,
		notes: map[int]string{1: "", 2: "  "},
	}
	engine := &fakeEngine{}

	stats, exec, err := run(t, doc, engine, testOptions(t))
	if err != nil {
		t.Fatalf("Convert() error = %v, nothing-produced is a normal exit", err)
	}

	if len(stats.Clips) != 0 {
		t.Errorf("clips = %v, want none", stats.Clips)
	}
	if len(exec.concatCommands()) != 0 {
		t.Error("concatenation must not run when no clips were produced")
	}
	if _, err := os.Stat(filepath.Join(stats.WorkDir, "concat.txt")); !os.IsNotExist(err) {
		t.Error("manifest must not be written when no clips were produced")
	}
}

func TestConvertUpdateMode(t *testing.T) {
	prev, err := workdir.Create()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(prev.Root) })

	// Artifacts and manifest from the previous full run.
	sentinel := "file 'video/video_1.mp4'\nfile 'video/video_3.mp4'\n"
	if err := os.WriteFile(prev.ManifestFile(), []byte(sentinel), 0644); err != nil {
		t.Fatal(err)
	}
	untouched := prev.Clip(1, "mp4")
	if err := os.WriteFile(untouched, []byte("old clip"), 0644); err != nil {
		t.Fatal(err)
	}

	doc := &fakeDoc{
		count: 3,
		notes: map[int]string{1: "one", 2: "two", 3: "three"},
	}
	engine := &fakeEngine{}

	opts := testOptions(t)
	opts.UpdateDir = prev.Root
	opts.Selection = "3"

	stats, exec, err := run(t, doc, engine, opts)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	// Only slide 3 was regenerated.
	if len(doc.exported) != 1 || doc.exported[0] != 3 {
		t.Errorf("exported = %v, want only slide 3", doc.exported)
	}
	if stats.WorkDir != prev.Root {
		t.Errorf("WorkDir = %s, want reused %s", stats.WorkDir, prev.Root)
	}

	// The manifest is reused unmodified.
	manifest, err := os.ReadFile(prev.ManifestFile())
	if err != nil {
		t.Fatal(err)
	}
	if string(manifest) != sentinel {
		t.Errorf("manifest rewritten in update mode: %q", manifest)
	}

	// Untouched slides' artifacts are byte-identical.
	data, err := os.ReadFile(untouched)
	if err != nil || string(data) != "old clip" {
		t.Errorf("slide 1 clip changed in update mode: %q, %v", data, err)
	}

	// Final assembly still re-runs against the existing manifest.
	if len(exec.concatCommands()) != 1 {
		t.Error("expected final concatenation in update mode")
	}
}

func TestConvertOutOfRangeSlide(t *testing.T) {
	doc := &fakeDoc{count: 3, notes: map[int]string{1: "one"}}
	engine := &fakeEngine{}

	opts := testOptions(t)
	opts.Selection = "9"

	_, _, err := run(t, doc, engine, opts)
	if err == nil {
		t.Error("Convert() should fail for an out-of-range slide index")
	}
}

func TestConvertMissingContainerExtension(t *testing.T) {
	doc := &fakeDoc{count: 1, notes: map[int]string{1: "one"}}
	engine := &fakeEngine{}

	opts := testOptions(t)
	opts.OutputPath = filepath.Join(t.TempDir(), "out")

	_, _, err := run(t, doc, engine, opts)
	if err == nil {
		t.Error("Convert() should fail when the output has no extension")
	}
}

func TestConvertQuitAfterClosesWithDiscard(t *testing.T) {
	doc := &fakeDoc{count: 1, notes: map[int]string{1: "one"}}
	engine := &fakeEngine{}

	opts := testOptions(t)
	opts.QuitAfter = true

	if _, _, err := run(t, doc, engine, opts); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !doc.closeDiscard {
		t.Error("document closed without discarding the render cache")
	}
}
