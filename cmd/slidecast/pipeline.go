package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/slidecast/internal/config"
	"github.com/nguyentantai21042004/slidecast/internal/converter"
	"github.com/nguyentantai21042004/slidecast/internal/describer"
	"github.com/nguyentantai21042004/slidecast/internal/document"
	"github.com/nguyentantai21042004/slidecast/internal/logger"
	"github.com/nguyentantai21042004/slidecast/internal/pronounce"
	"github.com/nguyentantai21042004/slidecast/internal/speech"
	"github.com/nguyentantai21042004/slidecast/internal/transcript"
	"github.com/nguyentantai21042004/slidecast/pkg/executor"
)

// Flags shared by convert and watch.
var (
	slidesFlag           string
	silence              float64
	voice                string
	pronunciationMapping string
	videoWidth           int
	videoHeight          int
	api                  string
	updateDir            string
	quitPPT              bool
	transcriptPath       string
	describeOutput       bool
)

func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&slidesFlag, "slides", "", "slide numbers or ranges to process (comma-separated, e.g. 2,4-6,9)")
	cmd.Flags().Float64Var(&silence, "silence", 1.5, "seconds of silence to pad each slide's audio")
	cmd.Flags().StringVar(&voice, "voice", "en-GB-SoniaNeural", "voice identifier: an Azure neural voice name, or the index number of an installed voice for SAPI")
	cmd.Flags().StringVar(&pronunciationMapping, "pronunciation_mapping", "", "file that maps the spelling of words and acronyms to their pronunciation")
	cmd.Flags().IntVar(&videoWidth, "video_width", 1920, "width of the output video in pixels")
	cmd.Flags().IntVar(&videoHeight, "video_height", 1080, "height of the output video in pixels")
	cmd.Flags().StringVar(&api, "api", "Azure", "speech synthesis API: Azure or SAPI")
	cmd.Flags().StringVar(&updateDir, "update", "", "working directory of a previous conversion to reuse; only the slides given with --slides are regenerated")
	cmd.Flags().BoolVar(&quitPPT, "quit_ppt", false, "discard the intermediate render cache after processing")
	cmd.Flags().StringVar(&transcriptPath, "transcript", "", "also write the narration script to this .docx file")
	cmd.Flags().BoolVar(&describeOutput, "describe", false, "also generate a video description markdown next to the output (needs GEMINI_API_KEY)")
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		if _, err := os.Stat("slidecast.yaml"); err == nil {
			path = "slidecast.yaml"
		}
	}
	return config.Load(path)
}

func buildLogger(cfg *config.Config) logger.Logger {
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	if quiet {
		level = "error"
	}
	return logger.New(level)
}

// buildOptions turns positional args and flags into the immutable run
// configuration, resolving all paths to absolute form.
func buildOptions(args []string) (converter.Options, error) {
	deckPath, err := filepath.Abs(args[0])
	if err != nil {
		return converter.Options{}, fmt.Errorf("resolve presentation path: %w", err)
	}
	if _, err := os.Stat(deckPath); err != nil {
		return converter.Options{}, fmt.Errorf("presentation not found: %s", args[0])
	}

	outputPath, err := filepath.Abs(args[1])
	if err != nil {
		return converter.Options{}, fmt.Errorf("resolve output path: %w", err)
	}

	opts := converter.Options{
		DeckPath:    deckPath,
		OutputPath:  outputPath,
		Selection:   slidesFlag,
		Silence:     silence,
		VideoWidth:  videoWidth,
		VideoHeight: videoHeight,
		QuitAfter:   quitPPT,
	}

	if updateDir != "" {
		opts.UpdateDir, err = filepath.Abs(updateDir)
		if err != nil {
			return converter.Options{}, fmt.Errorf("resolve update directory: %w", err)
		}
	}

	if pronunciationMapping != "" {
		mappingPath, err := filepath.Abs(pronunciationMapping)
		if err != nil {
			return converter.Options{}, fmt.Errorf("resolve pronunciation mapping path: %w", err)
		}
		opts.Mapping, err = pronounce.Load(mappingPath)
		if err != nil {
			return converter.Options{}, err
		}
	}

	return opts, nil
}

func newEngine(cfg *config.Config, exec executor.Executor, log logger.Logger) (speech.Engine, error) {
	switch strings.ToLower(api) {
	case "azure":
		return speech.NewAzure(speech.AzureOptions{
			Voice:      voice,
			SampleRate: cfg.Speech.SampleRate,
			Endpoint:   cfg.Speech.Endpoint,
		}, log), nil
	case "sapi":
		return speech.NewSAPI(voice, exec, log)
	default:
		return nil, fmt.Errorf("unknown speech API %q: use Azure or SAPI", api)
	}
}

// runPipeline executes one conversion and the optional transcript and
// description outputs.
func runPipeline(ctx context.Context, cfg *config.Config, opts converter.Options, log logger.Logger) error {
	exec := executor.New()

	engine, err := newEngine(cfg, exec, log)
	if err != nil {
		return err
	}

	docs := document.New(exec, log)
	conv := converter.New(cfg, opts, docs, engine, exec, log)

	stats, err := conv.Convert(ctx)
	if err != nil {
		return err
	}

	if transcriptPath != "" && len(stats.Narrations) > 0 {
		title := filepath.Base(opts.DeckPath)
		if err := transcript.Write(title, stats.Narrations, transcriptPath); err != nil {
			log.Warn(ctx, "Failed to write transcript: %v", err)
		} else {
			log.Info(ctx, "Narration transcript written to %s", transcriptPath)
		}
	}

	if describeOutput && len(stats.Narrations) > 0 {
		writeDescription(ctx, cfg, opts, stats, log)
	}

	return nil
}

func writeDescription(ctx context.Context, cfg *config.Config, opts converter.Options, stats *converter.Stats, log logger.Logger) {
	var script strings.Builder
	for _, n := range stats.Narrations {
		script.WriteString(n.Text)
		script.WriteString("\n")
	}

	d := describer.New(os.Getenv("GEMINI_API_KEY"), cfg.Gemini.Model, log)
	description, err := d.Describe(ctx, script.String())
	if err != nil {
		log.Warn(ctx, "Failed to generate description: %v", err)
		return
	}

	ext := filepath.Ext(opts.OutputPath)
	descPath := strings.TrimSuffix(opts.OutputPath, ext) + ".md"
	if err := os.WriteFile(descPath, []byte(description), 0644); err != nil {
		log.Warn(ctx, "Failed to write description: %v", err)
		return
	}
	log.Info(ctx, "Video description written to %s", descPath)
}
