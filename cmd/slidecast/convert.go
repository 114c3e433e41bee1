package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <presentation.pptx> <output-video>",
	Short: "Convert a presentation into a narrated video",
	Long: `Convert runs the full pipeline once: speaker notes are read per slide,
speech is synthesized, slides are rasterized, and the per-slide clips are
concatenated into the output file. The container format is taken from the
output file's extension.

With --update pointing at a previous run's working directory, only the slides
given with --slides are regenerated; everything else is reused in place.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	addPipelineFlags(convertCmd)
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := buildLogger(cfg)

	opts, err := buildOptions(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return runPipeline(ctx, cfg, opts, log)
}
