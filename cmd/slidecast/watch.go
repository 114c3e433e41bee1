package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/slidecast/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch <presentation.pptx> <output-video>",
	Short: "Re-run the conversion whenever the presentation changes",
	Long: `Watch converts the presentation once, then monitors it and re-runs the
conversion after each save. Conversions never overlap; rapid saves collapse
into a single run. Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(2),
	RunE: runWatch,
}

func init() {
	addPipelineFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
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

	// Initial conversion; a failure here is logged but watching
	// continues, the next save gets another chance.
	if err := runPipeline(ctx, cfg, opts, log); err != nil {
		log.Error(ctx, "Initial conversion failed: %v", err)
	}

	w, err := watcher.New(opts.DeckPath, time.Second, func(ctx context.Context) error {
		return runPipeline(ctx, cfg, opts, log)
	}, log)
	if err != nil {
		return err
	}
	defer w.Stop()

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
