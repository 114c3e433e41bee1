package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "slidecast",
	Short: "Convert a slide presentation into a narrated video",
	Long: `Slidecast turns a .pptx deck into a narrated video: for each slide it reads
the speaker notes, synthesizes speech for them, rasterizes the slide, and muxes
image and audio into a clip; all clips are then concatenated into one video.

Azure synthesis needs SPEECH_KEY and SPEECH_REGION in the environment (a local
.env file is picked up automatically).`,
	SilenceUsage: true,
}

func main() {
	// A local .env may carry SPEECH_KEY, SPEECH_REGION and GEMINI_API_KEY.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML settings file (default: slidecast.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
}
