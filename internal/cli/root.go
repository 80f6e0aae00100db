package cli

import (
	"github.com/mkotnik/wordburn/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "wordburn",
	Short: "Burn word-highlighted captions into videos",
	Long: `Wordburn overlays time-synchronized captions onto a video, lighting
up each word as it is spoken.

It consumes a transcript with per-word timestamps, groups the words into
width- and duration-bounded caption segments, and composites the styled
text onto every frame with the original audio track preserved.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringP("config", "c", "", "YAML configuration file")
}
