package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mkotnik/wordburn/internal/caption"
	"github.com/mkotnik/wordburn/internal/transcript"
	"github.com/mkotnik/wordburn/internal/typeface"
	"github.com/mkotnik/wordburn/internal/video"
)

var burnCmd = &cobra.Command{
	Use:   "burn [video_file]",
	Short: "Burn captions into a video from a word-timestamped transcript",
	Long: `Burn renders word-highlighted captions onto every frame of the input
video and writes a new file with the original audio track attached.

The transcript must be a JSON file carrying per-word start/end timestamps
({"words": [{"text": "...", "start": 0.0, "end": 0.5}, ...]}), as produced
by word-level speech-to-text tools.

Examples:
  wordburn burn clip.mp4 -t words.json -o captioned.mp4
  wordburn burn clip.mp4 -t words.json --highlight-mode both --background-color black
  wordburn burn clip.mp4 -t words.json -m solo --position 0.5,0.4`,
	Args: cobra.ExactArgs(1),
	RunE: runBurn,
}

func init() {
	rootCmd.AddCommand(burnCmd)

	burnCmd.Flags().
		StringP("transcript", "t", "", "Word-timestamped transcript JSON file (required)")
	burnCmd.Flags().StringP("output", "o", "", "Output video path")
	_ = burnCmd.MarkFlagRequired("transcript")

	addStyleFlags(burnCmd)
}

func runBurn(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	transcriptPath, _ := cmd.Flags().GetString("transcript")
	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		ext := filepath.Ext(inputPath)
		outputPath = inputPath[:len(inputPath)-len(ext)] + "_captioned" + ext
	}

	words, err := transcript.Load(transcriptPath)
	if err != nil {
		return err
	}

	info, err := video.Probe(inputPath)
	if err != nil {
		return fmt.Errorf("failed to probe video: %w", err)
	}

	fontSize := int(settings.FontScale * float64(info.Height))
	face, err := typeface.Load(settings.FontPath, fontSize)
	if err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}
	defer face.Close()

	logger.Infow("Starting caption burn",
		"input", inputPath,
		"output", outputPath,
		"transcript", transcriptPath,
		"resolution", fmt.Sprintf("%dx%d", info.Width, info.Height),
		"fps", info.FrameRate,
		"words", len(words.Words),
		"mode", settings.Mode.String(),
		"font_size", fontSize,
	)

	cfg := settings.RenderConfig(face, fontSize, info.Width, info.Height)
	engine, err := caption.NewEngine(cfg, progressLogger())
	if err != nil {
		return err
	}

	pre, err := engine.ProcessSegments(words.Words)
	if err != nil {
		return fmt.Errorf("segmentation failed: %w", err)
	}

	logger.Infow("Segments prepared",
		"count", len(pre.Segments),
	)

	tempDir, err := os.MkdirTemp("", "wordburn-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	reader, err := video.NewReader(ctx, inputPath, info.Width, info.Height)
	if err != nil {
		return fmt.Errorf("failed to start decoder: %w", err)
	}
	defer reader.Close()

	// output dimensions swap: the compositor rotates every frame 90
	// degrees clockwise
	silentPath := video.IntermediatePath(tempDir)
	writer, err := video.NewWriter(ctx, silentPath, info.Height, info.Width, info.FrameRate)
	if err != nil {
		return fmt.Errorf("failed to start encoder: %w", err)
	}

	if err := engine.Run(ctx, pre, reader, writer, info.FrameRate, info.TotalFrames()); err != nil {
		_ = writer.Close()
		return fmt.Errorf("rendering failed: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("encoder failed: %w", err)
	}

	logger.Infow("Merging audio track",
		"has_audio", info.HasAudio,
	)
	if err := video.MergeAudio(ctx, inputPath, silentPath, outputPath, info.HasAudio); err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Captions burned successfully: %s\n", absOutput)
	fmt.Printf("  Segments: %d\n", len(pre.Segments))
	fmt.Printf("  Duration: %s\n", info.Duration.String())

	return nil
}

// progressLogger adapts the engine's progress callback to throttled log
// lines, one per ten percent per stage.
func progressLogger() caption.ProgressFunc {
	lastStage := caption.Stage("")
	lastDecile := -1

	return func(stage caption.Stage, fraction float64, message string) {
		if message != "" {
			logger.Infow(message, "stage", stage)
			return
		}
		if stage != lastStage {
			lastStage = stage
			lastDecile = -1
		}
		decile := int(fraction * 10)
		if decile > lastDecile {
			lastDecile = decile
			logger.Debugw("Progress",
				"stage", stage,
				"percent", decile*10,
			)
		}
	}
}
