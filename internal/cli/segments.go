package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkotnik/wordburn/internal/caption"
	"github.com/mkotnik/wordburn/internal/subtitle"
	"github.com/mkotnik/wordburn/internal/transcript"
	"github.com/mkotnik/wordburn/internal/typeface"
)

var segmentsCmd = &cobra.Command{
	Use:   "segments [transcript_file]",
	Short: "Compute caption segments from a transcript without rendering",
	Long: `Segments runs the segmentation pipeline on a word-timestamped
transcript and writes the resulting caption segments, either as JSON for
inspection or as a subtitle file (SRT, VTT, or ASS with karaoke tags).
Useful for tuning width and duration limits before a full render.

Examples:
  wordburn segments words.json
  wordburn segments words.json --max-duration 2.5 --max-width 600
  wordburn segments words.json -f ass -o captions.ass`,
	Args: cobra.ExactArgs(1),
	RunE: runSegments,
}

func init() {
	rootCmd.AddCommand(segmentsCmd)

	segmentsCmd.Flags().StringP("output", "o", "", "Output path (stdout for JSON if unset)")
	segmentsCmd.Flags().StringP("format", "f", "json", "Output format (json, srt, vtt, ass)")
	segmentsCmd.Flags().Int("frame-width", 1920, "Assumed frame width in pixels")
	segmentsCmd.Flags().Int("frame-height", 1080, "Assumed frame height in pixels")

	addStyleFlags(segmentsCmd)
}

// segmentDump is the JSON shape written per segment.
type segmentDump struct {
	Index int               `json:"index"`
	Start float64           `json:"start"`
	End   float64           `json:"end"`
	Text  string            `json:"text"`
	Words []transcript.Word `json:"words"`
}

func runSegments(cmd *cobra.Command, args []string) error {
	transcriptPath := args[0]

	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	frameWidth, _ := cmd.Flags().GetInt("frame-width")
	frameHeight, _ := cmd.Flags().GetInt("frame-height")
	outputPath, _ := cmd.Flags().GetString("output")
	formatStr, _ := cmd.Flags().GetString("format")

	words, err := transcript.Load(transcriptPath)
	if err != nil {
		return err
	}

	fontSize := int(settings.FontScale * float64(frameHeight))
	face, err := typeface.Load(settings.FontPath, fontSize)
	if err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}
	defer face.Close()

	cfg := settings.RenderConfig(face, fontSize, frameWidth, frameHeight)
	engine, err := caption.NewEngine(cfg, nil)
	if err != nil {
		return err
	}

	pre, err := engine.ProcessSegments(words.Words)
	if err != nil {
		return fmt.Errorf("segmentation failed: %w", err)
	}

	if strings.EqualFold(formatStr, "json") {
		return writeSegmentJSON(pre.Segments, outputPath)
	}
	return writeSegmentSubtitles(pre.Segments, transcriptPath, outputPath, formatStr)
}

func writeSegmentJSON(segments []caption.Segment, outputPath string) error {
	dump := make([]segmentDump, len(segments))
	for i, seg := range segments {
		dump[i] = segmentDump{
			Index: i + 1,
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text(),
			Words: seg.Words,
		}
	}

	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode segments: %w", err)
	}
	data = append(data, '\n')

	if outputPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write segments: %w", err)
	}

	logger.Infow("Segments written",
		"output", outputPath,
		"count", len(dump),
	)
	return nil
}

func writeSegmentSubtitles(
	segments []caption.Segment,
	transcriptPath, outputPath, formatStr string,
) error {
	var format subtitle.Format
	switch strings.ToLower(formatStr) {
	case "srt":
		format = subtitle.FormatSRT
	case "vtt":
		format = subtitle.FormatVTT
	case "ass":
		format = subtitle.FormatASS
	default:
		return fmt.Errorf("unsupported format %q: use json, srt, vtt, or ass", formatStr)
	}

	if outputPath == "" {
		base := strings.TrimSuffix(transcriptPath, filepath.Ext(transcriptPath))
		outputPath = base + subtitle.GetExtensionForFormat(format)
	}

	sub := &subtitle.Subtitle{Format: string(format)}
	for i, seg := range segments {
		entry := subtitle.Entry{
			Index:     i + 1,
			StartTime: secondsToDuration(seg.Start),
			EndTime:   secondsToDuration(seg.End),
			Text:      seg.Text(),
		}
		for _, w := range seg.Words {
			entry.Words = append(entry.Words, subtitle.Word{
				Text:  w.Text,
				Start: secondsToDuration(w.Start),
				End:   secondsToDuration(w.End),
			})
		}
		sub.Entries = append(sub.Entries, entry)
	}

	writer, err := subtitle.NewWriter(format)
	if err != nil {
		return err
	}
	if err := writer.Write(sub, outputPath); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	logger.Infow("Subtitles written",
		"output", outputPath,
		"format", formatStr,
		"entries", len(sub.Entries),
	)
	return nil
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
