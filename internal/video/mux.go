package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/mkotnik/wordburn/internal/ffmpeg"
)

// IntermediatePath returns a unique path inside dir for the silent
// composited video, safe against concurrent runs sharing a temp dir.
func IntermediatePath(dir string) string {
	return filepath.Join(dir, "composited-"+uuid.NewString()+".mp4")
}

// MergeAudio muxes the composited video stream with the original
// file's audio track into output. The result is committed atomically:
// ffmpeg writes to a sibling temp file that is renamed only on success,
// so a failed run never leaves a half-written output.
func MergeAudio(ctx context.Context, original, processed, output string, hasAudio bool) error {
	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return err
	}

	outDir := filepath.Dir(output)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ext := filepath.Ext(output)
	if ext == "" {
		ext = ".mp4"
	}
	tmp := filepath.Join(outDir, ".wordburn-"+uuid.NewString()+ext)

	if hasAudio {
		videoStream := ffmpeg.Input(processed).Video()
		audioStream := ffmpeg.Input(original).Audio()
		err = ffmpeg.Output(
			[]*ffmpeg.Stream{videoStream, audioStream},
			tmp,
			ffmpeg.KwArgs{
				"c:v":      "copy",
				"c:a":      "aac",
				"shortest": "",
			},
		).
			OverWriteOutput().
			SetFfmpegPath(ffmpegPath).
			Run()
	} else {
		err = ffmpeg.Input(processed).
			Output(tmp, ffmpeg.KwArgs{"c": "copy"}).
			OverWriteOutput().
			SetFfmpegPath(ffmpegPath).
			Run()
	}
	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("ffmpeg mux failed: %w", err)
	}

	if err := os.Rename(tmp, output); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to commit output: %w", err)
	}
	return nil
}
