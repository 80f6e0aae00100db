package video

import (
	"context"
	"fmt"
	"image"
	"io"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/mkotnik/wordburn/internal/ffmpeg"
)

// Writer encodes raw RGBA frames into an H.264 video file via an ffmpeg
// pipe. The output carries no audio; MergeAudio attaches the source
// track afterwards.
type Writer struct {
	pw        *io.PipeWriter
	frameSize int
	done      chan error
}

// NewWriter starts an encoder expecting frames of the given dimensions
// at the given frame rate.
func NewWriter(ctx context.Context, path string, width, height int, fps float64) (*Writer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame dimensions %dx%d", width, height)
	}
	if fps <= 0 {
		return nil, fmt.Errorf("frame rate must be positive, got %g", fps)
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return nil, err
	}

	pr, pw := io.Pipe()
	w := &Writer{
		pw:        pw,
		frameSize: width * height * 4,
		done:      make(chan error, 1),
	}

	go func() {
		err := ffmpeg.Input("pipe:", ffmpeg.KwArgs{
			"format":    "rawvideo",
			"pix_fmt":   "rgba",
			"s":         fmt.Sprintf("%dx%d", width, height),
			"framerate": fps,
		}).
			Output(path, ffmpeg.KwArgs{
				"vcodec":  "libx264",
				"pix_fmt": "yuv420p",
				"r":       fps,
			}).
			OverWriteOutput().
			WithInput(pr).
			SetFfmpegPath(ffmpegPath).
			Run()
		pr.CloseWithError(err)
		w.done <- err
	}()

	return w, nil
}

// WriteFrame feeds one composited frame to the encoder.
func (w *Writer) WriteFrame(img *image.RGBA) error {
	if len(img.Pix) != w.frameSize {
		return fmt.Errorf(
			"frame size mismatch: got %d bytes, want %d",
			len(img.Pix), w.frameSize,
		)
	}
	if _, err := w.pw.Write(img.Pix); err != nil {
		return fmt.Errorf("ffmpeg encode failed: %w", err)
	}
	return nil
}

// Close flushes the pipe and waits for the encoder to finish writing
// the file.
func (w *Writer) Close() error {
	_ = w.pw.Close()
	return <-w.done
}
