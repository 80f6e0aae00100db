package video

import (
	"context"
	"fmt"
	"image"
	"io"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/mkotnik/wordburn/internal/ffmpeg"
)

// Reader streams a video's frames as raw RGBA rasters over an ffmpeg
// pipe, in presentation order.
type Reader struct {
	pr     *io.PipeReader
	width  int
	height int
	done   chan error
}

// NewReader starts decoding. Width and height must match the probed
// stream dimensions.
func NewReader(ctx context.Context, path string, width, height int) (*Reader, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame dimensions %dx%d", width, height)
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return nil, err
	}

	pr, pw := io.Pipe()
	r := &Reader{
		pr:     pr,
		width:  width,
		height: height,
		done:   make(chan error, 1),
	}

	go func() {
		err := ffmpeg.Input(path).
			Output("pipe:", ffmpeg.KwArgs{
				"format":  "rawvideo",
				"pix_fmt": "rgba",
			}).
			WithOutput(pw).
			SetFfmpegPath(ffmpegPath).
			Run()
		// a nil error closes the pipe with plain io.EOF
		pw.CloseWithError(err)
		r.done <- err
	}()

	return r, nil
}

// Next returns the next decoded frame, io.EOF after the last one.
func (r *Reader) Next() (*image.RGBA, error) {
	buf := make([]byte, r.width*r.height*4)
	if _, err := io.ReadFull(r.pr, buf); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("truncated frame from decoder")
		}
		return nil, fmt.Errorf("ffmpeg decode failed: %w", err)
	}

	return &image.RGBA{
		Pix:    buf,
		Stride: r.width * 4,
		Rect:   image.Rect(0, 0, r.width, r.height),
	}, nil
}

// Close tears down the pipe and waits for the decoder to exit.
func (r *Reader) Close() error {
	_ = r.pr.Close()
	return <-r.done
}
