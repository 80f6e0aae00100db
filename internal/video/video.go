package video

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	ffmpegbin "github.com/mkotnik/wordburn/internal/ffmpeg"
)

// video file information
type Info struct {
	Path      string
	Duration  time.Duration
	Width     int
	Height    int
	FrameRate float64
	Codec     string
	HasAudio  bool
}

// TotalFrames estimates the frame count from duration and frame rate.
func (i *Info) TotalFrames() int {
	return int(i.Duration.Seconds() * i.FrameRate)
}

// Probe inspects a video file with ffprobe.
func Probe(path string) (*Info, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("video file not found: %s", path)
	}

	ffprobePath, err := ffmpegbin.FFprobePath()
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	data := out.String()
	stream := gjson.Get(data, `streams.#(codec_type=="video")`)
	if !stream.Exists() {
		return nil, fmt.Errorf("no video stream in %s", path)
	}

	info := &Info{
		Path:     path,
		Width:    int(stream.Get("width").Int()),
		Height:   int(stream.Get("height").Int()),
		Codec:    stream.Get("codec_name").String(),
		HasAudio: gjson.Get(data, `streams.#(codec_type=="audio")`).Exists(),
	}

	if info.Width <= 0 || info.Height <= 0 {
		return nil, fmt.Errorf("invalid video dimensions %dx%d", info.Width, info.Height)
	}

	info.FrameRate, err = parseFrameRate(stream.Get("avg_frame_rate").String())
	if err != nil {
		// some containers only report r_frame_rate
		info.FrameRate, err = parseFrameRate(stream.Get("r_frame_rate").String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to determine frame rate: %w", err)
	}

	if secs := gjson.Get(data, "format.duration").Float(); secs > 0 {
		info.Duration = time.Duration(secs * float64(time.Second))
	}

	return info, nil
}

// parseFrameRate parses ffprobe's "num/den" rational rate.
func parseFrameRate(rate string) (float64, error) {
	num, den, ok := strings.Cut(rate, "/")
	if !ok {
		f, err := strconv.ParseFloat(rate, 64)
		if err != nil || f <= 0 {
			return 0, fmt.Errorf("unparseable frame rate %q", rate)
		}
		return f, nil
	}

	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable frame rate %q", rate)
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 || n <= 0 {
		return 0, fmt.Errorf("unparseable frame rate %q", rate)
	}
	return n / d, nil
}
