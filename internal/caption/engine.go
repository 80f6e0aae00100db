package caption

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/mkotnik/wordburn/internal/transcript"
)

// Stage identifies a pipeline phase for progress reporting.
type Stage string

const (
	StageSegmenting Stage = "segmenting"
	StageRendering  Stage = "rendering"
)

// ProgressFunc receives progress updates; fraction is in [0, 1]. The
// callback is injected at engine construction, there is no global
// progress state.
type ProgressFunc func(stage Stage, fraction float64, message string)

// Precomputed is the immutable per-run state shared by all frame
// renders. Once built, frames depend on nothing else, so independent
// frames could be rendered in parallel against a shared snapshot.
type Precomputed struct {
	Segments []Segment
	Layouts  []Layout
	Windows  [][]Window
}

// FrameSource yields decoded frames in presentation order, io.EOF after
// the last one.
type FrameSource interface {
	Next() (*image.RGBA, error)
}

// FrameSink accepts composited frames for encoding.
type FrameSink interface {
	WriteFrame(*image.RGBA) error
}

// Engine wires the segmentation pipeline to the frame compositor for
// one processing run.
type Engine struct {
	cfg      RenderConfig
	comp     *Compositor
	progress ProgressFunc
}

// NewEngine validates the resolved configuration and builds the engine.
// Config problems, including an unknown highlight mode, fail here before
// any segment work.
func NewEngine(cfg RenderConfig, progress ProgressFunc) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg:      cfg,
		comp:     NewCompositor(cfg),
		progress: progress,
	}, nil
}

func (e *Engine) report(stage Stage, fraction float64, message string) {
	if e.progress != nil {
		e.progress(stage, fraction, message)
	}
}

// ProcessSegments runs normalization, punctuation grouping,
// segmentation, highlight scheduling and layout once for the whole
// transcript. Called one time per run, before any frame is rendered.
func (e *Engine) ProcessSegments(raw []transcript.Word) (*Precomputed, error) {
	words, dropped, err := transcript.Normalize(raw)
	if err != nil {
		return nil, err
	}
	if len(dropped) > 0 {
		e.report(StageSegmenting, 0,
			fmt.Sprintf("dropped %d sub-millisecond words", len(dropped)))
	}
	words = transcript.GroupPunctuation(words)

	builder := &Builder{
		MaxWidth:    e.cfg.MaxWidth,
		MaxDuration: e.cfg.MaxDuration,
		Gap:         e.cfg.WordSpacing,
		Measure:     e.cfg.Face.Measure,
	}
	segments := builder.Build(words)

	scheduler := &Scheduler{Mode: e.cfg.Mode}
	layouter := &Layouter{
		Face:        e.cfg.Face,
		MaxWidth:    e.cfg.MaxWidth,
		Gap:         e.cfg.WordSpacing,
		AnchorX:     e.cfg.AnchorX,
		AnchorY:     e.cfg.AnchorY,
		FrameWidth:  e.cfg.FrameWidth,
		FrameHeight: e.cfg.FrameHeight,
	}

	pre := &Precomputed{
		Segments: segments,
		Layouts:  make([]Layout, len(segments)),
		Windows:  make([][]Window, len(segments)),
	}
	for i, seg := range segments {
		pre.Windows[i] = scheduler.Schedule(seg)
		pre.Layouts[i] = layouter.Layout(seg)
		e.report(StageSegmenting, float64(i+1)/float64(len(segments)), "")
	}

	return pre, nil
}

// RenderFrame composites the caption state for ts onto frame and
// returns the rotated result. Safe to call for any timestamp; frames
// outside every segment pass through with only the rotation applied.
func (e *Engine) RenderFrame(frame *image.RGBA, ts float64, pre *Precomputed) *image.RGBA {
	return e.comp.Render(frame, ts, pre)
}

// Run drives the compositor over every frame from src in order, writing
// composited frames to sink and reporting progress per frame. Frame
// timestamps derive from the frame index and fps. Cancellation is
// checked between frames; abandoning mid-run leaves no shared state to
// corrupt. totalFrames only scales the progress fraction and may be
// zero when unknown.
func (e *Engine) Run(
	ctx context.Context,
	pre *Precomputed,
	src FrameSource,
	sink FrameSink,
	fps float64,
	totalFrames int,
) error {
	if fps <= 0 {
		return fmt.Errorf("frame rate must be positive, got %g", fps)
	}

	for idx := 0; ; idx++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		frame, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("decode frame %d: %w", idx, err)
		}

		out := e.comp.Render(frame, float64(idx)/fps, pre)
		if err := sink.WriteFrame(out); err != nil {
			return fmt.Errorf("encode frame %d: %w", idx, err)
		}

		fraction := 0.0
		if totalFrames > 0 {
			fraction = float64(idx+1) / float64(totalFrames)
			if fraction > 1 {
				fraction = 1
			}
		}
		e.report(StageRendering, fraction, "")
	}

	e.report(StageRendering, 1, "")
	return nil
}
