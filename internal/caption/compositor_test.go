package caption

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/mkotnik/wordburn/internal/transcript"
)

func testConfig(mode HighlightMode) RenderConfig {
	return RenderConfig{
		Face:                fakeFace{},
		FontSize:            10,
		TextColor:           color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		HighlightColor:      color.NRGBA{R: 255, G: 255, A: 255},
		HighlightBackground: color.NRGBA{G: 128, A: 255},
		Mode:                mode,
		AnchorX:             0.5,
		AnchorY:             0.8,
		MaxWidth:            800,
		MaxDuration:         1.5,
		WordSpacing:         10,
		FrameWidth:          200,
		FrameHeight:         100,
	}
}

func testFrame(w, h int) *image.RGBA {
	frame := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(frame.Pix); i += 4 {
		frame.Pix[i] = 20    // R
		frame.Pix[i+1] = 40  // G
		frame.Pix[i+2] = 60  // B
		frame.Pix[i+3] = 255 // A
	}
	return frame
}

func precompute(t *testing.T, cfg RenderConfig, words []transcript.Word) *Precomputed {
	t.Helper()
	engine, err := NewEngine(cfg, nil)
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}
	pre, err := engine.ProcessSegments(words)
	if err != nil {
		t.Fatalf("failed to process segments: %v", err)
	}
	return pre
}

func scenarioWords() []transcript.Word {
	return []transcript.Word{
		{Text: "hi", Start: 0.0, End: 0.5},
		{Text: "there", Start: 0.5, End: 1.2},
	}
}

func TestRotate90(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	src.SetRGBA(2, 1, color.RGBA{B: 255, A: 255})

	dst := Rotate90(src)

	if got := dst.Bounds(); got.Dx() != 2 || got.Dy() != 3 {
		t.Fatalf("got bounds %v, want 2x3", got)
	}
	// top-left corner moves to top-right
	if got := dst.RGBAAt(1, 0); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("got %v at (1,0), want red", got)
	}
	// bottom-right corner moves to bottom-left
	if got := dst.RGBAAt(0, 2); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("got %v at (0,2), want blue", got)
	}
}

func TestRotate90FourTimesRoundTrips(t *testing.T) {
	src := testFrame(5, 3)
	src.SetRGBA(1, 2, color.RGBA{R: 7, G: 8, B: 9, A: 255})

	out := src
	for i := 0; i < 4; i++ {
		out = Rotate90(out)
	}

	if !bytes.Equal(out.Pix, src.Pix) {
		t.Error("four quarter turns should reproduce the original raster")
	}
}

func TestRenderNoActiveSegmentRotatesOnly(t *testing.T) {
	cfg := testConfig(ModeText)
	pre := precompute(t, cfg, scenarioWords())

	frame := testFrame(cfg.FrameWidth, cfg.FrameHeight)
	want := Rotate90(testFrame(cfg.FrameWidth, cfg.FrameHeight))

	out := NewCompositor(cfg).Render(frame, 5.0, pre)

	if !bytes.Equal(out.Pix, want.Pix) {
		t.Error("frame outside every segment should pass through rotated only")
	}
}

func TestRenderDeterministic(t *testing.T) {
	cfg := testConfig(ModeBoth)
	cfg.Background = &color.NRGBA{A: 255}
	pre := precompute(t, cfg, scenarioWords())
	comp := NewCompositor(cfg)

	first := comp.Render(testFrame(cfg.FrameWidth, cfg.FrameHeight), 0.6, pre)
	second := comp.Render(testFrame(cfg.FrameWidth, cfg.FrameHeight), 0.6, pre)

	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("identical inputs should produce byte-identical frames")
	}
}

func TestRenderDrawsCaption(t *testing.T) {
	cfg := testConfig(ModeText)
	pre := precompute(t, cfg, scenarioWords())

	out := NewCompositor(cfg).Render(testFrame(cfg.FrameWidth, cfg.FrameHeight), 0.2, pre)
	plain := Rotate90(testFrame(cfg.FrameWidth, cfg.FrameHeight))

	if bytes.Equal(out.Pix, plain.Pix) {
		t.Error("frame inside a segment should differ from the plain rotated frame")
	}
}

// findColor reports whether any pixel in img matches col exactly.
func findColor(img *image.RGBA, col color.RGBA) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == col {
				return true
			}
		}
	}
	return false
}

func TestRenderSoloShowsOnlyActiveWord(t *testing.T) {
	cfg := testConfig(ModeSolo)
	pre := precompute(t, cfg, scenarioWords())
	comp := NewCompositor(cfg)

	// "there" active at 0.6: exactly its box is painted in the text color
	out := comp.Render(testFrame(cfg.FrameWidth, cfg.FrameHeight), 0.6, pre)

	textCol := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if !findColor(out, textCol) {
		t.Fatal("active word glyphs missing at 0.6")
	}

	// the fake face paints 10px per rune: "there" alone is 50px wide,
	// "hi there" together would be 80. Count painted columns in rotated
	// space (rows of the unrotated frame are columns after rotation).
	painted := countColor(out, textCol)
	wordArea := 50 * 10 // width x box height
	if painted != wordArea {
		t.Errorf("got %d painted pixels, want %d (only the active word)", painted, wordArea)
	}

	// "hi" active at 0.2
	out = comp.Render(testFrame(cfg.FrameWidth, cfg.FrameHeight), 0.2, pre)
	painted = countColor(out, textCol)
	wordArea = 20 * 10
	if painted != wordArea {
		t.Errorf("got %d painted pixels, want %d (only %q)", painted, wordArea, "hi")
	}
}

func countColor(img *image.RGBA, col color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == col {
				n++
			}
		}
	}
	return n
}

func TestRenderTextModeHighlightsActiveWord(t *testing.T) {
	cfg := testConfig(ModeText)
	pre := precompute(t, cfg, scenarioWords())

	out := NewCompositor(cfg).Render(testFrame(cfg.FrameWidth, cfg.FrameHeight), 0.6, pre)

	highlight := color.RGBA{R: 255, G: 255, A: 255}
	text := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if !findColor(out, highlight) {
		t.Error("active word should use the highlight color")
	}
	if !findColor(out, text) {
		t.Error("inactive words should keep the text color")
	}
}

func TestRenderBackgroundModePill(t *testing.T) {
	cfg := testConfig(ModeBackground)
	pre := precompute(t, cfg, scenarioWords())

	out := NewCompositor(cfg).Render(testFrame(cfg.FrameWidth, cfg.FrameHeight), 0.6, pre)

	// pill blends the highlight background at alpha 200 over the frame;
	// the pill pad region outside the glyph boxes shows the blend result
	blendG := uint8((uint32(128)*200 + uint32(40)*55) / 255)
	pill := color.RGBA{
		R: uint8(uint32(20) * 55 / 255),
		G: blendG,
		B: uint8(uint32(60) * 55 / 255),
		A: 255,
	}
	if !findColor(out, pill) {
		t.Error("expected blended pill pixels behind the active word")
	}
}

func TestFindSegment(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 1},
		{Start: 1, End: 2},
		{Start: 3, End: 4},
	}

	tests := []struct {
		name    string
		ts      float64
		wantIdx int
		wantHit bool
	}{
		{"first segment", 0.5, 0, true},
		{"boundary goes to later segment", 1.0, 1, true},
		{"gap between segments", 2.5, 0, false},
		{"last segment", 3.5, 2, true},
		{"past the end", 9.0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := findSegment(segments, tt.ts)
			if ok != tt.wantHit {
				t.Fatalf("got hit=%v, want %v", ok, tt.wantHit)
			}
			if ok && idx != tt.wantIdx {
				t.Errorf("got index %d, want %d", idx, tt.wantIdx)
			}
		})
	}
}

func TestDrawRoundedRectStaysInBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	// rect extends well past the raster on every side
	drawRoundedRect(img, image.Rect(-20, -20, 30, 30), 5,
		color.NRGBA{R: 255, A: 255})

	if img.RGBAAt(5, 5) != (color.RGBA{R: 255, A: 255}) {
		t.Error("interior pixel should be filled")
	}
}
