package caption

import (
	"fmt"
	"image/color"
	"image/draw"
	"strings"

	"github.com/mkotnik/wordburn/internal/transcript"
)

// HighlightMode selects how the currently spoken word is emphasized.
type HighlightMode int

const (
	// recolor the active word's glyphs
	ModeText HighlightMode = iota
	// draw a pill behind the active word
	ModeBackground
	// recolor and draw the pill
	ModeBoth
	// draw only the active word, nothing for the rest of the segment
	ModeSolo
)

func (m HighlightMode) String() string {
	switch m {
	case ModeText:
		return "text"
	case ModeBackground:
		return "background"
	case ModeBoth:
		return "both"
	case ModeSolo:
		return "solo"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// UnsupportedModeError reports an unknown highlight mode in the
// configuration. Surfaced before any segment work begins.
type UnsupportedModeError struct {
	Mode HighlightMode
}

func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("unsupported highlight mode %s", e.Mode)
}

// Segment is a contiguous, time-bounded group of words displayed as one
// on-screen caption unit. Immutable once built.
type Segment struct {
	Words []transcript.Word `json:"words"`
	Start float64           `json:"start"`
	End   float64           `json:"end"`
}

// Duration returns the on-screen lifetime of the segment in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// Text returns the segment's display text, words joined by single spaces.
func (s Segment) Text() string {
	parts := make([]string, len(s.Words))
	for i, w := range s.Words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

// Window is the time interval during which one word of a segment is
// visually emphasized. Intervals are half-open [Start, End), so when two
// windows touch, the later one owns the boundary instant.
type Window struct {
	WordIndex int
	Start     float64
	End       float64
	Mode      HighlightMode
}

// Typeface is the glyph capability the engine consumes from the font
// layer: advance-based measurement and axis-aligned glyph drawing.
type Typeface interface {
	// rendered pixel width of text at the configured size
	Measure(text string) int
	Ascent() int
	Descent() int
	// line advance height
	Height() int
	DrawString(dst draw.Image, text string, x, baselineY int, col color.Color)
}

// RenderConfig is the fully resolved configuration for one processing
// run. Color and mode resolution happens upstream; the engine never
// sees raw strings.
type RenderConfig struct {
	Face     Typeface
	FontSize int

	TextColor           color.NRGBA
	HighlightColor      color.NRGBA
	Background          *color.NRGBA // nil disables the segment backdrop
	HighlightBackground color.NRGBA

	Mode HighlightMode

	// caption block center as fractions of the unrotated frame
	AnchorX float64
	AnchorY float64

	MaxWidth    int     // pixels
	MaxDuration float64 // seconds
	WordSpacing int     // pixels between adjacent words

	// unrotated frame dimensions
	FrameWidth  int
	FrameHeight int
}

// Validate checks the config before any segment work begins.
func (c *RenderConfig) Validate() error {
	switch c.Mode {
	case ModeText, ModeBackground, ModeBoth, ModeSolo:
	default:
		return &UnsupportedModeError{Mode: c.Mode}
	}
	if c.Face == nil {
		return fmt.Errorf("render config missing typeface")
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("font size must be positive, got %d", c.FontSize)
	}
	if c.AnchorX < 0 || c.AnchorX > 1 {
		return fmt.Errorf("horizontal anchor %.3f outside [0,1]", c.AnchorX)
	}
	if c.AnchorY < 0 || c.AnchorY > 1 {
		return fmt.Errorf("vertical anchor %.3f outside [0,1]", c.AnchorY)
	}
	if c.MaxWidth <= 0 {
		return fmt.Errorf("max segment width must be positive, got %d", c.MaxWidth)
	}
	if c.MaxDuration <= 0 {
		return fmt.Errorf("max segment duration must be positive, got %g", c.MaxDuration)
	}
	if c.FrameWidth <= 0 || c.FrameHeight <= 0 {
		return fmt.Errorf(
			"frame dimensions must be positive, got %dx%d",
			c.FrameWidth, c.FrameHeight,
		)
	}
	return nil
}
