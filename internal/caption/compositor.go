package caption

import (
	"image"
	"image/color"
	"image/draw"
	"sort"
)

// overlay alphas, matching the tool's established look
const (
	backdropAlpha  = 180
	highlightAlpha = 200
	shadowAlpha    = 160
)

// Compositor draws the active caption segment onto decoded frames and
// applies the fixed 90 degree clockwise output rotation.
type Compositor struct {
	cfg RenderConfig
}

func NewCompositor(cfg RenderConfig) *Compositor {
	return &Compositor{cfg: cfg}
}

// Render composites the caption state for ts onto frame, then rotates
// picture and text together as one raster. The frame is mutated before
// rotation; the precomputed state is never modified. Frames with no
// active segment pass through rotated but otherwise untouched.
func (c *Compositor) Render(frame *image.RGBA, ts float64, pre *Precomputed) *image.RGBA {
	if idx, ok := findSegment(pre.Segments, ts); ok {
		c.drawSegment(frame, pre.Segments[idx], pre.Layouts[idx], pre.Windows[idx], ts)
	}
	return Rotate90(frame)
}

// findSegment binary-searches the time-ordered, non-overlapping segment
// list for the one whose [Start, End) covers ts.
func findSegment(segments []Segment, ts float64) (int, bool) {
	i := sort.Search(len(segments), func(i int) bool {
		return segments[i].End > ts
	})
	if i < len(segments) && segments[i].Start <= ts {
		return i, true
	}
	return 0, false
}

func (c *Compositor) drawSegment(
	frame *image.RGBA,
	seg Segment,
	lay Layout,
	windows []Window,
	ts float64,
) {
	active, hasActive := ActiveAt(windows, ts)

	if c.cfg.Mode == ModeSolo {
		if !hasActive {
			return
		}
		box, baseline, ok := lay.box(active)
		if !ok {
			return
		}
		if c.cfg.Background != nil {
			c.drawBackdrop(frame, box.X, box.Y, box.Width, box.Height)
		}
		c.drawWord(frame, seg.Words[active].Text, box.X, baseline, c.cfg.TextColor)
		return
	}

	if c.cfg.Background != nil {
		for _, line := range lay.Lines {
			if len(line.Words) == 0 {
				continue
			}
			first := line.Words[0]
			last := line.Words[len(line.Words)-1]
			c.drawBackdrop(frame, first.X, first.Y, last.X+last.Width-first.X, first.Height)
		}
	}

	if hasActive && (c.cfg.Mode == ModeBackground || c.cfg.Mode == ModeBoth) {
		if box, _, ok := lay.box(active); ok {
			pad := c.cfg.FontSize / 5
			col := c.cfg.HighlightBackground
			col.A = highlightAlpha
			drawRoundedRect(frame,
				image.Rect(box.X-pad, box.Y-pad, box.X+box.Width+pad, box.Y+box.Height+pad),
				c.cfg.FontSize*3/20, col)
		}
	}

	highlightText := c.cfg.Mode == ModeText || c.cfg.Mode == ModeBoth
	for _, line := range lay.Lines {
		for _, box := range line.Words {
			col := c.cfg.TextColor
			if highlightText && hasActive && box.WordIndex == active {
				col = c.cfg.HighlightColor
			}
			c.drawWord(frame, seg.Words[box.WordIndex].Text, box.X, line.BaselineY, col)
		}
	}
}

// drawBackdrop draws the translucent rounded rectangle behind a span of
// text, padded proportionally to the font size.
func (c *Compositor) drawBackdrop(frame *image.RGBA, x, y, w, h int) {
	padH := c.cfg.FontSize / 2
	padV := c.cfg.FontSize * 3 / 10
	col := *c.cfg.Background
	col.A = backdropAlpha
	drawRoundedRect(frame,
		image.Rect(x-padH, y-padV, x+w+padH, y+h+padV),
		c.cfg.FontSize*3/10, col)
}

// drawWord renders one word's shadow pass and glyph pass at a baseline.
// The typeface clips glyphs to the frame, so boxes that stray past the
// edge draw their visible portion only.
func (c *Compositor) drawWord(frame *image.RGBA, text string, x, baseline int, col color.NRGBA) {
	off := c.cfg.FontSize / 16
	if off < 1 {
		off = 1
	}
	c.cfg.Face.DrawString(frame, text, x+off, baseline+off,
		color.NRGBA{A: shadowAlpha})
	c.cfg.Face.DrawString(frame, text, x, baseline, col)
}

// Rotate90 returns a new raster rotated 90 degrees clockwise.
func Rotate90(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.SetRGBA(h-1-y, x, src.RGBAAt(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

// fillRect fills the part of r inside the frame.
func fillRect(img *image.RGBA, r image.Rectangle, col color.NRGBA) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(img, r, image.NewUniform(col), image.Point{}, draw.Over)
}

// drawRoundedRect fills a rounded rectangle as a center cross of plain
// rectangles plus four quarter-disc corners. The pieces are disjoint so
// translucent fills never blend twice.
func drawRoundedRect(img *image.RGBA, r image.Rectangle, radius int, col color.NRGBA) {
	if radius <= 0 {
		fillRect(img, r, col)
		return
	}
	if radius*2 > r.Dx() {
		radius = r.Dx() / 2
	}
	if radius*2 > r.Dy() {
		radius = r.Dy() / 2
	}
	if radius <= 0 {
		fillRect(img, r, col)
		return
	}

	fillRect(img, image.Rect(r.Min.X+radius, r.Min.Y, r.Max.X-radius, r.Max.Y), col)
	fillRect(img, image.Rect(r.Min.X, r.Min.Y+radius, r.Min.X+radius, r.Max.Y-radius), col)
	fillRect(img, image.Rect(r.Max.X-radius, r.Min.Y+radius, r.Max.X, r.Max.Y-radius), col)

	fillQuarterDisc(img, r.Min.X+radius, r.Min.Y+radius, radius,
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+radius, r.Min.Y+radius), col)
	fillQuarterDisc(img, r.Max.X-radius, r.Min.Y+radius, radius,
		image.Rect(r.Max.X-radius, r.Min.Y, r.Max.X, r.Min.Y+radius), col)
	fillQuarterDisc(img, r.Min.X+radius, r.Max.Y-radius, radius,
		image.Rect(r.Min.X, r.Max.Y-radius, r.Min.X+radius, r.Max.Y), col)
	fillQuarterDisc(img, r.Max.X-radius, r.Max.Y-radius, radius,
		image.Rect(r.Max.X-radius, r.Max.Y-radius, r.Max.X, r.Max.Y), col)
}

// fillQuarterDisc fills pixels of clip within radius of (cx, cy).
func fillQuarterDisc(img *image.RGBA, cx, cy, radius int, clip image.Rectangle, col color.NRGBA) {
	clip = clip.Intersect(img.Bounds())
	if clip.Empty() {
		return
	}
	rr := radius * radius
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= rr {
				blendPixel(img, x, y, col)
			}
		}
	}
}

// blendPixel source-overs a translucent color onto an opaque pixel.
func blendPixel(img *image.RGBA, x, y int, col color.NRGBA) {
	dst := img.RGBAAt(x, y)
	a := uint32(col.A)
	inv := 255 - a
	img.SetRGBA(x, y, color.RGBA{
		R: uint8((uint32(col.R)*a + uint32(dst.R)*inv) / 255),
		G: uint8((uint32(col.G)*a + uint32(dst.G)*inv) / 255),
		B: uint8((uint32(col.B)*a + uint32(dst.B)*inv) / 255),
		A: 255,
	})
}
