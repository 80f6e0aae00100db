package typeface

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Face is a sized font face with the measurement and drawing helpers
// the caption engine needs. Not safe for concurrent use.
type Face struct {
	face font.Face
	size int
}

// Load parses a TTF/OTF file and returns a face sized in pixels. An
// empty path falls back to the embedded Go Regular face so the tool
// works without any font file.
func Load(path string, sizePx int) (*Face, error) {
	if sizePx <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %d", sizePx)
	}

	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file: %w", err)
		}
		data = b
	}

	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(sizePx),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}

	return &Face{face: face, size: sizePx}, nil
}

// Size returns the pixel size the face was created with.
func (f *Face) Size() int {
	return f.size
}

// Measure returns the rendered pixel width of text, the sum of glyph
// advances.
func (f *Face) Measure(text string) int {
	return font.MeasureString(f.face, text).Ceil()
}

func (f *Face) Ascent() int {
	return f.face.Metrics().Ascent.Ceil()
}

func (f *Face) Descent() int {
	return f.face.Metrics().Descent.Ceil()
}

// Height returns the line advance height.
func (f *Face) Height() int {
	return f.face.Metrics().Height.Ceil()
}

// DrawString rasterizes text onto dst with its baseline at (x,
// baselineY). Glyphs outside dst's bounds are clipped by the drawer.
func (f *Face) DrawString(dst draw.Image, text string, x, baselineY int, col color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: f.face,
		Dot:  fixed.P(x, baselineY),
	}
	d.DrawString(text)
}

// Close releases the face's glyph cache.
func (f *Face) Close() error {
	if closer, ok := f.face.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
