package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/mkotnik/wordburn/internal/caption"
)

var namedColors = map[string]color.NRGBA{
	"white":   {R: 255, G: 255, B: 255, A: 255},
	"black":   {A: 255},
	"red":     {R: 255, A: 255},
	"green":   {G: 255, A: 255},
	"blue":    {B: 255, A: 255},
	"yellow":  {R: 255, G: 255, A: 255},
	"cyan":    {G: 255, B: 255, A: 255},
	"magenta": {R: 255, B: 255, A: 255},
	"orange":  {R: 255, G: 165, A: 255},
	"purple":  {R: 128, B: 128, A: 255},
	"pink":    {R: 255, G: 192, B: 203, A: 255},
}

// ParseColor resolves a color name, "#rrggbb" hex value, or "R,G,B"
// triple into a concrete color.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)

	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		if len(parts) != 3 {
			return color.NRGBA{}, fmt.Errorf("invalid RGB color %q", s)
		}
		var vals [3]uint8
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || n < 0 || n > 255 {
				return color.NRGBA{}, fmt.Errorf("invalid RGB color %q", s)
			}
			vals[i] = uint8(n)
		}
		return color.NRGBA{R: vals[0], G: vals[1], B: vals[2], A: 255}, nil
	}

	if strings.HasPrefix(s, "#") {
		if len(s) != 7 {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
		}
		n, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
		}
		return color.NRGBA{
			R: uint8(n >> 16),
			G: uint8(n >> 8),
			B: uint8(n),
			A: 255,
		}, nil
	}

	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	return color.NRGBA{}, fmt.Errorf("unknown color %q", s)
}

// ParseMode resolves a highlight mode name. "current_word_only" is
// accepted as a legacy spelling of solo.
func ParseMode(s string) (caption.HighlightMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text":
		return caption.ModeText, nil
	case "background":
		return caption.ModeBackground, nil
	case "both":
		return caption.ModeBoth, nil
	case "solo", "current_word_only":
		return caption.ModeSolo, nil
	default:
		return 0, fmt.Errorf(
			"unknown highlight mode %q: use text, background, both, or solo", s)
	}
}

// ParsePosition parses "x,y" anchor ratios, or a bare "y" with the
// horizontal anchor kept centered.
func ParsePosition(s string) (x, y float64, err error) {
	s = strings.TrimSpace(s)
	if xs, ys, ok := strings.Cut(s, ","); ok {
		x, err = strconv.ParseFloat(strings.TrimSpace(xs), 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid position %q", s)
		}
		y, err = strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid position %q", s)
		}
		return x, y, nil
	}
	y, err = strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid position %q", s)
	}
	return 0.5, y, nil
}
