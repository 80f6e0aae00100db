package config

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mkotnik/wordburn/internal/caption"
)

// Settings is the fully resolved caption configuration: colors are
// concrete values, the mode is a closed enum, nothing downstream parses
// strings.
type Settings struct {
	FontPath  string
	FontScale float64 // font pixel size as a ratio of frame height

	TextColor           color.NRGBA
	HighlightColor      color.NRGBA
	Background          *color.NRGBA
	HighlightBackground color.NRGBA

	Mode caption.HighlightMode

	AnchorX float64
	AnchorY float64

	MaxWidth    int
	MaxDuration float64
	WordSpacing int
}

// Default returns the stock look: white text, yellow highlight, green
// highlight pill, no backdrop, captions centered at 80% height.
func Default() Settings {
	return Settings{
		FontScale:           0.045,
		TextColor:           color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		HighlightColor:      color.NRGBA{R: 255, G: 255, B: 0, A: 255},
		HighlightBackground: color.NRGBA{G: 255, A: 255},
		Mode:                caption.ModeText,
		AnchorX:             0.5,
		AnchorY:             0.8,
		MaxWidth:            800,
		MaxDuration:         1.5,
		WordSpacing:         10,
	}
}

// File mirrors the YAML configuration file layout.
type File struct {
	Font struct {
		Path  string   `yaml:"path"`
		Scale *float64 `yaml:"scale"`
	} `yaml:"font"`
	Colors struct {
		Text                string `yaml:"text"`
		Highlight           string `yaml:"highlight"`
		Background          string `yaml:"background"`
		HighlightBackground string `yaml:"highlight_background"`
	} `yaml:"colors"`
	Position struct {
		Horizontal *float64 `yaml:"horizontal"`
		Vertical   *float64 `yaml:"vertical"`
	} `yaml:"position"`
	Highlighting struct {
		Mode string `yaml:"mode"`
	} `yaml:"highlighting"`
	Segments struct {
		MaxWidth    *int     `yaml:"max_width"`
		MaxDuration *float64 `yaml:"max_duration"`
		WordSpacing *int     `yaml:"word_spacing"`
	} `yaml:"segments"`
}

// LoadFile reads and parses a YAML config file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}
	return &f, nil
}

// Apply merges file values over the settings. Unset fields keep their
// current values.
func (f *File) Apply(s *Settings) error {
	if f.Font.Path != "" {
		s.FontPath = f.Font.Path
	}
	if f.Font.Scale != nil {
		s.FontScale = *f.Font.Scale
	}

	if f.Colors.Text != "" {
		c, err := ParseColor(f.Colors.Text)
		if err != nil {
			return fmt.Errorf("colors.text: %w", err)
		}
		s.TextColor = c
	}
	if f.Colors.Highlight != "" {
		c, err := ParseColor(f.Colors.Highlight)
		if err != nil {
			return fmt.Errorf("colors.highlight: %w", err)
		}
		s.HighlightColor = c
	}
	if f.Colors.Background != "" {
		c, err := ParseColor(f.Colors.Background)
		if err != nil {
			return fmt.Errorf("colors.background: %w", err)
		}
		s.Background = &c
	}
	if f.Colors.HighlightBackground != "" {
		c, err := ParseColor(f.Colors.HighlightBackground)
		if err != nil {
			return fmt.Errorf("colors.highlight_background: %w", err)
		}
		s.HighlightBackground = c
	}

	if f.Position.Horizontal != nil {
		s.AnchorX = *f.Position.Horizontal
	}
	if f.Position.Vertical != nil {
		s.AnchorY = *f.Position.Vertical
	}

	if f.Highlighting.Mode != "" {
		m, err := ParseMode(f.Highlighting.Mode)
		if err != nil {
			return fmt.Errorf("highlighting.mode: %w", err)
		}
		s.Mode = m
	}

	if f.Segments.MaxWidth != nil {
		s.MaxWidth = *f.Segments.MaxWidth
	}
	if f.Segments.MaxDuration != nil {
		s.MaxDuration = *f.Segments.MaxDuration
	}
	if f.Segments.WordSpacing != nil {
		s.WordSpacing = *f.Segments.WordSpacing
	}

	return nil
}

// Validate rejects out-of-range values before any processing starts.
func (s *Settings) Validate() error {
	if s.FontScale <= 0 || s.FontScale > 0.5 {
		return fmt.Errorf("font scale %.3f outside (0, 0.5]", s.FontScale)
	}
	if s.AnchorX < 0 || s.AnchorX > 1 {
		return fmt.Errorf("horizontal position %.3f outside [0, 1]", s.AnchorX)
	}
	if s.AnchorY < 0 || s.AnchorY > 1 {
		return fmt.Errorf("vertical position %.3f outside [0, 1]", s.AnchorY)
	}
	if s.MaxWidth <= 0 {
		return fmt.Errorf("max width must be positive, got %d", s.MaxWidth)
	}
	if s.MaxDuration <= 0 {
		return fmt.Errorf("max duration must be positive, got %g", s.MaxDuration)
	}
	if s.WordSpacing < 0 {
		return fmt.Errorf("word spacing must not be negative, got %d", s.WordSpacing)
	}
	if s.FontPath != "" {
		if _, err := os.Stat(s.FontPath); err != nil {
			return fmt.Errorf("font file not found: %s", s.FontPath)
		}
	}
	return nil
}

// RenderConfig binds the settings to a loaded typeface and concrete
// frame dimensions, producing the engine's resolved configuration.
func (s *Settings) RenderConfig(
	face caption.Typeface,
	fontSize, frameWidth, frameHeight int,
) caption.RenderConfig {
	return caption.RenderConfig{
		Face:                face,
		FontSize:            fontSize,
		TextColor:           s.TextColor,
		HighlightColor:      s.HighlightColor,
		Background:          s.Background,
		HighlightBackground: s.HighlightBackground,
		Mode:                s.Mode,
		AnchorX:             s.AnchorX,
		AnchorY:             s.AnchorY,
		MaxWidth:            s.MaxWidth,
		MaxDuration:         s.MaxDuration,
		WordSpacing:         s.WordSpacing,
		FrameWidth:          frameWidth,
		FrameHeight:         frameHeight,
	}
}
