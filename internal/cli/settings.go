package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkotnik/wordburn/internal/config"
)

// registers the caption style flags shared by burn and segments
func addStyleFlags(cmd *cobra.Command) {
	cmd.Flags().String("font-path", "", "Path to a TTF/OTF font file (embedded default if unset)")
	cmd.Flags().Float64("font-scale", 0, "Font size as a ratio of frame height (e.g. 0.045)")
	cmd.Flags().String("text-color", "", "Text color (name, #rrggbb, or R,G,B)")
	cmd.Flags().String("highlight-color", "", "Highlight color for the spoken word")
	cmd.Flags().String("background-color", "", "Backdrop color behind the caption (off by default)")
	cmd.Flags().String("highlight-bg-color", "", "Pill color behind the spoken word")
	cmd.Flags().String("position", "", `Caption anchor as "x,y" ratios or a bare "y"`)
	cmd.Flags().StringP("highlight-mode", "m", "", "Highlight mode: text, background, both, or solo")
	cmd.Flags().Int("max-width", 0, "Maximum caption width in pixels")
	cmd.Flags().Float64("max-duration", 0, "Maximum segment duration in seconds")
	cmd.Flags().Int("word-spacing", 0, "Gap between words in pixels")
}

// resolveSettings layers defaults, the optional config file, and CLI
// flag overrides into one validated Settings value.
func resolveSettings(cmd *cobra.Command) (config.Settings, error) {
	settings := config.Default()

	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		file, err := config.LoadFile(configPath)
		if err != nil {
			return settings, err
		}
		if err := file.Apply(&settings); err != nil {
			return settings, err
		}
	}

	if v, _ := cmd.Flags().GetString("font-path"); v != "" {
		settings.FontPath = v
	}
	if v, _ := cmd.Flags().GetFloat64("font-scale"); v != 0 {
		settings.FontScale = v
	}
	if v, _ := cmd.Flags().GetString("text-color"); v != "" {
		c, err := config.ParseColor(v)
		if err != nil {
			return settings, fmt.Errorf("--text-color: %w", err)
		}
		settings.TextColor = c
	}
	if v, _ := cmd.Flags().GetString("highlight-color"); v != "" {
		c, err := config.ParseColor(v)
		if err != nil {
			return settings, fmt.Errorf("--highlight-color: %w", err)
		}
		settings.HighlightColor = c
	}
	if v, _ := cmd.Flags().GetString("background-color"); v != "" {
		c, err := config.ParseColor(v)
		if err != nil {
			return settings, fmt.Errorf("--background-color: %w", err)
		}
		settings.Background = &c
	}
	if v, _ := cmd.Flags().GetString("highlight-bg-color"); v != "" {
		c, err := config.ParseColor(v)
		if err != nil {
			return settings, fmt.Errorf("--highlight-bg-color: %w", err)
		}
		settings.HighlightBackground = c
	}
	if v, _ := cmd.Flags().GetString("position"); v != "" {
		x, y, err := config.ParsePosition(v)
		if err != nil {
			return settings, fmt.Errorf("--position: %w", err)
		}
		settings.AnchorX, settings.AnchorY = x, y
	}
	if v, _ := cmd.Flags().GetString("highlight-mode"); v != "" {
		m, err := config.ParseMode(v)
		if err != nil {
			return settings, fmt.Errorf("--highlight-mode: %w", err)
		}
		settings.Mode = m
	}
	if v, _ := cmd.Flags().GetInt("max-width"); v != 0 {
		settings.MaxWidth = v
	}
	if v, _ := cmd.Flags().GetFloat64("max-duration"); v != 0 {
		settings.MaxDuration = v
	}
	if v, _ := cmd.Flags().GetInt("word-spacing"); v != 0 {
		settings.WordSpacing = v
	}

	if err := settings.Validate(); err != nil {
		return settings, err
	}
	return settings, nil
}
