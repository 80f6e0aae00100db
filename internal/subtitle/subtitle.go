package subtitle

import (
	"time"
)

// represents a single subtitle cue
type Entry struct {
	Index     int
	StartTime time.Duration
	EndTime   time.Duration
	Text      string
	// per-word timing inside the cue, used for karaoke output
	Words []Word
}

// one timed word within a cue
type Word struct {
	Text  string
	Start time.Duration
	End   time.Duration
}

// represents a complete subtitle track
type Subtitle struct {
	Entries []Entry
	Format  string
}

// represents supported subtitle formats
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
	FormatASS Format = "ass"
)

// interface for writing subtitles to files
type Writer interface {
	Write(subtitle *Subtitle, path string) error
}
