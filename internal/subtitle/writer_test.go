package subtitle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func sampleSubtitle() *Subtitle {
	return &Subtitle{
		Entries: []Entry{
			{
				Index:     1,
				StartTime: 0,
				EndTime:   1200 * time.Millisecond,
				Text:      "hi there",
			},
			{
				Index:     2,
				StartTime: 2 * time.Second,
				EndTime:   3500 * time.Millisecond,
				Text:      "second cue",
			},
		},
	}
}

func writeAndRead(t *testing.T, w Writer, sub *Subtitle, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := w.Write(sub, path); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	return string(data)
}

func TestSRTWriter(t *testing.T) {
	content := writeAndRead(t, &SRTWriter{}, sampleSubtitle(), "out.srt")

	if !strings.Contains(content, "00:00:00,000 --> 00:00:01,200") {
		t.Errorf("missing first cue timing in:\n%s", content)
	}
	if !strings.Contains(content, "00:00:02,000 --> 00:00:03,500") {
		t.Errorf("missing second cue timing in:\n%s", content)
	}
	if !strings.HasPrefix(content, "1\n") {
		t.Error("SRT should start with the first cue index")
	}
	if !strings.Contains(content, "hi there") {
		t.Error("missing cue text")
	}
}

func TestVTTWriter(t *testing.T) {
	content := writeAndRead(t, &VTTWriter{}, sampleSubtitle(), "out.vtt")

	if !strings.HasPrefix(content, "WEBVTT\n") {
		t.Error("VTT must start with the WEBVTT header")
	}
	if !strings.Contains(content, "00:00:00.000 --> 00:00:01.200") {
		t.Errorf("missing cue timing in:\n%s", content)
	}
}

func TestASSWriter(t *testing.T) {
	w, err := NewWriter(FormatASS)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := writeAndRead(t, w, sampleSubtitle(), "out.ass")

	if !strings.Contains(content, "[Script Info]") {
		t.Error("missing script info section")
	}
	if !strings.Contains(content, "[Events]") {
		t.Error("missing events section")
	}
	if !strings.Contains(content, "Dialogue: 0,0:00:00.00,0:00:01.20,Default,,0,0,0,,hi there") {
		t.Errorf("missing dialogue line in:\n%s", content)
	}
}

func TestASSWriterKaraokeTags(t *testing.T) {
	sub := &Subtitle{
		Entries: []Entry{
			{
				Index:     1,
				StartTime: 0,
				EndTime:   1200 * time.Millisecond,
				Text:      "hi there",
				Words: []Word{
					{Text: "hi", Start: 0, End: 500 * time.Millisecond},
					{Text: "there", Start: 500 * time.Millisecond, End: 1200 * time.Millisecond},
				},
			},
		},
	}

	w, err := NewWriter(FormatASS)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := writeAndRead(t, w, sub, "karaoke.ass")

	if !strings.Contains(content, `{\k50}hi {\k70}there`) {
		t.Errorf("missing karaoke tags in:\n%s", content)
	}
}

func TestNewWriterUnsupported(t *testing.T) {
	if _, err := NewWriter(Format("pdf")); err == nil {
		t.Error("expected error for unsupported format, got nil")
	}
}

func TestFormatExtensionMapping(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.srt", FormatSRT},
		{"b.vtt", FormatVTT},
		{"c.ass", FormatASS},
		{"d.ssa", FormatASS},
		{"e.unknown", FormatSRT},
	}
	for _, tt := range tests {
		if got := GetFormatFromExtension(tt.path); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.path, got, tt.want)
		}
	}

	if got := GetExtensionForFormat(FormatVTT); got != ".vtt" {
		t.Errorf("got %s, want .vtt", got)
	}
}
