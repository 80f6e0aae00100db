package transcript

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestLoadWrapped(t *testing.T) {
	path := writeTemp(t, `{
		"text": "hello world",
		"words": [
			{"text": "hello", "start": 0.0, "end": 0.5},
			{"text": "world", "start": 0.5, "end": 1.0}
		]
	}`)

	tr, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Text != "hello world" {
		t.Errorf("got text %q, want %q", tr.Text, "hello world")
	}
	if len(tr.Words) != 2 {
		t.Fatalf("got %d words, want 2", len(tr.Words))
	}
	if tr.Words[1].Text != "world" || tr.Words[1].Start != 0.5 {
		t.Errorf("got word %+v, want world at 0.5", tr.Words[1])
	}
}

func TestLoadBareArray(t *testing.T) {
	path := writeTemp(t, `[
		{"text": "hi", "start": 0.0, "end": 0.4},
		{"text": "there", "start": 0.5, "end": 1.0}
	]`)

	tr, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tr.Words) != 2 {
		t.Fatalf("got %d words, want 2", len(tr.Words))
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeTemp(t, `{not json`)
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid JSON, got nil")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestWordDuration(t *testing.T) {
	w := Word{Text: "a", Start: 1, End: 1.5}
	if got := w.Duration(); got != 0.5 {
		t.Errorf("got %g, want 0.5", got)
	}
}
