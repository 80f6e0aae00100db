package transcript

import (
	"errors"
	"math"
	"testing"
)

func TestNormalizeEmpty(t *testing.T) {
	_, _, err := Normalize(nil)
	if !errors.Is(err, ErrEmptyTranscript) {
		t.Errorf("got %v, want ErrEmptyTranscript", err)
	}
}

func TestNormalizeMalformed(t *testing.T) {
	tests := []struct {
		name      string
		words     []Word
		wantIndex int
	}{
		{
			name:      "nan start",
			words:     []Word{{Text: "a", Start: math.NaN(), End: 1}},
			wantIndex: 0,
		},
		{
			name:      "infinite end",
			words:     []Word{{Text: "a", Start: 0, End: math.Inf(1)}},
			wantIndex: 0,
		},
		{
			name:      "negative start",
			words:     []Word{{Text: "a", Start: -0.5, End: 1}},
			wantIndex: 0,
		},
		{
			name:      "end equals start",
			words:     []Word{{Text: "a", Start: 1, End: 1}},
			wantIndex: 0,
		},
		{
			name:      "end before start",
			words:     []Word{{Text: "a", Start: 2, End: 1}},
			wantIndex: 0,
		},
		{
			name: "out of order",
			words: []Word{
				{Text: "a", Start: 1, End: 2},
				{Text: "b", Start: 0.5, End: 1.5},
			},
			wantIndex: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Normalize(tt.words)

			var malformed *MalformedTimestampError
			if !errors.As(err, &malformed) {
				t.Fatalf("got %v, want MalformedTimestampError", err)
			}
			if malformed.Index != tt.wantIndex {
				t.Errorf("got index %d, want %d", malformed.Index, tt.wantIndex)
			}
		})
	}
}

func TestNormalizeClampsOverlap(t *testing.T) {
	words, dropped, err := Normalize([]Word{
		{Text: "hello", Start: 0, End: 1},
		{Text: "world", Start: 0.8, End: 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dropped) != 0 {
		t.Errorf("got %d dropped words, want 0", len(dropped))
	}
	if len(words) != 2 {
		t.Fatalf("got %d words, want 2", len(words))
	}
	if words[1].Start != 1 {
		t.Errorf("got clamped start %g, want 1", words[1].Start)
	}
	if words[1].End != 2 {
		t.Errorf("got end %g, want 2 (unchanged)", words[1].End)
	}
}

func TestNormalizeDropsSubMillisecondWords(t *testing.T) {
	words, dropped, err := Normalize([]Word{
		{Text: "keep", Start: 0, End: 1},
		{Text: "swallowed", Start: 0.2, End: 1.0005},
		{Text: "also", Start: 1.0005, End: 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dropped) != 1 || dropped[0] != 1 {
		t.Fatalf("got dropped %v, want [1]", dropped)
	}
	if len(words) != 2 {
		t.Fatalf("got %d words, want 2", len(words))
	}
	if words[0].Text != "keep" || words[1].Text != "also" {
		t.Errorf("got words %q, %q, want keep, also", words[0].Text, words[1].Text)
	}
}

func TestNormalizeAllDropped(t *testing.T) {
	_, dropped, err := Normalize([]Word{
		{Text: "blip", Start: 0, End: 0.0002},
	})
	if !errors.Is(err, ErrEmptyTranscript) {
		t.Fatalf("got %v, want ErrEmptyTranscript", err)
	}
	if len(dropped) != 1 || dropped[0] != 0 {
		t.Errorf("got dropped %v, want [0]", dropped)
	}
}

func TestNormalizePreservesOrdering(t *testing.T) {
	words, _, err := Normalize([]Word{
		{Text: "a", Start: 0, End: 0.5},
		{Text: "b", Start: 0.4, End: 0.9},
		{Text: "c", Start: 0.9, End: 1.4},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(words); i++ {
		if words[i].Start < words[i-1].End {
			t.Errorf("word %d starts at %g before previous end %g",
				i, words[i].Start, words[i-1].End)
		}
	}
}
