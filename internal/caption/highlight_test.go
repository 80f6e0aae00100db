package caption

import (
	"testing"

	"github.com/mkotnik/wordburn/internal/transcript"
)

func testSegment() Segment {
	return Segment{
		Words: []transcript.Word{
			{Text: "hi", Start: 0.0, End: 0.5},
			{Text: "there", Start: 0.5, End: 1.2},
		},
		Start: 0.0,
		End:   1.2,
	}
}

func TestScheduleOneWindowPerWord(t *testing.T) {
	seg := testSegment()
	windows := (&Scheduler{Mode: ModeText}).Schedule(seg)

	if len(windows) != len(seg.Words) {
		t.Fatalf("got %d windows, want %d", len(windows), len(seg.Words))
	}
	for i, win := range windows {
		if win.WordIndex != i {
			t.Errorf("window %d: got index %d, want %d", i, win.WordIndex, i)
		}
		if win.Start != seg.Words[i].Start || win.End != seg.Words[i].End {
			t.Errorf("window %d: got [%g,%g], want [%g,%g]",
				i, win.Start, win.End, seg.Words[i].Start, seg.Words[i].End)
		}
		if win.Mode != ModeText {
			t.Errorf("window %d: got mode %s, want text", i, win.Mode)
		}
	}
}

func TestActiveAt(t *testing.T) {
	windows := (&Scheduler{Mode: ModeBoth}).Schedule(testSegment())

	tests := []struct {
		name    string
		t       float64
		wantIdx int
		wantHit bool
	}{
		{"inside first word", 0.2, 0, true},
		{"start of segment", 0.0, 0, true},
		{"shared boundary goes to later word", 0.5, 1, true},
		{"inside second word", 0.9, 1, true},
		{"end of segment is exclusive", 1.2, 0, false},
		{"before segment", -0.1, 0, false},
		{"after segment", 2.0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := ActiveAt(windows, tt.t)
			if ok != tt.wantHit {
				t.Fatalf("got hit=%v, want %v", ok, tt.wantHit)
			}
			if ok && idx != tt.wantIdx {
				t.Errorf("got index %d, want %d", idx, tt.wantIdx)
			}
		})
	}
}

func TestActiveAtGap(t *testing.T) {
	// words with a silence between them: neither window covers the gap
	windows := (&Scheduler{Mode: ModeText}).Schedule(Segment{
		Words: []transcript.Word{
			{Text: "a", Start: 0.0, End: 0.4},
			{Text: "b", Start: 1.0, End: 1.4},
		},
		Start: 0.0,
		End:   1.4,
	})

	if _, ok := ActiveAt(windows, 0.7); ok {
		t.Error("expected no active window inside the silence gap")
	}
}

func TestActiveAtEmpty(t *testing.T) {
	if _, ok := ActiveAt(nil, 0.5); ok {
		t.Error("expected no active window for empty slice")
	}
}
