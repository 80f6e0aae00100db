package transcript

import (
	"errors"
	"fmt"
	"math"
)

// ErrEmptyTranscript is returned when no usable words are supplied.
var ErrEmptyTranscript = errors.New("transcript contains no words")

// MalformedTimestampError reports the first word whose timestamps are
// unusable. The whole transcript is rejected rather than partially
// processed, since segment boundaries depend on global ordering.
type MalformedTimestampError struct {
	Index  int
	Word   string
	Reason string
}

func (e *MalformedTimestampError) Error() string {
	return fmt.Sprintf(
		"malformed timestamp at word %d (%q): %s",
		e.Index, e.Word, e.Reason,
	)
}

// words shorter than this after clamping are dropped
const minWordDuration = 0.001

// Normalize validates and orders raw transcript words. Overlapping
// neighbours are clamped so each word starts no earlier than the previous
// word ends, and words left shorter than a millisecond are dropped. The
// returned indices identify dropped words in the input slice.
func Normalize(raw []Word) ([]Word, []int, error) {
	if len(raw) == 0 {
		return nil, nil, ErrEmptyTranscript
	}

	for i, w := range raw {
		switch {
		case !isFinite(w.Start) || !isFinite(w.End):
			return nil, nil, &MalformedTimestampError{
				Index: i, Word: w.Text, Reason: "timestamp is not finite",
			}
		case w.Start < 0:
			return nil, nil, &MalformedTimestampError{
				Index: i, Word: w.Text, Reason: "negative start time",
			}
		case w.End <= w.Start:
			return nil, nil, &MalformedTimestampError{
				Index: i, Word: w.Text, Reason: "end time not after start time",
			}
		case i > 0 && w.Start < raw[i-1].Start:
			return nil, nil, &MalformedTimestampError{
				Index: i, Word: w.Text, Reason: "start time before previous word",
			}
		}
	}

	words := make([]Word, 0, len(raw))
	var dropped []int

	prevEnd := 0.0
	for i, w := range raw {
		if w.Start < prevEnd {
			w.Start = prevEnd
		}
		if w.End-w.Start < minWordDuration {
			dropped = append(dropped, i)
			continue
		}
		words = append(words, w)
		prevEnd = w.End
	}

	if len(words) == 0 {
		return nil, dropped, ErrEmptyTranscript
	}

	return words, dropped, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
