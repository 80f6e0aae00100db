package caption

import (
	"github.com/mkotnik/wordburn/internal/transcript"
)

// MeasureFunc returns the rendered pixel width of text at the
// configured font size.
type MeasureFunc func(text string) int

// Builder groups consecutive words into caption segments bounded by
// rendered pixel width and wall-clock duration.
type Builder struct {
	MaxWidth    int
	MaxDuration float64
	Gap         int // inter-word gap, must match the layout gap
	Measure     MeasureFunc
}

// Build partitions words into segments with a greedy forward scan. A
// candidate segment keeps absorbing the next word until either limit
// would be exceeded; a single word that exceeds the limits on its own is
// emitted alone rather than split or rejected. Every input word lands in
// exactly one segment.
func (b *Builder) Build(words []transcript.Word) []Segment {
	if len(words) == 0 {
		return nil
	}

	var segments []Segment

	i := 0
	for i < len(words) {
		width := b.Measure(words[i].Text)
		j := i + 1

		for j < len(words) {
			next := width + b.Gap + b.Measure(words[j].Text)
			duration := words[j].End - words[i].Start
			if next > b.MaxWidth || duration > b.MaxDuration {
				break
			}
			width = next
			j++
		}

		segments = append(segments, Segment{
			Words: append([]transcript.Word(nil), words[i:j]...),
			Start: words[i].Start,
			End:   words[j-1].End,
		})
		i = j
	}

	return segments
}
