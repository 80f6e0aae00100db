package caption

// WordBox is the absolute pixel bounds of one word in unrotated frame
// space.
type WordBox struct {
	WordIndex int
	X, Y      int
	Width     int
	Height    int
}

// Line is one row of laid-out words sharing a baseline.
type Line struct {
	BaselineY int
	Words     []WordBox
}

// Layout is the text geometry of one segment, computed once after
// segmentation and read-only during rendering.
type Layout struct {
	Lines []Line
}

// Layouter positions segment text blocks using glyph metrics from the
// typeface. Coordinates are in unrotated frame space; the compositor
// rotates afterwards.
type Layouter struct {
	Face        Typeface
	MaxWidth    int
	Gap         int
	AnchorX     float64
	AnchorY     float64
	FrameWidth  int
	FrameHeight int
}

// Layout wraps the segment's words into lines and centers the block
// around the anchor point. Segments already fit MaxWidth on one line
// unless they carry a single oversized word, so multi-line is the
// fallback path, not the common case.
func (l *Layouter) Layout(seg Segment) Layout {
	widths := make([]int, len(seg.Words))
	for i, w := range seg.Words {
		widths[i] = l.Face.Measure(w.Text)
	}

	lines := l.wrap(widths)

	boxHeight := l.Face.Ascent() + l.Face.Descent()
	advance := l.Face.Height()
	blockHeight := boxHeight + (len(lines)-1)*advance
	blockTop := int(l.AnchorY*float64(l.FrameHeight)) - blockHeight/2

	out := Layout{Lines: make([]Line, len(lines))}
	for li, indices := range lines {
		lineWidth := 0
		for _, wi := range indices {
			lineWidth += widths[wi]
		}
		lineWidth += l.Gap * (len(indices) - 1)

		top := blockTop + li*advance
		x := int(l.AnchorX*float64(l.FrameWidth)) - lineWidth/2

		line := Line{
			BaselineY: top + l.Face.Ascent(),
			Words:     make([]WordBox, 0, len(indices)),
		}
		for _, wi := range indices {
			line.Words = append(line.Words, WordBox{
				WordIndex: wi,
				X:         x,
				Y:         top,
				Width:     widths[wi],
				Height:    boxHeight,
			})
			x += widths[wi] + l.Gap
		}
		out.Lines[li] = line
	}

	return out
}

// wrap greedily fills lines up to MaxWidth, at least one word per line.
func (l *Layouter) wrap(widths []int) [][]int {
	var lines [][]int
	var current []int

	lineWidth := 0
	for i, w := range widths {
		if len(current) == 0 {
			current = []int{i}
			lineWidth = w
			continue
		}
		if lineWidth+l.Gap+w > l.MaxWidth {
			lines = append(lines, current)
			current = []int{i}
			lineWidth = w
			continue
		}
		current = append(current, i)
		lineWidth += l.Gap + w
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}

	return lines
}

// box returns the laid-out box and baseline of the given word index.
func (lay Layout) box(wordIndex int) (WordBox, int, bool) {
	for _, line := range lay.Lines {
		for _, b := range line.Words {
			if b.WordIndex == wordIndex {
				return b, line.BaselineY, true
			}
		}
	}
	return WordBox{}, 0, false
}
