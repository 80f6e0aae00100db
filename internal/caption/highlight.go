package caption

import "sort"

// Scheduler derives per-word highlight windows for segments.
type Scheduler struct {
	Mode HighlightMode
}

// Schedule emits one window per word of the segment, active exactly for
// the word's spoken duration. Windows within a segment never overlap
// because normalized words never do.
func (s *Scheduler) Schedule(seg Segment) []Window {
	windows := make([]Window, len(seg.Words))
	for i, w := range seg.Words {
		windows[i] = Window{
			WordIndex: i,
			Start:     w.Start,
			End:       w.End,
			Mode:      s.Mode,
		}
	}
	return windows
}

// ActiveAt returns the index of the window active at t, if any. The
// half-open intervals mean a window ending exactly at t loses to the one
// starting there.
func ActiveAt(windows []Window, t float64) (int, bool) {
	i := sort.Search(len(windows), func(i int) bool {
		return windows[i].End > t
	})
	if i < len(windows) && windows[i].Start <= t {
		return i, true
	}
	return 0, false
}
