package capture

// maxSequenceFrames caps how far a motion sequence is followed when a
// character reports no tighter bound.
const maxSequenceFrames = 10000

// FrameRange is a closed range of animation frame ids.
type FrameRange struct {
	First int
	Last  int
}

// Count returns how many frames the range covers.
func (r FrameRange) Count() int {
	if r.Last < r.First {
		return 0
	}
	return r.Last - r.First + 1
}

// Intersect narrows the valid capture window to frames every character can
// animate, starting from frame 1. The returned bool is false when the
// characters share no frames.
func Intersect(ranges ...FrameRange) (FrameRange, bool) {
	out := FrameRange{First: 1, Last: maxSequenceFrames}
	for _, r := range ranges {
		if r.First > out.First {
			out.First = r.First
		}
		if r.Last < out.Last {
			out.Last = r.Last
		}
	}
	return out, len(ranges) > 0 && out.First <= out.Last
}
