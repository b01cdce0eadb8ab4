// Package scroll holds the per-pane line log and its viewport cursor.
//
// A Buffer is not safe for concurrent use. The UI goroutine owns both panes
// and receives new lines over a channel from the ingestion goroutine, so no
// locking is needed on the redraw path.
package scroll

import "github.com/five82/sermon/internal/classify"

// Mode selects whether a pane follows the live tail.
type Mode int

const (
	// Auto pins the viewport to the newest lines.
	Auto Mode = iota
	// Manual holds the viewport at a user-chosen offset.
	Manual
)

// String returns the status-bar label for the mode.
func (m Mode) String() string {
	if m == Manual {
		return "manual"
	}
	return "auto"
}

// Buffer is an append-only log of classified lines plus a scroll cursor.
// With a positive limit the oldest lines are dropped once the limit is hit.
type Buffer struct {
	lines   []classify.Line
	head    int // index of the oldest line once the ring is full
	size    int
	limit   int
	offset  int
	mode    Mode
	dropped uint64
}

// New returns an empty buffer in Auto mode. A limit <= 0 keeps every line.
func New(limit int) *Buffer {
	if limit < 0 {
		limit = 0
	}
	return &Buffer{limit: limit}
}

// Append adds a line to the tail. It never touches the scroll mode. When the
// ring is full the oldest line is evicted and a Manual offset shifts up by one
// so the same lines stay in view.
func (b *Buffer) Append(line classify.Line) {
	if b.limit <= 0 || b.size < b.limit {
		b.lines = append(b.lines, line)
		b.size++
		return
	}
	b.lines[b.head] = line
	b.head = (b.head + 1) % b.limit
	b.dropped++
	if b.mode == Manual && b.offset > 0 {
		b.offset--
	}
}

// Len returns the number of buffered lines.
func (b *Buffer) Len() int { return b.size }

// Limit returns the configured cap, zero when unbounded.
func (b *Buffer) Limit() int { return b.limit }

// Dropped returns how many lines have been evicted since creation.
func (b *Buffer) Dropped() uint64 { return b.dropped }

// Mode returns the current scroll mode.
func (b *Buffer) Mode() Mode { return b.mode }

// Following reports whether the buffer is tracking the live tail.
func (b *Buffer) Following() bool { return b.mode == Auto }

// At returns the i-th buffered line, oldest first.
func (b *Buffer) At(i int) classify.Line {
	return b.lines[(b.head+i)%len(b.lines)]
}

// Offset returns the effective first visible index for a viewport of the
// given height, always within [0, max(0, Len()-height)].
func (b *Buffer) Offset(height int) int {
	maxOff := b.maxOffset(height)
	if b.mode == Auto {
		return maxOff
	}
	return clamp(b.offset, 0, maxOff)
}

// ScrollUp moves the viewport one line towards the oldest line, switching to
// Manual. It is a no-op at the top.
func (b *Buffer) ScrollUp(height int) {
	b.ScrollUpBy(height, 1)
}

// ScrollUpBy moves the viewport n lines up, switching to Manual. Leaving Auto
// starts from the tail position.
func (b *Buffer) ScrollUpBy(height, n int) {
	if n <= 0 {
		return
	}
	cur := b.Offset(height)
	b.mode = Manual
	b.offset = max(0, cur-n)
}

// ScrollDown moves the viewport one line towards the tail. Reaching the bottom
// resumes Auto mode. It is a no-op while already in Auto.
func (b *Buffer) ScrollDown(height int) {
	b.ScrollDownBy(height, 1)
}

// ScrollDownBy moves the viewport n lines down with the same rules as
// ScrollDown.
func (b *Buffer) ScrollDownBy(height, n int) {
	if b.mode == Auto || n <= 0 {
		return
	}
	maxOff := b.maxOffset(height)
	next := min(b.Offset(height)+n, maxOff)
	b.offset = next
	if next == maxOff {
		b.mode = Auto
	}
}

// ScrollToTop jumps to the oldest line in Manual mode.
func (b *Buffer) ScrollToTop() {
	b.mode = Manual
	b.offset = 0
}

// ResetToAuto resumes following the live tail.
func (b *Buffer) ResetToAuto() {
	b.mode = Auto
}

// VisibleWindow returns the lines that fit a viewport of the given height and
// the buffer index of the first one. An empty buffer or non-positive height
// yields an empty slice.
func (b *Buffer) VisibleWindow(height int) ([]classify.Line, int) {
	if height <= 0 || b.size == 0 {
		return nil, 0
	}
	start := b.Offset(height)
	n := min(height, b.size-start)
	window := make([]classify.Line, n)
	for i := range window {
		window[i] = b.At(start + i)
	}
	return window, start
}

func (b *Buffer) maxOffset(height int) int {
	if height < 1 {
		height = 1
	}
	return max(0, b.size-height)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
