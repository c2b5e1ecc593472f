package imagemap

// LoadBarrier joins the load completions of a fixed number of images and
// fires a callback exactly once when every image has reported, whether it
// loaded or failed.
type LoadBarrier struct {
	expected int
	seen     []bool
	count    int
	fired    bool
	onDone   func()
}

// NewLoadBarrier returns a barrier waiting for n completions. onDone may be
// nil. A barrier over zero images fires on Arm.
func NewLoadBarrier(n int, onDone func()) *LoadBarrier {
	if n < 0 {
		n = 0
	}
	return &LoadBarrier{
		expected: n,
		seen:     make([]bool, n),
		onDone:   onDone,
	}
}

// Done records the completion of image i. Duplicate and out-of-range
// indices are ignored. It reports whether this call fired the barrier.
func (b *LoadBarrier) Done(i int) bool {
	if i < 0 || i >= b.expected || b.seen[i] {
		return false
	}
	b.seen[i] = true
	b.count++
	return b.fire()
}

// Arm fires the barrier if it is already complete. Call it once after
// registering all load callbacks so an empty image set still resolves.
func (b *LoadBarrier) Arm() bool {
	return b.fire()
}

func (b *LoadBarrier) fire() bool {
	if b.fired || b.count < b.expected {
		return false
	}
	b.fired = true
	if b.onDone != nil {
		b.onDone()
	}
	return true
}

// Reported reports whether image i has completed.
func (b *LoadBarrier) Reported(i int) bool {
	return i >= 0 && i < b.expected && b.seen[i]
}

// Seen returns how many distinct images have reported.
func (b *LoadBarrier) Seen() int { return b.count }

// Expected returns the number of images the barrier waits for.
func (b *LoadBarrier) Expected() int { return b.expected }

// Complete reports whether the barrier has fired.
func (b *LoadBarrier) Complete() bool { return b.fired }
