package counters

/**
 * window.go - fixed size rolling window of bandwidth samples
 */

/**
 * Ring buffer of the last N samples. Always holds exactly N
 * samples, zero samples until enough were pushed.
 */
type Window struct {
	samples []BandwidthSample

	// index of the oldest sample
	head int
}

/**
 * Create zero padded window of given capacity
 */
func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	return &Window{
		samples: make([]BandwidthSample, capacity),
	}
}

/**
 * Push newest sample, dropping the oldest one
 */
func (this *Window) Push(s BandwidthSample) {
	this.samples[this.head] = s
	this.head = (this.head + 1) % len(this.samples)
}

/**
 * Len is always the capacity
 */
func (this *Window) Len() int {
	return len(this.samples)
}

/**
 * Last returns the newest sample
 */
func (this *Window) Last() BandwidthSample {
	n := len(this.samples)
	return this.samples[(this.head+n-1)%n]
}

/**
 * Samples returns a copy ordered oldest first
 */
func (this *Window) Samples() []BandwidthSample {
	out := make([]BandwidthSample, 0, len(this.samples))
	out = append(out, this.samples[this.head:]...)
	out = append(out, this.samples[:this.head]...)
	return out
}
