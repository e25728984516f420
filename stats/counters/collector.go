package counters

/**
 * collector.go - converts counters readings to bandwidth
 */

import (
	"math"
	"time"
)

/**
 * Collector options
 */
type CollectorOptions struct {

	/* Window capacity */
	NumSamples int

	/* Report counter regressions (reset, wraparound) as 0 instead of negative rate */
	ClampNegative bool
}

/**
 * Computes bandwidth from consecutive counters readings
 * and keeps the rolling window of recent samples.
 * Not safe for concurrent use.
 */
type Collector struct {
	opts CollectorOptions

	/* Last counters reading */
	last ByteCounters
	/* Time of the last reading */
	lastTime time.Time
	/* Indicates that last reading is set */
	hasLast bool

	window *Window
}

/**
 * Create new Collector with zero padded window
 */
func NewCollector(opts CollectorOptions) *Collector {
	return &Collector{
		opts:   opts,
		window: NewWindow(opts.NumSamples),
	}
}

/**
 * AddSample records counters read at now and pushes new bandwidth sample.
 * First reading always yields zero sample.
 */
func (this *Collector) AddSample(c ByteCounters, now time.Time) BandwidthSample {

	sample := BandwidthSample{}

	if this.hasLast {
		dt := now.Sub(this.lastTime).Seconds()
		if dt <= 0 {
			dt = 1
		}

		sample.Rx = this.rate(c.Rx, this.last.Rx, dt)
		sample.Tx = this.rate(c.Tx, this.last.Tx, dt)
	}

	this.last = c
	this.lastTime = now
	this.hasLast = true

	this.window.Push(sample)

	return sample
}

/**
 * Floored per-second rate of the signed counter delta
 */
func (this *Collector) rate(cur, prev uint64, dt float64) float64 {

	// two's complement keeps the sign of regressions
	delta := int64(cur - prev)

	r := math.Floor(float64(delta) / dt)
	if r < 0 && this.opts.ClampNegative {
		return 0
	}

	return r
}

/**
 * Window returns current samples, oldest first
 */
func (this *Collector) Window() []BandwidthSample {
	return this.window.Samples()
}

/**
 * Newest sample in the window
 */
func (this *Collector) Latest() BandwidthSample {
	return this.window.Last()
}

/**
 * Last returns last recorded counters reading and its time
 */
func (this *Collector) Last() (ByteCounters, time.Time, bool) {
	return this.last, this.lastTime, this.hasLast
}
