package counters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWindowIsZeroPadded(t *testing.T) {
	w := NewWindow(4)

	assert.Equal(t, 4, w.Len())
	assert.Equal(t, make([]BandwidthSample, 4), w.Samples())
	assert.Equal(t, BandwidthSample{}, w.Last())
}

func TestWindowPushEvictsOldest(t *testing.T) {
	w := NewWindow(3)

	for i := 1; i <= 5; i++ {
		w.Push(BandwidthSample{Rx: float64(i), Tx: float64(-i)})
	}

	assert.Equal(t, []BandwidthSample{
		{Rx: 3, Tx: -3},
		{Rx: 4, Tx: -4},
		{Rx: 5, Tx: -5},
	}, w.Samples())
	assert.Equal(t, BandwidthSample{Rx: 5, Tx: -5}, w.Last())
}

func TestWindowSamplesIsCopy(t *testing.T) {
	w := NewWindow(2)
	w.Push(BandwidthSample{Rx: 1})

	s := w.Samples()
	s[1].Rx = 100

	assert.Equal(t, 1.0, w.Last().Rx)
}

func TestWindowMinimalCapacity(t *testing.T) {
	w := NewWindow(0)
	w.Push(BandwidthSample{Rx: 7})

	assert.Equal(t, 1, w.Len())
	assert.Equal(t, []BandwidthSample{{Rx: 7}}, w.Samples())
}
