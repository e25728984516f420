package stats

/**
 * store.go - stats storage and getter
 */

import (
	"sync"

	"github.com/yyyar/trafficplot/stats/counters"
)

/**
 * Latest stats published by the pipeline. Readers get copies,
 * pipeline remains the only writer of collector state.
 */
type Store struct {
	sync.RWMutex
	latest Stats
}

/**
 * Create new empty store
 */
func NewStore() *Store {
	return &Store{}
}

/**
 * Publish replaces stored stats
 */
func (this *Store) Publish(s Stats) {
	s.Window = append([]counters.BandwidthSample(nil), s.Window...)

	this.Lock()
	this.latest = s
	this.Unlock()
}

/**
 * Update modifies stored stats in place
 */
func (this *Store) Update(f func(s *Stats)) {
	this.Lock()
	f(&this.latest)
	this.Unlock()
}

/**
 * Get returns copy of latest stats
 */
func (this *Store) Get() Stats {
	this.RLock()
	defer this.RUnlock()

	s := this.latest
	s.Window = append([]counters.BandwidthSample(nil), this.latest.Window...)
	return s
}
