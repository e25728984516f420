package stats

/**
 * stats.go - sampling stats object
 */

import (
	"time"

	"github.com/yyyar/trafficplot/stats/counters"
)

/**
 * Stats of the monitored interface
 */
type Stats struct {

	/* Monitored interface, remote prefixed */
	Interface string `json:"interface"`

	/* Seconds between samples */
	Interval int `json:"interval"`

	/* Last counters reading */
	Counters counters.ByteCounters `json:"counters"`

	/* Time of last counters reading, zero before first */
	Updated time.Time `json:"updated"`

	/* Newest bandwidth sample */
	Latest counters.BandwidthSample `json:"latest"`

	/* Rolling window, oldest first */
	Window []counters.BandwidthSample `json:"window"`

	/* Counters of pipeline events */
	Samples       uint64 `json:"samples"`
	ParseFailures uint64 `json:"parse_failures"`
	SourceErrors  uint64 `json:"source_errors"`

	/* Current pipeline state */
	State string `json:"state"`
}
