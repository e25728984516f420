package counters

/**
 * bandwidth.go - byte counters and bandwidth samples
 */

/**
 * Cumulative interface byte counters
 */
type ByteCounters struct {

	// Total received bytes since interface reset
	Rx uint64 `json:"rx"`

	// Total transmitted bytes since interface reset
	Tx uint64 `json:"tx"`
}

/**
 * Bandwidth between two consecutive counters readings
 */
type BandwidthSample struct {

	// Received bytes per second
	Rx float64 `json:"rx"`

	// Transmitted bytes per second
	Tx float64 `json:"tx"`
}
