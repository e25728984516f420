package sink

/**
 * format.go - human readable rates
 */

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var metricUnits = []string{"", "K", "M", "G", "T", "P", "E", "Z"}

/**
 * FormatRate scales num by 1000 into metric prefixed value
 * with one decimal, e.g. 1500 -> "1.5Kbps" for suffix "bps".
 * Values past Z are reported in Y.
 */
func FormatRate(num float64, suffix string) string {
	for _, unit := range metricUnits {
		if math.Abs(num) < 1000 {
			return fmt.Sprintf("%3.1f%s%s", num, unit, suffix)
		}
		num /= 1000
	}
	return fmt.Sprintf("%.1f%s%s", num, "Y", suffix)
}

/**
 * formatDecimal prints shortest decimal representation
 * keeping ".0" on integral values
 */
func formatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

/**
 * Megabits per second of bytes per second rate
 */
func toMbps(bytesPerSecond float64) float64 {
	return bytesPerSecond * 8 / 1000000
}
