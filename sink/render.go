package sink

/**
 * render.go - gnuplot data file rendering
 */

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/yyyar/trafficplot/stats/counters"
)

/**
 * Render window (oldest first) as whitespace separated columns:
 * seconds ago, rx Mbps, tx Mbps. Header names the columns with
 * current down / up rates.
 */
func Render(samples []counters.BandwidthSample, interval int) []byte {

	var last counters.BandwidthSample
	if len(samples) > 0 {
		last = samples[len(samples)-1]
	}

	b := &bytes.Buffer{}

	fmt.Fprintf(b, "%q %q %q\n",
		"time",
		FormatRate(last.Rx*8, "bps")+" Down",
		FormatRate(last.Tx*8, "bps")+" Up  ",
	)

	for i, s := range samples {
		secondsAgo := interval * (len(samples) - 1 - i)
		b.WriteString(strconv.Itoa(secondsAgo))
		b.WriteByte(' ')
		b.WriteString(formatDecimal(toMbps(s.Rx)))
		b.WriteByte(' ')
		b.WriteString(formatDecimal(toMbps(s.Tx)))
		b.WriteByte('\n')
	}

	return b.Bytes()
}
