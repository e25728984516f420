package api

/**
 * stats.go - /stats and /window rest api implementation
 */

import (
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/yyyar/trafficplot/sink"
	"github.com/yyyar/trafficplot/stats"
)

/**
 * Window row as plotted
 */
type windowRow struct {
	SecondsAgo int     `json:"seconds_ago"`
	Rx         float64 `json:"rx"`
	Tx         float64 `json:"tx"`
	RxMbps     float64 `json:"rx_mbps"`
	TxMbps     float64 `json:"tx_mbps"`
}

/**
 * Attaches /stats, /window and /window.dat handlers
 */
func attachStats(app *gin.RouterGroup, store *stats.Store) {

	/**
	 * Latest counters and rates
	 */
	app.GET("/stats", func(c *gin.Context) {
		s := store.Get()

		c.IndentedJSON(http.StatusOK, gin.H{
			"interface":      s.Interface,
			"state":          s.State,
			"interval":       s.Interval,
			"updated":        s.Updated,
			"counters":       s.Counters,
			"latest":         s.Latest,
			"samples":        s.Samples,
			"parse_failures": s.ParseFailures,
			"source_errors":  s.SourceErrors,
			"human": gin.H{
				"rx_total": humanize.Bytes(s.Counters.Rx),
				"tx_total": humanize.Bytes(s.Counters.Tx),
				"down":     sink.FormatRate(s.Latest.Rx*8, "bps"),
				"up":       sink.FormatRate(s.Latest.Tx*8, "bps"),
				"samples":  humanize.Comma(int64(s.Samples)),
			},
		})
	})

	/**
	 * Rolling window, oldest first
	 */
	app.GET("/window", func(c *gin.Context) {
		s := store.Get()

		rows := make([]windowRow, len(s.Window))
		for i, w := range s.Window {
			rows[i] = windowRow{
				SecondsAgo: s.Interval * (len(s.Window) - 1 - i),
				Rx:         w.Rx,
				Tx:         w.Tx,
				RxMbps:     w.Rx * 8 / 1000000,
				TxMbps:     w.Tx * 8 / 1000000,
			}
		}

		c.IndentedJSON(http.StatusOK, rows)
	})

	/**
	 * Window in plot data file format
	 */
	app.GET("/window.dat", func(c *gin.Context) {
		s := store.Get()
		c.Data(http.StatusOK, "text/plain; charset=utf-8", sink.Render(s.Window, s.Interval))
	})
}
