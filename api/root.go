package api

/**
 * root.go - / rest api implementation
 */

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yyyar/trafficplot/config"
	"github.com/yyyar/trafficplot/info"
	"github.com/yyyar/trafficplot/utils/codec"
)

/**
 * Attaches / and /dump handlers
 */
func attachRoot(app *gin.RouterGroup, cfg config.Config) {

	/**
	 * Process info
	 */
	app.GET("/", func(c *gin.Context) {

		c.IndentedJSON(http.StatusOK, gin.H{
			"pid":           os.Getpid(),
			"time":          time.Now(),
			"startTime":     info.StartTime,
			"uptime":        time.Since(info.StartTime).String(),
			"version":       info.Version,
			"configuration": info.Configuration,
		})
	})

	/**
	 * Dump effective config, toml by default
	 */
	app.GET("/dump", func(c *gin.Context) {
		format := c.DefaultQuery("format", "toml")

		var data string
		if err := codec.Encode(cfg, &data, format); err != nil {
			c.IndentedJSON(http.StatusBadRequest, err.Error())
			return
		}

		c.String(http.StatusOK, data)
	})
}
