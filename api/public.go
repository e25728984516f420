/**
 * public.go - /ping rest api implementation
 */
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

/**
 * Attaches /ping handler
 */
func attachPublic(app *gin.RouterGroup) {

	/**
	 * Simple 200 and OK response
	 */
	app.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
}
