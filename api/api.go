/**
 * api.go - rest api implementation
 */
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yyyar/trafficplot/config"
	"github.com/yyyar/trafficplot/logging"
	"github.com/yyyar/trafficplot/stats"
)

/**
 * Create api router over the stats store.
 * cfg is dumped by /dump.
 */
func New(apiCfg config.ApiConfig, store *stats.Store, cfg config.Config) *gin.Engine {

	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	if apiCfg.Cors {
		corsCfg := cors.DefaultConfig()
		if len(apiCfg.CorsOrigins) > 0 {
			corsCfg.AllowOrigins = apiCfg.CorsOrigins
		} else {
			corsCfg.AllowAllOrigins = true
		}
		r.Use(cors.New(corsCfg))
	}

	app := r.Group("/")

	attachPublic(app)
	attachRoot(app, cfg)
	attachStats(app, store)

	return r
}

/**
 * Starts REST API server, stops when ctx is done
 */
func Start(ctx context.Context, apiCfg config.ApiConfig, store *stats.Store, cfg config.Config) {

	log := logging.For("api")

	if !apiCfg.Enabled {
		log.Info("API disabled")
		return
	}

	log.Info("Starting up API ", apiCfg.Bind)

	srv := &http.Server{
		Addr:    apiCfg.Bind,
		Handler: New(apiCfg, store, cfg),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(err)
		}
	}()
}
