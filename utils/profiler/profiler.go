package profiler

import (
	"context"
	"errors"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/yyyar/trafficplot/logging"
)

/**
 * Start serves pprof handlers on bind until ctx is done
 */
func Start(ctx context.Context, bind string) {
	log := logging.For("profiler")

	log.Infof("Starting profiler: %v", bind)

	srv := &http.Server{Addr: bind, Handler: http.DefaultServeMux}

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
