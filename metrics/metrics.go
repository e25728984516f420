package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yyyar/trafficplot/config"
	"github.com/yyyar/trafficplot/info"
	"github.com/yyyar/trafficplot/logging"
	"github.com/yyyar/trafficplot/stats/counters"
)

const (
	namespace = "trafficplot"
)

var log = logging.For("metrics")

/**
 * Prometheus collectors of the pipeline.
 * Nil *Metrics is valid and reports nothing.
 */
type Metrics struct {
	Registry *prometheus.Registry

	buildInfo *prometheus.GaugeVec

	ifaceRxTotal  *prometheus.GaugeVec
	ifaceTxTotal  *prometheus.GaugeVec
	ifaceRxSecond *prometheus.GaugeVec
	ifaceTxSecond *prometheus.GaugeVec

	samplesTotal       prometheus.Counter
	parseFailuresTotal prometheus.Counter
	sourceErrorsTotal  prometheus.Counter
	publishErrorsTotal prometheus.Counter
}

/**
 * Define and register metrics in own registry
 */
func New() *Metrics {

	this := &Metrics{
		Registry: prometheus.NewRegistry(),
	}

	this.buildInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "build_info",
		Help: fmt.Sprintf(
			"A metric with a constant '1' value labeled by version, revision, branch, and goversion from which %s was built.",
			namespace,
		),
	}, []string{"version", "revision", "branch", "goversion"})

	this.ifaceRxTotal = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "iface",
		Name:      "rx_total",
		Help:      "Interface Rx Total Bytes.",
	}, []string{"iface"})

	this.ifaceTxTotal = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "iface",
		Name:      "tx_total",
		Help:      "Interface Tx Total Bytes.",
	}, []string{"iface"})

	this.ifaceRxSecond = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "iface",
		Name:      "rx_second",
		Help:      "Interface Rx Bytes per Second.",
	}, []string{"iface"})

	this.ifaceTxSecond = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "iface",
		Name:      "tx_second",
		Help:      "Interface Tx Bytes per Second.",
	}, []string{"iface"})

	this.samplesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "samples_total",
		Help:      "Bandwidth Samples Collected.",
	})

	this.parseFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "parse_failures_total",
		Help:      "Polling Cycles Without Complete Counters.",
	})

	this.sourceErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "source_errors_total",
		Help:      "Failed Polling Cycles.",
	})

	this.publishErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "publish_errors_total",
		Help:      "Failed Plot Data Publishes.",
	})

	this.Registry.MustRegister(
		this.buildInfo,
		this.ifaceRxTotal,
		this.ifaceTxTotal,
		this.ifaceRxSecond,
		this.ifaceTxSecond,
		this.samplesTotal,
		this.parseFailuresTotal,
		this.sourceErrorsTotal,
		this.publishErrorsTotal,
	)

	this.buildInfo.WithLabelValues(info.Version, info.Revision, info.Branch, runtime.Version()).Set(1)

	return this
}

/**
 * Start serves /metrics on cfg.Bind until ctx is done.
 * Returns nil Metrics if disabled.
 */
func Start(ctx context.Context, cfg config.MetricsConfig) *Metrics {

	if !cfg.Enabled {
		log.Info("Metrics disabled")
		return nil
	}

	log.Info("Starting up Metrics server ", cfg.Bind)

	this := New()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(this.Registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: cfg.Bind, Handler: mux}

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

	return this
}

/**
 * Report new sample of the interface
 */
func (this *Metrics) ReportSample(iface string, c counters.ByteCounters, s counters.BandwidthSample) {
	if this == nil {
		return
	}

	this.samplesTotal.Inc()
	this.ifaceRxTotal.WithLabelValues(iface).Set(float64(c.Rx))
	this.ifaceTxTotal.WithLabelValues(iface).Set(float64(c.Tx))
	this.ifaceRxSecond.WithLabelValues(iface).Set(s.Rx)
	this.ifaceTxSecond.WithLabelValues(iface).Set(s.Tx)
}

func (this *Metrics) ReportParseFailure() {
	if this == nil {
		return
	}
	this.parseFailuresTotal.Inc()
}

func (this *Metrics) ReportSourceError() {
	if this == nil {
		return
	}
	this.sourceErrorsTotal.Inc()
}

func (this *Metrics) ReportPublishError() {
	if this == nil {
		return
	}
	this.publishErrorsTotal.Inc()
}
