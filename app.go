package main

/**
 * app.go - wires source, pipeline and outer surfaces
 */

import (
	"context"
	"fmt"

	"github.com/yyyar/trafficplot/api"
	"github.com/yyyar/trafficplot/config"
	"github.com/yyyar/trafficplot/logging"
	"github.com/yyyar/trafficplot/metrics"
	"github.com/yyyar/trafficplot/pipeline"
	"github.com/yyyar/trafficplot/plot"
	"github.com/yyyar/trafficplot/sink"
	"github.com/yyyar/trafficplot/source"
	"github.com/yyyar/trafficplot/stats"
	"github.com/yyyar/trafficplot/stats/counters"
	"github.com/yyyar/trafficplot/utils/parsers"
	"github.com/yyyar/trafficplot/utils/profiler"
)

/**
 * Title of the sampled interface, remote prefixed
 */
func ifaceTitle(cfg config.SourceConfig) string {
	if cfg.Remote != "" {
		return cfg.Remote + " " + cfg.Iface
	}
	return cfg.Iface
}

/**
 * Build pipeline from cfg and run it until ctx is done,
 * the source ends or gnuplot exits
 */
func run(ctx context.Context, cfg *config.Config) error {

	log := logging.For("app")

	patterns, err := parsers.CompilePatterns(cfg.Parser.Patterns)
	if err != nil {
		return fmt.Errorf("parser patterns: %w", err)
	}

	src, err := source.New(cfg.Source)
	if err != nil {
		return err
	}

	title := ifaceTitle(cfg.Source)
	store := stats.NewStore()

	m := metrics.Start(ctx, cfg.Metrics)
	api.Start(ctx, cfg.Api, store, *cfg)

	if cfg.Profiler.Enabled {
		profiler.Start(ctx, cfg.Profiler.Bind)
	}

	fileSink := sink.NewFileSink(cfg.Sink.Path)
	defer func() {
		if err := fileSink.Cleanup(); err != nil {
			log.Warn("Cleanup: ", err)
		}
	}()

	log.Infof("Sampling %s (%s) every %ds, plot data in %s", title, cfg.Source.Kind, cfg.Source.Interval, cfg.Sink.Path)

	p := &pipeline.Pipeline{
		Iface:    title,
		Interval: cfg.Source.Interval,
		Source:   src,
		Parser:   parsers.NewStatBlockParser(patterns),
		Collector: counters.NewCollector(counters.CollectorOptions{
			NumSamples:    cfg.Collector.NumSamples,
			ClampNegative: cfg.Collector.ClampNegative,
		}),
		Sink:    fileSink,
		Store:   store,
		Metrics: m,
	}

	if cfg.Plot.Enabled {
		p.Renderer = plot.New(cfg.Plot, plot.ScriptParams{
			DataPath:   cfg.Sink.Path,
			Interval:   cfg.Source.Interval,
			NumSamples: cfg.Collector.NumSamples,
			Title:      title,
		})
	}

	return p.Run(ctx)
}
