package pipeline

/**
 * pipeline.go - source -> parser -> collector -> sink loop
 */

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/yyyar/trafficplot/logging"
	"github.com/yyyar/trafficplot/metrics"
	"github.com/yyyar/trafficplot/sink"
	"github.com/yyyar/trafficplot/source"
	"github.com/yyyar/trafficplot/stats"
	"github.com/yyyar/trafficplot/stats/counters"
	"github.com/yyyar/trafficplot/utils/parsers"
)

var ErrIncompleteBlock = errors.New("block without both rx and tx counters")

/**
 * Publishes rendered plot data
 */
type Publisher interface {
	Publish(buf []byte) error
}

/**
 * External renderer consuming published data
 */
type Renderer interface {
	Start(ctx context.Context) error
	Done() <-chan struct{}
	Stop()
}

/**
 * Pipeline owns parser and collector state, both are
 * touched only from Run
 */
type Pipeline struct {

	/* Interface name used in stats and metrics */
	Iface string

	/* Seconds between polling cycles */
	Interval int

	Source    source.Source
	Parser    *parsers.StatBlockParser
	Collector *counters.Collector
	Sink      Publisher

	/* Optional */
	Renderer Renderer
	Store    *stats.Store
	Metrics  *metrics.Metrics

	/* Clock, time.Now if nil */
	Now func() time.Time

	state atomic.Int32

	samples       uint64
	parseFailures uint64
	sourceErrors  uint64
}

/**
 * Current state
 */
func (this *Pipeline) State() State {
	return State(this.state.Load())
}

func (this *Pipeline) setState(s State) {
	this.state.Store(int32(s))
	if this.Store != nil {
		this.Store.Update(func(st *stats.Stats) { st.State = s.String() })
	}
}

func (this *Pipeline) now() time.Time {
	if this.Now != nil {
		return this.Now()
	}
	return time.Now()
}

/**
 * Run publishes initial empty window, starts renderer and processes
 * source blocks until the source ends, renderer exits or ctx is done.
 * Source and renderer are always released on return. Returns error
 * only if nothing can be published or source cannot start.
 */
func (this *Pipeline) Run(ctx context.Context) (err error) {

	log := logging.For("pipeline")

	defer func() {
		if cerr := this.Source.Close(); cerr != nil {
			log.Warn("Closing source: ", cerr)
		}
		if this.Renderer != nil {
			this.Renderer.Stop()
		}
		this.setState(Terminated)
		log.Info("Terminated")
	}()

	if err := this.publish(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var rendererDone <-chan struct{}
	if this.Renderer != nil {
		if err := this.Renderer.Start(ctx); err != nil {
			return err
		}
		rendererDone = this.Renderer.Done()
		go func() {
			select {
			case <-rendererDone:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	this.setState(Sampling)
	log.Info("Sampling ", this.Iface, " every ", this.Interval, "s")

	for {
		block, err := this.Source.Next(ctx)

		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			log.Info("Source ended")
			return nil
		case ctx.Err() != nil:
			select {
			case <-rendererDone:
				log.Info("Renderer exited")
			default:
				log.Info("Stopped")
			}
			return nil
		case errors.Is(err, source.ErrConnect):
			return err
		default:
			this.sourceErrors++
			this.Metrics.ReportSourceError()
			this.updateCounters()
			log.Warn("Polling cycle failed: ", err)
			continue
		}

		if _, err := this.ProcessBlock(block); err != nil {
			if errors.Is(err, ErrIncompleteBlock) {
				log.Debug("Skipping block: ", err)
				continue
			}
			return err
		}
	}
}

/**
 * ProcessBlock parses one polling cycle, adds samples and publishes.
 * Returns number of samples taken; ErrIncompleteBlock if none.
 */
func (this *Pipeline) ProcessBlock(block source.Block) (int, error) {

	log := logging.For("pipeline")

	this.Parser.Reset()

	taken := 0
	for _, line := range block {
		this.Parser.Push(line)

		c, ok := this.Parser.TryTake()
		if !ok {
			continue
		}

		s := this.Collector.AddSample(c, this.now())
		taken++
		this.samples++

		log.Debugf("rx %s tx %s, down %s/s up %s/s",
			humanize.Bytes(c.Rx), humanize.Bytes(c.Tx),
			humanize.Bytes(nonNegative(s.Rx)), humanize.Bytes(nonNegative(s.Tx)))

		this.Metrics.ReportSample(this.Iface, c, s)

		if err := this.publish(); err != nil {
			return taken, err
		}
	}

	if taken == 0 {
		this.parseFailures++
		this.Metrics.ReportParseFailure()
		this.updateCounters()
		return 0, fmt.Errorf("%w (%d lines)", ErrIncompleteBlock, len(block))
	}

	return taken, nil
}

/**
 * Render current window and publish it
 */
func (this *Pipeline) publish() error {

	window := this.Collector.Window()

	if err := this.Sink.Publish(sink.Render(window, this.Interval)); err != nil {
		this.Metrics.ReportPublishError()
		return fmt.Errorf("publish plot data: %w", err)
	}

	if this.Store != nil {
		last, updated, _ := this.Collector.Last()
		this.Store.Publish(stats.Stats{
			Interface:     this.Iface,
			Interval:      this.Interval,
			Counters:      last,
			Updated:       updated,
			Latest:        this.Collector.Latest(),
			Window:        window,
			Samples:       this.samples,
			ParseFailures: this.parseFailures,
			SourceErrors:  this.sourceErrors,
			State:         this.State().String(),
		})
	}

	return nil
}

func (this *Pipeline) updateCounters() {
	if this.Store == nil {
		return
	}
	this.Store.Update(func(s *stats.Stats) {
		s.ParseFailures = this.parseFailures
		s.SourceErrors = this.sourceErrors
	})
}

func nonNegative(v float64) uint64 {
	if v < 0 {
		return 0
	}
	return uint64(v)
}
