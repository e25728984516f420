package source

/**
 * psutil.go - native counters source
 */

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/net"

	"github.com/yyyar/trafficplot/config"
	"github.com/yyyar/trafficplot/utils"
)

/**
 * Reads interface counters with gopsutil and renders them
 * as a net-tools style line
 */
type PsutilSource struct {
	iface    string
	interval time.Duration

	// counters getter, replaced in tests
	ioCounters func(ctx context.Context) ([]net.IOCountersStat, error)

	started bool
}

/**
 * Create new psutil Source
 */
func NewPsutilSource(cfg config.SourceConfig) (Source, error) {
	return &PsutilSource{
		iface:    cfg.Iface,
		interval: time.Duration(cfg.Interval) * time.Second,
		ioCounters: func(ctx context.Context) ([]net.IOCountersStat, error) {
			return net.IOCountersWithContext(ctx, true)
		},
	}, nil
}

func (this *PsutilSource) Next(ctx context.Context) (Block, error) {

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if this.started && !utils.Sleep(ctx, this.interval) {
		return nil, ctx.Err()
	}
	this.started = true

	stats, err := this.ioCounters(ctx)
	if err != nil {
		return nil, fmt.Errorf("psutil: read counters: %w", err)
	}

	for _, s := range stats {
		if s.Name == this.iface {
			return Block{fmt.Sprintf("%s RX bytes:%d  TX bytes:%d", s.Name, s.BytesRecv, s.BytesSent)}, nil
		}
	}

	return nil, fmt.Errorf("psutil: %w %q", ErrNoInterface, this.iface)
}

func (this *PsutilSource) Close() error {
	return nil
}
