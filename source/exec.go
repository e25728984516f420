package source

/**
 * exec.go - local command source
 */

import (
	"context"
	"time"

	"github.com/yyyar/trafficplot/config"
	"github.com/yyyar/trafficplot/logging"
	"github.com/yyyar/trafficplot/utils"
)

const (
	execResponseWaitTimeout = 5 * time.Second
)

/**
 * Runs command (ifconfig by default) every interval
 */
type ExecSource struct {
	command  []string
	interval time.Duration
	timeout  time.Duration

	started bool
}

/**
 * Create new exec Source
 */
func NewExecSource(cfg config.SourceConfig) (Source, error) {

	command := cfg.Command
	if len(command) == 0 {
		command = []string{"ifconfig"}
	}

	params := append(append([]string{}, command...), cfg.Iface)
	if cfg.Iface == "" {
		params = params[:len(params)-1]
	}

	return &ExecSource{
		command:  params,
		interval: time.Duration(cfg.Interval) * time.Second,
		timeout:  utils.ParseDurationOrDefault(cfg.Timeout, execResponseWaitTimeout),
	}, nil
}

/**
 * Next waits for interval (except the first cycle) and runs command
 */
func (this *ExecSource) Next(ctx context.Context) (Block, error) {

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if this.started && !utils.Sleep(ctx, this.interval) {
		return nil, ctx.Err()
	}
	this.started = true

	out, err := utils.ExecTimeout(ctx, this.timeout, this.command...)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	block := splitBlock(out)
	logging.For("source/exec").Debug("Fetched ", len(block), " lines from ", this.command)

	return block, nil
}

/**
 * Nothing to release, every run is a separate process
 */
func (this *ExecSource) Close() error {
	return nil
}
