package source

/**
 * source.go - interface statistics feeds
 */

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yyyar/trafficplot/config"
)

var (
	ErrUnknownSource = errors.New("unknown source kind")
	ErrNoInterface   = errors.New("no such interface")

	// source cannot deliver anything, retrying is pointless
	ErrConnect = errors.New("source connect failed")
)

/**
 * Lines of one polling cycle
 */
type Block []string

/**
 * Source supplies one block per polling cycle.
 *
 * Next blocks until the next cycle is available. It returns io.EOF
 * when the feed ended, ctx.Err() when cancelled and ErrConnect when
 * it cannot start; any other error fails only the current cycle.
 */
type Source interface {
	Next(ctx context.Context) (Block, error)
	Close() error
}

/**
 * Registry of factory methods for sources
 */
var registry = make(map[string]func(config.SourceConfig) (Source, error))

/**
 * Initialize type registry
 */
func init() {
	registry[config.SourceExec] = NewExecSource
	registry[config.SourceSsh] = NewSshSource
	registry[config.SourcePsutil] = NewPsutilSource
}

/**
 * Create new Source based on cfg.Kind
 */
func New(cfg config.SourceConfig) (Source, error) {
	factory, ok := registry[cfg.Kind]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSource, cfg.Kind)
	}
	return factory(cfg)
}

/**
 * Split command output to block lines
 */
func splitBlock(out string) Block {
	out = strings.ReplaceAll(out, "\r\n", "\n")
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return Block{}
	}
	return Block(strings.Split(out, "\n"))
}
