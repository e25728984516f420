/**
 * main.go - entry point
 */
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yyyar/trafficplot/cmd"
	"github.com/yyyar/trafficplot/config"
	"github.com/yyyar/trafficplot/info"
	"github.com/yyyar/trafficplot/logging"
)

/**
 * Initialize package
 */
func init() {
	info.StartTime = time.Now()
}

/**
 * Entry point
 */
func main() {
	if err := cmd.Execute(start); err != nil {
		os.Exit(1)
	}
}

/**
 * Start app with validated config, blocks until sampling ends
 */
func start(cfg *config.Config) error {

	log := logging.For("main")

	if err := logging.Configure(cfg.Logging.Output, cfg.Logging.Level); err != nil {
		return err
	}

	log.Info("trafficplot v", info.Version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		return err
	}

	log.Info("Bye")
	return nil
}
