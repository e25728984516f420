package cmd

/**
 * flags.go - config loading and command line overrides
 */

import (
	"github.com/spf13/cobra"

	"github.com/yyyar/trafficplot/config"
	"github.com/yyyar/trafficplot/utils"
	"github.com/yyyar/trafficplot/utils/codec"
)

/**
 * Decode config data over defaults
 */
func loadConfig(data string, format string, substituteEnv bool) (config.Config, error) {

	if substituteEnv {
		data = utils.SubstituteEnvVars(data)
	}

	cfg := config.Default()
	if err := codec.Decode(data, &cfg, format); err != nil {
		return cfg, err
	}

	return cfg, nil
}

/**
 * Apply explicitly set command line flags over cfg
 */
func applyFlags(cmd *cobra.Command, cfg *config.Config) {

	flags := cmd.Flags()

	if flags.Changed("iface") {
		cfg.Source.Iface = iface
	}
	if flags.Changed("remote") {
		cfg.Source.Remote = remote
		cfg.Source.Kind = config.SourceSsh
	}
	if flags.Changed("num-samples") {
		cfg.Collector.NumSamples = numSamples
	}
	if flags.Changed("interval") {
		cfg.Source.Interval = interval
	}
	if flags.Changed("terminal") {
		cfg.Plot.Terminal = terminal
	}
	if flags.Changed("width") {
		cfg.Plot.Width = width
	}
	if flags.Changed("height") {
		cfg.Plot.Height = height
	}
	if flags.Changed("clamp-negative") {
		cfg.Collector.ClampNegative = clampNegative
	}
	if headless {
		cfg.Plot.Enabled = false
	}
	if debug {
		cfg.Logging.Level = "debug"
		cfg.Plot.Debug = true
	}
}
