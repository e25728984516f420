/**
 * cmd.go - command line runner
 */
package cmd

import (
	"github.com/yyyar/trafficplot/config"
)

/**
 * App Start function to call after initialization
 */
var start func(*config.Config) error

/**
 * Execute processing flags
 */
func Execute(f func(*config.Config) error) error {
	start = f
	return RootCmd.Execute()
}
