package cmd

/**
 * root.go - root cmd, runs with flags and optional config file
 */

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/yyyar/trafficplot/config"
	"github.com/yyyar/trafficplot/info"
	"github.com/yyyar/trafficplot/utils/pidfile"
)

/* Persistent parsed options */
var format string

/* Parsed options */
var configPath string

/* Pid file path */
var pidFilePath string

/* Show version */
var showVersion bool

/* Substitute env vars in config or not */
var isConfigEnvVars bool

/* Sampling options, override config file values when set */
var (
	iface         string
	remote        string
	numSamples    int
	interval      int
	terminal      string
	width         int
	height        int
	debug         bool
	clampNegative bool
	headless      bool
)

/**
 * Add Root Command
 */
func init() {
	RootCmd.Flags().BoolVar(&showVersion, "version", false, "Print version information and quit")
	RootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")

	flags := RootCmd.PersistentFlags()
	flags.StringVarP(&pidFilePath, "pidfile", "p", "", "Write pid to specified file")
	flags.StringVarP(&format, "format", "f", "toml", "Configuration file format: \"toml\", \"json\" or \"yaml\"")
	flags.BoolVar(&isConfigEnvVars, "use-config-env-vars", false, "Enable env variables interpretation in config file")

	flags.StringVarP(&iface, "iface", "i", "", "Network interface")
	flags.StringVarP(&remote, "remote", "r", "", "Sample remote interface over ssh, user@host[:port]")
	flags.IntVarP(&numSamples, "num-samples", "n", 120, "Number of samples in the plot")
	flags.IntVarP(&interval, "interval", "e", 1, "Seconds between samples")
	flags.StringVarP(&terminal, "terminal", "t", "x11", "gnuplot terminal: x11, wxt or dumb")
	flags.IntVarP(&width, "width", "W", 0, "Plot width, 1024 (80 for dumb) if not set")
	flags.IntVarP(&height, "height", "H", 0, "Plot height, 512 (20 for dumb) if not set")
	flags.BoolVarP(&debug, "debug", "v", false, "Debug logging and gnuplot stderr")
	flags.BoolVar(&clampNegative, "clamp-negative", false, "Report counter decrease as zero rate")
	flags.BoolVar(&headless, "headless", false, "Do not start gnuplot")
}

/**
 * Root Command
 */
var RootCmd = &cobra.Command{
	Use:   "trafficplot",
	Short: "Live network interface bandwidth plot",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if pidFilePath != "" {
			if err := pidfile.WritePidFile(pidFilePath); err != nil {
				fmt.Printf("Unable to write pidfile %s: %v\n", pidFilePath, err)
				os.Exit(1)
			}
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		removePidFile()
	},
	Run: func(cmd *cobra.Command, args []string) {

		if showVersion {
			fmt.Println(info.Version)
			return
		}

		if configPath != "" {
			FromFileCmd.Run(cmd, []string{configPath})
			return
		}

		if !cmd.Flags().Changed("iface") {
			cmd.Help()
			return
		}

		cfg := config.Default()
		applyFlags(cmd, &cfg)

		info.Configuration = struct {
			Kind string `json:"kind"`
		}{"flags"}

		exitOnError(run(&cfg))
	},
}

/**
 * Validate and hand config to the app
 */
func run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return start(cfg)
}

func removePidFile() {
	if pidFilePath != "" {
		pidfile.RemovePidFile(pidFilePath)
	}
}

/**
 * Exit on err. Fatal skips post run hooks, so pid file
 * is removed here.
 */
func exitOnError(err error) {
	if err == nil {
		return
	}
	removePidFile()
	log.Fatal(err)
}
