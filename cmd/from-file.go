package cmd

/**
 * from-file.go - pull config from file and run
 */

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yyyar/trafficplot/info"
)

/**
 * Add Root Command
 */
func init() {
	RootCmd.AddCommand(FromFileCmd)
}

/**
 * FromFile Command
 */
var FromFileCmd = &cobra.Command{
	Use:   "from-file <path>",
	Short: "Start using config from file",
	Run: func(cmd *cobra.Command, args []string) {

		if len(args) != 1 {
			cmd.Help()
			return
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			exitOnError(err)
		}

		cfg, err := loadConfig(string(data), format, isConfigEnvVars)
		if err != nil {
			exitOnError(err)
		}

		applyFlags(cmd, &cfg)

		info.Configuration = struct {
			Kind string `json:"kind"`
			Path string `json:"path"`
		}{"file", args[0]}

		exitOnError(run(&cfg))
	},
}
