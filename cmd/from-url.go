package cmd

/**
 * from-url.go - pull config from url and run
 */

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/yyyar/trafficplot/info"
)

/**
 * Add command
 */
func init() {
	RootCmd.AddCommand(FromUrlCmd)
}

/**
 * Fetch config body from url
 */
func fetchConfig(client *http.Client, url string) (string, error) {

	res, err := client.Get(url)
	if err != nil {
		return "", err
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: unexpected status %s", url, res.Status)
	}

	content, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	return string(content), nil
}

/**
 * FromUrlCmd command
 */
var FromUrlCmd = &cobra.Command{
	Use:   "from-url <url>",
	Short: "Start using config from URL",
	Run: func(cmd *cobra.Command, args []string) {

		if len(args) != 1 {
			cmd.Help()
			return
		}

		data, err := fetchConfig(&http.Client{Timeout: 10 * time.Second}, args[0])
		if err != nil {
			exitOnError(err)
		}

		cfg, err := loadConfig(data, format, isConfigEnvVars)
		if err != nil {
			exitOnError(err)
		}

		applyFlags(cmd, &cfg)

		info.Configuration = struct {
			Kind string `json:"kind"`
			Url  string `json:"url"`
		}{"url", args[0]}

		exitOnError(run(&cfg))
	},
}
