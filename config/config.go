/**
 * config.go - config file definitions
 */
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

/**
 * Source kinds
 */
const (
	SourceExec   = "exec"
	SourceSsh    = "ssh"
	SourcePsutil = "psutil"
)

/**
 * Config file top-level object
 */
type Config struct {
	Logging   LoggingConfig   `toml:"logging" json:"logging" yaml:"logging"`
	Source    SourceConfig    `toml:"source" json:"source" yaml:"source"`
	Parser    ParserConfig    `toml:"parser" json:"parser" yaml:"parser"`
	Collector CollectorConfig `toml:"collector" json:"collector" yaml:"collector"`
	Sink      SinkConfig      `toml:"sink" json:"sink" yaml:"sink"`
	Plot      PlotConfig      `toml:"plot" json:"plot" yaml:"plot"`
	Api       ApiConfig       `toml:"api" json:"api" yaml:"api"`
	Metrics   MetricsConfig   `toml:"metrics" json:"metrics" yaml:"metrics"`
	Profiler  ProfilerConfig  `toml:"profiler" json:"profiler" yaml:"profiler"`
}

/**
 * Logging config section
 */
type LoggingConfig struct {
	Level  string `toml:"level" json:"level" yaml:"level"`
	Output string `toml:"output" json:"output" yaml:"output"`
}

/**
 * Source feed config section
 */
type SourceConfig struct {

	// exec | ssh | psutil
	Kind string `toml:"kind" json:"kind" yaml:"kind"`

	// Network interface to sample
	Iface string `toml:"iface" json:"iface" yaml:"iface"`

	// Seconds between polling cycles
	Interval int `toml:"interval" json:"interval" yaml:"interval"`

	// Command printing interface stats, iface is appended
	Command []string `toml:"command" json:"command" yaml:"command"`

	// Timeout of a single exec run, e.g. "5s"
	Timeout string `toml:"timeout" json:"timeout" yaml:"timeout"`

	/* only if kind = "ssh" */
	Remote         string `toml:"remote" json:"remote" yaml:"remote"`
	SshKey         string `toml:"ssh_key" json:"ssh_key" yaml:"ssh_key"`
	SshKnownHosts  string `toml:"ssh_known_hosts" json:"ssh_known_hosts" yaml:"ssh_known_hosts"`
	SshInsecure    bool   `toml:"ssh_insecure" json:"ssh_insecure" yaml:"ssh_insecure"`
	SshDialTimeout string `toml:"ssh_dial_timeout" json:"ssh_dial_timeout" yaml:"ssh_dial_timeout"`
}

/**
 * Parser config section
 */
type ParserConfig struct {

	// Regexps with named groups rx and/or tx, in priority order.
	// Empty means built-in ifconfig patterns.
	Patterns []string `toml:"patterns" json:"patterns" yaml:"patterns"`
}

/**
 * Collector config section
 */
type CollectorConfig struct {
	NumSamples    int  `toml:"num_samples" json:"num_samples" yaml:"num_samples"`
	ClampNegative bool `toml:"clamp_negative" json:"clamp_negative" yaml:"clamp_negative"`
}

/**
 * Sink config section
 */
type SinkConfig struct {
	Path string `toml:"path" json:"path" yaml:"path"`
}

/**
 * Plot (gnuplot) config section
 */
type PlotConfig struct {
	Enabled  bool   `toml:"enabled" json:"enabled" yaml:"enabled"`
	Terminal string `toml:"terminal" json:"terminal" yaml:"terminal"`
	Width    int    `toml:"width" json:"width" yaml:"width"`
	Height   int    `toml:"height" json:"height" yaml:"height"`
	Gnuplot  string `toml:"gnuplot" json:"gnuplot" yaml:"gnuplot"`
	Debug    bool   `toml:"debug" json:"debug" yaml:"debug"`
}

/**
 * Rest API config section
 */
type ApiConfig struct {
	Enabled bool   `toml:"enabled" json:"enabled" yaml:"enabled"`
	Bind    string `toml:"bind" json:"bind" yaml:"bind"`
	Cors    bool   `toml:"cors" json:"cors" yaml:"cors"`

	// Origins allowed when cors is on, empty allows all
	CorsOrigins []string `toml:"cors_origins" json:"cors_origins" yaml:"cors_origins"`
}

/**
 * Prometheus metrics config section
 */
type MetricsConfig struct {
	Enabled bool   `toml:"enabled" json:"enabled" yaml:"enabled"`
	Bind    string `toml:"bind" json:"bind" yaml:"bind"`
}

/**
 * pprof config section
 */
type ProfilerConfig struct {
	Enabled bool   `toml:"enabled" json:"enabled" yaml:"enabled"`
	Bind    string `toml:"bind" json:"bind" yaml:"bind"`
}

/**
 * Default configuration, same values the CLI defaults to
 */
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Output: "stderr",
		},
		Source: SourceConfig{
			Kind:           SourceExec,
			Interval:       1,
			Command:        []string{"ifconfig"},
			Timeout:        "5s",
			SshDialTimeout: "10s",
		},
		Collector: CollectorConfig{
			NumSamples: 120,
		},
		Plot: PlotConfig{
			Enabled:  true,
			Terminal: "x11",
			Gnuplot:  "gnuplot",
		},
		Api: ApiConfig{
			Bind: "localhost:8888",
		},
		Metrics: MetricsConfig{
			Bind: "localhost:9284",
		},
		Profiler: ProfilerConfig{
			Bind: "localhost:6060",
		},
	}
}

/**
 * Validate checks the config and fills dependent defaults
 */
func (this *Config) Validate() error {

	if this.Source.Iface == "" {
		return errors.New("no network interface specified")
	}

	if this.Source.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %d", this.Source.Interval)
	}

	if this.Collector.NumSamples <= 0 {
		return fmt.Errorf("num_samples must be positive, got %d", this.Collector.NumSamples)
	}

	switch this.Source.Kind {
	case SourceExec, SourcePsutil:
	case SourceSsh:
		if this.Source.Remote == "" {
			return errors.New("ssh source requires remote target")
		}
	case "":
		this.Source.Kind = SourceExec
		if this.Source.Remote != "" {
			this.Source.Kind = SourceSsh
		}
	default:
		return fmt.Errorf("not supported source kind %q", this.Source.Kind)
	}

	if len(this.Source.Command) == 0 {
		this.Source.Command = []string{"ifconfig"}
	}

	switch this.Plot.Terminal {
	case "x11", "wxt", "dumb":
	case "":
		this.Plot.Terminal = "x11"
	default:
		return fmt.Errorf("not supported terminal %q", this.Plot.Terminal)
	}

	if this.Plot.Terminal == "dumb" {
		if this.Plot.Width == 0 {
			this.Plot.Width = 80
		}
		if this.Plot.Height == 0 {
			this.Plot.Height = 20
		}
	} else {
		if this.Plot.Width == 0 {
			this.Plot.Width = 1024
		}
		if this.Plot.Height == 0 {
			this.Plot.Height = 512
		}
	}

	if this.Plot.Gnuplot == "" {
		this.Plot.Gnuplot = "gnuplot"
	}

	if this.Sink.Path == "" {
		this.Sink.Path = DefaultSinkPath(os.Getpid())
	}

	return nil
}

/**
 * DefaultSinkPath returns pid scoped plot data path,
 * in /dev/shm when available
 */
func DefaultSinkPath(pid int) string {
	dir := "/dev/shm"
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		dir = os.TempDir()
	}
	return filepath.Join(dir, fmt.Sprintf("trafficplot-%d.dat", pid))
}
