package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	cfg := Default()
	cfg.Source.Iface = "eth0"
	return cfg
}

func TestDefaultNeedsInterface(t *testing.T) {
	cfg := Default()
	assert.EqualError(t, cfg.Validate(), "no network interface specified")
}

func TestValidateFillsDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.Source.Command = nil
	cfg.Plot.Gnuplot = ""

	require.NoError(t, cfg.Validate())

	assert.Equal(t, SourceExec, cfg.Source.Kind)
	assert.Equal(t, []string{"ifconfig"}, cfg.Source.Command)
	assert.Equal(t, 1024, cfg.Plot.Width)
	assert.Equal(t, 512, cfg.Plot.Height)
	assert.Equal(t, "gnuplot", cfg.Plot.Gnuplot)
	assert.NotEmpty(t, cfg.Sink.Path)
}

func TestValidateDumbTerminalSize(t *testing.T) {
	cfg := validConfig()
	cfg.Plot.Terminal = "dumb"
	cfg.Plot.Height = 40

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 80, cfg.Plot.Width)
	assert.Equal(t, 40, cfg.Plot.Height)
}

func TestValidateSourceKind(t *testing.T) {
	cfg := validConfig()
	cfg.Source.Kind = ""
	cfg.Source.Remote = "root@router"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, SourceSsh, cfg.Source.Kind)

	cfg = validConfig()
	cfg.Source.Kind = SourceSsh
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Source.Kind = "snmp"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejects(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"zero interval":    func(c *Config) { c.Source.Interval = 0 },
		"negative samples": func(c *Config) { c.Collector.NumSamples = -1 },
		"bad terminal":     func(c *Config) { c.Plot.Terminal = "png" },
	} {
		cfg := validConfig()
		mutate(&cfg)
		assert.Error(t, cfg.Validate(), name)
	}
}

func TestDefaultSinkPath(t *testing.T) {
	path := DefaultSinkPath(42)
	assert.Equal(t, "trafficplot-42.dat", filepath.Base(path))
}
