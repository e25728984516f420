package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yyyar/trafficplot/config"
)

func TestIfaceTitle(t *testing.T) {
	assert.Equal(t, "eth0", ifaceTitle(config.SourceConfig{Iface: "eth0"}))
	assert.Equal(t, "me@box eth0", ifaceTitle(config.SourceConfig{Iface: "eth0", Remote: "me@box"}))
}

func TestRunHeadlessExecSource(t *testing.T) {
	dir := t.TempDir()

	// prints one net-tools 1.x block, counters grow with every run
	script := filepath.Join(dir, "fakeifconfig")
	counter := filepath.Join(dir, "n")
	require.NoError(t, os.WriteFile(script, []byte(`#!/bin/sh
n=$(cat "`+counter+`" 2>/dev/null || echo 0)
n=$((n+1))
echo $n > "`+counter+`"
echo "$1      Link encap:Ethernet"
echo "          RX bytes:$((n*1000)) (1.0 KB)  TX bytes:$((n*200)) (200.0 B)"
`), 0755))

	cfg := config.Default()
	cfg.Source.Iface = "eth0"
	cfg.Source.Command = []string{script}
	cfg.Plot.Enabled = false
	cfg.Sink.Path = filepath.Join(dir, "plot.dat")
	require.NoError(t, cfg.Validate())

	ctx, cancel := context.WithTimeout(context.Background(), 2500*time.Millisecond)
	defer cancel()

	published := make(chan []byte, 1)
	go func() {
		for ctx.Err() == nil {
			data, err := os.ReadFile(cfg.Sink.Path)
			if err == nil && strings.Contains(string(data), "Kbps Down") {
				published <- data
				return
			}
			time.Sleep(50 * time.Millisecond)
		}
	}()

	require.NoError(t, run(ctx, &cfg))

	select {
	case data := <-published:
		assert.True(t, strings.HasPrefix(string(data), `"time" "`))
		assert.Contains(t, string(data), "Kbps Up  ")
	case <-time.After(time.Second):
		t.Fatal("plot data with rates never published")
	}

	_, err := os.Stat(cfg.Sink.Path)
	assert.True(t, os.IsNotExist(err), "plot data removed on exit")
}
