package plot

/**
 * plot.go - gnuplot process
 */

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/yyyar/trafficplot/config"
	"github.com/yyyar/trafficplot/logging"
)

/**
 * Renders plot data file with gnuplot until stopped
 * or the window is closed
 */
type Plotter struct {
	cfg    config.PlotConfig
	params ScriptParams

	cmd        *exec.Cmd
	scriptPath string

	done     chan struct{}
	waitErr  error
	stopOnce sync.Once

	// SIGTERM grace period before gnuplot is killed
	killAfter time.Duration
}

const defaultKillAfter = 3 * time.Second

/**
 * Create new Plotter
 */
func New(cfg config.PlotConfig, params ScriptParams) *Plotter {
	params.Terminal = cfg.Terminal
	params.Width = cfg.Width
	params.Height = cfg.Height
	return &Plotter{
		cfg:    cfg,
		params:    params,
		done:      make(chan struct{}),
		killAfter: defaultKillAfter,
	}
}

/**
 * Start writes script to temp file and spawns gnuplot.
 * gnuplot is killed when ctx is done.
 */
func (this *Plotter) Start(ctx context.Context) error {

	log := logging.For("plot")

	f, err := os.CreateTemp("", "trafficplot-*.gnuplot")
	if err != nil {
		return fmt.Errorf("plot: create script: %w", err)
	}
	this.scriptPath = f.Name()

	if err := WriteScript(f, this.params); err != nil {
		f.Close()
		os.Remove(this.scriptPath)
		return fmt.Errorf("plot: write script: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(this.scriptPath)
		return fmt.Errorf("plot: write script: %w", err)
	}

	gnuplot := this.cfg.Gnuplot
	if gnuplot == "" {
		gnuplot = "gnuplot"
	}

	this.cmd = exec.CommandContext(ctx, gnuplot, this.scriptPath)
	this.cmd.Cancel = func() error {
		return this.cmd.Process.Signal(syscall.SIGTERM)
	}
	this.cmd.WaitDelay = this.killAfter
	if this.cfg.Terminal == "dumb" {
		this.cmd.Stdout = os.Stdout
	}
	if this.cfg.Debug {
		this.cmd.Stderr = os.Stderr
	} else {
		this.cmd.Stderr = io.Discard
	}

	if err := this.cmd.Start(); err != nil {
		os.Remove(this.scriptPath)
		return fmt.Errorf("plot: start %s: %w", gnuplot, err)
	}

	log.Info("Started ", gnuplot, " pid ", this.cmd.Process.Pid)

	go func() {
		this.waitErr = this.cmd.Wait()
		log.Debug("gnuplot exited: ", this.waitErr)
		close(this.done)
	}()

	return nil
}

/**
 * Done is closed when gnuplot exits
 */
func (this *Plotter) Done() <-chan struct{} {
	return this.done
}

/**
 * Err returns gnuplot exit error, valid after Done
 */
func (this *Plotter) Err() error {
	<-this.done
	return this.waitErr
}

/**
 * Stop terminates gnuplot and removes the script
 */
func (this *Plotter) Stop() {
	this.stopOnce.Do(func() {
		if this.cmd != nil && this.cmd.Process != nil {
			select {
			case <-this.done:
			default:
				this.cmd.Process.Signal(syscall.SIGTERM)
				select {
				case <-this.done:
				case <-time.After(this.killAfter):
					logging.For("plot").Warn("gnuplot ignored SIGTERM, killing pid ", this.cmd.Process.Pid)
					this.cmd.Process.Kill()
					<-this.done
				}
			}
		}
		if this.scriptPath != "" {
			os.Remove(this.scriptPath)
		}
	})
}
