package utils

/**
 * exec.go - Exec external process with timeout
 */

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/yyyar/trafficplot/logging"
)

/**
 * Exec with timeout, returns stdout. Process is killed
 * when timeout passes or ctx is cancelled.
 */
func ExecTimeout(ctx context.Context, timeout time.Duration, params ...string) (string, error) {

	log := logging.For("execTimeout")

	if len(params) == 0 {
		return "", fmt.Errorf("exec: empty command")
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, params[0], params[1:]...)

	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	out, err := cmd.Output()
	if ctx.Err() == context.DeadlineExceeded {
		log.Info("Response from exec ", params, " is timed out. Process killed")
		return "", fmt.Errorf("exec %s: timed out after %s", params[0], timeout)
	}
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("exec %s: %w: %s", params[0], err, msg)
		}
		return "", fmt.Errorf("exec %s: %w", params[0], err)
	}

	return string(out), nil
}
