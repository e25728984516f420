package utils

/**
 * time.go - Time utils
 */

import (
	"context"
	"time"
)

/**
 * Parse duration or return default
 */
func ParseDurationOrDefault(s string, defaultDuration time.Duration) time.Duration {

	if s == "" {
		return defaultDuration
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultDuration
	}

	return d
}

/**
 * Sleep waits for d or ctx cancellation.
 * Returns false if waiting was interrupted.
 */
func Sleep(ctx context.Context, d time.Duration) bool {

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
