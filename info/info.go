package info

import (
	"time"
)

/**
 * Build and runtime info, version fields are set
 * with ldflags while building
 */
var (
	Version       string = "dev"
	Revision      string
	Branch        string
	StartTime     time.Time
	Configuration interface{}
)
