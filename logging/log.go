/**
 * log.go - logging wrapper
 */

package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

/**
 * Logging initialize
 */
func init() {
	logrus.SetFormatter(new(MyFormatter))
	logrus.SetLevel(logrus.InfoLevel)
	logrus.SetOutput(os.Stderr)
}

/**
 * Configure logging output and level.
 * Output is "stdout", "stderr" (default), "discard" or a file path.
 */
func Configure(output string, l string) error {

	var w io.Writer

	switch output {
	case "", "stderr":
		w = os.Stderr
	case "stdout":
		w = os.Stdout
	case "discard":
		w = io.Discard
	default:
		f, err := os.OpenFile(output, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
		if err != nil {
			return fmt.Errorf("open log output: %w", err)
		}
		w = f
	}

	logrus.SetOutput(w)

	if l == "" {
		return nil
	}

	level, err := logrus.ParseLevel(l)
	if err != nil {
		return fmt.Errorf("unknown loglevel %q", l)
	}
	logrus.SetLevel(level)

	return nil
}

/**
 * Our custom formatter
 */
type MyFormatter struct{}

/**
 * Format entry
 */
func (f *MyFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := &bytes.Buffer{}
	name, ok := entry.Data["name"]
	if !ok {
		name = "default"
	}
	fmt.Fprintf(b, "%s [%-5.5s] (%s): %s", entry.Time.Format("2006-01-02 15:04:05"), strings.ToUpper(entry.Level.String()), name, entry.Message)
	if err, ok := entry.Data[logrus.ErrorKey]; ok {
		fmt.Fprintf(b, ": %v", err)
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

/**
 * Add logger name as field var
 */
func For(name string) *logrus.Entry {
	return logrus.WithField("name", name)
}
