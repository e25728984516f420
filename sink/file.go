package sink

/**
 * file.go - atomically replaced plot data file
 */

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yyyar/trafficplot/logging"
)

/**
 * Publishes rendered windows to Path. Readers see either
 * the previous or the new complete content, never a partial one.
 */
type FileSink struct {
	Path string

	// file mode of published file
	Mode os.FileMode
}

/**
 * Create new file sink publishing to path
 */
func NewFileSink(path string) *FileSink {
	return &FileSink{Path: path, Mode: 0644}
}

/**
 * Publish writes buf to a temp file next to Path and renames it over Path
 */
func (this *FileSink) Publish(buf []byte) (err error) {

	dir, base := filepath.Split(this.Path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("sink: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(buf); err != nil {
		return fmt.Errorf("sink: write temp file: %w", err)
	}
	if err = tmp.Chmod(this.Mode); err != nil {
		return fmt.Errorf("sink: chmod temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sink: sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("sink: close temp file: %w", err)
	}
	if err = os.Rename(tmpName, this.Path); err != nil {
		return fmt.Errorf("sink: replace %s: %w", this.Path, err)
	}

	return nil
}

/**
 * Cleanup removes published file and leftover temp files
 */
func (this *FileSink) Cleanup() error {

	log := logging.For("sink")

	var errs []error

	if err := os.Remove(this.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		errs = append(errs, err)
	}

	dir, base := filepath.Split(this.Path)
	if dir == "" {
		dir = "."
	}
	leftovers, _ := filepath.Glob(filepath.Join(dir, "."+base+".tmp-*"))
	for _, name := range leftovers {
		if err := os.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}

	if len(errs) == 0 {
		log.Debug("Removed ", this.Path)
	}

	return errors.Join(errs...)
}
