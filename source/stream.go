package source

/**
 * stream.go - splits a continuous output stream into blocks
 */

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
)

/**
 * Reads lines from a long lived process output and cuts
 * them into blocks on marker lines
 */
type StreamSource struct {
	marker string
	closer io.Closer

	lines chan string
	err   error // read error, valid once lines is closed

	done chan struct{}
	once sync.Once
}

/**
 * Start reading r in background. closer is called on Close.
 */
func NewStreamSource(r io.Reader, marker string, closer io.Closer) *StreamSource {

	this := &StreamSource{
		marker: marker,
		closer: closer,
		lines:  make(chan string, 64),
		done:   make(chan struct{}),
	}

	go func() {
		defer close(this.lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case this.lines <- strings.TrimRight(scanner.Text(), "\r"):
			case <-this.done:
				return
			}
		}
		this.err = scanner.Err()
	}()

	return this
}

/**
 * Next collects lines up to the next marker. Unterminated
 * block at end of stream is dropped.
 */
func (this *StreamSource) Next(ctx context.Context) (Block, error) {

	block := Block{}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case line, ok := <-this.lines:
			if !ok {
				if this.err != nil {
					return nil, this.err
				}
				return nil, io.EOF
			}
			if line == this.marker {
				return block, nil
			}
			block = append(block, line)
		}
	}
}

/**
 * Close stops reading and releases the underlying process,
 * safe to call twice
 */
func (this *StreamSource) Close() error {
	var err error
	this.once.Do(func() {
		close(this.done)
		if this.closer != nil {
			err = this.closer.Close()
		}
	})
	return err
}
