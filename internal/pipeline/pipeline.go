// Package pipeline drives the single-threaded, I/O-bound read-classify-
// paint-write loop: one goroutine reads a line, feeds it to the state
// machine, and writes whatever the dispatched handler produced, with no
// locks or buffering across lines beyond what the state machine itself
// holds for an in-progress hunk.
package pipeline

import (
	"bufio"
	"errors"
	"io"
	"syscall"

	"github.com/ibro45/diffpaint/internal/handlers"
	"github.com/ibro45/diffpaint/internal/statemachine"
)

// BrokenPipe reports whether err is (or wraps) a broken-pipe write
// error, the one I/O failure the pipeline treats as a clean shutdown
// rather than a fatal error.
func BrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE)
}

// Run reads newline-delimited input from r, renders it through h via a
// fresh statemachine.Machine, and writes the result. It returns nil on
// a clean end of input (including a broken output pipe, which is not
// treated as an error); any other I/O error is returned for the caller
// to translate into a nonzero exit.
func Run(r io.Reader, h *handlers.Handlers) error {
	m := statemachine.New(h)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		if err := m.Feed(scanner.Text()); err != nil {
			if BrokenPipe(err) {
				return nil
			}
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if err := m.Close(); err != nil {
		if BrokenPipe(err) {
			return nil
		}
		return err
	}
	return nil
}
