package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a message on stderr while the search index rebuilds.
// It draws nothing unless enabled, which NewSpinner sets only when stderr
// is a terminal.
type Spinner struct {
	out     io.Writer
	message string
	enabled bool

	stop     chan struct{}
	finished sync.WaitGroup
	stopOnce sync.Once
}

// NewSpinner creates a stopped spinner for message.
func NewSpinner(message string) *Spinner {
	return newSpinner(os.Stderr, message, isatty.IsTerminal(os.Stderr.Fd()))
}

func newSpinner(out io.Writer, message string, enabled bool) *Spinner {
	return &Spinner{
		out:     out,
		message: message,
		enabled: enabled,
		stop:    make(chan struct{}),
	}
}

// Start draws frames until Stop is called.
func (s *Spinner) Start() {
	if !s.enabled {
		return
	}

	s.finished.Add(1)
	go func() {
		defer s.finished.Done()
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for frame := 0; ; frame++ {
			select {
			case <-s.stop:
				fmt.Fprint(s.out, "\r\033[K")
				return
			case <-ticker.C:
				fmt.Fprintf(s.out, "\r%s %s", Bold.Render(spinnerFrames[frame%len(spinnerFrames)]), s.message)
			}
		}
	}()
}

// Stop clears the spinner line and waits for the animation to end. It may
// be called more than once, with or without Start.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	s.finished.Wait()
}
