package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerFrames is the braille animation cycle.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner writes an animated progress line to stderr while a slow
// operation runs. It stops on Stop or when its context is cancelled.
type spinner struct {
	mu      sync.Mutex
	message string
	cancel  context.CancelFunc
	done    context.Context
	stopped chan struct{}
}

// newSpinnerWithContext creates a spinner bound to ctx. Call Start to
// begin animating and Stop (or one of its variants) exactly once.
func newSpinnerWithContext(ctx context.Context, message string) *spinner {
	done, cancel := context.WithCancel(ctx)
	return &spinner{
		message: message,
		cancel:  cancel,
		done:    done,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation in a background goroutine.
func (s *spinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for frame := 0; ; frame++ {
			select {
			case <-s.done.Done():
				s.erase()
				return
			case <-ticker.C:
				glyph := spinnerFrames[frame%len(spinnerFrames)]
				s.mu.Lock()
				fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(glyph), StyleDim.Render(s.message))
				s.mu.Unlock()
			}
		}
	}()
}

// SetMessage swaps the text shown next to the animation.
func (s *spinner) SetMessage(message string) {
	s.mu.Lock()
	if len(message) < len(s.message) {
		// Shrinking message would leave stale characters on the line.
		fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
	}
	s.message = message
	s.mu.Unlock()
}

// Stop halts the animation and clears the line.
func (s *spinner) Stop() {
	s.cancel()
	<-s.stopped
}

// StopWithSuccess stops the spinner and prints a success line.
func (s *spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints an error line.
func (s *spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

func (s *spinner) erase() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}
