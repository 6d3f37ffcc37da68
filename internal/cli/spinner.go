package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// spinnerFrames cycle while the external toolchain runs.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// toolSpinner is the progress line shown while a LaTeX engine or PDF
// converter runs. Compiles regularly take tens of seconds, so the line
// carries the elapsed time next to the output path. Frames go to stderr;
// piped stdout stays clean.
type toolSpinner struct {
	target  string
	started time.Time

	parent   context.Context
	cancel   context.CancelFunc
	finished chan struct{}

	mu        sync.Mutex
	lastWidth int
}

// startSpinner begins an animated progress line for target. The spinner also
// stops on its own when ctx is cancelled.
func startSpinner(ctx context.Context, target string) *toolSpinner {
	sctx, cancel := context.WithCancel(ctx)
	s := &toolSpinner{
		target:   target,
		started:  time.Now(),
		parent:   ctx,
		cancel:   cancel,
		finished: make(chan struct{}),
	}
	go s.run(sctx)
	return s
}

func (s *toolSpinner) run(ctx context.Context) {
	defer close(s.finished)
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			s.clearLine()
			return
		case <-ticker.C:
			frame := spinnerFrames[i%len(spinnerFrames)]
			label := fmt.Sprintf("compiling %s (%.1fs)", s.target, time.Since(s.started).Seconds())
			s.mu.Lock()
			fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(label))
			s.lastWidth = utf8.RuneCountInString(label) + 2
			s.mu.Unlock()
		}
	}
}

// stop ends the animation and clears the line. Safe to call more than once.
func (s *toolSpinner) stop() {
	s.cancel()
	<-s.finished
	s.clearLine()
}

// fail ends the animation and reports the target as failed.
func (s *toolSpinner) fail() {
	s.stop()
	printError("Failed to render %s", s.target)
}

// interrupted reports whether the surrounding command was cancelled while
// the spinner ran, as opposed to a normal stop.
func (s *toolSpinner) interrupted() bool {
	return s.parent.Err() != nil
}

func (s *toolSpinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastWidth > 0 {
		fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", s.lastWidth))
	}
}
