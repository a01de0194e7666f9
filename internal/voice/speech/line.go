package speech

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync"
)

// ErrExhausted is returned when a LineRecognizer is started after its input
// has ended.
var ErrExhausted = errors.New("speech: transcript source exhausted")

// LineRecognizer treats each line of r as one final transcript. It stands in
// for a real speech engine at the command line and in tests.
type LineRecognizer struct {
	r      io.Reader
	events chan Event

	mu       sync.Mutex
	started  bool
	finished bool
}

func NewLineRecognizer(r io.Reader) *LineRecognizer {
	return &LineRecognizer{r: r, events: make(chan Event)}
}

func (l *LineRecognizer) Events() <-chan Event { return l.events }

// Start begins reading on the first call. Later calls are no-ops until the
// input ends, after which they return ErrExhausted.
func (l *LineRecognizer) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.finished {
		return ErrExhausted
	}
	if l.started {
		return nil
	}
	l.started = true
	go l.read(ctx)
	return nil
}

// Stop has nothing to release; the session ignores lines once it stops.
func (l *LineRecognizer) Stop() error { return nil }

func (l *LineRecognizer) read(ctx context.Context) {
	sc := bufio.NewScanner(l.r)
	for sc.Scan() {
		if !l.send(ctx, Event{Type: EventResult, Transcript: sc.Text(), Final: true}) {
			return
		}
	}
	if err := sc.Err(); err != nil {
		if !l.send(ctx, Event{Type: EventError, Err: err}) {
			return
		}
	}
	l.mu.Lock()
	l.finished = true
	l.mu.Unlock()
	l.send(ctx, Event{Type: EventEnd})
}

func (l *LineRecognizer) send(ctx context.Context, ev Event) bool {
	select {
	case l.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
