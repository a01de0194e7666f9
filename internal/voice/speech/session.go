package speech

import (
	"context"
	"strings"
	"sync"

	"pos-voice/internal/common/logger"
)

type EventType int

const (
	EventResult EventType = iota
	EventEnd
	EventError
)

// Event is one notification from a speech engine. Transcript and Final are
// set for EventResult, Err for EventError.
type Event struct {
	Type       EventType
	Transcript string
	Final      bool
	Err        error
}

// Recognizer is a continuous speech-to-text engine. Events returns the same
// channel for the recognizer's whole life, across restarts.
type Recognizer interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Event
}

// Handler receives each final utterance, trimmed and lower-cased.
type Handler func(utterance string)

// Session feeds final recognition results to a Handler, one at a time, and
// restarts the recognizer whenever it ends while the session is listening.
type Session struct {
	rec    Recognizer
	handle Handler
	lg     *logger.Logger

	mu        sync.Mutex
	listening bool
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewSession(rec Recognizer, h Handler, lg *logger.Logger) *Session {
	if lg == nil {
		lg = logger.New("speech")
	}
	done := make(chan struct{})
	close(done)
	return &Session{rec: rec, handle: h, lg: lg, done: done}
}

// Start begins listening. Calling it while already listening does nothing.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.listening {
		s.mu.Unlock()
		return nil
	}
	prev := s.done
	s.mu.Unlock()

	// only one loop may read from the recognizer's events
	<-prev

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listening {
		return nil
	}

	loopCtx, cancel := context.WithCancel(ctx)
	if err := s.rec.Start(loopCtx); err != nil {
		cancel()
		return err
	}
	s.listening = true
	s.cancel = cancel
	s.done = make(chan struct{})
	s.lg.Info("recognition_started", nil)

	go s.loop(loopCtx, s.done)
	return nil
}

// Stop ends listening. Calling it while stopped does nothing. It does not
// wait for an utterance that is already being handled; use Done for that.
func (s *Session) Stop() error {
	s.mu.Lock()
	if !s.listening {
		s.mu.Unlock()
		return nil
	}
	s.listening = false
	cancel := s.cancel
	s.mu.Unlock()

	err := s.rec.Stop()
	cancel()
	s.lg.Info("recognition_stopped", nil)
	return err
}

func (s *Session) Listening() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listening
}

// Done is closed once the current listening loop has exited.
func (s *Session) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func (s *Session) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	events := s.rec.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				s.markStopped()
				return
			}
			if !s.onEvent(ctx, ev) {
				return
			}
		}
	}
}

// onEvent reports whether the loop should keep running.
func (s *Session) onEvent(ctx context.Context, ev Event) bool {
	switch ev.Type {
	case EventResult:
		if !ev.Final || !s.Listening() {
			return true
		}
		u := strings.ToLower(strings.TrimSpace(ev.Transcript))
		if u == "" {
			return true
		}
		s.lg.Debug("heard", map[string]any{"transcript": u})
		s.handle(u)
	case EventError:
		s.lg.Error("recognition_error", ev.Err, nil)
	case EventEnd:
		if !s.Listening() {
			return false
		}
		s.lg.Debug("recognition_restarting", nil)
		if err := s.rec.Start(ctx); err != nil {
			s.lg.Error("recognition_restart_failed", err, nil)
			s.markStopped()
			return false
		}
	}
	return true
}

func (s *Session) markStopped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listening {
		s.listening = false
		s.cancel()
	}
}
