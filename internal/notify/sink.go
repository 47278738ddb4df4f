package notify

import (
	"sync"
	"time"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Notification is the single transient message shown to the user. It is
// never persisted.
type Notification struct {
	Text     string
	Severity Severity
}

const DefaultTTL = 3 * time.Second

// Sink holds at most one active notification. Publishing replaces the
// current one and restarts the expiry timer; the previous timer is cancelled
// so it cannot race a newer message off the screen.
type Sink struct {
	mu      sync.Mutex
	ttl     time.Duration
	seq     uint64
	current *Notification
	timer   *time.Timer
}

// NewSink creates a sink whose messages expire after ttl. A non-positive ttl
// falls back to DefaultTTL.
func NewSink(ttl time.Duration) *Sink {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Sink{ttl: ttl}
}

func (s *Sink) Publish(text string, severity Severity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}

	s.seq++
	seq := s.seq
	s.current = &Notification{Text: text, Severity: severity}
	s.timer = time.AfterFunc(s.ttl, func() { s.expire(seq) })
}

// expire clears the message only if it is still the one the timer was armed
// for; a Stop that lost the race to the firing goroutine is then harmless.
func (s *Sink) expire(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return
	}
	s.current = nil
	s.timer = nil
}

func (s *Sink) Success(text string) { s.Publish(text, SeveritySuccess) }
func (s *Sink) Error(text string)   { s.Publish(text, SeverityError) }
func (s *Sink) Info(text string)    { s.Publish(text, SeverityInfo) }

// Current returns the active notification, if any.
func (s *Sink) Current() (Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return Notification{}, false
	}
	return *s.current, true
}

// Dismiss clears the active notification immediately.
func (s *Sink) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.seq++
	s.current = nil
}
