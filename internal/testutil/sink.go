package testutil

import (
	"context"
	"sync"

	"github.com/mcoot/turnherald/internal/model"
)

// RecordingSink is a notification sink that records sent messages for
// assertions. It can be made to fail to exercise delivery-failure paths.
type RecordingSink struct {
	mu       sync.Mutex
	sent     []model.Notification
	failWith error
}

// NewRecordingSink creates a new RecordingSink
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

// Send records the notification, or fails if FailWith was set
func (s *RecordingSink) Send(ctx context.Context, n model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.sent = append(s.sent, n)
	return nil
}

// Sent returns a copy of all recorded notifications
func (s *RecordingSink) Sent() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Notification, len(s.sent))
	copy(out, s.sent)
	return out
}

// FailWith makes subsequent sends fail with the given error
func (s *RecordingSink) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

// Reset clears recorded notifications and any configured failure
func (s *RecordingSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = nil
	s.failWith = nil
}
