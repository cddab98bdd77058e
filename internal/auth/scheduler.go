package auth

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// transientRetryDelay is how long the scheduler waits before retrying a
// refresh that failed for a non-terminal reason.
const transientRetryDelay = 30 * time.Second

// Scheduler keeps the stored credential fresh by firing a refresh slightly
// before expiry. At most one timer is pending at any time; arming cancels
// the prior timer first.
type Scheduler struct {
	protocol *Protocol
	store    *Store
	logger   *log.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// NewScheduler creates a Scheduler for the given protocol and store.
func NewScheduler(protocol *Protocol, store *Store, logger *log.Logger) *Scheduler {
	return &Scheduler{
		protocol: protocol,
		store:    store,
		logger:   logger,
	}
}

// Arm schedules a refresh at ExpiresAt minus the protocol skew, replacing
// any previously pending timer. A store without a credential disarms the
// scheduler.
func (s *Scheduler) Arm() {
	cred, ok := s.store.Get()
	if !ok {
		s.Stop()
		return
	}

	delay := time.Until(cred.ExpiresAt.Add(-s.protocol.Skew()))
	if delay < 0 {
		delay = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(delay, s.fire)
	s.logger.Debug("refresh scheduled", "in", delay.Round(time.Second))
}

// Stop cancels any pending refresh timer.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// fire refreshes the stored credential once.
//
// Success stores the new credential and arms the next timer. A terminal
// failure clears the store; a transient failure keeps the credential and
// retries after a short delay.
func (s *Scheduler) fire() {
	cred, ok := s.store.Get()
	if !ok {
		return
	}

	next, err := s.protocol.Refresh(context.Background(), cred)
	if err != nil {
		if IsTerminalRefreshError(err) {
			s.logger.Error("refresh failed terminally, session cleared", "error", err)
			s.store.Clear()
			s.Stop()
			return
		}
		s.logger.Warn("transient refresh failure, will retry", "error", err)
		s.mu.Lock()
		if s.timer != nil {
			s.timer.Stop()
		}
		s.timer = time.AfterFunc(transientRetryDelay, s.fire)
		s.mu.Unlock()
		return
	}

	s.store.Set(next)
	s.logger.Info("access token refreshed", "expires_at", next.ExpiresAt.Format(time.RFC3339))
	s.Arm()
}
