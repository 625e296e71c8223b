package web

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"gametrack/internal/constants"
	"gametrack/internal/dashboard"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

const SessionCookie = "gametrack_session"

type session struct {
	orchestrator *dashboard.Orchestrator
	lastSeen     time.Time
}

// Sessions keeps one orchestrator per browser session. Sessions nobody has
// touched for ttl are dropped by Sweep; past max live sessions the least
// recently seen one makes room for a new one.
type Sessions struct {
	fetcher dashboard.Fetcher
	ttl     time.Duration
	max     int
	logger  zerolog.Logger
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*session
}

func NewSessions(fetcher dashboard.Fetcher, ttl time.Duration, logger zerolog.Logger) *Sessions {
	if ttl <= 0 {
		ttl = constants.SessionTTL
	}
	return &Sessions{
		fetcher: fetcher,
		ttl:     ttl,
		max:     constants.MaxSessions,
		logger:  logger,
		now:     time.Now,
		entries: make(map[string]*session),
	}
}

// Acquire returns the orchestrator for the request's session cookie,
// starting a new session (and setting the cookie) when there is none.
func (s *Sessions) Acquire(w http.ResponseWriter, r *http.Request) (*dashboard.Orchestrator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if c, err := r.Cookie(SessionCookie); err == nil {
		if sess, ok := s.entries[c.Value]; ok {
			sess.lastSeen = now
			return sess.orchestrator, nil
		}
	}

	if len(s.entries) >= s.max {
		s.evictOldest()
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	sess := &session{
		orchestrator: dashboard.NewOrchestrator(s.fetcher, s.logger.With().Str("session", id).Logger()),
		lastSeen:     now,
	}
	s.entries[id] = sess

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	s.logger.Debug().Str("session", id).Int("sessions", len(s.entries)).Msg("session started")
	return sess.orchestrator, nil
}

// Lookup returns the orchestrator of an existing session without starting
// one.
func (s *Sessions) Lookup(r *http.Request) (*dashboard.Orchestrator, bool) {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.entries[c.Value]
	if !ok {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess.orchestrator, true
}

func (s *Sessions) evictOldest() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, sess := range s.entries {
		if oldestID == "" || sess.lastSeen.Before(oldest) {
			oldestID, oldest = id, sess.lastSeen
		}
	}
	if oldestID != "" {
		delete(s.entries, oldestID)
		s.logger.Warn().Str("session", oldestID).Int("max", s.max).Msg("session limit reached, evicted least recently used")
	}
}

// Sweep drops idle sessions and reports how many were removed.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, sess := range s.entries {
		if sess.lastSeen.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Run sweeps on every interval until ctx is done.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Info().Int("removed", n).Int("remaining", s.Len()).Msg("expired dashboard sessions")
			}
		}
	}
}
