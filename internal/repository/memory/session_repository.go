package memory

import (
	"sync"
	"time"

	"bazaarchat-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

const (
	// DefaultTTL evicts sessions idle for an hour; the janitor sweeps
	// every ten minutes.
	DefaultTTL           = 1 * time.Hour
	DefaultSweepInterval = 10 * time.Minute

	// DefaultMaxHistory caps per-session history; oldest turns are
	// evicted first.
	DefaultMaxHistory = 60
)

// SessionRepository holds conversation sessions in memory with TTL
// eviction. Nothing survives a restart by design.
//
// Known limitation: concurrent messages on the same session race on
// the read-modify-write of history (last write wins). The access
// pattern is human-paced chat, so this is documented rather than
// locked per session.
type SessionRepository struct {
	mu         sync.Mutex
	cache      *cache.Cache
	maxHistory int
}

func NewSessionRepository() *SessionRepository {
	return NewSessionRepositoryWithConfig(DefaultTTL, DefaultSweepInterval, DefaultMaxHistory)
}

func NewSessionRepositoryWithConfig(ttl, sweepInterval time.Duration, maxHistory int) *SessionRepository {
	return &SessionRepository{
		cache:      cache.New(ttl, sweepInterval),
		maxHistory: maxHistory,
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	session.LastActive = time.Now()
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

// GetOrCreate returns the session for the id, lazily creating one on
// first contact.
func (r *SessionRepository) GetOrCreate(sessionID string) *store.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sess, found := r.Get(sessionID); found {
		return sess
	}
	sess := &store.Session{
		ID:         sessionID,
		LastActive: time.Now(),
	}
	r.cache.Set(sessionID, sess, cache.DefaultExpiration)
	return sess
}

// AppendTurn adds one message to a session's history, evicting the
// oldest turn when the cap is reached, and refreshes the TTL.
func (r *SessionRepository) AppendTurn(sessionID, role, content string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, found := r.Get(sessionID)
	if !found {
		sess = &store.Session{ID: sessionID}
	}
	sess.History = append(sess.History, store.ChatTurn{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
	if len(sess.History) > r.maxHistory {
		sess.History = sess.History[len(sess.History)-r.maxHistory:]
	}
	r.Save(sess)
}

// SetIntent records the last detected intent and its timestamp.
func (r *SessionRepository) SetIntent(sessionID, intent string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sess, found := r.Get(sessionID); found {
		sess.LastIntent = intent
		sess.LastIntentAt = time.Now()
		r.Save(sess)
	}
}

// SetAuthenticated flags a session as phone-verified.
func (r *SessionRepository) SetAuthenticated(sessionID string, authenticated bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, found := r.Get(sessionID)
	if !found {
		sess = &store.Session{ID: sessionID}
	}
	sess.Authenticated = authenticated
	r.Save(sess)
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

// Sweep removes expired sessions immediately. The janitor does this
// periodically; tests call it directly.
func (r *SessionRepository) Sweep() {
	r.cache.DeleteExpired()
}
