package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Session is a per-view state holder (a grid or discovery engine plus its
// metadata) kept for the lifetime of one browsing session.
type Session interface {
	SessionId() string
}

// SessionRepository stores view sessions with a sliding expiry.
type SessionRepository[S Session] struct {
	cache *cache.Cache
}

func NewSessionRepository[S Session](ttl time.Duration) *SessionRepository[S] {
	if ttl <= 0 {
		ttl = time.Hour
	}
	// Expired sessions are purged every ttl/6
	c := cache.New(ttl, ttl/6)
	return &SessionRepository[S]{
		cache: c,
	}
}

func (r *SessionRepository[S]) Save(session S) {
	r.cache.Set(session.SessionId(), session, cache.DefaultExpiration)
}

// Get returns the session and extends its expiry.
func (r *SessionRepository[S]) Get(sessionId string) (S, bool) {
	if x, found := r.cache.Get(sessionId); found {
		s := x.(S)
		r.cache.Set(sessionId, s, cache.DefaultExpiration)
		return s, true
	}
	var zero S
	return zero, false
}

func (r *SessionRepository[S]) Delete(sessionId string) {
	r.cache.Delete(sessionId)
}

func (r *SessionRepository[S]) Count() int {
	return r.cache.ItemCount()
}

// Each calls fn for every live session.
func (r *SessionRepository[S]) Each(fn func(S)) {
	for _, item := range r.cache.Items() {
		if s, ok := item.Object.(S); ok {
			fn(s)
		}
	}
}

// OnEvicted registers fn to run when a session expires or is deleted.
func (r *SessionRepository[S]) OnEvicted(fn func(S)) {
	r.cache.OnEvicted(func(_ string, v interface{}) {
		if s, ok := v.(S); ok {
			fn(s)
		}
	})
}
