package redis

import (
	"context"
	"sync"
	"time"

	"course-quiz-service/internal/app"
	"github.com/redis/go-redis/v9"
)

// SessionRegistry is a Redis-aware implementation of app.SessionRegistry.
// Notes:
//   - Sessions themselves stay in a local in-memory map; each one is
//     exclusively owned by a single connection on this instance.
//   - Redis marks session liveness with a TTL key, so operators can see
//     in-flight attempts and abandoned ones expire on their own.
type SessionRegistry struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionRegistry(client *redis.Client, ttl time.Duration) *SessionRegistry {
	return &SessionRegistry{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Session),
	}
}

func (r *SessionRegistry) Put(key string, session *app.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[key] = session
	// best-effort liveness marker
	_ = r.client.Set(context.Background(), r.key(key), session.SubjectID(), r.ttl).Err()
}

func (r *SessionRegistry) Get(key string) (*app.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[key]
	return session, ok
}

func (r *SessionRegistry) Delete(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[key]; !ok {
		return
	}
	delete(r.sessions, key)
	_ = r.client.Del(context.Background(), r.key(key)).Err()
}

func (r *SessionRegistry) key(sessionKey string) string {
	return "attempt:session:" + sessionKey
}
