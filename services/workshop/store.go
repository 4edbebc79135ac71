package workshop

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"workshopcart/services/cart"
	"workshopcart/services/submission"
	"workshopcart/utils"

	"github.com/go-redis/redis/v8"
)

// SessionStore keeps cart sessions for their lifetime only.
type SessionStore interface {
	Get(ctx context.Context, id string) (*CartSession, error)
	Save(ctx context.Context, s *CartSession) error
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// MemorySessionStore holds sessions in process. Entries expire lazily on
// access, there is no sweeper goroutine.
type MemorySessionStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Entries are stored encoded so callers never share a live *CartSession.
func (m *MemorySessionStore) Get(ctx context.Context, id string) (*CartSession, error) {
	m.mu.Lock()
	e, ok := m.entries[id]
	if ok && m.ttl > 0 && !m.now().Before(e.expires) {
		delete(m.entries, id)
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return decodeSession(e.data)
}

func (m *MemorySessionStore) Save(ctx context.Context, s *CartSession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal cart session: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[s.ID] = memoryEntry{data: data, expires: m.now().Add(m.ttl)}
	return nil
}

func (m *MemorySessionStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// RedisSessionStore keeps sessions in redis with a TTL refreshed on save.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return utils.SessionCachePrefix + id
}

func (r *RedisSessionStore) Get(ctx context.Context, id string) (*CartSession, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart session: %w", err)
	}
	return decodeSession(data)
}

func (r *RedisSessionStore) Save(ctx context.Context, s *CartSession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal cart session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKey(s.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cart session: %w", err)
	}
	return nil
}

func (r *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, sessionKey(id)).Err()
}

func decodeSession(data []byte) (*CartSession, error) {
	var s CartSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse cart session: %w", err)
	}
	if s.Cart == nil {
		s.Cart = cart.NewStore()
	}
	if s.Form == nil {
		s.Form = submission.NewForm(s.State.Title)
	}
	return &s, nil
}
