package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/session"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix     = "session:"
	sessionLockKeyPrefix = "session_lock:"
	sessionLockTTL       = 30 * time.Second
	lockCommandTimeout   = 5 * time.Second
)

// unlockScript deletes a lock only if it is still held by the token in ARGV[1].
var unlockScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// refreshLockScript resets the expiry of a lock to ARGV[2] milliseconds if it is still held by ARGV[1].
var refreshLockScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("pexpire", KEYS[1], ARGV[2])
end
return 0
`)

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}

func sessionLockKey(id uuid.UUID) string {
	return sessionLockKeyPrefix + id.String()
}

// RedisSessionStore keeps game sessions in Redis as JSON.
type RedisSessionStore struct {
	client  *redis.Client
	ttl     time.Duration
	lockTTL time.Duration
}

// NewRedisSessionStore creates a store that expires sessions that were not saved for ttl.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl, lockTTL: sessionLockTTL}
}

// Load loads a session. It returns session.ErrNotFound if it does not exist or expired.
func (store *RedisSessionStore) Load(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	data, err := store.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("error getting session from Redis: %w", err)
	}

	var s session.Session
	if err = json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("error decoding session: %w", err)
	}

	return &s, nil
}

// Save stores a session and resets its expiry.
func (store *RedisSessionStore) Save(ctx context.Context, s *session.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("error encoding session: %w", err)
	}

	if err = store.client.Set(ctx, sessionKey(s.ID), data, store.ttl).Err(); err != nil {
		return fmt.Errorf("error saving session to Redis: %w", err)
	}

	return nil
}

// Lock acquires the lock of a session. It returns session.ErrBusy if it is held by someone else.
// The lock is refreshed in the background until the returned unlock function is called,
// and expires by itself if the process holding it dies.
func (store *RedisSessionStore) Lock(ctx context.Context, id uuid.UUID) (func(), error) {
	key := sessionLockKey(id)
	token := uuid.NewString()

	lockAcquired, err := store.client.SetNX(ctx, key, token, store.lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("error acquiring session lock: %w", err)
	}

	if !lockAcquired {
		return nil, session.ErrBusy
	}

	done := make(chan struct{})
	go store.refreshLock(key, token, done)

	var once sync.Once
	unlock := func() {
		once.Do(func() {
			close(done)

			// Use a fresh context, the request context may be canceled by now.
			ctx, cancel := context.WithTimeout(context.Background(), lockCommandTimeout)
			defer cancel()

			if err := unlockScript.Run(ctx, store.client, []string{key}, token).Err(); err != nil {
				slog.Error("Error releasing session lock", "key", key, "error", err)
			}
		})
	}

	return unlock, nil
}

// refreshLock extends the expiry of a held lock until done is closed or the lock is lost.
func (store *RedisSessionStore) refreshLock(key, token string, done <-chan struct{}) {
	ticker := time.NewTicker(store.lockTTL / 3)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), lockCommandTimeout)
		refreshed, err := refreshLockScript.Run(ctx, store.client, []string{key}, token, store.lockTTL.Milliseconds()).Int()
		cancel()

		if err != nil {
			slog.Error("Error refreshing session lock", "key", key, "error", err)
			continue
		}

		if refreshed == 0 {
			slog.Warn("Session lock was lost", "key", key)
			return
		}
	}
}

type memorySession struct {
	// data is the JSON encoded session, so loaded sessions never share memory
	data []byte

	// expiresAt is zero if the session never expires
	expiresAt time.Time
}

// MemorySessionStore keeps game sessions in memory. It is used when Redis is not configured.
type MemorySessionStore struct {
	sessions map[uuid.UUID]memorySession

	// locked contains the IDs of sessions that are locked
	locked map[uuid.UUID]bool

	// mutex protects sessions and locked
	mutex sync.Mutex

	ttl time.Duration
	now func() time.Time
}

// NewMemorySessionStore creates an empty in-memory store that expires sessions that were not saved for ttl.
// Sessions never expire if ttl is not positive.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[uuid.UUID]memorySession),
		locked:   make(map[uuid.UUID]bool),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (entry memorySession) expired(now time.Time) bool {
	return !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt)
}

// Load loads a session. It returns session.ErrNotFound if it does not exist or expired.
func (store *MemorySessionStore) Load(_ context.Context, id uuid.UUID) (*session.Session, error) {
	store.mutex.Lock()
	entry, ok := store.sessions[id]
	now := store.now()
	store.mutex.Unlock()

	if !ok || entry.expired(now) {
		return nil, session.ErrNotFound
	}

	var s session.Session
	if err := json.Unmarshal(entry.data, &s); err != nil {
		return nil, fmt.Errorf("error decoding session: %w", err)
	}

	return &s, nil
}

// Save stores a session, resets its expiry and removes expired sessions.
func (store *MemorySessionStore) Save(_ context.Context, s *session.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("error encoding session: %w", err)
	}

	store.mutex.Lock()
	defer store.mutex.Unlock()

	now := store.now()

	for id, entry := range store.sessions {
		if entry.expired(now) {
			delete(store.sessions, id)
		}
	}

	entry := memorySession{data: data}
	if store.ttl > 0 {
		entry.expiresAt = now.Add(store.ttl)
	}

	store.sessions[s.ID] = entry
	return nil
}

// Lock acquires the lock of a session. It returns session.ErrBusy if it is already locked.
func (store *MemorySessionStore) Lock(_ context.Context, id uuid.UUID) (func(), error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	if store.locked[id] {
		return nil, session.ErrBusy
	}
	store.locked[id] = true

	var once sync.Once
	unlock := func() {
		once.Do(func() {
			store.mutex.Lock()
			defer store.mutex.Unlock()

			delete(store.locked, id)
		})
	}

	return unlock, nil
}
