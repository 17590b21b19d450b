package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jubilee-retail/backoffice/internal/domain/identity"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"github.com/redis/go-redis/v9"
)

// RedisPendingLoginStore keeps in-flight logins in Redis. Entries are
// written with the OTP window as TTL, so expiry needs no sweeper: a
// missing key means the window elapsed.
type RedisPendingLoginStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisPendingLoginStore creates a Redis-backed pending-login store
func NewRedisPendingLoginStore(client *redis.Client) *RedisPendingLoginStore {
	return &RedisPendingLoginStore{
		client:    client,
		keyPrefix: "auth:pending:",
		ttl:       identity.OtpTTL,
	}
}

func (s *RedisPendingLoginStore) key(reference string) string {
	return s.keyPrefix + reference
}

// Put stores a pending login. The TTL is anchored at CreatedAt so that
// updating the entry (attaching a code, counting attempts) never extends
// the original window.
func (s *RedisPendingLoginStore) Put(ctx context.Context, login *identity.PendingLogin) error {
	payload, err := json.Marshal(login)
	if err != nil {
		return fmt.Errorf("failed to marshal pending login: %w", err)
	}
	remaining := s.ttl - time.Since(login.CreatedAt)
	if remaining <= 0 {
		return shared.ErrOtpExpired
	}
	if err := s.client.Set(ctx, s.key(login.Reference), payload, remaining).Err(); err != nil {
		return fmt.Errorf("failed to store pending login: %w", err)
	}
	return nil
}

// Find loads a pending login; an unknown or expired reference returns
// shared.ErrOtpExpired.
func (s *RedisPendingLoginStore) Find(ctx context.Context, reference string) (*identity.PendingLogin, error) {
	val, err := s.client.Get(ctx, s.key(reference)).Bytes()
	if err == redis.Nil {
		return nil, shared.ErrOtpExpired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load pending login: %w", err)
	}
	var login identity.PendingLogin
	if err := json.Unmarshal(val, &login); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending login: %w", err)
	}
	return &login, nil
}

// Delete removes a pending login once the flow completes or aborts
func (s *RedisPendingLoginStore) Delete(ctx context.Context, reference string) error {
	if err := s.client.Del(ctx, s.key(reference)).Err(); err != nil {
		return fmt.Errorf("failed to delete pending login: %w", err)
	}
	return nil
}

// InMemoryPendingLoginStore keeps pending logins in process memory.
// Suitable for tests and single-node development only.
type InMemoryPendingLoginStore struct {
	mu      sync.RWMutex
	entries map[string]*identity.PendingLogin
	ttl     time.Duration
}

// NewInMemoryPendingLoginStore creates an in-memory pending-login store
func NewInMemoryPendingLoginStore() *InMemoryPendingLoginStore {
	return &InMemoryPendingLoginStore{
		entries: make(map[string]*identity.PendingLogin),
		ttl:     identity.OtpTTL,
	}
}

// Put stores a pending login
func (s *InMemoryPendingLoginStore) Put(ctx context.Context, login *identity.PendingLogin) error {
	if time.Since(login.CreatedAt) >= s.ttl {
		return shared.ErrOtpExpired
	}
	copied := *login
	s.mu.Lock()
	s.entries[login.Reference] = &copied
	s.mu.Unlock()
	return nil
}

// Find loads a pending login; expired entries are removed on access
func (s *InMemoryPendingLoginStore) Find(ctx context.Context, reference string) (*identity.PendingLogin, error) {
	s.mu.RLock()
	login, ok := s.entries[reference]
	s.mu.RUnlock()
	if !ok {
		return nil, shared.ErrOtpExpired
	}
	if time.Since(login.CreatedAt) >= s.ttl {
		s.mu.Lock()
		delete(s.entries, reference)
		s.mu.Unlock()
		return nil, shared.ErrOtpExpired
	}
	copied := *login
	return &copied, nil
}

// Delete removes a pending login
func (s *InMemoryPendingLoginStore) Delete(ctx context.Context, reference string) error {
	s.mu.Lock()
	delete(s.entries, reference)
	s.mu.Unlock()
	return nil
}
