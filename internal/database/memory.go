package database

import (
	"context"
	"sync"
	"time"

	"github.com/thereayou/crocnet/internal/models"
)

// MemoryStore is a process-local user store for development and tests.
type MemoryStore struct {
	mu         sync.RWMutex
	byID       map[string]*models.User
	byUsername map[string]string
	order      []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:       make(map[string]*models.User),
		byUsername: make(map[string]string),
	}
}

func (s *MemoryStore) SaveUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byUsername[user.Username]; ok {
		return ErrDuplicateUsername
	}
	stored := cloneUser(user)
	s.byID[user.ID] = stored
	s.byUsername[user.Username] = user.ID
	s.order = append(s.order, user.ID)
	return nil
}

func (s *MemoryStore) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return cloneUser(user), nil
}

func (s *MemoryStore) FindUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return cloneUser(s.byID[id]), nil
}

func (s *MemoryStore) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.order))
	for _, id := range s.order {
		users = append(users, *cloneUser(s.byID[id]))
	}
	return users, nil
}

func (s *MemoryStore) Close() error { return nil }

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Friends = append([]string{}, u.Friends...)
	c.Enemies = append([]string{}, u.Enemies...)
	return &c
}

// MemoryBlacklist holds revoked tokens until their expiry.
type MemoryBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{revoked: make(map[string]time.Time), now: time.Now}
}

func (b *MemoryBlacklist) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.revoked[token] = b.now().Add(ttl)
	return nil
}

func (b *MemoryBlacklist) IsRevoked(_ context.Context, token string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	until, ok := b.revoked[token]
	if !ok {
		return false, nil
	}
	if !b.now().Before(until) {
		delete(b.revoked, token)
		return false, nil
	}
	return true, nil
}
