package database

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/thereayou/crocnet/internal/models"
)

func TestMemoryStoreSaveAndFind(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	user := &models.User{ID: "u-1", Name: "Elsa", Username: "elsithecroc", Friends: []string{}, Enemies: []string{}}
	if err := s.SaveUser(ctx, user); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.FindUserByUsername(ctx, "elsithecroc")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.ID != "u-1" || got.Name != "Elsa" {
		t.Fatalf("got %+v", got)
	}

	byID, err := s.GetUser(ctx, "u-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if byID.Username != "elsithecroc" {
		t.Fatalf("username = %q", byID.Username)
	}
}

func TestMemoryStoreMissing(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.FindUserByUsername(ctx, "nobody"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("find err = %v, want ErrRecordNotFound", err)
	}
	if _, err := s.GetUser(ctx, "nope"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("get err = %v, want ErrRecordNotFound", err)
	}
}

func TestMemoryStoreUniqueUsername(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.SaveUser(ctx, &models.User{ID: "u-1", Username: "dup"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	err := s.SaveUser(ctx, &models.User{ID: "u-2", Username: "dup"})
	if !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("err = %v, want ErrDuplicateUsername", err)
	}

	users, _ := s.ListUsers(ctx)
	if len(users) != 1 {
		t.Fatalf("len = %d, want 1", len(users))
	}
}

func TestMemoryStoreConcurrentDuplicates(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := s.SaveUser(ctx, &models.User{ID: string(rune('a' + i)), Username: "racer"})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if succeeded != 1 {
		t.Fatalf("succeeded = %d, want 1", succeeded)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	user := &models.User{ID: "u-1", Username: "elsa", Friends: []string{}}
	_ = s.SaveUser(ctx, user)
	user.Friends = append(user.Friends, "mutated")

	got, _ := s.GetUser(ctx, "u-1")
	if len(got.Friends) != 0 {
		t.Fatalf("store aliased caller slice: %v", got.Friends)
	}
	got.Name = "changed"
	again, _ := s.GetUser(ctx, "u-1")
	if again.Name == "changed" {
		t.Fatal("store returned shared pointer")
	}
}

func TestMemoryStoreListOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, id := range []string{"c", "a", "b"} {
		if err := s.SaveUser(ctx, &models.User{ID: id, Username: "user-" + id}); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i, want := range []string{"c", "a", "b"} {
		if users[i].ID != want {
			t.Fatalf("users[%d].ID = %q, want %q", i, users[i].ID, want)
		}
	}
}

func TestMemoryBlacklist(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 23, 10, 0, 0, 0, time.UTC)
	b := NewMemoryBlacklist()
	b.now = func() time.Time { return now }

	if revoked, _ := b.IsRevoked(ctx, "tok"); revoked {
		t.Fatal("fresh token reported revoked")
	}
	if err := b.Revoke(ctx, "tok", time.Hour); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if revoked, _ := b.IsRevoked(ctx, "tok"); !revoked {
		t.Fatal("expected token revoked")
	}

	now = now.Add(time.Hour)
	if revoked, _ := b.IsRevoked(ctx, "tok"); revoked {
		t.Fatal("expected revocation to lapse at expiry")
	}
}

func TestMemoryBlacklistIgnoresExpiredTTL(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBlacklist()

	if err := b.Revoke(ctx, "tok", 0); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if revoked, _ := b.IsRevoked(ctx, "tok"); revoked {
		t.Fatal("zero ttl should not revoke")
	}
}
