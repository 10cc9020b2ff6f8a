package services

import (
	"context"
	"time"

	"github.com/thereayou/crocnet/internal/models"
)

// UserStore returns database.ErrRecordNotFound for missing users and
// database.ErrDuplicateUsername when a username is already stored.
type UserStore interface {
	SaveUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}

type TokenIssuer interface {
	Generate(userID, name string) (string, error)
	Expiry(token string) (time.Time, error)
}

type TokenBlacklist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
