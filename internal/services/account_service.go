package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/thereayou/crocnet/internal/database"
	"github.com/thereayou/crocnet/internal/events"
	"github.com/thereayou/crocnet/internal/models"
	"github.com/thereayou/crocnet/pkg/auth"
)

// TokenTTL is how long an issued bearer token stays valid.
const TokenTTL = 72 * time.Hour

// Candidate is a registration request after validation.
type Candidate struct {
	Name     string
	Username string
	Password string
	Photo    string
	Bio      string
}

type AccountService struct {
	store     UserStore
	hasher    PasswordHasher
	tokens    TokenIssuer
	blacklist TokenBlacklist
	publisher events.Publisher
	log       zerolog.Logger
	newID     func() string
	now       func() time.Time
}

func NewAccountService(
	store UserStore,
	hasher PasswordHasher,
	tokens TokenIssuer,
	blacklist TokenBlacklist,
	publisher events.Publisher,
	log zerolog.Logger,
) *AccountService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &AccountService{
		store:     store,
		hasher:    hasher,
		tokens:    tokens,
		blacklist: blacklist,
		publisher: publisher,
		log:       log,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// Authenticate returns a signed token for valid credentials. Unknown users
// and wrong passwords produce the same ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, database.ErrRecordNotFound) {
			s.log.Warn().Str("username", username).Msg("login failed: unknown username")
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user %q: %w", username, err)
	}

	if !s.hasher.Check(password, user.Password) {
		s.log.Warn().Str("username", username).Msg("login failed: wrong password")
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Name)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Register stores a normalized copy of the candidate and returns it.
func (s *AccountService) Register(ctx context.Context, c Candidate) (*models.User, error) {
	_, err := s.store.FindUserByUsername(ctx, c.Username)
	switch {
	case err == nil:
		s.log.Warn().Str("username", c.Username).Msg("register failed: username already taken")
		return nil, ErrDuplicateUsername
	case !errors.Is(err, database.ErrRecordNotFound):
		return nil, fmt.Errorf("find user %q: %w", c.Username, err)
	}

	hash, err := s.hasher.Hash(c.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, ErrValidation
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:        s.newID(),
		Name:      c.Name,
		Username:  c.Username,
		Password:  hash,
		Photo:     c.Photo,
		Bio:       c.Bio,
		Friends:   []string{},
		Enemies:   []string{},
		CreatedAt: s.now(),
	}

	if err := s.store.SaveUser(ctx, user); err != nil {
		// lost the race against a concurrent registration
		if errors.Is(err, database.ErrDuplicateUsername) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("save user %q: %w", c.Username, err)
	}

	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")

	if err := s.publisher.Publish(ctx, events.UserRegistered(user.Public(), user.CreatedAt)); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("publish user_registered")
	}

	return user, nil
}

// ListUsers returns every stored record in store order.
func (s *AccountService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *AccountService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %q: %w", id, err)
	}
	return user, nil
}

// Logout revokes the token for the rest of its validity.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	exp, err := s.tokens.Expiry(token)
	if err != nil {
		return ErrUnauthorized
	}
	if err := s.blacklist.Revoke(ctx, token, exp.Sub(s.now())); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}
