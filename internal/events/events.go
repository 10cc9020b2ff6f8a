package events

import (
	"context"
	"errors"
	"time"

	"github.com/thereayou/crocnet/internal/models"
)

type Type string

const TypeUserRegistered Type = "user_registered"

// UserEvent is published after a user record changes state.
type UserEvent struct {
	Type      Type              `json:"type"`
	User      models.PublicUser `json:"user"`
	Timestamp time.Time         `json:"timestamp"`
}

func UserRegistered(user models.PublicUser, at time.Time) UserEvent {
	return UserEvent{Type: TypeUserRegistered, User: user, Timestamp: at}
}

type Publisher interface {
	Publish(ctx context.Context, event UserEvent) error
}

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, event UserEvent) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Nop struct{}

func (Nop) Publish(context.Context, UserEvent) error { return nil }
