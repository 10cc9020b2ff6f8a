package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thereayou/crocnet/internal/events"
	"github.com/thereayou/crocnet/internal/models"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(zerolog.Nop())
	go h.Run()
	t.Cleanup(h.Stop)
	return h
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case data, ok := <-c.Send:
		if !ok {
			t.Fatal("send channel closed")
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("decode %s: %v", data, err)
		}
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
	return Message{}
}

func TestRegisterAnnouncesOnline(t *testing.T) {
	h := startHub(t)
	c := NewClient(h, nil, "u-1")

	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	msg := receive(t, c)
	if msg.Type != TypeUserOnline || msg.UserID != "u-1" {
		t.Fatalf("msg = %+v", msg)
	}
}

func TestPublishReachesEveryClient(t *testing.T) {
	h := startHub(t)
	a := NewClient(h, nil, "u-1")
	b := NewClient(h, nil, "u-2")
	_ = h.Register(a)
	receive(t, a) // u-1 online
	_ = h.Register(b)
	receive(t, a) // u-2 online
	receive(t, b)

	user := models.PublicUser{ID: "u-3", Name: "El nuevo", Username: "newuser", Friends: []string{}, Enemies: []string{}}
	if err := h.Publish(context.Background(), events.UserRegistered(user, time.Now())); err != nil {
		t.Fatalf("publish: %v", err)
	}

	for _, c := range []*Client{a, b} {
		msg := receive(t, c)
		if msg.Type != TypeUserRegistered || msg.UserID != "u-3" {
			t.Fatalf("msg = %+v", msg)
		}
		var got models.PublicUser
		if err := json.Unmarshal(msg.Data, &got); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if got.Name != "El nuevo" {
			t.Fatalf("data = %+v", got)
		}
	}
}

func TestUnregisterAnnouncesOfflineAfterLastConnection(t *testing.T) {
	h := startHub(t)
	watcher := NewClient(h, nil, "watcher")
	first := NewClient(h, nil, "u-1")
	second := NewClient(h, nil, "u-1")
	_ = h.Register(watcher)
	receive(t, watcher)
	_ = h.Register(first)
	receive(t, watcher) // u-1 online
	_ = h.Register(second)

	h.Unregister(first)
	for range first.Send {
		// drain until the hub closes the channel
	}
	if got := len(h.OnlineUsers()); got != 2 {
		t.Fatalf("online = %d, want 2", got)
	}

	h.Unregister(second)
	msg := receive(t, watcher)
	if msg.Type != TypeUserOffline || msg.UserID != "u-1" {
		t.Fatalf("msg = %+v", msg)
	}
}

func TestRegisterAfterStop(t *testing.T) {
	h := NewHub(zerolog.Nop())
	h.Stop()

	if err := h.Register(NewClient(h, nil, "u-1")); err != ErrHubStopped {
		t.Fatalf("err = %v, want ErrHubStopped", err)
	}
}

func TestRegisterClientAfterStopClosesSend(t *testing.T) {
	h := NewHub(zerolog.Nop())
	h.Stop()

	c := NewClient(h, nil, "u-1")
	h.registerClient(c)

	select {
	case _, ok := <-c.Send:
		if ok {
			t.Fatal("expected closed send channel, got a message")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel left open")
	}
	if got := len(h.OnlineUsers()); got != 0 {
		t.Fatalf("online = %d, want 0", got)
	}
}
