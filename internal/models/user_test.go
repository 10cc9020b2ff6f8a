package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPublicStripsPassword(t *testing.T) {
	u := User{ID: "u-1", Name: "Elsa", Username: "elsithecroc", Password: "$2a$10$hash"}

	data, err := json.Marshal(u.Public())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "password") || strings.Contains(string(data), "$2a$") {
		t.Fatalf("public projection leaked the hash: %s", data)
	}
}

func TestPublicRendersEmptyRelations(t *testing.T) {
	u := User{ID: "u-1", Name: "Elsa", Username: "elsithecroc"}

	data, err := json.Marshal(u.Public())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"friends":[]`) || !strings.Contains(string(data), `"enemies":[]`) {
		t.Fatalf("expected empty arrays, got %s", data)
	}
}

func TestPublicUsersKeepsOrder(t *testing.T) {
	users := []User{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	got := PublicUsers(users)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, want := range []string{"a", "b", "c"} {
		if got[i].ID != want {
			t.Fatalf("got[%d].ID = %q, want %q", i, got[i].ID, want)
		}
	}
}
