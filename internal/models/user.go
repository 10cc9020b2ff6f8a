package models

import "time"

// User is the stored account record. Password always holds a bcrypt hash.
type User struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey" bson:"_id"`
	Name      string    `json:"name" gorm:"not null" bson:"name"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null" bson:"username"`
	Password  string    `json:"password" gorm:"not null" bson:"password"`
	Photo     string    `json:"photo" gorm:"not null;default:''" bson:"photo"`
	Bio       string    `json:"bio" gorm:"not null;default:''" bson:"bio"`
	Friends   []string  `json:"friends" gorm:"serializer:json;not null" bson:"friends"`
	Enemies   []string  `json:"enemies" gorm:"serializer:json;not null" bson:"enemies"`
	CreatedAt time.Time `json:"-" bson:"created_at"`
}

// PublicUser is what leaves the service over HTTP or the event bus.
type PublicUser struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Photo    string   `json:"photo"`
	Bio      string   `json:"bio"`
	Friends  []string `json:"friends"`
	Enemies  []string `json:"enemies"`
}

// Public strips the password hash. Relation lists are never nil so they
// encode as [] rather than null.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Photo:    u.Photo,
		Bio:      u.Bio,
		Friends:  nonNil(u.Friends),
		Enemies:  nonNil(u.Enemies),
	}
}

// PublicUsers projects a slice of users.
func PublicUsers(users []User) []PublicUser {
	out := make([]PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
