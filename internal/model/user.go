package model

import (
	"strings"
	"time"
)

// UserID uniquely identifies a registered player across the system
type UserID string

// DefaultCash is the bankroll a player starts with the first time it is needed
const DefaultCash = 100

// User represents one registered player record.
// The full set of records is persisted as a single ordered collection;
// registration order is preserved and ID is the stable lookup key.
type User struct {
	ID        UserID `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`

	// Password is the stored credential. Plaintext by default to match the
	// demo contract; a bcrypt hash when the account service is configured
	// with the bcrypt hasher.
	Password string `json:"password"`

	Cash     int `json:"cash"`
	Score    int `json:"score"`
	TopScore int `json:"topScore"`

	Created        time.Time `json:"created"`
	LastLoggedInAt time.Time `json:"lastLoggedInAt,omitzero"`
}

// DisplayName prefers the username, falling back to "First Last"
func (u *User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// SessionView is the reduced projection of a User stored in the session
// pointer at login. Login is the sole producer; the game engine and
// leaderboard only read it.
type SessionView struct {
	ID         UserID    `json:"id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"firstName,omitempty"`
	LastName   string    `json:"lastName,omitempty"`
	LoggedInAt time.Time `json:"loggedInAt"`
}

// DisplayName prefers the username, falling back to "First Last", then "Guest"
func (s *SessionView) DisplayName() string {
	if s.Username != "" {
		return s.Username
	}
	if name := strings.TrimSpace(s.FirstName + " " + s.LastName); name != "" {
		return name
	}
	return "Guest"
}
