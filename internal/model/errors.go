package model

import "errors"

// Common errors used across the application.
// All of these are recoverable and surfaced to the caller of the operation
// that produced them; none propagate further (the distinctions between the
// login failures are part of the observable contract).
var (
	// Registration errors
	ErrDuplicateUsername = errors.New("username already exists")
	ErrInvalidPassword   = errors.New("password does not satisfy the policy")

	// Login errors
	ErrNoUsersRegistered = errors.New("no users registered yet")
	ErrUserNotFound      = errors.New("user not registered")
	ErrWrongPassword     = errors.New("incorrect password")

	// Session errors
	ErrNotLoggedIn = errors.New("not logged in")

	// Game errors
	ErrGameOver     = errors.New("no cash left")
	ErrNoActiveHand = errors.New("no hand in progress")
)
