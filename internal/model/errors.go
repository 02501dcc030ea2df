package model

import "errors"

// Common errors used across the application
var (
	// Account errors
	ErrUserNotFound   = errors.New("user not found")
	ErrUserExists     = errors.New("username already registered")
	ErrEmptyPassword  = errors.New("password must not be empty")
	ErrBadCredentials = errors.New("incorrect username or password")

	// Session errors
	ErrAlreadyLoggedIn = errors.New("user is already logged in")
	ErrNotLoggedIn     = errors.New("user is not logged in")

	// Game errors
	ErrAlreadyPlayed = errors.New("user already played this round")

	// Dictionary errors
	ErrDictionaryNotLoaded = errors.New("dictionary not loaded")
)
