package model

import "errors"

var (
	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists indicates that the e-mail is already registered.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials indicates a wrong e-mail or password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates a missing, malformed or expired token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrWeakPassword indicates that the password is too short.
	ErrWeakPassword = errors.New("password must be at least 6 characters")
	// ErrInvalidEmail indicates an empty e-mail address.
	ErrInvalidEmail = errors.New("email is required")
)
