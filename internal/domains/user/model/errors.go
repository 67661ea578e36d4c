package model

import "errors"

var (
	// ErrUserNotFound means no account with that email or id exists
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken means an account with that email already exists
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")
)
