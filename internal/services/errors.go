package services

import "errors"

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAlreadySubscribed  = errors.New("email already subscribed")
)
