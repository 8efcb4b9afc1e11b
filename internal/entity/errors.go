package entity

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden: access denied")
	ErrNoFieldsToUpdate   = errors.New("no updates provided")
	ErrTaskNotFound       = errors.New("task not found")
	ErrWeddingNotFound    = errors.New("wedding not found")
	ErrNoWeddingAvailable = errors.New("no wedding available")
	ErrUserNotFound       = errors.New("user not found")
	ErrTitleRequired      = errors.New("title is required")
	ErrTaskIDRequired     = errors.New("task id is required")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)
