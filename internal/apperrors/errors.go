package apperrors

import (
	"errors"
)

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenInvalid = errors.New("invalid or expired token")

	// A movie that exists but belongs to someone else is reported with the
	// same error as a movie that does not exist at all
	ErrMovieNotFound = errors.New("movie not found")
)
