package models

import (
	"time"
)

type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}

// Tokens issued on successful login or registration
// Refresh is zero unless the user asked to be remembered
type Session struct {
	Access   IssuedToken
	Refresh  IssuedToken
	Remember bool
}
