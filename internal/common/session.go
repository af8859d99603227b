package common

import "time"

const (
	// SessionCookie carries the session token
	SessionCookie = "token"
	// LoggedOutToken replaces the session token on logout
	LoggedOutToken = "none"
	// LoggedOutTTL is how long the logout replacement cookie lives
	LoggedOutTTL = 10 * time.Second

	// Gin context keys set by the access gate
	ContextUserKey   = "user"
	ContextUserIDKey = "user_id"
)
