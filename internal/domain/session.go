package domain

import "time"

// Session is the authenticated identity captured by a successful login.
type Session struct {
	UserID          int64
	UserName        string
	Email           string
	Role            string
	AccessToken     string
	AuthenticatedAt time.Time
	ExpiresAt       time.Time
}

// Expired reports whether the session is no longer usable at now.
func (s *Session) Expired(now time.Time) bool {
	return s.AccessToken == "" || !now.Before(s.ExpiresAt)
}
