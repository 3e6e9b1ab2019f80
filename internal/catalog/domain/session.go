package domain

import "time"

// Session is a server-side login. The cookie only points at it, so deleting
// the row logs the user out everywhere the cookie is held.
type Session struct {
	ID        string
	UserID    string
	UserAgent string
	IP        string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (s Session) ExpiredAt(now time.Time) bool { return !now.Before(s.ExpiresAt) }
