package domain

import "context"

// Session is the authenticated identity of the current portal user. It is
// owned by the session store: created on successful login or profile fetch,
// replaced on every initialize, destroyed on logout.
type Session struct {
	UserID      string
	Email       string
	DisplayName string
	Role        UserRole
	Status      UserStatus
}

// SessionFromUser builds a Session snapshot from a backend profile.
func SessionFromUser(u *User) *Session {
	return &Session{
		UserID:      u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName(),
		Role:        u.Role,
		Status:      u.Status,
	}
}

// IsApproved reports whether the session's account status permits access to
// protected pages. Derived solely from Status.
func (s *Session) IsApproved() bool {
	return s != nil && s.Status == StatusApproved
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

type sessionKey struct{}

// WithSession stores a Session in the context.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext extracts the Session from the context.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}
