package domain

import "time"

// UserStatus is the lifecycle state of a registered account. Only approved
// accounts may access protected portal pages.
type UserStatus string

const (
	StatusPending  UserStatus = "pending"
	StatusApproved UserStatus = "approved"
	StatusRevoked  UserStatus = "revoked"
)

// UserRole distinguishes members from portal administrators.
type UserRole string

const (
	RoleMember UserRole = "member"
	RoleAdmin  UserRole = "admin"
)

// User is the backend-owned account profile as returned by /auth/me and the
// admin user listing endpoints.
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Status    UserStatus `json:"status"`
	Role      UserRole   `json:"role"`
	BranchID  string     `json:"branch_id,omitempty"`
	Branch    string     `json:"branch,omitempty"`
	CreatedAt time.Time  `json:"created_at,omitempty"`
}

// DisplayName returns the name to show in the UI, falling back to the email
// local part when the profile has no full name.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	if u.Email != "" {
		return u.Email
	}
	return "Unknown User"
}

// IsApproved reports whether the account may use protected pages.
func (u *User) IsApproved() bool {
	return u.Status == StatusApproved
}

// IsAdmin reports whether the account carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// TokenPair is the credential pair issued by the backend on login. Both
// tokens are opaque to the portal; expiry is discovered reactively when the
// backend answers 401.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Empty reports whether no access token is held.
func (t TokenPair) Empty() bool {
	return t.AccessToken == ""
}

// Branch is a church branch offered in the signup form.
type Branch struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
