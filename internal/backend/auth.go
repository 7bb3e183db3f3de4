package backend

import (
	"context"

	"wfc-portal/internal/domain"
)

// Login failure messages as raised by the backend. Matched by the session
// store to route pending/revoked accounts to the status page instead of the
// login error banner.
const (
	DetailInvalidCredentials = "Invalid email or password"
	DetailPendingApproval    = "Account pending approval"
	DetailAccountRevoked     = "Account has been revoked"
)

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the registration request body. The created account stays
// pending until an admin approves it.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	BranchID string `json:"branch_id"`
}

// Login exchanges member credentials for a token pair. A 401 here means the
// credentials or account status were rejected, not that a session expired,
// so the OnUnauthorized hook is suppressed.
func (c *Client) Login(ctx context.Context, creds Credentials) (domain.TokenPair, error) {
	var pair domain.TokenPair
	if err := c.do(ctx, "POST", "/auth/login", nil, creds, &pair, true); err != nil {
		return domain.TokenPair{}, err
	}
	return pair, nil
}

// AdminLogin exchanges admin credentials for a token pair.
func (c *Client) AdminLogin(ctx context.Context, creds Credentials) (domain.TokenPair, error) {
	var pair domain.TokenPair
	if err := c.do(ctx, "POST", "/admin/login", nil, creds, &pair, true); err != nil {
		return domain.TokenPair{}, err
	}
	return pair, nil
}

// Me fetches the current member profile.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// AdminMe fetches the current admin profile.
func (c *Client) AdminMe(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.get(ctx, "/admin/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Signup registers a new member account. The caller is not authenticated by
// a successful signup.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, "POST", "/auth/signup", nil, req, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout invalidates the current token server-side. The OnUnauthorized hook
// is suppressed: a 401 here just means the token was already dead.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, "POST", "/auth/logout", nil, nil, nil, true)
}

// AdminLogout invalidates the current admin token server-side.
func (c *Client) AdminLogout(ctx context.Context) error {
	return c.do(ctx, "POST", "/admin/logout", nil, nil, nil, true)
}

// Branches lists church branches for the signup form.
func (c *Client) Branches(ctx context.Context) ([]domain.Branch, error) {
	var branches []domain.Branch
	if err := c.get(ctx, "/branches", nil, &branches); err != nil {
		return nil, err
	}
	return branches, nil
}
