// Package session is the single source of truth for who is logged in and
// whether they are allowed in. A Store is created per request scope (web) or
// per invocation (CLI), initialized from durable token storage, and disposed
// with the request. No global session state exists.
package session

import (
	"wfc-portal/internal/domain"
)

// Storage keys for the persisted credential set. The web portal maps these
// to cookies, the CLI to profile fields.
const (
	KeyAccessToken  = "wfc_access_token"
	KeyRefreshToken = "wfc_refresh_token"
	KeyUserProfile  = "wfc_user"

	KeyAdminAccessToken  = "wfc_admin_access_token"
	KeyAdminRefreshToken = "wfc_admin_refresh_token"
	KeyAdminUserProfile  = "wfc_admin_user"
)

// TokenStorage is the durable credential store shared by the session store
// and the HTTP gateway. Writes must be visible to subsequent reads within
// the same request scope.
type TokenStorage interface {
	// AccessToken satisfies backend.TokenProvider: the gateway reads the
	// bearer token for outbound requests directly from storage.
	AccessToken() (string, bool)

	Tokens() (domain.TokenPair, bool)
	StoreTokens(pair domain.TokenPair) error

	Profile() (*domain.User, bool)
	StoreProfile(user *domain.User) error

	// Clear removes the token pair and cached profile. Clearing empty
	// storage is a no-op.
	Clear() error
}

// MemoryStorage is an in-memory TokenStorage for tests and short-lived CLI
// operations.
type MemoryStorage struct {
	pair    domain.TokenPair
	profile *domain.User
}

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// AccessToken implements backend.TokenProvider.
func (m *MemoryStorage) AccessToken() (string, bool) {
	return m.pair.AccessToken, m.pair.AccessToken != ""
}

// Tokens returns the held token pair.
func (m *MemoryStorage) Tokens() (domain.TokenPair, bool) {
	return m.pair, !m.pair.Empty()
}

// StoreTokens replaces the held token pair.
func (m *MemoryStorage) StoreTokens(pair domain.TokenPair) error {
	m.pair = pair
	return nil
}

// Profile returns the cached user profile.
func (m *MemoryStorage) Profile() (*domain.User, bool) {
	return m.profile, m.profile != nil
}

// StoreProfile replaces the cached user profile.
func (m *MemoryStorage) StoreProfile(user *domain.User) error {
	m.profile = user
	return nil
}

// Clear drops all held credentials.
func (m *MemoryStorage) Clear() error {
	m.pair = domain.TokenPair{}
	m.profile = nil
	return nil
}
