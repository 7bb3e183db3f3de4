package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"wfc-portal/internal/domain"
)

const cookieLifetime = 24 * time.Hour

// CookieNames fixes the cookie keys for one portal surface.
type CookieNames struct {
	AccessToken  string
	RefreshToken string
	Profile      string
}

// MemberCookies are the member portal credential cookies.
var MemberCookies = CookieNames{
	AccessToken:  KeyAccessToken,
	RefreshToken: KeyRefreshToken,
	Profile:      KeyUserProfile,
}

// AdminCookies are the admin portal credential cookies, scoped separately so
// an admin session never leaks into the member surface.
var AdminCookies = CookieNames{
	AccessToken:  KeyAdminAccessToken,
	RefreshToken: KeyAdminRefreshToken,
	Profile:      KeyAdminUserProfile,
}

// CookieStorage persists the credential set in HttpOnly cookies on one
// request/response pair. Writes are reflected immediately for reads within
// the same request.
type CookieStorage struct {
	r      *http.Request
	w      http.ResponseWriter
	names  CookieNames
	secure bool

	// request-local overrides so a login followed by a profile fetch in
	// the same request sees the fresh tokens before the browser does
	pair    *domain.TokenPair
	profile *domain.User
	cleared bool
}

// NewCookieStorage binds a storage to one request/response pair.
func NewCookieStorage(w http.ResponseWriter, r *http.Request, names CookieNames, secure bool) *CookieStorage {
	return &CookieStorage{r: r, w: w, names: names, secure: secure}
}

// AccessToken implements backend.TokenProvider.
func (c *CookieStorage) AccessToken() (string, bool) {
	pair, ok := c.Tokens()
	if !ok {
		return "", false
	}
	return pair.AccessToken, true
}

// Tokens returns the persisted token pair.
func (c *CookieStorage) Tokens() (domain.TokenPair, bool) {
	if c.cleared {
		return domain.TokenPair{}, false
	}
	if c.pair != nil {
		return *c.pair, !c.pair.Empty()
	}
	pair := domain.TokenPair{
		AccessToken:  c.readCookie(c.names.AccessToken),
		RefreshToken: c.readCookie(c.names.RefreshToken),
	}
	return pair, !pair.Empty()
}

// StoreTokens persists the token pair as cookies.
func (c *CookieStorage) StoreTokens(pair domain.TokenPair) error {
	c.cleared = false
	c.pair = &pair
	c.setCookie(c.names.AccessToken, pair.AccessToken)
	c.setCookie(c.names.RefreshToken, pair.RefreshToken)
	return nil
}

// Profile returns the cached profile cookie, if readable.
func (c *CookieStorage) Profile() (*domain.User, bool) {
	if c.cleared {
		return nil, false
	}
	if c.profile != nil {
		return c.profile, true
	}
	raw := c.readCookie(c.names.Profile)
	if raw == "" {
		return nil, false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil, false
	}
	var user domain.User
	if err := json.Unmarshal(decoded, &user); err != nil {
		return nil, false
	}
	return &user, true
}

// StoreProfile caches the profile as a cookie-safe base64 JSON blob.
func (c *CookieStorage) StoreProfile(user *domain.User) error {
	c.profile = user
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	c.setCookie(c.names.Profile, base64.RawURLEncoding.EncodeToString(payload))
	return nil
}

// Clear expires all credential cookies.
func (c *CookieStorage) Clear() error {
	c.cleared = true
	c.pair = nil
	c.profile = nil
	for _, name := range []string{c.names.AccessToken, c.names.RefreshToken, c.names.Profile} {
		http.SetCookie(c.w, &http.Cookie{
			Name:     name,
			Path:     "/",
			HttpOnly: true,
			Secure:   c.secure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
	}
	return nil
}

func (c *CookieStorage) readCookie(name string) string {
	cookie, err := c.r.Cookie(name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}

func (c *CookieStorage) setCookie(name, value string) {
	http.SetCookie(c.w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(cookieLifetime),
	})
}
