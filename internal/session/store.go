package session

import (
	"context"
	"errors"

	"wfc-portal/internal/backend"
	"wfc-portal/internal/domain"
)

// Scope selects which portal surface a store authenticates against. Member
// and admin sessions use separate backend endpoints and separate cookies.
type Scope int

const (
	ScopeMember Scope = iota
	ScopeAdmin
)

// Outcome classifies a login failure so the UI can route it: invalid
// credentials stay on the login form, account-status failures go to the
// approval/status page.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeInvalidCredentials
	OutcomePendingApproval
	OutcomeRevoked
	OutcomeFailed
)

// Result is the normalized outcome of a store operation. Operations never
// return raw transport errors to the UI layer.
type Result struct {
	Success bool
	Error   string
	Outcome Outcome
	// Fields holds per-field server validation messages (422 signup
	// errors), keyed by field name.
	Fields map[string]string
}

// Store owns the Session for one request scope. Lifecycle:
// New -> Initialize -> (Login/Signup/Logout/queries) -> discarded with the
// request.
type Store struct {
	client  *backend.Client
	storage TokenStorage
	scope   Scope

	current       *domain.Session
	authenticated bool
	initialized   bool
}

// New wires a store to the gateway and a token storage. The returned store's
// gateway clone reads bearer tokens from the storage and clears it when any
// request through it is answered with 401.
func New(client *backend.Client, storage TokenStorage, scope Scope) *Store {
	s := &Store{storage: storage, scope: scope}
	bound := client.WithTokens(storage)
	bound.OnUnauthorized = s.clearLocal
	s.client = bound
	return s
}

// Client exposes the token-bound gateway for callers that make further
// backend requests on behalf of this session (list queries, mutations).
func (s *Store) Client() *backend.Client {
	return s.client
}

// Initialize resolves the persisted credentials into a live Session. With no
// persisted token the store stays anonymous. A token that the backend no
// longer accepts is cleared along with the cached profile.
func (s *Store) Initialize(ctx context.Context) {
	defer func() { s.initialized = true }()

	pair, ok := s.storage.Tokens()
	if !ok || pair.Empty() {
		s.current = nil
		s.authenticated = false
		return
	}

	user, err := s.fetchProfile(ctx)
	if err != nil {
		// Expired or invalid token: drop every persisted credential and
		// reset to anonymous. The 401 hook has already cleared storage;
		// clearing again is harmless and covers non-401 failures too.
		s.clearLocal()
		return
	}

	_ = s.storage.StoreProfile(user)
	s.current = domain.SessionFromUser(user)
	s.authenticated = true
}

// Login authenticates, persists the returned token pair, and populates the
// Session from a fresh profile fetch. Never returns an error to the caller;
// every failure is folded into the Result.
func (s *Store) Login(ctx context.Context, creds backend.Credentials) Result {
	pair, err := s.login(ctx, creds)
	if err != nil {
		return classifyLoginError(err)
	}

	if err := s.storage.StoreTokens(pair); err != nil {
		return Result{Error: backend.GenericErrorMessage, Outcome: OutcomeFailed}
	}

	user, err := s.fetchProfile(ctx)
	if err != nil {
		// Half-authenticated state is worse than none: drop the freshly
		// stored tokens and report failure.
		s.clearLocal()
		return Result{Error: backend.Message(err), Outcome: OutcomeFailed}
	}

	_ = s.storage.StoreProfile(user)
	s.current = domain.SessionFromUser(user)
	s.authenticated = true
	return Result{Success: true, Outcome: OutcomeOK}
}

// Signup registers a new account. It does not authenticate the caller.
func (s *Store) Signup(ctx context.Context, req backend.SignupRequest) Result {
	_, err := s.client.Signup(ctx, req)
	if err != nil {
		res := Result{Error: backend.Message(err), Outcome: OutcomeFailed}
		var ae *backend.APIError
		if errors.As(err, &ae) && len(ae.Fields) > 0 {
			res.Fields = ae.Fields
		}
		return res
	}
	return Result{Success: true, Outcome: OutcomeOK}
}

// Logout invalidates the token server-side on a best-effort basis, then
// unconditionally clears the local session. Safe to call with no session.
func (s *Store) Logout(ctx context.Context) {
	if pair, ok := s.storage.Tokens(); ok && !pair.Empty() {
		switch s.scope {
		case ScopeAdmin:
			_ = s.client.AdminLogout(ctx)
		default:
			_ = s.client.Logout(ctx)
		}
	}
	s.clearLocal()
}

// Current returns the live session, if any.
func (s *Store) Current() (*domain.Session, bool) {
	return s.current, s.authenticated && s.current != nil
}

// IsAuthenticated reports whether a backend-accepted token is held.
func (s *Store) IsAuthenticated() bool {
	return s.authenticated
}

// IsApproved reports whether the current session's account is approved.
func (s *Store) IsApproved() bool {
	return s.current.IsApproved()
}

// Initialized reports whether Initialize has completed for this store.
func (s *Store) Initialized() bool {
	return s.initialized
}

func (s *Store) login(ctx context.Context, creds backend.Credentials) (domain.TokenPair, error) {
	if s.scope == ScopeAdmin {
		return s.client.AdminLogin(ctx, creds)
	}
	return s.client.Login(ctx, creds)
}

func (s *Store) fetchProfile(ctx context.Context) (*domain.User, error) {
	if s.scope == ScopeAdmin {
		return s.client.AdminMe(ctx)
	}
	return s.client.Me(ctx)
}

// clearLocal resets to anonymous without touching the backend. Registered as
// the gateway's 401 hook, so it must never issue a request itself.
func (s *Store) clearLocal() {
	_ = s.storage.Clear()
	s.current = nil
	s.authenticated = false
}

// classifyLoginError maps a login failure to its distinct user-visible
// outcome based on the backend detail message.
func classifyLoginError(err error) Result {
	msg := backend.Message(err)
	if backend.IsUnreachable(err) {
		return Result{Error: msg, Outcome: OutcomeFailed}
	}
	switch msg {
	case backend.DetailPendingApproval:
		return Result{Error: msg, Outcome: OutcomePendingApproval}
	case backend.DetailAccountRevoked:
		return Result{Error: msg, Outcome: OutcomeRevoked}
	case backend.DetailInvalidCredentials:
		return Result{Error: msg, Outcome: OutcomeInvalidCredentials}
	default:
		return Result{Error: msg, Outcome: OutcomeFailed}
	}
}
