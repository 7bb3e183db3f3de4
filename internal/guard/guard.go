// Package guard decides, per navigation, whether the session state permits
// rendering a protected view or must redirect. The decision is a three-state
// machine: LOADING while session initialization has not completed, DENIED
// with a reason (not authenticated, or authenticated but not approved), and
// ALLOWED.
package guard

import (
	"context"
	"log/slog"
	"net/http"

	"wfc-portal/internal/backend"
	"wfc-portal/internal/domain"
	"wfc-portal/internal/session"
)

// State is the route guard decision state.
type State int

const (
	StateLoading State = iota
	StateDenied
	StateAllowed
)

// DenyReason refines a DENIED decision. Revoked accounts deny the same way
// pending ones do; the distinct revoked message surfaces through the login
// error path instead.
type DenyReason int

const (
	DenyNone DenyReason = iota
	DenyNotAuthenticated
	DenyNotApproved
)

// Decision is the outcome of evaluating a session against the guard.
type Decision struct {
	State   State
	Reason  DenyReason
	Session *domain.Session
}

// Evaluate maps the current session store state to a routing decision. Pure
// with respect to the store: no network calls, no mutation.
func Evaluate(store *session.Store) Decision {
	if !store.Initialized() {
		return Decision{State: StateLoading}
	}
	sess, ok := store.Current()
	if !ok {
		return Decision{State: StateDenied, Reason: DenyNotAuthenticated}
	}
	if !sess.IsApproved() {
		return Decision{State: StateDenied, Reason: DenyNotApproved, Session: sess}
	}
	return Decision{State: StateAllowed, Session: sess}
}

// Guard builds a per-request session store from cookies and enforces the
// decision as middleware. One Guard instance serves one portal surface.
type Guard struct {
	Client  *backend.Client
	Scope   session.Scope
	Cookies session.CookieNames
	Secure  bool

	LoginPath    string
	ApprovalPath string

	// RequireRole, when non-empty, additionally denies sessions whose
	// account carries a different role (the admin surface sets it).
	RequireRole domain.UserRole

	Logger *slog.Logger
}

// StoreFor creates the session store bound to one request/response pair.
// Handlers outside the protected group (login, signup) use it directly.
func (g *Guard) StoreFor(w http.ResponseWriter, r *http.Request) *session.Store {
	storage := session.NewCookieStorage(w, r, g.Cookies, g.Secure)
	return session.New(g.Client, storage, g.Scope)
}

// Protect initializes the session for each request, reevaluates the
// decision, and either redirects or renders the protected view with the
// session and store injected into the request context.
func (g *Guard) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store := g.StoreFor(w, r)
		store.Initialize(r.Context())

		decision := Evaluate(store)
		switch decision.State {
		case StateAllowed:
			if g.RequireRole != "" && decision.Session.Role != g.RequireRole {
				g.log(r).Warn("role denied", "path", r.URL.Path, "role", string(decision.Session.Role))
				http.Redirect(w, r, g.LoginPath, http.StatusSeeOther)
				return
			}
			ctx := domain.WithSession(r.Context(), decision.Session)
			ctx = withStore(ctx, store)
			next.ServeHTTP(w, r.WithContext(ctx))
		case StateDenied:
			if decision.Reason == DenyNotApproved {
				http.Redirect(w, r, g.ApprovalPath, http.StatusSeeOther)
				return
			}
			http.Redirect(w, r, g.LoginPath, http.StatusSeeOther)
		default:
			// Initialize always completes before Evaluate here, so a
			// LOADING decision means a programming error upstream.
			g.log(r).Error("guard evaluated before session initialization", "path", r.URL.Path)
			http.Redirect(w, r, g.LoginPath, http.StatusSeeOther)
		}
	})
}

func (g *Guard) log(r *http.Request) *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	_ = r
	return slog.Default()
}

type storeKey struct{}

func withStore(ctx context.Context, s *session.Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

// StoreFromContext returns the session store the guard bound to this
// request, for handlers that issue further backend calls on behalf of the
// session.
func StoreFromContext(ctx context.Context) (*session.Store, bool) {
	s, ok := ctx.Value(storeKey{}).(*session.Store)
	return s, ok
}
