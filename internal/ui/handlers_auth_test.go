package ui

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wfc-portal/internal/backend"
	"wfc-portal/internal/domain"
	"wfc-portal/internal/guard"
	"wfc-portal/internal/listctl"
	"wfc-portal/internal/session"
)

func newTestApp(t *testing.T, backendFn http.HandlerFunc) http.Handler {
	t.Helper()
	srv := httptest.NewServer(backendFn)
	t.Cleanup(srv.Close)
	client := backend.New(srv.URL, 0)

	member := &guard.Guard{
		Client:       client,
		Scope:        session.ScopeMember,
		Cookies:      session.MemberCookies,
		LoginPath:    "/login",
		ApprovalPath: "/approval",
	}
	admin := &guard.Guard{
		Client:       client,
		Scope:        session.ScopeAdmin,
		Cookies:      session.AdminCookies,
		LoginPath:    "/admin/login",
		ApprovalPath: "/admin/login",
		RequireRole:  domain.RoleAdmin,
	}
	h := NewHandler(member, admin, listctl.NewController(), false,
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := chi.NewRouter()
	MountRoutes(r, h)
	return r
}

func postForm(target string, form url.Values, cookies ...*http.Cookie) *http.Request {
	form.Set("csrf_token", "tok")
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "tok"})
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func memberUserJSON(status string) string {
	return `{"id":"u1","email":"alice@example.com","full_name":"Alice","status":"` + status + `","role":"member"}`
}

func TestLoginSubmit_SuccessStoresCookiesAndRedirectsHome(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			w.Write([]byte(`{"access_token":"at","refresh_token":"rt"}`))
		case "/auth/me":
			w.Write([]byte(memberUserJSON("approved")))
		default:
			t.Errorf("unexpected backend call %s", r.URL.Path)
		}
	})

	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, postForm("/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"Str0ng!pass"},
	}))

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	byName := map[string]string{}
	for _, c := range rr.Result().Cookies() {
		byName[c.Name] = c.Value
	}
	assert.Equal(t, "at", byName[session.KeyAccessToken])
	assert.Equal(t, "rt", byName[session.KeyRefreshToken])
}

func TestLoginSubmit_InvalidCredentialsStaysOnForm(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Invalid email or password"}`))
	})

	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, postForm("/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"wrong"},
	}))

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid email or password")
	assert.Contains(t, rr.Body.String(), "alice@example.com", "submitted email should be preserved")
}

func TestLoginSubmit_AccountStatusRoutesToApproval(t *testing.T) {
	tests := []struct {
		name   string
		detail string
		want   string
	}{
		{"pending account", "Account pending approval", "/approval?state=pending"},
		{"revoked account", "Account has been revoked", "/approval?state=revoked"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"detail":"` + tt.detail + `"}`))
			})

			rr := httptest.NewRecorder()
			app.ServeHTTP(rr, postForm("/login", url.Values{
				"email":    {"alice@example.com"},
				"password": {"Str0ng!pass"},
			}))

			require.Equal(t, http.StatusSeeOther, rr.Code)
			assert.Equal(t, tt.want, rr.Header().Get("Location"))
		})
	}
}

func TestSignupSubmit_LocalValidationSkipsBackend(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/signup" {
			t.Error("signup must not reach the backend when local validation fails")
		}
		w.Write([]byte(`[]`))
	})

	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, postForm("/signup", url.Values{
		"full_name":        {"Alice"},
		"email":            {"alice@example.com"},
		"password":         {"Str0ng!pass"},
		"confirm_password": {"other"},
		"branch_id":        {"b1"},
	}))

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "Passwords do not match")
}

func TestSignupSubmit_SuccessRedirectsToStatusPage(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/signup":
			assert.Empty(t, r.Header.Get("Authorization"))
			w.Write([]byte(memberUserJSON("pending")))
		case "/branches":
			w.Write([]byte(`[{"id":"b1","name":"Downtown"}]`))
		}
	})

	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, postForm("/signup", url.Values{
		"full_name":        {"Alice"},
		"email":            {"alice@example.com"},
		"password":         {"Str0ng!pass"},
		"confirm_password": {"Str0ng!pass"},
		"branch_id":        {"b1"},
	}))

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/approval?state=registered", rr.Header().Get("Location"))
}

func TestSignupSubmit_ServerFieldErrorsRendered(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/signup":
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"detail":[{"loc":["body","email"],"msg":"Email already registered"}]}`))
		case "/branches":
			w.Write([]byte(`[]`))
		}
	})

	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, postForm("/signup", url.Values{
		"full_name":        {"Alice"},
		"email":            {"alice@example.com"},
		"password":         {"Str0ng!pass"},
		"confirm_password": {"Str0ng!pass"},
		"branch_id":        {"b1"},
	}))

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "Email already registered")
}

func TestLogout_ClearsCookiesAndRedirects(t *testing.T) {
	logoutCalls := 0
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/me":
			w.Write([]byte(memberUserJSON("approved")))
		case "/auth/logout":
			logoutCalls++
		}
	})

	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, postForm("/logout", url.Values{},
		&http.Cookie{Name: session.KeyAccessToken, Value: "at"}))

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
	assert.Equal(t, 1, logoutCalls)

	expired := 0
	for _, c := range rr.Result().Cookies() {
		if c.MaxAge < 0 {
			expired++
		}
	}
	assert.GreaterOrEqual(t, expired, 3, "credential cookies must be expired")
}

func TestSermons_RequiresAuthentication(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no backend call expected, got %s", r.URL.Path)
	})

	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sermons", nil))

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestSermons_RendersForApprovedMember(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/me":
			w.Write([]byte(memberUserJSON("approved")))
		case "/sermons":
			assert.Equal(t, "faith", r.URL.Query().Get("search"))
			w.Write([]byte(`{"sermons":[{"id":"s1","title":"Walking in Faith","speaker":"Pastor John"}],"pagination":{"page":1,"limit":20,"total":1,"total_pages":1}}`))
		case "/sermon-categories":
			w.Write([]byte(`[{"id":"c1","name":"Faith"}]`))
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/sermons?search=faith", nil)
	req.AddCookie(&http.Cookie{Name: session.KeyAccessToken, Value: "at"})
	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Walking in Faith")
	assert.Contains(t, rr.Body.String(), "Pastor John")
}
