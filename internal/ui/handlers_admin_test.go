package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wfc-portal/internal/session"
)

// adminBackendState is a scripted backend for the admin surface tests.
type adminBackendState struct {
	mu        sync.Mutex
	listCalls int
	bulkBody  string
	failBulk  bool
	meRole    string
}

func (s *adminBackendState) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		switch {
		case r.URL.Path == "/admin/me":
			role := s.meRole
			if role == "" {
				role = "admin"
			}
			w.Write([]byte(`{"id":"a1","email":"admin@example.com","full_name":"Admin","status":"approved","role":"` + role + `"}`))
		case r.URL.Path == "/users" && r.Method == http.MethodGet:
			s.listCalls++
			w.Write([]byte(`{"users":[
				{"id":"u1","email":"alice@example.com","full_name":"Alice","status":"pending","role":"member"},
				{"id":"u2","email":"bob@example.com","full_name":"Bob","status":"approved","role":"member"}
			],"pagination":{"page":1,"limit":20,"total":2,"total_pages":1}}`))
		case r.URL.Path == "/users/u1":
			w.Write([]byte(`{"id":"u1","email":"alice@example.com","full_name":"Alice","status":"pending","role":"member"}`))
		case r.URL.Path == "/users/u2":
			w.Write([]byte(`{"id":"u2","email":"bob@example.com","full_name":"Bob","status":"approved","role":"member"}`))
		case r.URL.Path == "/users/bulk-approve" || r.URL.Path == "/users/bulk-reject":
			body, _ := json.Marshal(readBody(r))
			s.bulkBody = string(body)
			if s.failBulk {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"detail":"bulk action failed"}`))
				return
			}
			if strings.HasSuffix(r.URL.Path, "approve") {
				w.Write([]byte(`{"approved_count":2}`))
			} else {
				w.Write([]byte(`{"rejected_count":2}`))
			}
		case r.URL.Path == "/users/u1/approve":
			w.WriteHeader(http.StatusOK)
		case r.URL.Path == "/branches":
			w.Write([]byte(`[{"id":"b1","name":"Downtown"}]`))
		default:
			t.Errorf("unexpected backend call %s %s", r.Method, r.URL.Path)
		}
	}
}

func readBody(r *http.Request) map[string]any {
	var out map[string]any
	_ = json.NewDecoder(r.Body).Decode(&out)
	return out
}

func adminGet(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.AddCookie(&http.Cookie{Name: session.KeyAdminAccessToken, Value: "admin-at"})
	return req
}

func adminPost(target string, form url.Values) *http.Request {
	return postForm(target, form,
		&http.Cookie{Name: session.KeyAdminAccessToken, Value: "admin-at"})
}

func TestAdminUsersList_RendersAndRefetchesPerNavigation(t *testing.T) {
	state := &adminBackendState{}
	app := newTestApp(t, state.handler(t))

	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, adminGet("/admin/users"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Alice")
	assert.Contains(t, rr.Body.String(), "bob@example.com")
	assert.Equal(t, 1, state.listCalls)

	// A second navigation fetches fresh data; nothing is cached.
	rr = httptest.NewRecorder()
	app.ServeHTTP(rr, adminGet("/admin/users?status=pending"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 2, state.listCalls)
}

func TestAdminUsersList_RequiresAdminRole(t *testing.T) {
	state := &adminBackendState{meRole: "member"}
	app := newTestApp(t, state.handler(t))

	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, adminGet("/admin/users"))

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/admin/login", rr.Header().Get("Location"))
	assert.Zero(t, state.listCalls)
}

func TestAdminUsers_ExpiredTokenRedirectsToLogin(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, adminGet("/admin/users"))

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/admin/login", rr.Header().Get("Location"))
}

func TestAdminConfirm_ShowsTargetsWithoutMutating(t *testing.T) {
	state := &adminBackendState{}
	app := newTestApp(t, state.handler(t))

	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, adminPost("/admin/users/confirm", url.Values{
		"single": {"approve:u1"},
		"return": {"/admin/users"},
	}))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Approve Alice?")
	assert.Contains(t, body, `value="u1"`)
	assert.Empty(t, state.bulkBody, "confirmation must not mutate anything")
}

func TestAdminExecute_BulkApproveRedirectsToFreshList(t *testing.T) {
	state := &adminBackendState{}
	app := newTestApp(t, state.handler(t))

	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, adminPost("/admin/users/execute", url.Values{
		"action":   {"bulk-approve"},
		"user_ids": {"u1", "u2"},
		"return":   {"/admin/users?status=pending"},
	}))

	require.Equal(t, http.StatusSeeOther, rr.Code)
	loc, err := url.Parse(rr.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/admin/users", loc.Path)
	assert.Equal(t, "pending", loc.Query().Get("status"))
	assert.Equal(t, "2 users approved", loc.Query().Get("notice"))
	assert.JSONEq(t, `{"user_ids":["u1","u2"]}`, state.bulkBody)

	// Following the redirect performs exactly one fresh list fetch with an
	// empty selection.
	assert.Zero(t, state.listCalls)
	rr = httptest.NewRecorder()
	app.ServeHTTP(rr, adminGet(loc.String()))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, state.listCalls)
	assert.NotContains(t, rr.Body.String(), ` checked>`)
	assert.Contains(t, rr.Body.String(), "2 users approved")
}

func TestAdminExecute_SingleApprove(t *testing.T) {
	state := &adminBackendState{}
	app := newTestApp(t, state.handler(t))

	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, adminPost("/admin/users/execute", url.Values{
		"single": {"approve:u1"},
		"return": {"/admin/pending"},
	}))

	require.Equal(t, http.StatusSeeOther, rr.Code)
	loc, err := url.Parse(rr.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/admin/pending", loc.Path)
	assert.Equal(t, "User approved", loc.Query().Get("notice"))
}

func TestAdminExecute_BulkFailureKeepsTargetsForRetry(t *testing.T) {
	state := &adminBackendState{failBulk: true}
	app := newTestApp(t, state.handler(t))

	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, adminPost("/admin/users/execute", url.Values{
		"action":   {"bulk-reject"},
		"user_ids": {"u1", "u2"},
		"return":   {"/admin/users"},
	}))

	require.Equal(t, http.StatusConflict, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "bulk action failed")
	assert.Contains(t, body, `value="u1"`, "targets must survive a failed bulk action")
	assert.Contains(t, body, `value="u2"`)
}

func TestAdminExecute_EmptySelectionBouncesBack(t *testing.T) {
	state := &adminBackendState{}
	app := newTestApp(t, state.handler(t))

	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, adminPost("/admin/users/execute", url.Values{
		"action": {"bulk-approve"},
		"return": {"/admin/users"},
	}))

	require.Equal(t, http.StatusSeeOther, rr.Code)
	loc, err := url.Parse(rr.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "Select at least one user first", loc.Query().Get("notice"))
}

func TestAdminExecute_RejectsOffSiteReturn(t *testing.T) {
	state := &adminBackendState{}
	app := newTestApp(t, state.handler(t))

	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, adminPost("/admin/users/execute", url.Values{
		"single": {"approve:u1"},
		"return": {"https://evil.example.com/phish"},
	}))

	require.Equal(t, http.StatusSeeOther, rr.Code)
	loc, err := url.Parse(rr.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/admin/users", loc.Path)
}

func TestAdminDashboard_AggregatesStatsAndActivity(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/me":
			w.Write([]byte(`{"id":"a1","email":"admin@example.com","full_name":"Admin","status":"approved","role":"admin"}`))
		case "/dashboard/stats":
			w.Write([]byte(`{"total_users":42,"pending_users":3,"approved_users":38,"revoked_users":1,"total_sermons":17}`))
		case "/dashboard/recent-activity":
			w.Write([]byte(`[{"id":"e1","action":"user_approved","actor":"Admin","timestamp":"2026-08-01T10:00:00Z"}]`))
		default:
			t.Errorf("unexpected backend call %s", r.URL.Path)
		}
	})

	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, adminGet("/admin"))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "42")
	assert.Contains(t, body, "user_approved")
}
