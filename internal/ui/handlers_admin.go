package ui

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"wfc-portal/internal/backend"
	"wfc-portal/internal/domain"
	"wfc-portal/internal/guard"
	"wfc-portal/internal/listctl"
)

func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	store, ok := guard.StoreFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}
	client := store.Client()

	var (
		stats    *domain.DashboardStats
		activity []domain.ActivityEntry
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		stats, err = client.DashboardStats(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		activity, err = client.RecentActivity(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.renderBackendError(w, r, err, "/admin/login")
		return
	}

	renderHTML(w, http.StatusOK, dashboardPage(dashboardPageData{
		Session:  sessionFromContext(r),
		Stats:    stats,
		Activity: activity,
	}))
}

func (h *Handler) AdminUsersList(w http.ResponseWriter, r *http.Request) {
	store, ok := guard.StoreFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}
	client := store.Client()

	query := listctl.ParseQuery(r.URL.Query())
	page, err := h.Lists.Users(r.Context(), client, query)
	if err != nil {
		h.renderBackendError(w, r, err, "/admin/login")
		return
	}

	branches, err := client.Branches(r.Context())
	if err != nil {
		h.Logger.Warn("listing branches failed", "error", err)
	}

	renderHTML(w, http.StatusOK, usersPage(usersPageData{
		Session:   sessionFromContext(r),
		Users:     page.Users,
		Query:     query,
		Selection: listctl.NewSelection(),
		Branches:  branches,
		Page:      page.Pagination,
		Flash:     r.URL.Query().Get("notice"),
		CSRF:      csrfField(r),
	}))
}

func (h *Handler) AdminPendingList(w http.ResponseWriter, r *http.Request) {
	store, ok := guard.StoreFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	pageNum := 1
	if n, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		pageNum = domain.ClampPage(n)
	}
	page, err := h.Lists.Pending(r.Context(), store.Client(), pageNum, domain.DefaultPageSize)
	if err != nil {
		h.renderBackendError(w, r, err, "/admin/login")
		return
	}

	renderHTML(w, http.StatusOK, pendingPage(pendingPageData{
		Session: sessionFromContext(r),
		Users:   page.Users,
		Page:    page.Pagination,
		Flash:   r.URL.Query().Get("notice"),
		CSRF:    csrfField(r),
	}))
}

func (h *Handler) AdminUserDetail(w http.ResponseWriter, r *http.Request) {
	store, ok := guard.StoreFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	user, err := h.Lists.User(r.Context(), store.Client(), chi.URLParam(r, "userID"))
	if err != nil {
		h.renderBackendError(w, r, err, "/admin/login")
		return
	}

	renderHTML(w, http.StatusOK, userDetailPage(userDetailPageData{
		Session: sessionFromContext(r),
		User:    user,
		CSRF:    csrfField(r),
	}))
}

// AdminConfirmAction turns a submitted list form into a pending action and
// renders the confirmation page. Nothing is mutated here; the action only
// executes after the admin confirms.
func (h *Handler) AdminConfirmAction(w http.ResponseWriter, r *http.Request) {
	store, ok := guard.StoreFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}

	action, returnTo, err := pendingActionFromForm(r.Form)
	if err != nil {
		http.Redirect(w, r, appendNotice(returnTo, err.Error()), http.StatusSeeOther)
		return
	}

	users := make([]domain.User, 0, len(action.TargetIDs))
	for _, id := range action.TargetIDs {
		u, err := h.Lists.User(r.Context(), store.Client(), id)
		if err != nil {
			h.renderBackendError(w, r, err, "/admin/login")
			return
		}
		users = append(users, *u)
	}

	renderHTML(w, http.StatusOK, confirmActionPage(confirmPageData{
		Session: sessionFromContext(r),
		Action:  action,
		Users:   users,
		Return:  returnTo,
		CSRF:    csrfField(r),
	}))
}

// AdminExecuteAction runs a confirmed action. On success it redirects back
// to the originating list, which refetches fresh data exactly once; the
// selection is not carried on the redirect, so it starts out empty.
func (h *Handler) AdminExecuteAction(w http.ResponseWriter, r *http.Request) {
	store, ok := guard.StoreFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}

	action, returnTo, err := pendingActionFromForm(r.Form)
	if err != nil {
		http.Redirect(w, r, appendNotice(returnTo, err.Error()), http.StatusSeeOther)
		return
	}

	sel := listctl.NewSelection(action.TargetIDs...)
	_, notice, err := h.Lists.Execute(r.Context(), store.Client(), action, sel)
	if err != nil {
		h.renderExecuteError(w, r, store, action, returnTo, err)
		return
	}
	http.Redirect(w, r, appendNotice(returnTo, notice), http.StatusSeeOther)
}

// renderExecuteError re-renders the confirmation with the failure attached.
// The targets stay in the form, so the admin can retry without reselecting.
func (h *Handler) renderExecuteError(w http.ResponseWriter, r *http.Request, store sessionStore, action listctl.PendingAction, returnTo string, err error) {
	if backend.IsUnauthorized(err) {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	msg := backend.Message(err)
	if errors.Is(err, listctl.ErrActionInFlight) {
		msg = "This action is already being processed. Wait a moment and try again."
	}

	users := make([]domain.User, 0, len(action.TargetIDs))
	for _, id := range action.TargetIDs {
		if u, uerr := h.Lists.User(r.Context(), store.Client(), id); uerr == nil {
			users = append(users, *u)
		}
	}

	renderHTML(w, http.StatusConflict, confirmActionPage(confirmPageData{
		Session: sessionFromContext(r),
		Action:  action,
		Users:   users,
		Return:  returnTo,
		Error:   msg,
		CSRF:    csrfField(r),
	}))
}

type sessionStore interface {
	Client() *backend.Client
}

// pendingActionFromForm reads either a single-row action button
// ("action:id") or a bulk action with checkbox targets.
func pendingActionFromForm(form url.Values) (listctl.PendingAction, string, error) {
	returnTo := sanitizeReturn(formString(form, "return"))

	if single := formString(form, "single"); single != "" {
		kind, id, ok := strings.Cut(single, ":")
		action := listctl.ActionType(kind)
		if !ok || id == "" || !action.Valid() {
			return listctl.PendingAction{}, returnTo, errors.New("Malformed action request")
		}
		return listctl.PendingAction{Type: action, TargetIDs: []string{id}}, returnTo, nil
	}

	action := listctl.ActionType(formString(form, "action"))
	if !action.Valid() {
		return listctl.PendingAction{}, returnTo, errors.New("Unknown action")
	}
	ids := formAll(form, "user_ids")
	if len(ids) == 0 {
		return listctl.PendingAction{}, returnTo, errors.New("Select at least one user first")
	}
	return listctl.PendingAction{Type: action, TargetIDs: ids}, returnTo, nil
}

// sanitizeReturn keeps redirects on the admin surface.
func sanitizeReturn(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/admin") || strings.HasPrefix(raw, "//") {
		return "/admin/users"
	}
	return raw
}

func appendNotice(target, notice string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	q := u.Query()
	q.Set("notice", notice)
	u.RawQuery = q.Encode()
	return u.String()
}
