package ui

import (
	"errors"
	"net/http"

	"wfc-portal/internal/backend"
	"wfc-portal/internal/domain"
)

func sermonParams(page int, search, category string) backend.SermonParams {
	return backend.SermonParams{
		Page:     page,
		Limit:    domain.DefaultPageSize,
		Search:   search,
		Category: category,
	}
}

// renderBackendError maps a gateway failure to the right page. An expired
// session redirects to the surface's login; the 401 hook has already
// expired the credential cookies on this response.
func (h *Handler) renderBackendError(w http.ResponseWriter, r *http.Request, err error, loginPath string) {
	if backend.IsUnauthorized(err) {
		http.Redirect(w, r, loginPath, http.StatusSeeOther)
		return
	}

	status := http.StatusBadGateway
	title := "Something Went Wrong"
	if backend.IsUnreachable(err) {
		title = "Service Unavailable"
		status = http.StatusServiceUnavailable
	}
	var ae *backend.APIError
	if errors.As(err, &ae) {
		switch ae.StatusCode {
		case http.StatusNotFound:
			status = http.StatusNotFound
			title = "Not Found"
		case http.StatusForbidden:
			status = http.StatusForbidden
			title = "Access Denied"
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			status = http.StatusBadRequest
			title = "Invalid Request"
		case http.StatusConflict:
			status = http.StatusConflict
			title = "Conflict"
		}
	}

	h.Logger.Error("backend request failed", "path", r.URL.Path, "error", err)
	renderHTML(w, status, errorPage(title, backend.Message(err), backHrefFor(loginPath)))
}

func backHrefFor(loginPath string) string {
	if loginPath == "/admin/login" {
		return "/admin"
	}
	return "/"
}
