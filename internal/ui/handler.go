// Package ui renders the server-side pages of both portal surfaces and
// handles their form submissions. Member pages live under /, admin pages
// under /admin; each surface carries its own session cookies and guard.
package ui

import (
	"log/slog"
	"net/http"

	gomponents "maragu.dev/gomponents"

	"wfc-portal/internal/domain"
	"wfc-portal/internal/guard"
	"wfc-portal/internal/listctl"
)

type Handler struct {
	Member     *guard.Guard
	Admin      *guard.Guard
	Lists      *listctl.Controller
	Production bool
	Logger     *slog.Logger
}

func NewHandler(member, admin *guard.Guard, lists *listctl.Controller, production bool, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Member:     member,
		Admin:      admin,
		Lists:      lists,
		Production: production,
		Logger:     logger,
	}
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}

// sessionFromContext returns the session the guard injected. Protected
// handlers can rely on it being present; the zero session keeps error paths
// from dereferencing nil.
func sessionFromContext(r *http.Request) *domain.Session {
	if sess, ok := domain.SessionFromContext(r.Context()); ok {
		return sess
	}
	return &domain.Session{DisplayName: "unknown"}
}
