package ui

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"wfc-portal/internal/ui/assets"
)

// MountRoutes attaches both portal surfaces to the router. Every route runs
// under the CSRF middlewares; protected groups additionally run the
// surface's guard.
func MountRoutes(r chi.Router, h *Handler) {
	r.Use(h.EnsureCSRFToken)
	r.Use(h.RequireCSRF)

	if staticFS, err := fs.Sub(assets.StaticFS(), "static"); err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	// Member surface.
	r.Get("/login", h.LoginPage)
	r.Post("/login", h.LoginSubmit)
	r.Get("/signup", h.SignupPage)
	r.Post("/signup", h.SignupSubmit)
	r.Get("/approval", h.ApprovalPage)
	r.Post("/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(h.Member.Protect)
		r.Get("/", h.Home)
		r.Get("/sermons", h.SermonsList)
	})

	// Admin surface.
	r.Route("/admin", func(r chi.Router) {
		r.Get("/login", h.AdminLoginPage)
		r.Post("/login", h.AdminLoginSubmit)
		r.Post("/logout", h.AdminLogout)

		r.Group(func(r chi.Router) {
			r.Use(h.Admin.Protect)
			r.Get("/", h.AdminDashboard)
			r.Get("/users", h.AdminUsersList)
			r.Get("/pending", h.AdminPendingList)
			r.Get("/users/{userID}", h.AdminUserDetail)
			r.Post("/users/confirm", h.AdminConfirmAction)
			r.Post("/users/execute", h.AdminExecuteAction)
		})
	})
}
