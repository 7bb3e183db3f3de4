package ui

import (
	"net/http"

	"wfc-portal/internal/backend"
	"wfc-portal/internal/domain"
	"wfc-portal/internal/session"
)

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	store := h.Member.StoreFor(w, r)
	store.Initialize(r.Context())
	if store.IsAuthenticated() && store.IsApproved() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	renderHTML(w, http.StatusOK, loginPage(loginPageData{
		Title:     "WFC Portal",
		Action:    "/login",
		SignupURL: "/signup",
		CSRF:      csrfField(r),
	}))
}

func (h *Handler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	store := h.Member.StoreFor(w, r)
	store.Initialize(r.Context())

	email := formString(r.Form, "email")
	res := store.Login(r.Context(), backend.Credentials{
		Email:    email,
		Password: formString(r.Form, "password"),
	})

	switch res.Outcome {
	case session.OutcomeOK:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case session.OutcomePendingApproval:
		http.Redirect(w, r, "/approval?state=pending", http.StatusSeeOther)
	case session.OutcomeRevoked:
		http.Redirect(w, r, "/approval?state=revoked", http.StatusSeeOther)
	default:
		renderHTML(w, http.StatusUnprocessableEntity, loginPage(loginPageData{
			Title:     "WFC Portal",
			Action:    "/login",
			SignupURL: "/signup",
			Error:     res.Error,
			Email:     email,
			CSRF:      csrfField(r),
		}))
	}
}

func (h *Handler) SignupPage(w http.ResponseWriter, r *http.Request) {
	renderHTML(w, http.StatusOK, signupPage(signupPageData{
		Branches: h.branches(r),
		CSRF:     csrfField(r),
	}))
}

func (h *Handler) SignupSubmit(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	form := signupForm{
		Email:           formString(r.Form, "email"),
		Password:        formString(r.Form, "password"),
		ConfirmPassword: formString(r.Form, "confirm_password"),
		FullName:        formString(r.Form, "full_name"),
		BranchID:        formString(r.Form, "branch_id"),
	}

	if fieldErrors := form.validate(); len(fieldErrors) > 0 {
		renderHTML(w, http.StatusUnprocessableEntity, signupPage(signupPageData{
			Form:        form,
			FieldErrors: fieldErrors,
			Branches:    h.branches(r),
			CSRF:        csrfField(r),
		}))
		return
	}

	store := h.Member.StoreFor(w, r)
	res := store.Signup(r.Context(), backend.SignupRequest{
		Email:    form.Email,
		Password: form.Password,
		FullName: form.FullName,
		BranchID: form.BranchID,
	})
	if !res.Success {
		renderHTML(w, http.StatusUnprocessableEntity, signupPage(signupPageData{
			Form:        form,
			FieldErrors: res.Fields,
			Error:       res.Error,
			Branches:    h.branches(r),
			CSRF:        csrfField(r),
		}))
		return
	}
	http.Redirect(w, r, "/approval?state=registered", http.StatusSeeOther)
}

func (h *Handler) ApprovalPage(w http.ResponseWriter, r *http.Request) {
	d := approvalPageData{
		Heading: "Account pending approval",
		Message: "Your account is waiting for an administrator to approve it. Please check back later.",
	}
	switch r.URL.Query().Get("state") {
	case "registered":
		d.Heading = "Registration received"
		d.Message = "Thanks for signing up. An administrator will review your registration; you can sign in once it is approved."
	case "revoked":
		d.Heading = "Account access revoked"
		d.Message = "Your access to the portal has been revoked. Contact a church administrator if you believe this is a mistake."
		d.Revoked = true
	}
	renderHTML(w, http.StatusOK, approvalPage(d))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	store := h.Member.StoreFor(w, r)
	store.Initialize(r.Context())
	store.Logout(r.Context())
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// branches is best-effort: signup still works with an empty dropdown when
// the backend cannot list branches.
func (h *Handler) branches(r *http.Request) []domain.Branch {
	branches, err := h.Member.Client.Branches(r.Context())
	if err != nil {
		h.Logger.Warn("listing branches failed", "error", err)
		return nil
	}
	return branches
}

func (h *Handler) AdminLoginPage(w http.ResponseWriter, r *http.Request) {
	store := h.Admin.StoreFor(w, r)
	store.Initialize(r.Context())
	if sess, ok := store.Current(); ok && sess.IsApproved() && sess.IsAdmin() {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	renderHTML(w, http.StatusOK, loginPage(loginPageData{
		Title:  "WFC Admin",
		Action: "/admin/login",
		CSRF:   csrfField(r),
	}))
}

func (h *Handler) AdminLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	store := h.Admin.StoreFor(w, r)
	store.Initialize(r.Context())

	email := formString(r.Form, "email")
	res := store.Login(r.Context(), backend.Credentials{
		Email:    email,
		Password: formString(r.Form, "password"),
	})
	if res.Outcome == session.OutcomeOK {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	renderHTML(w, http.StatusUnprocessableEntity, loginPage(loginPageData{
		Title:  "WFC Admin",
		Action: "/admin/login",
		Error:  res.Error,
		Email:  email,
		CSRF:   csrfField(r),
	}))
}

func (h *Handler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	store := h.Admin.StoreFor(w, r)
	store.Initialize(r.Context())
	store.Logout(r.Context())
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}
