package ui

import (
	"net/http"
	"net/url"
	"strconv"

	"wfc-portal/internal/domain"
	"wfc-portal/internal/guard"
)

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	renderHTML(w, http.StatusOK, memberHomePage(sessionFromContext(r)))
}

func (h *Handler) SermonsList(w http.ResponseWriter, r *http.Request) {
	store, ok := guard.StoreFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	client := store.Client()

	query := r.URL.Query()
	page := 1
	if n, err := strconv.Atoi(query.Get("page")); err == nil {
		page = domain.ClampPage(n)
	}
	search := query.Get("search")
	category := query.Get("category")

	result, err := client.Sermons(r.Context(), sermonParams(page, search, category))
	if err != nil {
		h.renderBackendError(w, r, err, "/login")
		return
	}

	// Category load failures degrade to an empty filter dropdown.
	categories, err := client.SermonCategories(r.Context())
	if err != nil {
		h.Logger.Warn("listing sermon categories failed", "error", err)
	}

	base := url.Values{}
	if search != "" {
		base.Set("search", search)
	}
	if category != "" {
		base.Set("category", category)
	}

	renderHTML(w, http.StatusOK, sermonsPage(sermonsPageData{
		Session:    sessionFromContext(r),
		Sermons:    result.Sermons,
		Categories: categories,
		Search:     search,
		Category:   category,
		Pagination: result.Pagination,
		BaseValues: base,
	}))
}
