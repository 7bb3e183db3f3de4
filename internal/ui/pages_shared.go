package ui

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"wfc-portal/internal/domain"
)

type navItem struct {
	Label string
	Href  string
	Key   string
	Icon  string
}

var memberNavItems = []navItem{
	{Label: "Home", Href: "/", Key: "home", Icon: "house"},
	{Label: "Sermons", Href: "/sermons", Key: "sermons", Icon: "book-open"},
}

var adminNavItems = []navItem{
	{Label: "Dashboard", Href: "/admin", Key: "dashboard", Icon: "layout-dashboard"},
	{Label: "Users", Href: "/admin/users", Key: "users", Icon: "users"},
	{Label: "Pending Approvals", Href: "/admin/pending", Key: "pending", Icon: "user-check"},
}

type pageShell struct {
	Title      string
	Active     string
	Session    *domain.Session
	Nav        []navItem
	Brand      string
	Tagline    string
	LogoutPath string
	Flash      string
}

func memberShell(title, active string, sess *domain.Session) pageShell {
	return pageShell{
		Title:      title,
		Active:     active,
		Session:    sess,
		Nav:        memberNavItems,
		Brand:      "WFC Portal",
		Tagline:    "Word of Faith Church member portal",
		LogoutPath: "/logout",
	}
}

func adminShell(title, active string, sess *domain.Session) pageShell {
	return pageShell{
		Title:      title,
		Active:     active,
		Session:    sess,
		Nav:        adminNavItems,
		Brand:      "WFC Admin",
		Tagline:    "Member administration",
		LogoutPath: "/admin/logout",
	}
}

func appPage(shell pageShell, body ...Node) Node {
	nav := make([]Node, 0, len(shell.Nav))
	for _, item := range shell.Nav {
		className := "app-nav-link Link--secondary d-flex flex-items-center"
		if item.Key == shell.Active {
			className += " active"
		}
		nav = append(nav, A(
			Href(item.Href),
			Class(className),
			I(Class("nav-icon"), Attr("data-lucide", item.Icon), Attr("aria-hidden", "true")),
			Span(Text(item.Label)),
		))
	}

	who := "unknown"
	if shell.Session != nil && shell.Session.DisplayName != "" {
		who = shell.Session.DisplayName
	}

	flash := Node(nil)
	if shell.Flash != "" {
		flash = Div(Class("flash flash-success mb-3"), Text(shell.Flash))
	}

	return HTML(
		Lang("en"),
		Attr("data-color-mode", "auto"),
		Attr("data-light-theme", "light"),
		Attr("data-dark-theme", "dark"),
		pageHead(shell.Title+" | "+shell.Brand),
		Body(
			Main(Class("app-shell"),
				Aside(
					Class("app-sidebar"),
					Div(
						Class("brand"),
						Strong(Text(shell.Brand)),
						P(Class("color-fg-muted text-small mb-0"), Text(shell.Tagline)),
					),
					Nav(Class("app-nav"), Group(nav)),
				),
				Section(
					Class("app-main"),
					Div(
						Class("topbar"),
						Div(
							H1(Class("page-title"), Text(shell.Title)),
						),
						Div(
							P(Class("color-fg-muted text-small mb-2"), Text("Signed in as "+who)),
							Form(
								Method("post"),
								Action(shell.LogoutPath),
								Button(Type("submit"), Class("btn btn-sm"), Text("Sign out")),
							),
						),
					),
					Div(Class("content"), flash, Group(body)),
				),
			),
			Script(Raw("if (window.lucide) { window.lucide.createIcons(); }")),
		),
	)
}

// authPage is the minimal centered shell for login, signup, and the account
// status page, rendered outside any authenticated layout.
func authPage(title string, body ...Node) Node {
	return HTML(
		Lang("en"),
		pageHead(title+" | WFC Portal"),
		Body(
			Class("login-body"),
			Main(Class("login-wrap"), Group(body)),
		),
	)
}

func pageHead(title string) Node {
	return Head(
		Meta(Charset("utf-8")),
		Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
		TitleEl(Text(title)),
		Link(Rel("icon"), Href("data:,")),
		Link(Rel("preconnect"), Href("https://fonts.googleapis.com")),
		Link(Rel("preconnect"), Href("https://fonts.gstatic.com"), Attr("crossorigin", "")),
		Link(Rel("stylesheet"), Href("https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600;700&display=swap")),
		Link(Rel("stylesheet"), Href("https://cdn.jsdelivr.net/npm/@primer/css@22.1.0/dist/primer.min.css")),
		Link(Rel("stylesheet"), Href("/static/app.css")),
		Script(Src("https://unpkg.com/lucide@latest/dist/umd/lucide.min.js")),
		Script(
			Type("module"),
			Src("https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.7/bundles/datastar.js"),
		),
	)
}

func errorPage(title, message, backHref string) Node {
	if backHref == "" {
		backHref = "/"
	}
	return HTML(
		Lang("en"),
		pageHead(title+" | WFC Portal"),
		Body(
			Main(
				Class("layout"),
				H1(Class("page-title"), Text(title)),
				P(Text(message)),
				P(A(Href(backHref), Text("Go back"))),
			),
		),
	)
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format("Jan 2, 2006")
}

func statusLabel(status domain.UserStatus) Node {
	tone := "secondary"
	switch status {
	case domain.StatusApproved:
		tone = "success"
	case domain.StatusPending:
		tone = "attention"
	case domain.StatusRevoked:
		tone = "danger"
	}
	return Span(Class("Label Label--"+tone), Text(string(status)))
}

func cardClass(extra ...string) string {
	out := "Box p-3 mb-3 card"
	for _, e := range extra {
		out += " " + e
	}
	return out
}

func mutedClass() string {
	return "color-fg-muted text-small"
}

func emptyStateCard(message string) Node {
	return Div(
		Class(cardClass("blankslate")),
		P(Class("color-fg-muted mb-2"), Text(message)),
	)
}

// paginationCard renders prev/next links around a result summary. The base
// values carry the full filter and sort state so page moves preserve it.
func paginationCard(basePath string, base url.Values, p domain.Pagination) Node {
	summary := fmt.Sprintf("Page %d of %d (%d total)", p.Page, max(p.TotalPages, 1), p.Total)

	links := []Node{}
	if p.HasPrev() {
		links = append(links, A(Href(pageURL(basePath, base, p.Page-1)), Class("btn btn-sm"), Text("Previous")))
	}
	if p.HasNext() {
		links = append(links, A(Href(pageURL(basePath, base, p.Page+1)), Class("btn btn-sm"), Text("Next")))
	}

	return Div(
		Class(cardClass()),
		Div(
			Class("d-flex flex-justify-between flex-items-center"),
			P(Class(mutedClass()), Text(summary)),
			Div(Class("d-flex gap-2"), Group(links)),
		),
	)
}

func pageURL(basePath string, base url.Values, page int) string {
	v := url.Values{}
	for k, vals := range base {
		v[k] = vals
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	} else {
		v.Del("page")
	}
	if enc := v.Encode(); enc != "" {
		return basePath + "?" + enc
	}
	return basePath
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
