package ui

import (
	"fmt"
	"strconv"
	"strings"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"

	"wfc-portal/internal/domain"
	"wfc-portal/internal/listctl"
)

type dashboardPageData struct {
	Session  *domain.Session
	Stats    *domain.DashboardStats
	Activity []domain.ActivityEntry
}

func dashboardPage(d dashboardPageData) Node {
	statCards := []Node{
		statCard("Total members", strconv.Itoa(d.Stats.TotalUsers), "users"),
		statCard("Pending approval", strconv.Itoa(d.Stats.PendingUsers), "user-plus"),
		statCard("Approved", strconv.Itoa(d.Stats.ApprovedUsers), "user-check"),
		statCard("Revoked", strconv.Itoa(d.Stats.RevokedUsers), "user-x"),
		statCard("Sermons", strconv.Itoa(d.Stats.TotalSermons), "book-open"),
	}

	var activityNode Node = emptyStateCard("No recent activity.")
	if len(d.Activity) > 0 {
		rows := make([]Node, 0, len(d.Activity))
		for _, e := range d.Activity {
			detail := e.Detail
			if detail == "" {
				detail = "-"
			}
			rows = append(rows, Tr(
				Td(Text(e.Action)),
				Td(Text(e.Actor)),
				Td(Text(detail)),
				Td(Text(formatTime(e.Timestamp))),
			))
		}
		activityNode = Div(
			Class(cardClass("table-wrap")),
			H2(Class("f4 mb-2"), Text("Recent activity")),
			Table(Class("data-table"),
				THead(Tr(Th(Text("Action")), Th(Text("Actor")), Th(Text("Detail")), Th(Text("When")))),
				TBody(Group(rows)),
			),
		)
	}

	return appPage(adminShell("Dashboard", "dashboard", d.Session),
		Div(Class("stat-grid d-flex flex-wrap gap-2 mb-3"), Group(statCards)),
		activityNode,
	)
}

func statCard(label, value, icon string) Node {
	return Div(
		Class(cardClass("stat-card flex-1")),
		I(Class("nav-icon"), Attr("data-lucide", icon), Attr("aria-hidden", "true")),
		P(Class("f2 mb-0"), Text(value)),
		P(Class(mutedClass()), Text(label)),
	)
}

type usersPageData struct {
	Session   *domain.Session
	Users     []domain.User
	Query     listctl.ListQuery
	Selection *listctl.Selection
	Branches  []domain.Branch
	Page      domain.Pagination
	Flash     string
	CSRF      Node
}

func usersPage(d usersPageData) Node {
	shell := adminShell("Users", "users", d.Session)
	shell.Flash = d.Flash

	var tableNode Node = emptyStateCard("No users match the current filters.")
	if len(d.Users) > 0 {
		tableNode = usersTable(d)
	}

	return appPage(shell,
		usersFilterCard(d),
		tableNode,
		paginationCard("/admin/users", d.Query.Values(), d.Page),
	)
}

func usersFilterCard(d usersPageData) Node {
	statusOptions := []Node{Option(Value(""), Text("All statuses"))}
	for _, s := range []domain.UserStatus{domain.StatusPending, domain.StatusApproved, domain.StatusRevoked} {
		opt := Option(Value(string(s)), Text(string(s)))
		if string(s) == d.Query.Status {
			opt = Option(Value(string(s)), Selected(), Text(string(s)))
		}
		statusOptions = append(statusOptions, opt)
	}

	branchOptions := []Node{Option(Value(""), Text("All branches"))}
	for _, b := range d.Branches {
		opt := Option(Value(b.ID), Text(b.Name))
		if b.ID == d.Query.Branch {
			opt = Option(Value(b.ID), Selected(), Text(b.Name))
		}
		branchOptions = append(branchOptions, opt)
	}

	return Div(
		Class(cardClass("toolbar")),
		Form(
			Method("get"),
			Action("/admin/users"),
			Class("d-flex flex-wrap flex-items-center gap-2"),
			Input(Type("search"), Name("search"), Class("form-control"), Placeholder("Search by name or email"), Value(d.Query.Search)),
			Select(Name("status"), Class("form-select"), Group(statusOptions)),
			Select(Name("branch"), Class("form-select"), Group(branchOptions)),
			Input(Type("hidden"), Name("sort_by"), Value(d.Query.SortField)),
			Input(Type("hidden"), Name("sort_order"), Value(d.Query.SortOrder)),
			Button(Type("submit"), Class("btn"), Text("Filter")),
		),
	)
}

func usersTable(d usersPageData) Node {
	rows := make([]Node, 0, len(d.Users))
	for _, u := range d.Users {
		checkbox := Input(Type("checkbox"), Name("user_ids"), Value(u.ID), Class("row-check"))
		if d.Selection != nil && d.Selection.Has(u.ID) {
			checkbox = Input(Type("checkbox"), Name("user_ids"), Value(u.ID), Class("row-check"), Checked())
		}
		rows = append(rows, Tr(
			Td(checkbox),
			Td(A(Href("/admin/users/"+u.ID), Text(u.DisplayName()))),
			Td(Text(u.Email)),
			Td(statusLabel(u.Status)),
			Td(Text(branchOrDash(u.Branch))),
			Td(Text(formatTime(u.CreatedAt))),
			Td(rowActions(u)),
		))
	}

	header := Tr(
		Th(Input(Type("checkbox"), ID("select-all"), Attr("aria-label", "Select all on this page"))),
		sortHeader(d.Query, "full_name", "Name"),
		sortHeader(d.Query, "email", "Email"),
		sortHeader(d.Query, "status", "Status"),
		Th(Text("Branch")),
		sortHeader(d.Query, "created_at", "Joined"),
		Th(Text("Actions")),
	)

	return Form(
		Method("post"),
		Action("/admin/users/confirm"),
		d.CSRF,
		Input(Type("hidden"), Name("return"), Value(listURL("/admin/users", d.Query))),
		Div(
			Class(cardClass("toolbar d-flex flex-items-center gap-2")),
			Button(Type("submit"), Name("action"), Value(string(listctl.ActionBulkApprove)), Class("btn btn-primary btn-sm"), Text("Approve selected")),
			Button(Type("submit"), Name("action"), Value(string(listctl.ActionBulkReject)), Class("btn btn-danger btn-sm"), Text("Reject selected")),
		),
		Div(
			Class(cardClass("table-wrap")),
			Table(Class("data-table"), THead(header), TBody(Group(rows))),
		),
		selectAllScript(),
	)
}

// rowActions offers the single-user mutations that make sense for the row's
// current status.
func rowActions(u domain.User) Node {
	buttons := []Node{}
	switch u.Status {
	case domain.StatusPending:
		buttons = append(buttons,
			actionButton(listctl.ActionApprove, u.ID, "Approve", "btn btn-sm btn-primary"),
			actionButton(listctl.ActionReject, u.ID, "Reject", "btn btn-sm btn-danger"),
		)
	case domain.StatusApproved:
		buttons = append(buttons, actionButton(listctl.ActionRevoke, u.ID, "Revoke", "btn btn-sm btn-danger"))
	case domain.StatusRevoked:
		buttons = append(buttons, actionButton(listctl.ActionApprove, u.ID, "Approve", "btn btn-sm"))
	}
	return Div(Class("d-flex gap-1"), Group(buttons))
}

// actionButton targets one user regardless of the surrounding form's
// checkbox state by carrying the ID in the button value as "action:id".
func actionButton(action listctl.ActionType, id, label, class string) Node {
	return Button(
		Type("submit"),
		Name("single"),
		Value(string(action)+":"+id),
		Class(class),
		Text(label),
	)
}

func sortHeader(q listctl.ListQuery, field, label string) Node {
	order := "asc"
	marker := ""
	if q.SortField == field {
		if q.SortOrder == "asc" {
			order = "desc"
			marker = " ▲"
		} else {
			marker = " ▼"
		}
	}
	return Th(A(Href(listURL("/admin/users", q.WithSort(field, order))), Text(label+marker)))
}

func listURL(basePath string, q listctl.ListQuery) string {
	if enc := q.Values().Encode(); enc != "" {
		return basePath + "?" + enc
	}
	return basePath
}

func selectAllScript() Node {
	return Script(Raw(`(function(){var all=document.getElementById('select-all');if(!all){return;}all.addEventListener('change',function(){document.querySelectorAll('input.row-check').forEach(function(c){c.checked=all.checked;});});})();`))
}

func branchOrDash(branch string) string {
	if strings.TrimSpace(branch) == "" {
		return "-"
	}
	return branch
}

type pendingPageData struct {
	Session *domain.Session
	Users   []domain.User
	Page    domain.Pagination
	Flash   string
	CSRF    Node
}

func pendingPage(d pendingPageData) Node {
	shell := adminShell("Pending Approvals", "pending", d.Session)
	shell.Flash = d.Flash

	var tableNode Node = emptyStateCard("No registrations waiting for review.")
	if len(d.Users) > 0 {
		rows := make([]Node, 0, len(d.Users))
		for _, u := range d.Users {
			filter := strings.ToLower(u.DisplayName() + " " + u.Email)
			rows = append(rows, Tr(
				data.Show(containsExpr(filter)),
				Td(Input(Type("checkbox"), Name("user_ids"), Value(u.ID), Class("row-check"))),
				Td(A(Href("/admin/users/"+u.ID), Text(u.DisplayName()))),
				Td(Text(u.Email)),
				Td(Text(branchOrDash(u.Branch))),
				Td(Text(formatTime(u.CreatedAt))),
				Td(Div(Class("d-flex gap-1"),
					actionButton(listctl.ActionApprove, u.ID, "Approve", "btn btn-sm btn-primary"),
					actionButton(listctl.ActionReject, u.ID, "Reject", "btn btn-sm btn-danger"),
				)),
			))
		}
		tableNode = Div(
			Class(cardClass("table-wrap")),
			Table(Class("data-table"),
				THead(Tr(
					Th(Input(Type("checkbox"), ID("select-all"), Attr("aria-label", "Select all on this page"))),
					Th(Text("Name")), Th(Text("Email")), Th(Text("Branch")), Th(Text("Registered")), Th(Text("Actions")),
				)),
				TBody(Group(rows)),
			),
		)
	}

	return appPage(shell,
		quickFilterCard("Filter by name or email"),
		Form(
			Method("post"),
			Action("/admin/users/confirm"),
			d.CSRF,
			Input(Type("hidden"), Name("return"), Value("/admin/pending")),
			Div(
				Class(cardClass("toolbar d-flex flex-items-center gap-2")),
				Button(Type("submit"), Name("action"), Value(string(listctl.ActionBulkApprove)), Class("btn btn-primary btn-sm"), Text("Approve selected")),
				Button(Type("submit"), Name("action"), Value(string(listctl.ActionBulkReject)), Class("btn btn-danger btn-sm"), Text("Reject selected")),
			),
			tableNode,
			selectAllScript(),
		),
		paginationCard("/admin/pending", nil, d.Page),
	)
}

// quickFilterCard narrows the rendered rows client-side without a round
// trip, on top of the server-side pagination.
func quickFilterCard(placeholder string) Node {
	return Div(
		Class(cardClass("toolbar")),
		data.Signals(map[string]any{"q": ""}),
		Div(
			Class("d-flex flex-items-center gap-2 flex-1"),
			Label(Class("sr-only"), Text("Quick filter")),
			Input(Type("search"), Class("form-control"), Placeholder(placeholder), data.Bind("q"), AutoComplete("off")),
		),
	)
}

func containsExpr(value string) string {
	return "$q === '' || " + strconv.Quote(strings.ToLower(value)) + ".includes($q.toLowerCase())"
}

type confirmPageData struct {
	Session *domain.Session
	Action  listctl.PendingAction
	Users   []domain.User
	Return  string
	Error   string
	CSRF    Node
}

func confirmActionPage(d confirmPageData) Node {
	verb := d.Action.Type.Label()

	var subject string
	if len(d.Users) == 1 {
		subject = d.Users[0].DisplayName()
	} else {
		subject = fmt.Sprintf("%d selected users", len(d.Users))
	}

	names := make([]Node, 0, len(d.Users))
	for _, u := range d.Users {
		names = append(names, Li(Text(u.DisplayName()+" ("+u.Email+")")))
	}

	hidden := []Node{
		d.CSRF,
		Input(Type("hidden"), Name("action"), Value(string(d.Action.Type))),
		Input(Type("hidden"), Name("return"), Value(d.Return)),
	}
	for _, id := range d.Action.TargetIDs {
		hidden = append(hidden, Input(Type("hidden"), Name("user_ids"), Value(id)))
	}

	content := []Node{
		H2(Class("f3 mb-2"), Text(verb+" "+subject+"?")),
		P(Class(mutedClass()), Text("This changes who can sign in to the member portal.")),
		Ul(Class("mb-3"), Group(names)),
	}
	if d.Error != "" {
		content = append(content, Div(Class("flash flash-error mb-3"), Text(d.Error)))
	}
	content = append(content,
		Form(
			Method("post"),
			Action("/admin/users/execute"),
			Class("d-flex gap-2"),
			Group(hidden),
			Button(Type("submit"), Class("btn btn-primary"), Text("Confirm")),
			A(Href(d.Return), Class("btn"), Text("Cancel")),
		),
	)

	return appPage(adminShell("Confirm action", "users", d.Session),
		Div(Class(cardClass()), Group(content)),
	)
}

type userDetailPageData struct {
	Session *domain.Session
	User    *domain.User
	CSRF    Node
}

func userDetailPage(d userDetailPageData) Node {
	u := d.User
	return appPage(adminShell(u.DisplayName(), "users", d.Session),
		Div(
			Class(cardClass()),
			Table(Class("data-table"),
				TBody(
					Tr(Th(Text("Email")), Td(Text(u.Email))),
					Tr(Th(Text("Status")), Td(statusLabel(u.Status))),
					Tr(Th(Text("Role")), Td(Text(string(u.Role)))),
					Tr(Th(Text("Branch")), Td(Text(branchOrDash(u.Branch)))),
					Tr(Th(Text("Joined")), Td(Text(formatTime(u.CreatedAt)))),
				),
			),
		),
		Form(
			Method("post"),
			Action("/admin/users/confirm"),
			d.CSRF,
			Input(Type("hidden"), Name("return"), Value("/admin/users/"+u.ID)),
			Div(Class("d-flex gap-2"), rowActions(*u)),
		),
		P(A(Href("/admin/users"), Text("Back to users"))),
	)
}
