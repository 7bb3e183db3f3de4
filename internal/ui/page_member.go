package ui

import (
	"net/url"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"wfc-portal/internal/domain"
)

func memberHomePage(sess *domain.Session) Node {
	return appPage(memberShell("Welcome, "+sess.DisplayName, "home", sess),
		Div(
			Class(cardClass()),
			H2(Class("f4 mb-2"), Text("Sermons")),
			P(Class(mutedClass()), Text("Watch recent sermons and browse the archive by category.")),
			A(Href("/sermons"), Class("btn btn-primary"), Text("Browse sermons")),
		),
	)
}

type sermonsPageData struct {
	Session    *domain.Session
	Sermons    []domain.Sermon
	Categories []domain.SermonCategory
	Search     string
	Category   string
	Pagination domain.Pagination
	BaseValues url.Values
}

func sermonsPage(d sermonsPageData) Node {
	categoryOptions := []Node{Option(Value(""), Text("All categories"))}
	for _, c := range d.Categories {
		opt := Option(Value(c.ID), Text(c.Name))
		if c.ID == d.Category {
			opt = Option(Value(c.ID), Selected(), Text(c.Name))
		}
		categoryOptions = append(categoryOptions, opt)
	}

	filterCard := Div(
		Class(cardClass("toolbar")),
		Form(
			Method("get"),
			Action("/sermons"),
			Class("d-flex flex-wrap flex-items-center gap-2"),
			Input(Type("search"), Name("search"), Class("form-control"), Placeholder("Search sermons"), Value(d.Search)),
			Select(Name("category"), Class("form-select"), Group(categoryOptions)),
			Button(Type("submit"), Class("btn"), Text("Filter")),
		),
	)

	var listNode Node = emptyStateCard("No sermons found.")
	if len(d.Sermons) > 0 {
		cards := make([]Node, 0, len(d.Sermons))
		for _, s := range d.Sermons {
			meta := s.Speaker
			if s.Category != "" {
				meta += " | " + s.Category
			}
			body := []Node{
				H3(Class("f4 mb-1"), Text(s.Title)),
				P(Class(mutedClass()), Text(meta+" | "+formatTime(s.PreachedAt))),
			}
			if s.Description != "" {
				body = append(body, P(Class("mb-2"), Text(s.Description)))
			}
			if s.VideoURL != "" {
				body = append(body, A(Href(s.VideoURL), Class("btn btn-sm"), Target("_blank"), Rel("noopener"), Text("Watch")))
			}
			cards = append(cards, Div(Class(cardClass("sermon-card")), Group(body)))
		}
		listNode = Group(cards)
	}

	return appPage(memberShell("Sermons", "sermons", d.Session),
		filterCard,
		listNode,
		paginationCard("/sermons", d.BaseValues, d.Pagination),
	)
}
