package ui

import (
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"wfc-portal/internal/domain"
)

type loginPageData struct {
	Title     string
	Action    string
	Error     string
	Email     string
	SignupURL string
	CSRF      Node
}

func loginPage(d loginPageData) Node {
	content := []Node{
		H1(Text(d.Title)),
		P(Class(mutedClass()), Text("Sign in with your email and password.")),
	}
	if d.Error != "" {
		content = append(content, Div(Class("flash flash-error mb-3"), Text(d.Error)))
	}
	content = append(content,
		Form(
			Method("post"),
			Action(d.Action),
			Class("login-form"),
			d.CSRF,
			Label(For("email"), Text("Email")),
			Input(Type("email"), ID("email"), Name("email"), Value(d.Email), Required(), AutoComplete("email")),
			Label(For("password"), Text("Password")),
			Input(Type("password"), ID("password"), Name("password"), Required(), AutoComplete("current-password")),
			Button(Type("submit"), Class("btn btn-primary"), Text("Sign In")),
		),
	)
	if d.SignupURL != "" {
		content = append(content, P(Class(mutedClass()),
			Text("New here? "),
			A(Href(d.SignupURL), Text("Create an account")),
		))
	}
	return authPage(d.Title, content...)
}

type signupPageData struct {
	Form        signupForm
	FieldErrors map[string]string
	Error       string
	Branches    []domain.Branch
	CSRF        Node
}

func signupPage(d signupPageData) Node {
	content := []Node{
		H1(Text("Create your account")),
		P(Class(mutedClass()), Text("Your registration is reviewed by an administrator before you can sign in.")),
	}
	if d.Error != "" {
		content = append(content, Div(Class("flash flash-error mb-3"), Text(d.Error)))
	}

	branchOptions := []Node{Option(Value(""), Text("Select a branch"))}
	for _, b := range d.Branches {
		opt := Option(Value(b.ID), Text(b.Name))
		if b.ID == d.Form.BranchID {
			opt = Option(Value(b.ID), Selected(), Text(b.Name))
		}
		branchOptions = append(branchOptions, opt)
	}

	content = append(content,
		Form(
			Method("post"),
			Action("/signup"),
			Class("login-form"),
			d.CSRF,
			fieldRow("Full name", "full_name", d.FieldErrors,
				Input(Type("text"), ID("full_name"), Name("full_name"), Value(d.Form.FullName), Required())),
			fieldRow("Email", "email", d.FieldErrors,
				Input(Type("email"), ID("email"), Name("email"), Value(d.Form.Email), Required())),
			fieldRow("Password", "password", d.FieldErrors,
				Input(Type("password"), ID("password"), Name("password"), Required(), AutoComplete("new-password"))),
			fieldRow("Confirm password", "confirm_password", d.FieldErrors,
				Input(Type("password"), ID("confirm_password"), Name("confirm_password"), Required(), AutoComplete("new-password"))),
			fieldRow("Branch", "branch_id", d.FieldErrors,
				Select(ID("branch_id"), Name("branch_id"), Group(branchOptions))),
			Button(Type("submit"), Class("btn btn-primary"), Text("Sign Up")),
		),
		P(Class(mutedClass()),
			Text("Already registered? "),
			A(Href("/login"), Text("Sign in")),
		),
	)
	return authPage("Sign up", content...)
}

func fieldRow(label, name string, fieldErrors map[string]string, input Node) Node {
	nodes := []Node{
		Label(For(name), Text(label)),
		input,
	}
	if msg := fieldErrors[name]; msg != "" {
		nodes = append(nodes, P(Class("field-error color-fg-danger text-small"), Text(msg)))
	}
	return Div(Class("form-group"), Group(nodes))
}

type approvalPageData struct {
	Heading string
	Message string
	Revoked bool
}

func approvalPage(d approvalPageData) Node {
	icon := "hourglass"
	if d.Revoked {
		icon = "circle-slash"
	}
	return authPage("Account status",
		I(Class("status-icon"), Attr("data-lucide", icon), Attr("aria-hidden", "true")),
		H1(Text(d.Heading)),
		P(Text(d.Message)),
		P(A(Href("/login"), Class("btn"), Text("Back to sign in"))),
		Script(Raw("if (window.lucide) { window.lucide.createIcons(); }")),
	)
}
