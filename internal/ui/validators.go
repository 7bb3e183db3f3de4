package ui

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const passwordSpecials = "!@#$%^&*"

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// passwordError returns the first unmet password rule, or "" when the
// password is acceptable. The rules mirror what the backend enforces so
// members see the problem before a round trip.
func passwordError(password string) string {
	switch {
	case len(password) < 8:
		return "Password must be at least 8 characters"
	case !strings.ContainsFunc(password, func(c rune) bool { return c >= 'A' && c <= 'Z' }):
		return "Password must contain an uppercase letter"
	case !strings.ContainsFunc(password, func(c rune) bool { return c >= 'a' && c <= 'z' }):
		return "Password must contain a lowercase letter"
	case !strings.ContainsFunc(password, func(c rune) bool { return c >= '0' && c <= '9' }):
		return "Password must contain a number"
	case !strings.ContainsAny(password, passwordSpecials):
		return "Password must contain a special character (" + passwordSpecials + ")"
	}
	return ""
}

type signupForm struct {
	Email           string
	Password        string
	ConfirmPassword string
	FullName        string
	BranchID        string
}

// validate returns per-field messages for everything wrong with the form.
func (f signupForm) validate() map[string]string {
	errs := map[string]string{}
	if f.FullName == "" {
		errs["full_name"] = "Full name is required"
	}
	if f.Email == "" {
		errs["email"] = "Email is required"
	} else if !validEmail(f.Email) {
		errs["email"] = "Enter a valid email address"
	}
	if f.Password == "" {
		errs["password"] = "Password is required"
	} else if msg := passwordError(f.Password); msg != "" {
		errs["password"] = msg
	}
	if f.ConfirmPassword != f.Password {
		errs["confirm_password"] = "Passwords do not match"
	}
	if f.BranchID == "" {
		errs["branch_id"] = "Select your branch"
	}
	return errs
}
