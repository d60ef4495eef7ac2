// Package validation provides input validation producing per-field message lists.
package validation

import (
	"regexp"
	"unicode/utf8"
)

// Length limits count characters, not bytes.
const (
	maxNameLen     = 255
	maxTitleLen    = 255
	maxCategoryLen = 255
	minContentLen  = 10
	minPasswordLen = 6
	maxEmailLen    = 254
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Errors maps a field name to the list of human-readable messages for it.
type Errors map[string][]string

// Add appends a message for the given field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Any reports whether any field has messages.
func (e Errors) Any() bool {
	return len(e) > 0
}

// ValidEmail reports whether email has a plausible mailbox format.
func ValidEmail(email string) bool {
	return len(email) <= maxEmailLen && emailRegex.MatchString(email)
}

// Registration validates the register request fields. Email uniqueness is a
// storage concern and is checked by the auth service.
func Registration(name, email, password, passwordConfirmation string) Errors {
	errs := Errors{}

	if name == "" {
		errs.Add("name", "Name is required")
	} else if utf8.RuneCountInString(name) > maxNameLen {
		errs.Add("name", "Name is too long")
	}

	validateEmail(errs, email)
	validatePassword(errs, password)
	if password != "" && password != passwordConfirmation {
		errs.Add("password", "Password confirmation does not match")
	}

	return errs
}

// Credentials validates the login request fields.
func Credentials(email, password string) Errors {
	errs := Errors{}
	validateEmail(errs, email)
	validatePassword(errs, password)
	return errs
}

// PostFields validates title, category and content for post create/update.
func PostFields(title, category, content string) Errors {
	errs := Errors{}

	if title == "" {
		errs.Add("title", "Title is required")
	} else if utf8.RuneCountInString(title) > maxTitleLen {
		errs.Add("title", "Title is too long")
	}

	if category == "" {
		errs.Add("category", "Category is required")
	} else if utf8.RuneCountInString(category) > maxCategoryLen {
		errs.Add("category", "Category is too long")
	}

	if content == "" {
		errs.Add("content", "Content is required")
	} else if utf8.RuneCountInString(content) < minContentLen {
		errs.Add("content", "Content is too short")
	}

	return errs
}

func validateEmail(errs Errors, email string) {
	if email == "" {
		errs.Add("email", "Email is required")
		return
	}
	if !ValidEmail(email) {
		errs.Add("email", "Email must be a valid email address")
	}
}

func validatePassword(errs Errors, password string) {
	if password == "" {
		errs.Add("password", "Password is required")
		return
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		errs.Add("password", "Password must be at least 6 characters")
	}
}
