// Package validate checks user-supplied form fields before a request is sent.
// Every check is short-circuiting: the first failing rule is the one reported.
package validate

import (
	"regexp"
	"strings"
)

// Error is a client-side validation failure. Message is meant to be shown
// next to the originating form as-is.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	versionPattern = regexp.MustCompile(`^\d+(\.\d+)*$`)
	emailPattern   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Messages reported by the validators.
const (
	MsgRequirementsEmpty = "Please enter your requirements.txt content"
	MsgPackageEmpty      = "Please enter a package name"
	MsgVersionEmpty      = "Please enter the current version"
	MsgVersionFormat     = "Invalid version format. Use semantic versioning (e.g., 2.31.0)"
	MsgNameEmpty         = "Please enter your name"
	MsgEmailEmpty        = "Please enter your email"
	MsgEmailFormat       = "Please enter a valid email address"
	MsgMessageEmpty      = "Please enter your message"
)

func fail(field, msg string) *Error {
	return &Error{Field: field, Message: msg}
}

// Requirements checks the manifest text of the analyze form.
func Requirements(requirements string) error {
	if strings.TrimSpace(requirements) == "" {
		return fail("requirements", MsgRequirementsEmpty)
	}
	return nil
}

// Version checks a version string is digits separated by single dots.
func Version(version string) error {
	version = strings.TrimSpace(version)
	if version == "" {
		return fail("version", MsgVersionEmpty)
	}
	if !versionPattern.MatchString(version) {
		return fail("version", MsgVersionFormat)
	}
	return nil
}

// Email checks an address has the local@domain.tld shape.
func Email(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fail("email", MsgEmailEmpty)
	}
	if !emailPattern.MatchString(email) {
		return fail("email", MsgEmailFormat)
	}
	return nil
}

// Package checks the single-package form.
func Package(name, version string) error {
	if strings.TrimSpace(name) == "" {
		return fail("package", MsgPackageEmpty)
	}
	return Version(version)
}

// Feedback checks the feedback form.
func Feedback(name, email, message string) error {
	if strings.TrimSpace(name) == "" {
		return fail("name", MsgNameEmpty)
	}
	if err := Email(email); err != nil {
		return err
	}
	if strings.TrimSpace(message) == "" {
		return fail("message", MsgMessageEmpty)
	}
	return nil
}
