package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// emailPart excludes every whitespace character a browser's \s matches, not
// only the ASCII ones covered by RE2's \s.
const emailPart = `[^\t\n\x{000B}\f\r\p{Zs}\x{2028}\x{2029}\x{FEFF}@]+`

// emailRegex is the single email rule shared by the contact form, the
// validator tag and the HTTP handler. It is not an RFC validator.
var emailRegex = regexp.MustCompile(`^` + emailPart + `@` + emailPart + `\.` + emailPart + `$`)

const (
	MinNameLength    = 2
	MinMessageLength = 10
)

// FieldKind identifies a contact form field.
type FieldKind string

const (
	FieldName    FieldKind = "name"
	FieldEmail   FieldKind = "email"
	FieldMessage FieldKind = "message"
)

// Reason is the machine-readable cause of a failed field check.
type Reason string

const (
	ReasonEmpty    Reason = "EMPTY"
	ReasonFormat   Reason = "FORMAT"
	ReasonTooShort Reason = "TOO_SHORT"
)

// FieldResult is the outcome of validating one field.
type FieldResult struct {
	Field   FieldKind
	Valid   bool
	Reason  Reason
	Message string
}

// IsValidEmail reports whether s has the shape local@domain.tld.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// ValidateField checks a single form field. The value is trimmed first.
func ValidateField(kind FieldKind, value string) FieldResult {
	value = strings.TrimSpace(value)

	switch kind {
	case FieldEmail:
		if value == "" {
			return fail(kind, ReasonEmpty, "Email is required")
		}
		if !IsValidEmail(value) {
			return fail(kind, ReasonFormat, "Please enter a valid email address")
		}
	case FieldName:
		if value == "" {
			return fail(kind, ReasonEmpty, "Name is required")
		}
		if utf8.RuneCountInString(value) < MinNameLength {
			return fail(kind, ReasonTooShort, "Name must be at least 2 characters long")
		}
	case FieldMessage:
		if value == "" {
			return fail(kind, ReasonEmpty, "Message is required")
		}
		if utf8.RuneCountInString(value) < MinMessageLength {
			return fail(kind, ReasonTooShort, "Message must be at least 10 characters long")
		}
	}

	return FieldResult{Field: kind, Valid: true}
}

// ValidateSubmission validates the whole form and returns only the failures,
// in form order. An empty result means the form may be submitted.
func ValidateSubmission(name, email, message string) []FieldResult {
	var failures []FieldResult
	for _, r := range []FieldResult{
		ValidateField(FieldName, name),
		ValidateField(FieldEmail, email),
		ValidateField(FieldMessage, message),
	} {
		if !r.Valid {
			failures = append(failures, r)
		}
	}
	return failures
}

func fail(kind FieldKind, reason Reason, message string) FieldResult {
	return FieldResult{Field: kind, Reason: reason, Message: message}
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("contact_email", ContactEmail)
}

// ContactEmail applies IsValidEmail to a string field. Empty values pass so
// that presence stays the job of the required tag.
func ContactEmail(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return IsValidEmail(val)
}
