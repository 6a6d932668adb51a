package domain

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/david021dp/salon-booking/pkg/types"
)

// ErrValidation is the sentinel every ValidationError unwraps to
var ErrValidation = errors.New("domain: validation failed")

var (
	namePattern       = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	phonePattern      = regexp.MustCompile(`^\+?[0-9]\d{6,14}$`)
	phoneStripPattern = regexp.MustCompile(`[\s\-\(\)]`)
)

// FieldViolation single invalid field
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every violation of one request
type ValidationError struct {
	Violations []FieldViolation
}

// Add records a violation
func (e *ValidationError) Add(field, message string) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Message: message})
}

// Err returns nil when nothing was recorded
func (e *ValidationError) Err() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ValidatePersonName checks a first or last name
func ValidatePersonName(v *ValidationError, field, value string) {
	switch {
	case strings.TrimSpace(value) == "":
		v.Add(field, "is required")
	case len(value) > MaxNameLength:
		v.Add(field, fmt.Sprintf("must be at most %d characters", MaxNameLength))
	case !namePattern.MatchString(value):
		v.Add(field, "contains invalid characters")
	}
}

// NormalizePhone strips spaces, dashes and parentheses
func NormalizePhone(phone string) string {
	return phoneStripPattern.ReplaceAllString(phone, "")
}

// ValidatePhone checks an optional phone number; nil and empty are accepted
func ValidatePhone(v *ValidationError, field string, phone *string) {
	if phone == nil || *phone == "" {
		return
	}
	if !phonePattern.MatchString(NormalizePhone(*phone)) {
		v.Add(field, "invalid phone number format")
	}
}

// ValidateEmail checks a required e-mail address
func ValidateEmail(v *ValidationError, field, email string) {
	switch {
	case email == "":
		v.Add(field, "is required")
	case len(email) > MaxEmailLength:
		v.Add(field, fmt.Sprintf("must be at most %d characters", MaxEmailLength))
	default:
		if _, err := mail.ParseAddress(email); err != nil {
			v.Add(field, "invalid email format")
		}
	}
}

// ValidateNotes checks optional free text notes
func ValidateNotes(v *ValidationError, field string, notes *string) {
	if notes != nil && len(*notes) > MaxNotesLength {
		v.Add(field, fmt.Sprintf("must be at most %d characters", MaxNotesLength))
	}
}

// ValidateWindow checks the duration bounds of an appointment and that it ends by closing time.
// Violations are reported on serviceIds (duration comes from services) and startTime.
func ValidateWindow(v *ValidationError, start types.TimeString, duration int) {
	switch {
	case duration < MinDurationMinutes || duration > MaxDurationMinutes:
		v.Add("serviceIds", fmt.Sprintf("total duration must be between %d and %d minutes",
			MinDurationMinutes, MaxDurationMinutes))
	case !FitsBusinessDay(start, duration):
		v.Add("startTime", fmt.Sprintf("appointment must end by %s", ClosingTime))
	}
}
