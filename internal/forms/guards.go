// Package forms declares the portal's multi-step forms as wizard
// configurations and manages their per-session instances.
package forms

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/mustakbalak/portal/internal/wizard"
)

const dateLayout = "2006-01-02"

// parseDate accepts the plain date layout plus RFC 3339 so seeded
// records and client input both decode.
func parseDate(value any) (time.Time, bool) {
	s, ok := value.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// minimumAgeGuard rejects birth dates under 18 years at change time so
// an invalid date never lands in the record.
func minimumAgeGuard(_ wizard.Fields, value any) error {
	dob, ok := parseDate(value)
	if !ok {
		return nil
	}
	cutoff := time.Now().AddDate(-18, 0, 0)
	if dob.After(cutoff) {
		return errors.New("You must be at least 18 years old to register")
	}
	return nil
}

// endDateGuard rejects an experience end date earlier than the entry's
// start date.
func endDateGuard(entry wizard.Fields, value any) error {
	end, ok := parseDate(value)
	if !ok {
		return nil
	}
	start, ok := parseDate(entry["startDate"])
	if !ok {
		return nil
	}
	if end.Before(start) {
		return errors.New("End date must be after start date")
	}
	return nil
}

// startDateGuard is the mirror check when the end date is already set.
func startDateGuard(entry wizard.Fields, value any) error {
	start, ok := parseDate(value)
	if !ok {
		return nil
	}
	end, ok := parseDate(entry["endDate"])
	if !ok {
		return nil
	}
	if start.After(end) {
		return errors.New("Start date must be before end date")
	}
	return nil
}

// validatePassword applies the signup password policy: at least eight
// characters with an uppercase letter, a lowercase letter and a digit.
func validatePassword(fields wizard.Fields) error {
	password, _ := fields["password"].(string)
	if len(password) < 8 {
		return errors.New("Password must be at least 8 characters")
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return errors.New("Password must contain uppercase, lowercase and a number")
	}
	confirm, _ := fields["confirmPassword"].(string)
	if password != confirm {
		return errors.New("Passwords must match")
	}
	return nil
}

// digitsOnly strips formatting from a phone number before it is sent.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func str(fields wizard.Fields, key string) string {
	s, _ := fields[key].(string)
	return strings.TrimSpace(s)
}
