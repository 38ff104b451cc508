// Package validation mirrors the server's field constraints client-side, so
// forms can be rejected before a round-trip. The rules are a contract with
// the backend, not invented here.
package validation

import (
	"context"
	"fmt"
	"regexp"

	"github.com/dmitrijs2005/watchb/internal/client/api"
)

const (
	// PasswordMinLength matches the server's password validator.
	PasswordMinLength = 8

	passwordInvalidMessage = "password must be at least 8 characters and combine two of: letters, digits, special characters"
	emailInvalidMessage    = "not a valid email address"
	emailTakenMessage      = "email is already registered"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Result is the outcome of a single field check. Message is empty for valid
// input.
type Result struct {
	IsValid bool
	Message string
}

func valid() Result {
	return Result{IsValid: true}
}

func invalid(message string) Result {
	return Result{Message: message}
}

// CheckPasswordPattern applies the server's password rule: at least 8
// characters combining at least two of three character classes (letters,
// digits, everything else).
func CheckPasswordPattern(password string) Result {
	if len(password) < PasswordMinLength {
		return invalid(passwordInvalidMessage)
	}

	var hasLetter, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	classes := 0
	for _, ok := range []bool{hasLetter, hasDigit, hasSpecial} {
		if ok {
			classes++
		}
	}
	if classes < 2 {
		return invalid(passwordInvalidMessage)
	}
	return valid()
}

// CheckEmailPattern is a light syntactic check; the server remains the
// authority on what it accepts.
func CheckEmailPattern(email string) Result {
	if !emailPattern.MatchString(email) {
		return invalid(emailInvalidMessage)
	}
	return valid()
}

// CheckEmailAvailable probes the server for an existing account with this
// email. A server-side format rejection also counts as invalid input; other
// failures are returned as errors.
func CheckEmailAvailable(ctx context.Context, client api.Client, email string) (Result, error) {
	users, err := client.SearchUsersByEmail(ctx, email)
	if err != nil {
		if api.IsInvalidEmailPattern(err) {
			return invalid(emailInvalidMessage), nil
		}
		return Result{}, fmt.Errorf("email availability check: %w", err)
	}

	if len(users) > 0 {
		return invalid(emailTakenMessage), nil
	}
	return valid(), nil
}
