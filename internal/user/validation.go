package user

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/badoux/checkmail"
	appErrors "github.com/sebuszqo/ExpenseTracker/internal/errors"
)

const (
	maxEmailLength    = 320
	minUsernameLength = 1
	maxUsernameLength = 255
	minPasswordLength = 8
	maxPasswordLength = 120

	passwordSymbols = "!@#$%^&*()-_=+[]{};:'\",.<>/?\\|`~"
)

func validateRegisterRequest(req RegisterRequest) error {
	fe := appErrors.FieldErrors{}

	if err := validateEmailAddress(req.Email); err != "" {
		fe.Add("email", err)
	}

	if n := utf8.RuneCountInString(req.Username); n < minUsernameLength || n > maxUsernameLength {
		fe.Add("username", "must be between 1 and 255 characters")
	}

	if err := validatePassword(req.Password); err != "" {
		fe.Add("password", err)
	}
	if req.Password != req.ConfirmPassword {
		fe.Add("confirmPassword", "must match password")
	}

	return fe.Err("Invalid registration data")
}

// validateEmailAddress only checks the format; no MX lookup is done.
func validateEmailAddress(email string) string {
	if email == "" {
		return "must not be empty"
	}
	if len(email) > maxEmailLength {
		return "must be at most 320 characters"
	}
	if err := checkmail.ValidateFormat(email); err != nil {
		return "must be a valid email address"
	}
	return ""
}

func validatePassword(password string) string {
	n := utf8.RuneCountInString(password)
	if n < minPasswordLength || n > maxPasswordLength {
		return "must be between 8 and 120 characters"
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	if !hasLower || !hasUpper || !hasDigit || !hasSymbol {
		return "must contain a lowercase letter, an uppercase letter, a digit and a symbol"
	}
	return ""
}
