package user

import (
	"errors"
	"fmt"

	appErrors "github.com/sebuszqo/ExpenseTracker/internal/errors"
)

var (
	ErrEmailAlreadyExists      = fmt.Errorf("email %w", appErrors.ErrAlreadyExists)
	ErrUserNotFound            = fmt.Errorf("user %w", appErrors.ErrNotFound)
	ErrActivationTokenNotFound = fmt.Errorf("activation token %w", appErrors.ErrNotFound)
	ErrActivationTokenExpired  = errors.New("activation token expired")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrAccountNotActivated     = errors.New("account is not activated")
	ErrInternalError           = errors.New("internal Server Error")
)
