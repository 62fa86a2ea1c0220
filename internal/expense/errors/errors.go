package errors

import (
	"errors"
	"fmt"

	appErrors "github.com/sebuszqo/ExpenseTracker/internal/errors"
)

var (
	ErrInvalidExpenseData     = errors.New("invalid expense data")
	ErrInvalidTransactionData = errors.New("invalid transaction data")
	ErrExpenseNotFound        = fmt.Errorf("expense %w", appErrors.ErrNotFound)
	ErrTransactionNotFound    = fmt.Errorf("transaction %w", appErrors.ErrNotFound)
	ErrNotAuthorized          = appErrors.ErrNotAuthorized
)

func NewInvalidExpenseError(details appErrors.FieldErrors) error {
	if len(details) == 0 {
		return &appErrors.ValidationError{Msg: "Invalid expense data", Kind: ErrInvalidExpenseData}
	}
	return details.ErrKind(ErrInvalidExpenseData, "Invalid expense data")
}

func NewInvalidTransactionError(details appErrors.FieldErrors) error {
	if len(details) == 0 {
		return &appErrors.ValidationError{Msg: "Invalid transaction data", Kind: ErrInvalidTransactionData}
	}
	return details.ErrKind(ErrInvalidTransactionData, "Invalid transaction data")
}
