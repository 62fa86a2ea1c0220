package domain

import (
	"context"
	"strings"

	appErrors "github.com/sebuszqo/ExpenseTracker/internal/errors"
	"github.com/shopspring/decimal"
)

const (
	maxNameLength        = 255
	maxDescriptionLength = 1000
)

// maxValue is the largest amount a NUMERIC(12,2) column holds.
var maxValue = decimal.RequireFromString("9999999999.99")

type ExpenseRepository interface {
	Save(ctx context.Context, expense *Expense) error
	FindByID(ctx context.Context, expenseID int64) (*Expense, error)
	FindByUser(ctx context.Context, userID int64) ([]Expense, error)
	Delete(ctx context.Context, expenseID int64) error
	SavePredefined(ctx context.Context, predefined *PredefinedExpense) error
	FindPredefined(ctx context.Context) ([]PredefinedExpense, error)
	DoesPredefinedExpenseExistByID(ctx context.Context, predefinedID int64) (bool, error)
}

type Expense struct {
	ID                  int64            `json:"id"`
	Name                string           `json:"name"`
	Description         string           `json:"description"`
	Value               decimal.Decimal  `json:"value"`
	StartDate           Date             `json:"start_date"`
	UserID              int64            `json:"user_id"`
	CurrencyTypeID      int64            `json:"currency_type_id"`
	RecurrenceTypeID    int64            `json:"recurrence_type_id"`
	PredefinedExpenseID *int64           `json:"predefined_expense_id"`
	AnnualValue         *decimal.Decimal `json:"annual_value"`

	// RecurrencePerYear is read with the expense to compute AnnualValue.
	RecurrencePerYear decimal.NullDecimal `json:"-"`
}

// ComputeAnnualValue sets AnnualValue from the recurrence multiplier, leaving
// it nil when the recurrence has none.
func (e *Expense) ComputeAnnualValue() {
	if !e.RecurrencePerYear.Valid {
		e.AnnualValue = nil
		return
	}
	annual := e.Value.Mul(e.RecurrencePerYear.Decimal).Round(2)
	e.AnnualValue = &annual
}

type PredefinedExpense struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Value            decimal.Decimal `json:"value"`
	CurrencyTypeID   int64           `json:"currency_type_id"`
	RecurrenceTypeID int64           `json:"recurrence_type_id"`
}

type CreateExpenseRequest struct {
	Name                string          `json:"name"`
	Description         string          `json:"description"`
	Value               decimal.Decimal `json:"value"`
	StartDate           string          `json:"start_date"`
	CurrencyTypeID      int64           `json:"currency_type_id"`
	RecurrenceTypeID    int64           `json:"recurrence_type_id"`
	PredefinedExpenseID *int64          `json:"predefined_expense_id"`
}

// Validate checks the request fields that need no lookup and returns the
// parsed start date.
func (r *CreateExpenseRequest) Validate(fe appErrors.FieldErrors) Date {
	validateName(fe, r.Name)
	validateDescription(fe, r.Description)
	validateValue(fe, r.Value)

	startDate, err := ParseDate(strings.TrimSpace(r.StartDate))
	if err != nil {
		fe.Add("start_date", "must be a date in dd-mm-yyyy format")
	}
	if r.CurrencyTypeID <= 0 {
		fe.Add("currency_type_id", "is required")
	}
	if r.RecurrenceTypeID <= 0 {
		fe.Add("recurrence_type_id", "is required")
	}
	if r.PredefinedExpenseID != nil && *r.PredefinedExpenseID <= 0 {
		fe.Add("predefined_expense_id", "does not exist")
	}
	return startDate
}

type CreatePredefinedExpenseRequest struct {
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Value            decimal.Decimal `json:"value"`
	CurrencyTypeID   int64           `json:"currency_type_id"`
	RecurrenceTypeID int64           `json:"recurrence_type_id"`
}

func (r *CreatePredefinedExpenseRequest) Validate(fe appErrors.FieldErrors) {
	validateName(fe, r.Name)
	validateDescription(fe, r.Description)
	validateValue(fe, r.Value)

	if r.CurrencyTypeID <= 0 {
		fe.Add("currency_type_id", "is required")
	}
	if r.RecurrenceTypeID <= 0 {
		fe.Add("recurrence_type_id", "is required")
	}
}

func validateName(fe appErrors.FieldErrors, name string) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLength {
		fe.Add("name", "must be between 1 and 255 characters")
	}
}

func validateDescription(fe appErrors.FieldErrors, description string) {
	if len(description) > maxDescriptionLength {
		fe.Add("description", "must be at most 1000 characters")
	}
}

func validateValue(fe appErrors.FieldErrors, value decimal.Decimal) {
	if !value.IsPositive() {
		fe.Add("value", "must be greater than zero")
		return
	}
	if value.GreaterThan(maxValue) || !value.Equal(value.Round(2)) {
		fe.Add("value", "must have at most 10 integer digits and 2 decimal places")
	}
}
