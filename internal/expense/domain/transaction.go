package domain

import (
	"context"
	"strings"

	appErrors "github.com/sebuszqo/ExpenseTracker/internal/errors"
	"github.com/shopspring/decimal"
)

type TransactionRepository interface {
	Save(ctx context.Context, transaction *Transaction) error
	FindByID(ctx context.Context, transactionID int64) (*Transaction, error)
	FindByExpense(ctx context.Context, expenseID int64) ([]Transaction, error)
	Delete(ctx context.Context, transactionID int64) error
}

// Transaction is a single contribution towards an expense. DonorName is free
// text and need not be a registered user.
type Transaction struct {
	ID             int64           `json:"id"`
	DonorName      string          `json:"donor_name"`
	Value          decimal.Decimal `json:"value"`
	Date           Date            `json:"date"`
	CurrencyTypeID int64           `json:"currency_type_id"`
	ExpenseID      int64           `json:"expense_id"`
}

type CreateTransactionRequest struct {
	DonorName      string          `json:"donor_name"`
	Value          decimal.Decimal `json:"value"`
	Date           string          `json:"date"`
	CurrencyTypeID int64           `json:"currency_type_id"`
	ExpenseID      int64           `json:"expense_id"`
}

func (r *CreateTransactionRequest) Validate(fe appErrors.FieldErrors) Date {
	donor := strings.TrimSpace(r.DonorName)
	if donor == "" || len(donor) > maxNameLength {
		fe.Add("donor_name", "must be between 1 and 255 characters")
	}
	validateValue(fe, r.Value)

	date, err := ParseDate(strings.TrimSpace(r.Date))
	if err != nil {
		fe.Add("date", "must be a date in dd-mm-yyyy format")
	}
	if r.CurrencyTypeID <= 0 {
		fe.Add("currency_type_id", "is required")
	}
	if r.ExpenseID <= 0 {
		fe.Add("expense_id", "is required")
	}
	return date
}

// ExpenseTransactions is an expense's transactions with their running total.
type ExpenseTransactions struct {
	ExpenseID    int64            `json:"expense_id"`
	Transactions []Transaction    `json:"transactions"`
	Total        decimal.Decimal  `json:"total"`
	AnnualValue  *decimal.Decimal `json:"annual_value"`
}

func NewExpenseTransactions(expense *Expense, transactions []Transaction) *ExpenseTransactions {
	total := decimal.Zero
	for _, t := range transactions {
		total = total.Add(t.Value)
	}
	if transactions == nil {
		transactions = []Transaction{}
	}
	return &ExpenseTransactions{
		ExpenseID:    expense.ID,
		Transactions: transactions,
		Total:        total,
		AnnualValue:  expense.AnnualValue,
	}
}
