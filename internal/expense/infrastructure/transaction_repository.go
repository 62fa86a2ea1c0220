package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sebuszqo/ExpenseTracker/internal/expense/domain"
	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expense/errors"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Save(ctx context.Context, transaction *domain.Transaction) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO transactions (donor_name, value, date, currency_type_id, expense_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		transaction.DonorName, transaction.Value, transaction.Date.Time, transaction.CurrencyTypeID, transaction.ExpenseID,
	).Scan(&transaction.ID)
	if err != nil {
		return fmt.Errorf("could not save transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	var t domain.Transaction
	err := r.db.QueryRowContext(ctx,
		`SELECT id, donor_name, value, date, currency_type_id, expense_id
		FROM transactions
		WHERE id = $1`, transactionID,
	).Scan(&t.ID, &t.DonorName, &t.Value, &t.Date.Time, &t.CurrencyTypeID, &t.ExpenseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, expenseErrors.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("could not find transaction: %w", err)
	}
	return &t, nil
}

func (r *TransactionRepository) FindByExpense(ctx context.Context, expenseID int64) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, donor_name, value, date, currency_type_id, expense_id
		FROM transactions
		WHERE expense_id = $1
		ORDER BY date, id`, expenseID)
	if err != nil {
		return nil, fmt.Errorf("could not find transactions: %w", err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.DonorName, &t.Value, &t.Date.Time, &t.CurrencyTypeID, &t.ExpenseID); err != nil {
			return nil, fmt.Errorf("could not scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (r *TransactionRepository) Delete(ctx context.Context, transactionID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, transactionID)
	if err != nil {
		return fmt.Errorf("could not delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not delete transaction: %w", err)
	}
	if n == 0 {
		return expenseErrors.ErrTransactionNotFound
	}
	return nil
}
