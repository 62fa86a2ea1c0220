package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	database "github.com/sebuszqo/ExpenseTracker/internal/db"
	"github.com/sebuszqo/ExpenseTracker/internal/expense/domain"
	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expense/errors"
)

const expenseColumns = `
	e.id, e.name, e.description, e.value, e.start_date, e.user_id,
	e.currency_type_id, e.recurrence_type_id, e.predefined_expense_id, r.per_year`

type ExpenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanExpense(row rowScanner) (*domain.Expense, error) {
	var expense domain.Expense
	var predefinedID sql.NullInt64
	err := row.Scan(&expense.ID, &expense.Name, &expense.Description, &expense.Value, &expense.StartDate.Time,
		&expense.UserID, &expense.CurrencyTypeID, &expense.RecurrenceTypeID, &predefinedID, &expense.RecurrencePerYear)
	if err != nil {
		return nil, err
	}
	if predefinedID.Valid {
		expense.PredefinedExpenseID = &predefinedID.Int64
	}
	expense.ComputeAnnualValue()
	return &expense, nil
}

func (r *ExpenseRepository) Save(ctx context.Context, expense *domain.Expense) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO expenses
		(name, description, value, start_date, user_id, currency_type_id, recurrence_type_id, predefined_expense_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		expense.Name, expense.Description, expense.Value, expense.StartDate.Time, expense.UserID,
		expense.CurrencyTypeID, expense.RecurrenceTypeID, expense.PredefinedExpenseID,
	).Scan(&expense.ID)
	if err != nil {
		return fmt.Errorf("could not save expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) FindByID(ctx context.Context, expenseID int64) (*domain.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT`+expenseColumns+`
		FROM expenses e
		JOIN recurrence_type r ON r.id = e.recurrence_type_id
		WHERE e.id = $1`, expenseID)

	expense, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, expenseErrors.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("could not find expense: %w", err)
	}
	return expense, nil
}

func (r *ExpenseRepository) FindByUser(ctx context.Context, userID int64) ([]domain.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT`+expenseColumns+`
		FROM expenses e
		JOIN recurrence_type r ON r.id = e.recurrence_type_id
		WHERE e.user_id = $1
		ORDER BY e.start_date, e.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("could not find expenses: %w", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan expense: %w", err)
		}
		expenses = append(expenses, *expense)
	}
	return expenses, rows.Err()
}

// Delete removes the expense together with its transactions.
func (r *ExpenseRepository) Delete(ctx context.Context, expenseID int64) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE expense_id = $1`, expenseID); err != nil {
			return fmt.Errorf("could not delete expense transactions: %w", err)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, expenseID)
		if err != nil {
			return fmt.Errorf("could not delete expense: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("could not delete expense: %w", err)
		}
		if n == 0 {
			return expenseErrors.ErrExpenseNotFound
		}
		return nil
	})
}

func (r *ExpenseRepository) SavePredefined(ctx context.Context, predefined *domain.PredefinedExpense) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO predefined_expenses (name, description, value, currency_type_id, recurrence_type_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		predefined.Name, predefined.Description, predefined.Value, predefined.CurrencyTypeID, predefined.RecurrenceTypeID,
	).Scan(&predefined.ID)
	if err != nil {
		return fmt.Errorf("could not save predefined expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) FindPredefined(ctx context.Context) ([]domain.PredefinedExpense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, value, currency_type_id, recurrence_type_id
		FROM predefined_expenses
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("could not find predefined expenses: %w", err)
	}
	defer rows.Close()

	predefined := []domain.PredefinedExpense{}
	for rows.Next() {
		var p domain.PredefinedExpense
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Value, &p.CurrencyTypeID, &p.RecurrenceTypeID); err != nil {
			return nil, fmt.Errorf("could not scan predefined expense: %w", err)
		}
		predefined = append(predefined, p)
	}
	return predefined, rows.Err()
}

func (r *ExpenseRepository) DoesPredefinedExpenseExistByID(ctx context.Context, predefinedID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM predefined_expenses WHERE id = $1)`, predefinedID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("could not check predefined expense: %w", err)
	}
	return exists, nil
}
