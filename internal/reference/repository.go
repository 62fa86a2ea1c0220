package reference

import (
	"context"
	"database/sql"
	"fmt"
)

type Repository interface {
	GetCurrencyTypes(ctx context.Context) ([]CurrencyType, error)
	GetRecurrenceTypes(ctx context.Context) ([]RecurrenceType, error)
	DoesCurrencyTypeExistByID(ctx context.Context, id int64) (bool, error)
	DoesRecurrenceTypeExistByID(ctx context.Context, id int64) (bool, error)
}

type referenceRepository struct {
	db *sql.DB
}

func NewReferenceRepository(db *sql.DB) Repository {
	return &referenceRepository{db: db}
}

func (r *referenceRepository) GetCurrencyTypes(ctx context.Context) ([]CurrencyType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, abbreviation FROM currency_type ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("could not get currency types: %w", err)
	}
	defer rows.Close()

	currencies := []CurrencyType{}
	for rows.Next() {
		var c CurrencyType
		if err := rows.Scan(&c.ID, &c.Abbreviation); err != nil {
			return nil, fmt.Errorf("could not scan currency type: %w", err)
		}
		currencies = append(currencies, c)
	}
	return currencies, rows.Err()
}

func (r *referenceRepository) GetRecurrenceTypes(ctx context.Context) ([]RecurrenceType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, per_year FROM recurrence_type ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("could not get recurrence types: %w", err)
	}
	defer rows.Close()

	recurrences := []RecurrenceType{}
	for rows.Next() {
		var rt RecurrenceType
		if err := rows.Scan(&rt.ID, &rt.Name, &rt.PerYear); err != nil {
			return nil, fmt.Errorf("could not scan recurrence type: %w", err)
		}
		recurrences = append(recurrences, rt)
	}
	return recurrences, rows.Err()
}

func (r *referenceRepository) DoesCurrencyTypeExistByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM currency_type WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("could not check currency type: %w", err)
	}
	return exists, nil
}

func (r *referenceRepository) DoesRecurrenceTypeExistByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM recurrence_type WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("could not check recurrence type: %w", err)
	}
	return exists, nil
}
