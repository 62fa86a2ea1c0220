package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	database "github.com/sebuszqo/ExpenseTracker/internal/db"
)

const uniqueViolationCode = "23505"

type Repository interface {
	createUserWithActivation(ctx context.Context, user *User, activation *AccountActivation) error
	getUserByEmail(ctx context.Context, email string) (*User, error)
	getUserByID(ctx context.Context, id int64) (*User, error)
	getActivationByToken(ctx context.Context, token string) (*AccountActivation, error)
	activateUser(ctx context.Context, activation *AccountActivation) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) Repository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) createUserWithActivation(ctx context.Context, user *User, activation *AccountActivation) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO users (email, username, password_hash, activated)
			VALUES ($1, $2, $3, FALSE)
			RETURNING id;
		`
		err := tx.QueryRowContext(ctx, query, user.Email, user.Username, user.PasswordHash).Scan(&user.ID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
				return ErrEmailAlreadyExists
			}
			return fmt.Errorf("could not create user: %w", err)
		}

		activation.UserID = user.ID
		query = `
			INSERT INTO account_activation (token, user_id, expiration)
			VALUES ($1, $2, $3)
			RETURNING id;
		`
		err = tx.QueryRowContext(ctx, query, activation.Token, activation.UserID, activation.Expiration).Scan(&activation.ID)
		if err != nil {
			return fmt.Errorf("could not create account activation: %w", err)
		}
		return nil
	})
}

func (r *userRepository) getUserByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, email, username, password_hash, activated
		FROM users
		WHERE email = $1
	`

	var user User
	err := r.db.QueryRowContext(ctx, query, email).Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.Activated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("could not find user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) getUserByID(ctx context.Context, id int64) (*User, error) {
	query := `
		SELECT id, email, username, password_hash, activated
		FROM users
		WHERE id = $1
	`

	var user User
	err := r.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.Activated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("could not find user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) getActivationByToken(ctx context.Context, token string) (*AccountActivation, error) {
	query := `
		SELECT id, token, user_id, expiration
		FROM account_activation
		WHERE token = $1
	`

	var activation AccountActivation
	err := r.db.QueryRowContext(ctx, query, token).Scan(&activation.ID, &activation.Token, &activation.UserID, &activation.Expiration)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrActivationTokenNotFound
		}
		return nil, fmt.Errorf("could not find account activation: %w", err)
	}

	return &activation, nil
}

// activateUser flips the activated flag and consumes the token in one
// transaction. A token already consumed by a concurrent request rolls the
// whole unit back.
func (r *userRepository) activateUser(ctx context.Context, activation *AccountActivation) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE users SET activated = TRUE WHERE id = $1`, activation.UserID)
		if err != nil {
			return fmt.Errorf("could not activate user: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("could not activate user: %w", err)
		} else if n == 0 {
			return ErrUserNotFound
		}

		res, err = tx.ExecContext(ctx, `DELETE FROM account_activation WHERE id = $1`, activation.ID)
		if err != nil {
			return fmt.Errorf("could not delete account activation: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("could not delete account activation: %w", err)
		} else if n == 0 {
			return ErrActivationTokenNotFound
		}
		return nil
	})
}
