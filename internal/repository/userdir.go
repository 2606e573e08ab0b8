// Package repository provides the Postgres persistence of the user
// directory.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/securepass/securepass/internal/models"
)

// PostgresUserDirectory implements service.UserPersister on a PostgreSQL
// database.
type PostgresUserDirectory struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserDirectory creates a new PostgresUserDirectory with the
// given database connection.
func NewPostgresUserDirectory(db *sql.DB) *PostgresUserDirectory {
	return &PostgresUserDirectory{DB: db}
}

// ListUsers returns every persisted user, most recently inserted last.
func (r *PostgresUserDirectory) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(
		ctx,
		`SELECT id, name, email, password, role, active, security_question, security_answer FROM users`,
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.Active, &u.SecurityQuestion, &u.SecurityAnswer); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// SaveUser inserts a user. If a user with the same email already exists,
// the ON CONFLICT DO NOTHING clause prevents an error.
func (r *PostgresUserDirectory) SaveUser(ctx context.Context, u models.User) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO users (id, name, email, password, role, active, security_question, security_answer)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT DO NOTHING`,
		u.ID, u.Name, u.Email, u.Password, string(u.Role), u.Active, u.SecurityQuestion, u.SecurityAnswer,
	)
	return err
}

// UpdatePassword overwrites the stored password of the user with the given
// email.
func (r *PostgresUserDirectory) UpdatePassword(ctx context.Context, email, password string) error {
	_, err := r.DB.ExecContext(
		ctx,
		`UPDATE users SET password = $1 WHERE email = $2`,
		password, email,
	)
	return err
}

// SetActive updates the active flag of the user with the given id.
func (r *PostgresUserDirectory) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.DB.ExecContext(
		ctx,
		`UPDATE users SET active = $1 WHERE id = $2`,
		active, id,
	)
	return err
}

// DeleteUser removes the user with the given id.
func (r *PostgresUserDirectory) DeleteUser(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(
		ctx,
		`DELETE FROM users WHERE id = $1`,
		id,
	)
	return err
}
