// internal/auth/users.go
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ghotok-workers/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id, username, password, email, created_at FROM users WHERE username = $1`, username))
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id, username, password, email, created_at FROM users WHERE id = $1`, id))
}

// Create inserts a user whose password is already hashed.
func (s *UserStore) Create(ctx context.Context, username, passwordHash, email string) (*models.User, error) {
	u := models.User{Username: username, Password: passwordHash, Email: email}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO users (username, password, email) VALUES ($1, $2, $3) RETURNING id, created_at`,
		username, passwordHash, email,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create user %s: %w", username, err)
	}
	return &u, nil
}

func (s *UserStore) scanOne(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Email, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &u, nil
}
