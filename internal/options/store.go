// internal/options/store.go
package options

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ghotok-workers/internal/matching"
	"ghotok-workers/internal/models"
)

var (
	ErrNotFound     = errors.New("custom option not found")
	ErrInvalidValue = errors.New("invalid option value")
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// List returns the custom options of field, oldest first.
func (s *Store) List(ctx context.Context, field FieldType) ([]models.CustomOption, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, field_type, value, created_at FROM custom_options WHERE field_type = $1 ORDER BY created_at ASC`,
		string(field))
	if err != nil {
		return nil, fmt.Errorf("list custom options: %w", err)
	}
	defer rows.Close()

	out := []models.CustomOption{}
	for rows.Next() {
		var o models.CustomOption
		if err := rows.Scan(&o.ID, &o.FieldType, &o.Value, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan custom option: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Merged returns the built-in values of field followed by custom ones not already present.
func (s *Store) Merged(ctx context.Context, field FieldType) ([]string, []models.CustomOption, error) {
	custom, err := s.List(ctx, field)
	if err != nil {
		return nil, nil, err
	}

	values := Builtin(field)
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		seen[v] = true
	}
	for _, o := range custom {
		if !seen[o.Value] {
			seen[o.Value] = true
			values = append(values, o.Value)
		}
	}
	return values, custom, nil
}

// Create adds a custom value. Heights must be in feet'inches" form.
func (s *Store) Create(ctx context.Context, field FieldType, value string) (*models.CustomOption, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("%w: value is required", ErrInvalidValue)
	}
	if field == FieldHeight && matching.ParseHeight(value) == 0 {
		return nil, fmt.Errorf("%w: height %q is not in feet'inches\" form", ErrInvalidValue, value)
	}

	o := models.CustomOption{FieldType: string(field), Value: value}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO custom_options (field_type, value) VALUES ($1, $2) RETURNING id, created_at`,
		string(field), value,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create custom option: %w", err)
	}
	return &o, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM custom_options WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete custom option %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete custom option %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
