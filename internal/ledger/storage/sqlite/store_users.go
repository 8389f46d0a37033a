package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thekedar/labourbook/internal/ledger/storage"
)

// CreateUser inserts one contractor account. Phone is the natural unique
// identity; a duplicate registration returns ErrAlreadyExists.
func (s *Store) CreateUser(ctx context.Context, phone, name string) (storage.User, error) {
	if err := ctx.Err(); err != nil {
		return storage.User{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.User{}, fmt.Errorf("storage is not configured")
	}
	phone = strings.TrimSpace(phone)
	name = strings.TrimSpace(name)
	if phone == "" {
		return storage.User{}, fmt.Errorf("phone is required")
	}
	if name == "" {
		return storage.User{}, fmt.Errorf("name is required")
	}
	createdAt := time.Now().UTC()

	result, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO users (phone, name, created_at) VALUES (?, ?, ?)`,
		phone,
		name,
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.User{}, fmt.Errorf("phone %q: %w", phone, storage.ErrAlreadyExists)
		}
		return storage.User{}, fmt.Errorf("create user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return storage.User{}, fmt.Errorf("create user id: %w", err)
	}

	return storage.User{
		ID:        id,
		Phone:     phone,
		Name:      name,
		CreatedAt: createdAt,
	}, nil
}

// GetUser returns one account by id.
func (s *Store) GetUser(ctx context.Context, id int64) (storage.User, error) {
	if err := ctx.Err(); err != nil {
		return storage.User{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.User{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, phone, name, created_at FROM users WHERE id = ?`,
		id,
	)
	return scanUser(row)
}

// GetUserByPhone returns one account by its registered phone number.
func (s *Store) GetUserByPhone(ctx context.Context, phone string) (storage.User, error) {
	if err := ctx.Err(); err != nil {
		return storage.User{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.User{}, fmt.Errorf("storage is not configured")
	}
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return storage.User{}, fmt.Errorf("phone is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, phone, name, created_at FROM users WHERE phone = ?`,
		phone,
	)
	return scanUser(row)
}

func scanUser(row *sql.Row) (storage.User, error) {
	var user storage.User
	var createdAt int64
	err := row.Scan(&user.ID, &user.Phone, &user.Name, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.User{}, storage.ErrNotFound
		}
		return storage.User{}, fmt.Errorf("get user: %w", err)
	}
	user.CreatedAt = fromMillis(createdAt)
	return user, nil
}
