package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/thekedar/labourbook/internal/ledger/storage"
)

// CreateLabour inserts one worker under a project. Phone is optional; the
// daily wage must be non-negative (also enforced by a schema CHECK).
func (s *Store) CreateLabour(ctx context.Context, projectID int64, name, phone string, dailyWage float64) (storage.Labour, error) {
	if err := ctx.Err(); err != nil {
		return storage.Labour{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Labour{}, fmt.Errorf("storage is not configured")
	}
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return storage.Labour{}, fmt.Errorf("name is required")
	}
	if dailyWage < 0 {
		return storage.Labour{}, fmt.Errorf("daily wage must not be negative")
	}
	createdAt := time.Now().UTC()

	result, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO labours (project_id, name, phone, daily_wage, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		projectID,
		name,
		nullableText(phone),
		dailyWage,
		toMillis(createdAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return storage.Labour{}, fmt.Errorf("project %d: %w", projectID, storage.ErrNotFound)
		}
		return storage.Labour{}, fmt.Errorf("create labour: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return storage.Labour{}, fmt.Errorf("create labour id: %w", err)
	}

	return storage.Labour{
		ID:        id,
		ProjectID: projectID,
		Name:      name,
		Phone:     phone,
		DailyWage: dailyWage,
		CreatedAt: createdAt,
	}, nil
}

// UpdateLabour overwrites a worker's mutable fields. A wage change
// retroactively changes the earnings derived for every historical attendance
// row; there is no wage history.
func (s *Store) UpdateLabour(ctx context.Context, id int64, name, phone string, dailyWage float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if dailyWage < 0 {
		return fmt.Errorf("daily wage must not be negative")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE labours SET name = ?, phone = ?, daily_wage = ? WHERE id = ?`,
		name,
		nullableText(phone),
		dailyWage,
		id,
	)
	if err != nil {
		return fmt.Errorf("update labour: %w", err)
	}
	return requireRowAffected(result, "labour", id)
}

// DeleteLabour removes a worker and every attendance and payment row that
// references it in a single transaction. Either all rows go or none do.
func (s *Store) DeleteLabour(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete labour: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM payments WHERE labour_id = ?`, id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete labour payments: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM attendance WHERE labour_id = ?`, id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete labour attendance: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM labours WHERE id = ?`, id)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete labour: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("labour rows affected: %w", err)
	}
	if affected == 0 {
		_ = tx.Rollback()
		return fmt.Errorf("labour %d: %w", id, storage.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete labour: %w", err)
	}
	return nil
}

func nullableText(value string) any {
	if value == "" {
		return nil
	}
	return value
}
