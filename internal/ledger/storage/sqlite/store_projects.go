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

// CreateProject inserts one project owned by a user. New projects start
// active.
func (s *Store) CreateProject(ctx context.Context, userID int64, name, description string) (storage.Project, error) {
	if err := ctx.Err(); err != nil {
		return storage.Project{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Project{}, fmt.Errorf("storage is not configured")
	}
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" {
		return storage.Project{}, fmt.Errorf("name is required")
	}
	createdAt := time.Now().UTC()

	result, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO projects (user_id, name, description, active, created_at)
		 VALUES (?, ?, ?, 1, ?)`,
		userID,
		name,
		description,
		toMillis(createdAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return storage.Project{}, fmt.Errorf("user %d: %w", userID, storage.ErrNotFound)
		}
		return storage.Project{}, fmt.Errorf("create project: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return storage.Project{}, fmt.Errorf("create project id: %w", err)
	}

	return storage.Project{
		ID:          id,
		UserID:      userID,
		Name:        name,
		Description: description,
		Active:      true,
		CreatedAt:   createdAt,
	}, nil
}

// GetProject returns one project by id regardless of its active flag, so
// soft-deleted projects stay addressable by direct reference.
func (s *Store) GetProject(ctx context.Context, id int64) (storage.Project, error) {
	if err := ctx.Err(); err != nil {
		return storage.Project{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Project{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, user_id, name, description, active, created_at
		   FROM projects
		  WHERE id = ?`,
		id,
	)

	var project storage.Project
	var active int
	var createdAt int64
	err := row.Scan(&project.ID, &project.UserID, &project.Name, &project.Description, &active, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Project{}, storage.ErrNotFound
		}
		return storage.Project{}, fmt.Errorf("get project: %w", err)
	}
	project.Active = active != 0
	project.CreatedAt = fromMillis(createdAt)
	return project, nil
}

// UpdateProject overwrites a project's name and description.
func (s *Store) UpdateProject(ctx context.Context, id int64, name, description string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE projects SET name = ?, description = ? WHERE id = ?`,
		name,
		strings.TrimSpace(description),
		id,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return requireRowAffected(result, "project", id)
}

// DeleteProject soft-deletes a project by clearing its active flag. Child
// labours and their ledger rows are never touched.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE projects SET active = 0 WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return requireRowAffected(result, "project", id)
}

func requireRowAffected(result sql.Result, kind string, id int64) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", kind, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}
