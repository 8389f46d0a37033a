package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thekedar/labourbook/internal/ledger/storage"
)

// Ledger aggregates are never stored. Every read recomputes earnings,
// payments and balances from the raw rows at the labour's current daily
// wage, so a wage edit is retroactive by construction and nothing can drift.

const labourStatsQuery = `
SELECT l.id, l.project_id, l.name, l.phone, l.daily_wage, l.created_at,
       COALESCE(SUM(CASE WHEN a.work_type = 'full' THEN l.daily_wage
                         WHEN a.work_type = 'half' THEN l.daily_wage / 2 END), 0) AS total_earned,
       COALESCE((SELECT SUM(p.amount) FROM payments p WHERE p.labour_id = l.id), 0) AS total_paid,
       COUNT(a.id) AS attendance_count
  FROM labours l
  LEFT JOIN attendance a ON a.labour_id = l.id
`

const projectStatsQuery = `
SELECT p.id, p.user_id, p.name, p.description, p.active, p.created_at,
       (SELECT COUNT(*) FROM labours l WHERE l.project_id = p.id) AS labour_count,
       COALESCE((
         SELECT SUM(MAX(0,
           COALESCE((SELECT SUM(CASE WHEN a.work_type = 'full' THEN l.daily_wage
                                     WHEN a.work_type = 'half' THEN l.daily_wage / 2 END)
                       FROM attendance a WHERE a.labour_id = l.id), 0)
           - COALESCE((SELECT SUM(pm.amount) FROM payments pm WHERE pm.labour_id = l.id), 0)
         ))
           FROM labours l WHERE l.project_id = p.id
       ), 0) AS total_pending_dues
  FROM projects p
 WHERE p.user_id = ? AND p.active = 1
 ORDER BY p.created_at DESC, p.id DESC
`

// GetLabourWithStats returns one worker augmented with totalEarned,
// totalPaid, balance and attendanceCount. A worker with no attendance or
// payments yields zeros, not an error.
func (s *Store) GetLabourWithStats(ctx context.Context, id int64) (storage.LabourWithStats, error) {
	if err := ctx.Err(); err != nil {
		return storage.LabourWithStats{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.LabourWithStats{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(ctx, labourStatsQuery+` WHERE l.id = ? GROUP BY l.id`, id)
	labour, err := scanLabourStats(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.LabourWithStats{}, storage.ErrNotFound
		}
		return storage.LabourWithStats{}, fmt.Errorf("get labour stats: %w", err)
	}
	return labour, nil
}

// ListLaboursByProject returns every worker of a project with stats,
// ordered by name for stable display. The project's active flag is
// irrelevant here: labours of a soft-deleted project stay listable.
func (s *Store) ListLaboursByProject(ctx context.Context, projectID int64) ([]storage.LabourWithStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		labourStatsQuery+` WHERE l.project_id = ? GROUP BY l.id ORDER BY l.name ASC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list labours: %w", err)
	}
	defer rows.Close()

	labours := make([]storage.LabourWithStats, 0)
	for rows.Next() {
		labour, err := scanLabourStats(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list labours: %w", err)
		}
		labours = append(labours, labour)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list labours: %w", err)
	}
	return labours, nil
}

// ListProjectsByUser returns a user's active projects, newest first, each
// with its labour count and total pending dues. Per-labour balances clamp
// at zero inside the sum: one worker's overpayment never offsets another's
// dues. Soft-deleted projects are excluded.
func (s *Store) ListProjectsByUser(ctx context.Context, userID int64) ([]storage.ProjectWithStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, projectStatsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]storage.ProjectWithStats, 0)
	for rows.Next() {
		var project storage.ProjectWithStats
		var active int
		var createdAt int64
		if err := rows.Scan(
			&project.ID,
			&project.UserID,
			&project.Name,
			&project.Description,
			&active,
			&createdAt,
			&project.LabourCount,
			&project.TotalPendingDues,
		); err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		project.Active = active != 0
		project.CreatedAt = fromMillis(createdAt)
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func scanLabourStats(scan func(dest ...any) error) (storage.LabourWithStats, error) {
	var labour storage.LabourWithStats
	var phone sql.NullString
	var createdAt int64
	if err := scan(
		&labour.ID,
		&labour.ProjectID,
		&labour.Name,
		&phone,
		&labour.DailyWage,
		&createdAt,
		&labour.TotalEarned,
		&labour.TotalPaid,
		&labour.AttendanceCount,
	); err != nil {
		return storage.LabourWithStats{}, err
	}
	labour.Phone = phone.String
	labour.CreatedAt = fromMillis(createdAt)
	labour.Balance = labour.TotalEarned - labour.TotalPaid
	return labour, nil
}
