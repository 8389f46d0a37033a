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

// MarkAttendance upserts the attendance row for (labour, date). Re-marking
// an already recorded day overwrites its work type and notes instead of
// erroring, so the operation is idempotent per calendar day.
func (s *Store) MarkAttendance(ctx context.Context, labourID int64, date string, workType storage.WorkType, notes string) (storage.Attendance, error) {
	if err := ctx.Err(); err != nil {
		return storage.Attendance{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Attendance{}, fmt.Errorf("storage is not configured")
	}
	date = strings.TrimSpace(date)
	notes = strings.TrimSpace(notes)
	if date == "" {
		return storage.Attendance{}, fmt.Errorf("date is required")
	}
	if workType != storage.WorkTypeFull && workType != storage.WorkTypeHalf {
		return storage.Attendance{}, fmt.Errorf("work type must be full or half")
	}
	createdAt := time.Now().UTC()

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO attendance (labour_id, work_date, work_type, notes, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (labour_id, work_date)
		 DO UPDATE SET work_type = excluded.work_type, notes = excluded.notes`,
		labourID,
		date,
		string(workType),
		nullableText(notes),
		toMillis(createdAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return storage.Attendance{}, fmt.Errorf("labour %d: %w", labourID, storage.ErrNotFound)
		}
		return storage.Attendance{}, fmt.Errorf("mark attendance: %w", err)
	}

	return s.getAttendance(ctx, labourID, date)
}

// RemoveAttendance deletes the attendance row for (labour, date). Removing
// an absent row is a no-op.
func (s *Store) RemoveAttendance(ctx context.Context, labourID int64, date string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	date = strings.TrimSpace(date)
	if date == "" {
		return fmt.Errorf("date is required")
	}

	if _, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM attendance WHERE labour_id = ? AND work_date = ?`,
		labourID,
		date,
	); err != nil {
		return fmt.Errorf("remove attendance: %w", err)
	}
	return nil
}

// ListAttendanceByLabour returns a worker's attendance rows, newest date
// first.
func (s *Store) ListAttendanceByLabour(ctx context.Context, labourID int64) ([]storage.Attendance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, labour_id, work_date, work_type, notes, created_at
		   FROM attendance
		  WHERE labour_id = ?
		  ORDER BY work_date DESC`,
		labourID,
	)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	records := make([]storage.Attendance, 0)
	for rows.Next() {
		record, err := scanAttendance(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list attendance: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// ListAttendanceByDate returns every attendance row recorded on one date
// across a project's workers, joined with the labour name and ordered by it.
func (s *Store) ListAttendanceByDate(ctx context.Context, projectID int64, date string) ([]storage.AttendanceWithLabour, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, fmt.Errorf("date is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT a.id, a.labour_id, a.work_date, a.work_type, a.notes, a.created_at, l.name
		   FROM attendance a
		   JOIN labours l ON a.labour_id = l.id
		  WHERE l.project_id = ? AND a.work_date = ?
		  ORDER BY l.name ASC`,
		projectID,
		date,
	)
	if err != nil {
		return nil, fmt.Errorf("list attendance by date: %w", err)
	}
	defer rows.Close()

	records := make([]storage.AttendanceWithLabour, 0)
	for rows.Next() {
		var record storage.AttendanceWithLabour
		var workType string
		var notes sql.NullString
		var createdAt int64
		if err := rows.Scan(
			&record.ID,
			&record.LabourID,
			&record.Date,
			&workType,
			&notes,
			&createdAt,
			&record.LabourName,
		); err != nil {
			return nil, fmt.Errorf("list attendance by date: %w", err)
		}
		record.WorkType = storage.WorkType(workType)
		record.Notes = notes.String
		record.CreatedAt = fromMillis(createdAt)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attendance by date: %w", err)
	}
	return records, nil
}

func (s *Store) getAttendance(ctx context.Context, labourID int64, date string) (storage.Attendance, error) {
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, labour_id, work_date, work_type, notes, created_at
		   FROM attendance
		  WHERE labour_id = ? AND work_date = ?`,
		labourID,
		date,
	)
	record, err := scanAttendance(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Attendance{}, storage.ErrNotFound
		}
		return storage.Attendance{}, fmt.Errorf("get attendance: %w", err)
	}
	return record, nil
}

func scanAttendance(scan func(dest ...any) error) (storage.Attendance, error) {
	var record storage.Attendance
	var workType string
	var notes sql.NullString
	var createdAt int64
	if err := scan(
		&record.ID,
		&record.LabourID,
		&record.Date,
		&workType,
		&notes,
		&createdAt,
	); err != nil {
		return storage.Attendance{}, err
	}
	record.WorkType = storage.WorkType(workType)
	record.Notes = notes.String
	record.CreatedAt = fromMillis(createdAt)
	return record, nil
}
