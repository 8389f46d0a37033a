package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/thekedar/labourbook/internal/ledger/storage"
)

// AddPayment inserts one disbursement for a worker. The amount is never
// checked against the current balance: overpaying is allowed and shows up
// as a negative balance.
func (s *Store) AddPayment(ctx context.Context, labourID int64, amount float64, date string, paymentType storage.PaymentType, notes string) (storage.Payment, error) {
	if err := ctx.Err(); err != nil {
		return storage.Payment{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Payment{}, fmt.Errorf("storage is not configured")
	}
	date = strings.TrimSpace(date)
	notes = strings.TrimSpace(notes)
	if amount <= 0 {
		return storage.Payment{}, fmt.Errorf("amount must be greater than zero")
	}
	if date == "" {
		return storage.Payment{}, fmt.Errorf("date is required")
	}
	if paymentType != storage.PaymentTypeAdvance && paymentType != storage.PaymentTypeSettlement {
		return storage.Payment{}, fmt.Errorf("payment type must be advance or settlement")
	}
	createdAt := time.Now().UTC()

	result, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO payments (labour_id, amount, pay_date, pay_type, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		labourID,
		amount,
		date,
		string(paymentType),
		nullableText(notes),
		toMillis(createdAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return storage.Payment{}, fmt.Errorf("labour %d: %w", labourID, storage.ErrNotFound)
		}
		return storage.Payment{}, fmt.Errorf("add payment: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return storage.Payment{}, fmt.Errorf("add payment id: %w", err)
	}

	return storage.Payment{
		ID:        id,
		LabourID:  labourID,
		Amount:    amount,
		Date:      date,
		Type:      paymentType,
		Notes:     notes,
		CreatedAt: createdAt,
	}, nil
}

// DeletePayment removes one disbursement by id.
func (s *Store) DeletePayment(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM payments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return requireRowAffected(result, "payment", id)
}

// ListPaymentsByLabour returns a worker's disbursements, newest date first.
func (s *Store) ListPaymentsByLabour(ctx context.Context, labourID int64) ([]storage.Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, labour_id, amount, pay_date, pay_type, notes, created_at
		   FROM payments
		  WHERE labour_id = ?
		  ORDER BY pay_date DESC`,
		labourID,
	)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	payments := make([]storage.Payment, 0)
	for rows.Next() {
		var payment storage.Payment
		var payType string
		var notes sql.NullString
		var createdAt int64
		if err := rows.Scan(
			&payment.ID,
			&payment.LabourID,
			&payment.Amount,
			&payment.Date,
			&payType,
			&notes,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("list payments: %w", err)
		}
		payment.Type = storage.PaymentType(payType)
		payment.Notes = notes.String
		payment.CreatedAt = fromMillis(createdAt)
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}
