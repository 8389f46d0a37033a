// Package service exposes the sanctioned mutation and query operations over
// ledger storage. Every operation re-validates its input at this boundary
// before any write is attempted; the storage layer stays the final integrity
// authority for uniqueness and foreign keys.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/thekedar/labourbook/internal/ledger/storage"
)

const dateLayout = "2006-01-02"

// Service wraps an injected ledger store. The hosting process opens the
// store once and passes it in; there is no package-level handle.
type Service struct {
	store storage.LedgerStore
}

// New creates a ledger service over the provided store.
func New(store storage.LedgerStore) *Service {
	return &Service{store: store}
}

// validateDate requires a bare ISO calendar date with no time component.
func validateDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return "", fmt.Errorf("date is required")
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", fmt.Errorf("date must be formatted YYYY-MM-DD")
	}
	return date, nil
}

// validateLabourPhone accepts an empty phone; a present one must be exactly
// ten digits. Callers supply pre-trimmed digit strings per the UI contract,
// so no character stripping happens here.
func validateLabourPhone(phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", nil
	}
	if len(phone) != 10 {
		return "", fmt.Errorf("phone must be 10 digits")
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("phone must be 10 digits")
		}
	}
	return phone, nil
}

// RegisterUser creates a contractor account after phone verification.
func (s *Service) RegisterUser(ctx context.Context, phone, name string) (storage.User, error) {
	phone = strings.TrimSpace(phone)
	name = strings.TrimSpace(name)
	if phone == "" {
		return storage.User{}, fmt.Errorf("phone is required")
	}
	if name == "" {
		return storage.User{}, fmt.Errorf("name is required")
	}
	return s.store.CreateUser(ctx, phone, name)
}

// GetUser returns one account by id.
func (s *Service) GetUser(ctx context.Context, id int64) (storage.User, error) {
	return s.store.GetUser(ctx, id)
}

// GetUserByPhone returns one account by registered phone number.
func (s *Service) GetUserByPhone(ctx context.Context, phone string) (storage.User, error) {
	return s.store.GetUserByPhone(ctx, phone)
}

// CreateProject creates an active project for a user.
func (s *Service) CreateProject(ctx context.Context, userID int64, name, description string) (storage.Project, error) {
	if strings.TrimSpace(name) == "" {
		return storage.Project{}, fmt.Errorf("name is required")
	}
	return s.store.CreateProject(ctx, userID, name, description)
}

// GetProject returns one project by id regardless of its active flag.
func (s *Service) GetProject(ctx context.Context, id int64) (storage.Project, error) {
	return s.store.GetProject(ctx, id)
}

// UpdateProject overwrites a project's name and description.
func (s *Service) UpdateProject(ctx context.Context, id int64, name, description string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	return s.store.UpdateProject(ctx, id, name, description)
}

// DeleteProject soft-deletes a project. Its labours and their ledger rows
// are left untouched and stay addressable by id.
func (s *Service) DeleteProject(ctx context.Context, id int64) error {
	return s.store.DeleteProject(ctx, id)
}

// ListProjects returns a user's active projects, newest first, with
// aggregates.
func (s *Service) ListProjects(ctx context.Context, userID int64) ([]storage.ProjectWithStats, error) {
	return s.store.ListProjectsByUser(ctx, userID)
}

// CreateLabour adds a worker to a project. The daily wage must be
// non-negative; phone is optional.
func (s *Service) CreateLabour(ctx context.Context, projectID int64, name, phone string, dailyWage float64) (storage.Labour, error) {
	if strings.TrimSpace(name) == "" {
		return storage.Labour{}, fmt.Errorf("name is required")
	}
	phone, err := validateLabourPhone(phone)
	if err != nil {
		return storage.Labour{}, err
	}
	if dailyWage < 0 {
		return storage.Labour{}, fmt.Errorf("daily wage must not be negative")
	}
	return s.store.CreateLabour(ctx, projectID, name, phone, dailyWage)
}

// GetLabour returns one worker with ledger aggregates.
func (s *Service) GetLabour(ctx context.Context, id int64) (storage.LabourWithStats, error) {
	return s.store.GetLabourWithStats(ctx, id)
}

// UpdateLabour overwrites a worker's mutable fields. A changed wage
// retroactively reprices every historical attendance row on the next read.
func (s *Service) UpdateLabour(ctx context.Context, id int64, name, phone string, dailyWage float64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	phone, err := validateLabourPhone(phone)
	if err != nil {
		return err
	}
	if dailyWage < 0 {
		return fmt.Errorf("daily wage must not be negative")
	}
	return s.store.UpdateLabour(ctx, id, name, phone, dailyWage)
}

// DeleteLabour removes a worker and all of its attendance and payment rows
// atomically. Irreversible.
func (s *Service) DeleteLabour(ctx context.Context, id int64) error {
	return s.store.DeleteLabour(ctx, id)
}

// ListLabours returns a project's workers with aggregates, name ascending.
func (s *Service) ListLabours(ctx context.Context, projectID int64) ([]storage.LabourWithStats, error) {
	return s.store.ListLaboursByProject(ctx, projectID)
}

// MarkAttendance upserts the worked-day record for (labour, date).
func (s *Service) MarkAttendance(ctx context.Context, labourID int64, date string, workType storage.WorkType, notes string) (storage.Attendance, error) {
	date, err := validateDate(date)
	if err != nil {
		return storage.Attendance{}, err
	}
	if workType != storage.WorkTypeFull && workType != storage.WorkTypeHalf {
		return storage.Attendance{}, fmt.Errorf("work type must be full or half")
	}
	return s.store.MarkAttendance(ctx, labourID, date, workType, notes)
}

// RemoveAttendance deletes the record for (labour, date); removing an
// absent record is a no-op.
func (s *Service) RemoveAttendance(ctx context.Context, labourID int64, date string) error {
	date, err := validateDate(date)
	if err != nil {
		return err
	}
	return s.store.RemoveAttendance(ctx, labourID, date)
}

// ListAttendance returns a worker's attendance, newest date first.
func (s *Service) ListAttendance(ctx context.Context, labourID int64) ([]storage.Attendance, error) {
	return s.store.ListAttendanceByLabour(ctx, labourID)
}

// ListAttendanceByDate returns a project's attendance for one date, joined
// with labour names.
func (s *Service) ListAttendanceByDate(ctx context.Context, projectID int64, date string) ([]storage.AttendanceWithLabour, error) {
	date, err := validateDate(date)
	if err != nil {
		return nil, err
	}
	return s.store.ListAttendanceByDate(ctx, projectID, date)
}

// AddPayment records a disbursement. Overpayment is permitted and yields a
// negative balance on the next read.
func (s *Service) AddPayment(ctx context.Context, labourID int64, amount float64, date string, paymentType storage.PaymentType, notes string) (storage.Payment, error) {
	if amount <= 0 {
		return storage.Payment{}, fmt.Errorf("amount must be greater than zero")
	}
	date, err := validateDate(date)
	if err != nil {
		return storage.Payment{}, err
	}
	if paymentType != storage.PaymentTypeAdvance && paymentType != storage.PaymentTypeSettlement {
		return storage.Payment{}, fmt.Errorf("payment type must be advance or settlement")
	}
	return s.store.AddPayment(ctx, labourID, amount, date, paymentType, notes)
}

// DeletePayment removes one disbursement by id.
func (s *Service) DeletePayment(ctx context.Context, id int64) error {
	return s.store.DeletePayment(ctx, id)
}

// ListPayments returns a worker's disbursements, newest date first.
func (s *Service) ListPayments(ctx context.Context, labourID int64) ([]storage.Payment, error) {
	return s.store.ListPaymentsByLabour(ctx, labourID)
}
