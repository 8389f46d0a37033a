// Package storage defines persistence contracts for labour ledger state.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested ledger record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// WorkType classifies one attendance day.
type WorkType string

const (
	// WorkTypeFull counts as one full daily wage.
	WorkTypeFull WorkType = "full"
	// WorkTypeHalf counts as exactly half the daily wage.
	WorkTypeHalf WorkType = "half"
)

// PaymentType classifies a disbursement. Both variants reduce balance the
// same way; the distinction is informational.
type PaymentType string

const (
	PaymentTypeAdvance    PaymentType = "advance"
	PaymentTypeSettlement PaymentType = "settlement"
)

// User stores one contractor account keyed by phone number.
type User struct {
	ID        int64
	Phone     string
	Name      string
	CreatedAt time.Time
}

// Project stores one work site owned by a user. Deletion is a soft delete:
// Active flips to false and child rows stay in place.
type Project struct {
	ID          int64
	UserID      int64
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
}

// Labour stores one tracked worker under a project.
type Labour struct {
	ID        int64
	ProjectID int64
	Name      string
	Phone     string
	DailyWage float64
	CreatedAt time.Time
}

// Attendance stores one worked day for a labour. At most one row exists per
// (labour, date) pair.
type Attendance struct {
	ID        int64
	LabourID  int64
	Date      string
	WorkType  WorkType
	Notes     string
	CreatedAt time.Time
}

// Payment stores one cash disbursement made to a labour.
type Payment struct {
	ID        int64
	LabourID  int64
	Amount    float64
	Date      string
	Type      PaymentType
	Notes     string
	CreatedAt time.Time
}

// LabourWithStats augments a labour with ledger aggregates derived from its
// current daily wage and raw attendance/payment rows.
type LabourWithStats struct {
	Labour
	TotalEarned     float64
	TotalPaid       float64
	Balance         float64
	AttendanceCount int
}

// ProjectWithStats augments a project with per-project aggregates. Pending
// dues clamp each labour balance at zero so overpayments never offset other
// workers' dues.
type ProjectWithStats struct {
	Project
	LabourCount      int
	TotalPendingDues float64
}

// AttendanceWithLabour pairs an attendance row with its labour's name for
// per-date project views.
type AttendanceWithLabour struct {
	Attendance
	LabourName string
}

// UserStore persists contractor accounts.
type UserStore interface {
	CreateUser(ctx context.Context, phone, name string) (User, error)
	GetUser(ctx context.Context, id int64) (User, error)
	GetUserByPhone(ctx context.Context, phone string) (User, error)
}

// ProjectStore persists projects and their derived aggregates.
type ProjectStore interface {
	CreateProject(ctx context.Context, userID int64, name, description string) (Project, error)
	GetProject(ctx context.Context, id int64) (Project, error)
	UpdateProject(ctx context.Context, id int64, name, description string) error
	DeleteProject(ctx context.Context, id int64) error
	ListProjectsByUser(ctx context.Context, userID int64) ([]ProjectWithStats, error)
}

// LabourStore persists workers and their derived aggregates.
type LabourStore interface {
	CreateLabour(ctx context.Context, projectID int64, name, phone string, dailyWage float64) (Labour, error)
	GetLabourWithStats(ctx context.Context, id int64) (LabourWithStats, error)
	UpdateLabour(ctx context.Context, id int64, name, phone string, dailyWage float64) error
	DeleteLabour(ctx context.Context, id int64) error
	ListLaboursByProject(ctx context.Context, projectID int64) ([]LabourWithStats, error)
}

// AttendanceStore persists worked days.
type AttendanceStore interface {
	MarkAttendance(ctx context.Context, labourID int64, date string, workType WorkType, notes string) (Attendance, error)
	RemoveAttendance(ctx context.Context, labourID int64, date string) error
	ListAttendanceByLabour(ctx context.Context, labourID int64) ([]Attendance, error)
	ListAttendanceByDate(ctx context.Context, projectID int64, date string) ([]AttendanceWithLabour, error)
}

// PaymentStore persists disbursements.
type PaymentStore interface {
	AddPayment(ctx context.Context, labourID int64, amount float64, date string, paymentType PaymentType, notes string) (Payment, error)
	DeletePayment(ctx context.Context, id int64) error
	ListPaymentsByLabour(ctx context.Context, labourID int64) ([]Payment, error)
}

// LedgerStore bundles every persistence contract the service layer needs.
type LedgerStore interface {
	UserStore
	ProjectStore
	LabourStore
	AttendanceStore
	PaymentStore
}
