package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/thekedar/labourbook/internal/ledger/storage"
	ledgersqlite "github.com/thekedar/labourbook/internal/ledger/storage/sqlite"
)

func TestRegisterUserValidation(t *testing.T) {
	t.Parallel()

	svc := openTempService(t)
	cases := []struct {
		name      string
		phone     string
		userName  string
		wantError bool
	}{
		{name: "valid", phone: "9876543210", userName: "Demo Thekedar"},
		{name: "missing phone", phone: "", userName: "Demo Thekedar", wantError: true},
		{name: "missing name", phone: "9876543211", userName: "   ", wantError: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RegisterUser(context.Background(), tc.phone, tc.userName)
			if tc.wantError && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantError && err != nil {
				t.Fatalf("register user: %v", err)
			}
		})
	}
}

func TestCreateLabourValidation(t *testing.T) {
	t.Parallel()

	svc := openTempService(t)
	project := seedProject(t, svc)

	cases := []struct {
		name       string
		labourName string
		phone      string
		wage       float64
		wantError  bool
	}{
		{name: "valid", labourName: "Ram Kumar", phone: "9000000001", wage: 500},
		{name: "empty phone is fine", labourName: "Mohan Lal", phone: "", wage: 600},
		{name: "zero wage is fine", labourName: "Shyam Singh", phone: "", wage: 0},
		{name: "missing name", labourName: " ", phone: "", wage: 500, wantError: true},
		{name: "short phone", labourName: "Ram Kumar", phone: "12345", wage: 500, wantError: true},
		{name: "non-digit phone", labourName: "Ram Kumar", phone: "90000abc01", wage: 500, wantError: true},
		{name: "negative wage", labourName: "Ram Kumar", phone: "", wage: -1, wantError: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateLabour(context.Background(), project.ID, tc.labourName, tc.phone, tc.wage)
			if tc.wantError && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantError && err != nil {
				t.Fatalf("create labour: %v", err)
			}
		})
	}
}

func TestMarkAttendanceValidation(t *testing.T) {
	t.Parallel()

	svc := openTempService(t)
	labour := seedLabour(t, svc)

	cases := []struct {
		name      string
		date      string
		workType  storage.WorkType
		wantError bool
	}{
		{name: "full day", date: "2025-06-01", workType: storage.WorkTypeFull},
		{name: "half day", date: "2025-06-02", workType: storage.WorkTypeHalf},
		{name: "empty date", date: "", workType: storage.WorkTypeFull, wantError: true},
		{name: "wrong date layout", date: "01-06-2025", workType: storage.WorkTypeFull, wantError: true},
		{name: "date with time", date: "2025-06-01T10:00:00Z", workType: storage.WorkTypeFull, wantError: true},
		{name: "unknown work type", date: "2025-06-03", workType: storage.WorkType("overtime"), wantError: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.MarkAttendance(context.Background(), labour.ID, tc.date, tc.workType, "")
			if tc.wantError && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantError && err != nil {
				t.Fatalf("mark attendance: %v", err)
			}
		})
	}
}

func TestAddPaymentValidation(t *testing.T) {
	t.Parallel()

	svc := openTempService(t)
	labour := seedLabour(t, svc)

	cases := []struct {
		name      string
		amount    float64
		date      string
		payType   storage.PaymentType
		wantError bool
	}{
		{name: "advance", amount: 300, date: "2025-06-01", payType: storage.PaymentTypeAdvance},
		{name: "settlement", amount: 0.01, date: "2025-06-02", payType: storage.PaymentTypeSettlement},
		{name: "zero amount", amount: 0, date: "2025-06-01", payType: storage.PaymentTypeAdvance, wantError: true},
		{name: "negative amount", amount: -10, date: "2025-06-01", payType: storage.PaymentTypeAdvance, wantError: true},
		{name: "bad date", amount: 100, date: "June 1", payType: storage.PaymentTypeAdvance, wantError: true},
		{name: "unknown type", amount: 100, date: "2025-06-01", payType: storage.PaymentType("bonus"), wantError: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddPayment(context.Background(), labour.ID, tc.amount, tc.date, tc.payType, "")
			if tc.wantError && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantError && err != nil {
				t.Fatalf("add payment: %v", err)
			}
		})
	}
}

func TestProjectNameRequired(t *testing.T) {
	t.Parallel()

	svc := openTempService(t)
	user, err := svc.RegisterUser(context.Background(), "9876543210", "Demo Thekedar")
	if err != nil {
		t.Fatalf("register user: %v", err)
	}

	if _, err := svc.CreateProject(context.Background(), user.ID, "  ", ""); err == nil {
		t.Fatal("expected create validation error")
	}

	project, err := svc.CreateProject(context.Background(), user.ID, "Riverside Apartments", "")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if err := svc.UpdateProject(context.Background(), project.ID, "", ""); err == nil {
		t.Fatal("expected update validation error")
	}
}

func openTempService(t *testing.T) *Service {
	t.Helper()

	store, err := ledgersqlite.Open(filepath.Join(t.TempDir(), "labourbook.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return New(store)
}

func seedProject(t *testing.T, svc *Service) storage.Project {
	t.Helper()

	user, err := svc.RegisterUser(context.Background(), "9999999999", "Seed Thekedar")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	project, err := svc.CreateProject(context.Background(), user.ID, "Seed Site", "")
	if err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return project
}

func seedLabour(t *testing.T, svc *Service) storage.Labour {
	t.Helper()

	project := seedProject(t, svc)
	labour, err := svc.CreateLabour(context.Background(), project.ID, "Ram Kumar", "", 500)
	if err != nil {
		t.Fatalf("seed labour: %v", err)
	}
	return labour
}
