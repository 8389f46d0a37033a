package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/thekedar/labourbook/internal/ledger/storage"
)

func TestCreateLabourRequiresProject(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, err := store.CreateLabour(context.Background(), 999, "Ram Kumar", "", 500)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("create with missing project error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestCreateLabourAllowsEmptyPhone(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	project := seedProject(t, store)

	labour, err := store.CreateLabour(context.Background(), project.ID, "Mohan Lal", "", 600)
	if err != nil {
		t.Fatalf("create labour: %v", err)
	}

	got, err := store.GetLabourWithStats(context.Background(), labour.ID)
	if err != nil {
		t.Fatalf("get labour: %v", err)
	}
	if got.Phone != "" {
		t.Fatalf("phone = %q, want empty", got.Phone)
	}
}

func TestUpdateLabour(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	labour := seedLabour(t, store, 500)

	if err := store.UpdateLabour(context.Background(), labour.ID, "Ram Kumar Singh", "9000000009", 550); err != nil {
		t.Fatalf("update labour: %v", err)
	}

	got, err := store.GetLabourWithStats(context.Background(), labour.ID)
	if err != nil {
		t.Fatalf("get labour: %v", err)
	}
	if got.Name != "Ram Kumar Singh" || got.Phone != "9000000009" || got.DailyWage != 550 {
		t.Fatalf("labour = %q/%q/%.0f, want Ram Kumar Singh/9000000009/550", got.Name, got.Phone, got.DailyWage)
	}
}

func TestUpdateLabourMissingReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if err := store.UpdateLabour(context.Background(), 77, "X", "", 100); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("update missing labour error = %v, want %v", err, storage.ErrNotFound)
	}
}

// Labour deletion is a hard cascade, unlike project deletion: the labour row
// goes away together with every attendance and payment row it owns.
func TestDeleteLabourCascades(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	labour := seedLabour(t, store, 500)

	if _, err := store.MarkAttendance(context.Background(), labour.ID, "2025-06-01", storage.WorkTypeFull, ""); err != nil {
		t.Fatalf("mark attendance: %v", err)
	}
	if _, err := store.AddPayment(context.Background(), labour.ID, 300, "2025-06-01", storage.PaymentTypeAdvance, ""); err != nil {
		t.Fatalf("add payment: %v", err)
	}

	if err := store.DeleteLabour(context.Background(), labour.ID); err != nil {
		t.Fatalf("delete labour: %v", err)
	}

	if _, err := store.GetLabourWithStats(context.Background(), labour.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get deleted labour error = %v, want %v", err, storage.ErrNotFound)
	}
	attendance, err := store.ListAttendanceByLabour(context.Background(), labour.ID)
	if err != nil {
		t.Fatalf("list attendance: %v", err)
	}
	if len(attendance) != 0 {
		t.Fatalf("attendance rows after cascade = %d, want 0", len(attendance))
	}
	payments, err := store.ListPaymentsByLabour(context.Background(), labour.ID)
	if err != nil {
		t.Fatalf("list payments: %v", err)
	}
	if len(payments) != 0 {
		t.Fatalf("payment rows after cascade = %d, want 0", len(payments))
	}
}

func TestDeleteLabourMissingReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if err := store.DeleteLabour(context.Background(), 77); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("delete missing labour error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestListLaboursByProjectOrdersByName(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	project := seedProject(t, store)
	for _, name := range []string{"Shyam Singh", "Mohan Lal", "Ram Kumar"} {
		if _, err := store.CreateLabour(context.Background(), project.ID, name, "", 500); err != nil {
			t.Fatalf("create labour %s: %v", name, err)
		}
	}

	labours, err := store.ListLaboursByProject(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("list labours: %v", err)
	}
	want := []string{"Mohan Lal", "Ram Kumar", "Shyam Singh"}
	if len(labours) != len(want) {
		t.Fatalf("listed %d labours, want %d", len(labours), len(want))
	}
	for i, name := range want {
		if labours[i].Name != name {
			t.Fatalf("labours[%d] = %q, want %q", i, labours[i].Name, name)
		}
	}
}
