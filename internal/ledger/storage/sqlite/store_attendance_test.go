package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/thekedar/labourbook/internal/ledger/storage"
)

func TestMarkAttendanceUpsertsOnSameDate(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	labour := seedLabour(t, store, 500)

	first, err := store.MarkAttendance(context.Background(), labour.ID, "2025-06-01", storage.WorkTypeFull, "")
	if err != nil {
		t.Fatalf("mark full day: %v", err)
	}
	second, err := store.MarkAttendance(context.Background(), labour.ID, "2025-06-01", storage.WorkTypeHalf, "left early")
	if err != nil {
		t.Fatalf("remark as half day: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("upsert created a new row: id %d then %d", first.ID, second.ID)
	}

	rows, err := store.ListAttendanceByLabour(context.Background(), labour.ID)
	if err != nil {
		t.Fatalf("list attendance: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("attendance rows = %d, want 1", len(rows))
	}
	if rows[0].WorkType != storage.WorkTypeHalf || rows[0].Notes != "left early" {
		t.Fatalf("row = %s/%q, want half/left early", rows[0].WorkType, rows[0].Notes)
	}
}

func TestMarkAttendanceRequiresLabour(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, err := store.MarkAttendance(context.Background(), 999, "2025-06-01", storage.WorkTypeFull, "")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("mark with missing labour error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestRemoveAttendanceIsIdempotent(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	labour := seedLabour(t, store, 500)

	if _, err := store.MarkAttendance(context.Background(), labour.ID, "2025-06-01", storage.WorkTypeFull, ""); err != nil {
		t.Fatalf("mark attendance: %v", err)
	}
	if err := store.RemoveAttendance(context.Background(), labour.ID, "2025-06-01"); err != nil {
		t.Fatalf("remove attendance: %v", err)
	}
	// Removing an absent mark is a no-op, not an error.
	if err := store.RemoveAttendance(context.Background(), labour.ID, "2025-06-01"); err != nil {
		t.Fatalf("remove absent attendance: %v", err)
	}

	rows, err := store.ListAttendanceByLabour(context.Background(), labour.ID)
	if err != nil {
		t.Fatalf("list attendance: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("attendance rows = %d, want 0", len(rows))
	}
}

func TestListAttendanceByLabourNewestFirst(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	labour := seedLabour(t, store, 500)

	for _, date := range []string{"2025-06-01", "2025-06-03", "2025-06-02"} {
		if _, err := store.MarkAttendance(context.Background(), labour.ID, date, storage.WorkTypeFull, ""); err != nil {
			t.Fatalf("mark %s: %v", date, err)
		}
	}

	rows, err := store.ListAttendanceByLabour(context.Background(), labour.ID)
	if err != nil {
		t.Fatalf("list attendance: %v", err)
	}
	want := []string{"2025-06-03", "2025-06-02", "2025-06-01"}
	if len(rows) != len(want) {
		t.Fatalf("attendance rows = %d, want %d", len(rows), len(want))
	}
	for i, date := range want {
		if rows[i].Date != date {
			t.Fatalf("rows[%d].Date = %s, want %s", i, rows[i].Date, date)
		}
	}
}

func TestListAttendanceByDateScopesToProject(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	user, err := store.CreateUser(context.Background(), "9876543210", "Demo Thekedar")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	siteA, err := store.CreateProject(context.Background(), user.ID, "Site A", "")
	if err != nil {
		t.Fatalf("create site A: %v", err)
	}
	siteB, err := store.CreateProject(context.Background(), user.ID, "Site B", "")
	if err != nil {
		t.Fatalf("create site B: %v", err)
	}

	ram, err := store.CreateLabour(context.Background(), siteA.ID, "Ram Kumar", "", 500)
	if err != nil {
		t.Fatalf("create ram: %v", err)
	}
	mohan, err := store.CreateLabour(context.Background(), siteA.ID, "Mohan Lal", "", 600)
	if err != nil {
		t.Fatalf("create mohan: %v", err)
	}
	other, err := store.CreateLabour(context.Background(), siteB.ID, "Shyam Singh", "", 450)
	if err != nil {
		t.Fatalf("create shyam: %v", err)
	}

	for _, id := range []int64{ram.ID, mohan.ID, other.ID} {
		if _, err := store.MarkAttendance(context.Background(), id, "2025-06-01", storage.WorkTypeFull, ""); err != nil {
			t.Fatalf("mark attendance for %d: %v", id, err)
		}
	}
	if _, err := store.MarkAttendance(context.Background(), ram.ID, "2025-06-02", storage.WorkTypeHalf, ""); err != nil {
		t.Fatalf("mark next day: %v", err)
	}

	rows, err := store.ListAttendanceByDate(context.Background(), siteA.ID, "2025-06-01")
	if err != nil {
		t.Fatalf("list attendance by date: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	// Ordered by labour name.
	if rows[0].LabourName != "Mohan Lal" || rows[1].LabourName != "Ram Kumar" {
		t.Fatalf("names = [%q %q], want [Mohan Lal Ram Kumar]", rows[0].LabourName, rows[1].LabourName)
	}
}
