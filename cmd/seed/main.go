// Package main provides a CLI for seeding a local labourbook database with
// demo data by exercising the service layer end to end.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/thekedar/labourbook/internal/ledger/service"
	"github.com/thekedar/labourbook/internal/ledger/storage"
	ledgersqlite "github.com/thekedar/labourbook/internal/ledger/storage/sqlite"
	"github.com/thekedar/labourbook/internal/platform/config"
)

func main() {
	var dbPath string
	var days int
	var verbose bool

	flag.StringVar(&dbPath, "db", filepath.Join("data", "labourbook.db"), "path to the SQLite database")
	flag.IntVar(&days, "days", 14, "number of past days to mark attendance for")
	flag.BoolVar(&verbose, "v", false, "verbose output")
	flag.Parse()

	if days < 1 {
		config.Exitf("days must be at least 1")
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			config.Exitf("create storage dir: %v", err)
		}
	}

	store, err := ledgersqlite.Open(dbPath)
	if err != nil {
		config.Exitf("open store: %v", err)
	}
	defer store.Close()

	if err := seed(context.Background(), service.New(store), days, verbose); err != nil {
		config.Exitf("seed: %v", err)
	}
	fmt.Println("seeded", dbPath)
}

func seed(ctx context.Context, svc *service.Service, days int, verbose bool) error {
	user, err := svc.RegisterUser(ctx, "9876543210", "Demo Thekedar")
	if err != nil {
		return fmt.Errorf("register user: %w", err)
	}

	project, err := svc.CreateProject(ctx, user.ID, "Riverside Apartments", "Block A foundation work")
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	workers := []struct {
		name  string
		phone string
		wage  float64
	}{
		{name: "Ram Kumar", phone: "9000000001", wage: 500},
		{name: "Shyam Singh", phone: "9000000002", wage: 450},
		{name: "Mohan Lal", phone: "", wage: 600},
	}

	today := time.Now().UTC()
	for i, w := range workers {
		labour, err := svc.CreateLabour(ctx, project.ID, w.name, w.phone, w.wage)
		if err != nil {
			return fmt.Errorf("create labour %s: %w", w.name, err)
		}

		for d := 0; d < days; d++ {
			date := today.AddDate(0, 0, -d).Format("2006-01-02")
			workType := storage.WorkTypeFull
			// Every third day is a half day, staggered per worker.
			if (d+i)%3 == 0 {
				workType = storage.WorkTypeHalf
			}
			if _, err := svc.MarkAttendance(ctx, labour.ID, date, workType, ""); err != nil {
				return fmt.Errorf("mark attendance for %s on %s: %w", w.name, date, err)
			}
		}

		payDate := today.AddDate(0, 0, -1).Format("2006-01-02")
		if _, err := svc.AddPayment(ctx, labour.ID, w.wage*2, payDate, storage.PaymentTypeAdvance, "weekly advance"); err != nil {
			return fmt.Errorf("add payment for %s: %w", w.name, err)
		}

		if verbose {
			stats, err := svc.GetLabour(ctx, labour.ID)
			if err != nil {
				return fmt.Errorf("reload labour %s: %w", w.name, err)
			}
			fmt.Printf("%s: earned %.2f, paid %.2f, balance %.2f\n",
				stats.Name, stats.TotalEarned, stats.TotalPaid, stats.Balance)
		}
	}

	return nil
}
