// Command labourbook serves the labour ledger as MCP tools over stdio.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	ledgermcp "github.com/thekedar/labourbook/internal/ledger/mcp"
	"github.com/thekedar/labourbook/internal/ledger/service"
	ledgersqlite "github.com/thekedar/labourbook/internal/ledger/storage/sqlite"
	"github.com/thekedar/labourbook/internal/platform/config"
	platformotel "github.com/thekedar/labourbook/internal/platform/otel"
)

type serverEnv struct {
	DBPath string `env:"LABOURBOOK_DB_PATH"`
}

func loadServerEnv() (serverEnv, error) {
	var cfg serverEnv
	if err := config.ParseEnv(&cfg); err != nil {
		return serverEnv{}, err
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "labourbook.db")
	}
	return cfg, nil
}

func main() {
	log.SetPrefix("[labourbook] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOtel, err := platformotel.Setup(ctx, "labourbook")
	if err != nil {
		log.Fatalf("setup telemetry: %v", err)
	}
	defer func() {
		if err := shutdownOtel(context.Background()); err != nil {
			log.Printf("shutdown telemetry: %v", err)
		}
	}()

	env, err := loadServerEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	store, err := openLedgerStore(env.DBPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	server, err := ledgermcp.NewServer(service.New(store))
	if err != nil {
		log.Fatalf("build MCP server: %v", err)
	}

	if err := server.Serve(ctx); err != nil {
		log.Fatalf("failed to serve MCP: %v", err)
	}
}

func openLedgerStore(path string) (*ledgersqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := ledgersqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ledger sqlite store: %w", err)
	}
	return store, nil
}
