package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/kritchasorn/lendger/internal/config"
	"github.com/kritchasorn/lendger/internal/database"
	"github.com/kritchasorn/lendger/internal/debt"
	debtStore "github.com/kritchasorn/lendger/internal/debt/store"
	"github.com/kritchasorn/lendger/internal/export"
	lendgerHttp "github.com/kritchasorn/lendger/internal/http"
	debtHandler "github.com/kritchasorn/lendger/internal/http/debt"
	exportHandler "github.com/kritchasorn/lendger/internal/http/export"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		debtService   = debt.NewService(debtStore.New(db))
		exportService = export.NewService(debtService)
	)

	var (
		debtH   = debtHandler.NewHandler(debtService)
		exportH = exportHandler.NewHandler(exportService)
	)

	router := lendgerHttp.New(debtH, exportH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
