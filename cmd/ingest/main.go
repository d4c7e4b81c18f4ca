package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/smartkitchen/inventory-api/internal/config"
	"github.com/smartkitchen/inventory-api/internal/ingest"
	"github.com/smartkitchen/inventory-api/internal/repository/postgres"
	"github.com/smartkitchen/inventory-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	logger.Setup(cfg.Server.Mode)

	if cfg.Drive.CredentialsJSON == "" {
		logger.Log.Fatal().Msg("DRIVE_CREDENTIALS_JSON is required")
	}

	driveService, err := ingest.NewDriveService(cfg.Drive.CredentialsJSON)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize Drive service")
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.EnsureSchema(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to set up schema")
	}

	repo := postgres.NewConsumptionRepository(db)
	ingestService := ingest.NewService(driveService, repo)

	r := mux.NewRouter()
	handler := ingest.NewHandler(driveService, ingestService)
	handler.RegisterRoutes(r)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	if cfg.Drive.FolderPath != "" {
		folderID, err := driveService.FindFolderByPath(cfg.Drive.FolderPath)
		if err != nil {
			logger.Log.Fatal().Err(err).Str("path", cfg.Drive.FolderPath).Msg("Failed to resolve Drive folder")
		}
		watcher := ingest.NewWatcher(ingestService, folderID, time.Duration(cfg.Drive.PollSeconds)*time.Second)
		go watcher.Run(ctx)
		logger.Log.Info().Str("folder", folderID).Msg("Drive watcher started")
	}

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Log.Info().Str("addr", addr).Msg("Ingest server starting")
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Log.Fatal().Err(err).Msg("Ingest server failed")
	}
}
