// main.go
package main

import (
	"context"
	"log"

	"syndl/cmd"
	"syndl/internal/data/repository"
	"syndl/internal/wire"
	"syndl/pkg/database"
	"syndl/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to the local durable store
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to open local store", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Local store ready", zap.String("path", config.Database.Path))

	// Connect to the remote synchronized store. A failure here is not fatal:
	// the catalog falls back to the local snapshot.
	rdb, err := database.InitRedis(config.Redis)
	if err != nil {
		logger.Warn("Remote store unavailable, running local-only", zap.Error(err))
		rdb = nil
	} else {
		defer rdb.Close()
		logger.Info("Remote store connected", zap.String("addr", config.Redis.Addr))
	}

	// Initialize repositories over both backends
	repos := repository.NewRepository(db, rdb, config.Redis.CatalogKey, config.Redis.CatalogChannel, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	// Populate the catalog before accepting traffic
	app.Service.Catalog.Initialize(context.Background(), func() {
		logger.Info("Catalog ready")
	})

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
