package cmd

import (
	"fmt"

	"stash-recipes/core/config"
	"stash-recipes/core/database"
	"stash-recipes/core/logger"
	"stash-recipes/feature/recipes"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// setup loads the configuration and builds the logger every command starts with.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logg, nil
}

// connectHistory opens and migrates the run history database. The database is optional:
// failures are logged and a nil handle is returned.
func connectHistory(cfg *config.Config, logg *zap.Logger) *gorm.DB {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
		return nil
	}
	if err := recipes.Migrate(db); err != nil {
		logg.Warn("Failed to migrate history table", zap.Error(err))
		return nil
	}
	logg.Info("Connected to history database", zap.String("driver", cfg.Database.Driver))
	return db
}
