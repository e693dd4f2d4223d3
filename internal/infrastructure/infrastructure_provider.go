package infrastructure

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"studio-server/internal/config"
	"studio-server/internal/infrastructure/crontab"
	"studio-server/internal/infrastructure/database"
	"studio-server/internal/infrastructure/database/repository"
	"studio-server/internal/infrastructure/logger"
	"studio-server/internal/infrastructure/notify"
	"studio-server/internal/infrastructure/realtime"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideLogger builds the process logger from configuration.
func ProvideLogger(cfg *config.Config) (zerolog.Logger, error) {
	return logger.New(cfg.LogLevel, cfg.LogFormat)
}

// ProvideDatabase provides a database connection
func ProvideDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Run migrations if AUTO_MIGRATE is enabled
	if cfg.AutoMigrate {
		log.Info().Msg("Running database migrations...")
		if err := database.AutoMigrate(db); err != nil {
			log.Error().Err(err).Msg("Failed to run database migrations")
			return nil, err
		}
		log.Info().Msg("Database migrations completed successfully")
	}

	return db, nil
}

// Infrastructure holds all infrastructure dependencies
type Infrastructure struct {
	DB     *gorm.DB
	Hub    *realtime.Hub
	Logger zerolog.Logger
}

// NewInfrastructure creates a new infrastructure instance
func NewInfrastructure(
	db *gorm.DB,
	hub *realtime.Hub,
	logger zerolog.Logger,
) *Infrastructure {
	return &Infrastructure{
		DB:     db,
		Hub:    hub,
		Logger: logger,
	}
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Logger
	ProvideLogger,

	// Database
	ProvideDatabase,

	// Repositories
	repository.RepositoryProvider,

	// Realtime hub
	realtime.NewHub,

	// Notifications
	notify.NewNotifier,

	// Crontab for appointment sweeps
	crontab.NewCrontab,

	// Infrastructure struct
	NewInfrastructure,
)
