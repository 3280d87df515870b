package database

import (
	"fmt"
	"log/slog" // use slog for structured logging

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"bibliobot/internal/config"
	"bibliobot/internal/repository"
	"bibliobot/internal/repository/airtable"
	"bibliobot/internal/repository/sqlstore"
)

// OpenRepository builds the record store selected by cfg.StoreBackend.
// The returned close function releases any held connections.
func OpenRepository(cfg *config.Config, logger *slog.Logger) (repository.BookRepository, func() error, error) {
	switch cfg.StoreBackend {
	case config.BackendAirtable:
		client := airtable.NewClient(airtable.Options{
			BaseURL:   cfg.AirtableAPIURL,
			APIKey:    cfg.AirtableAPIKey,
			BaseID:    cfg.AirtableBaseID,
			Table:     cfg.AirtableTable,
			Timeout:   cfg.RequestTimeout,
			RateLimit: cfg.AirtableRateLimit,
			Logger:    logger,
		})
		logger.Info("record_store_ready", "backend", cfg.StoreBackend, "table", cfg.AirtableTable)
		return client, func() error { return nil }, nil

	case config.BackendPostgres, config.BackendSQLite:
		db, err := ConnectDB(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get database instance: %w", err)
		}
		store, err := sqlstore.New(db)
		if err != nil {
			sqlDB.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info("record_store_ready", "backend", cfg.StoreBackend)
		return store, sqlDB.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// ConnectDB opens the SQL database for the postgres or sqlite backend
func ConnectDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.StoreBackend == config.BackendPostgres {
		dialector = postgres.Open(cfg.DatabaseURL)
	} else {
		dialector = sqlite.Open(cfg.DatabaseURL)
	}

	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
	if cfg.LogLevel == "debug" {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Verify the connection
	if err := sqlDB.Ping(); err != nil {
		// close the db handle if ping fails to avoid resource leak
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Connected to the database successfully", "backend", cfg.StoreBackend)
	return db, nil
}
