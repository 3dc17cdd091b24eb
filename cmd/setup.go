package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/roster/internal/shared"
	"github.com/desertthunder/roster/internal/store"
	"github.com/urfave/cli/v3"
)

// Setup writes config.toml from the template when missing and prepares the configured backend.
//
// For the file backend it creates the data directory; for sqlite it creates the database and runs migrations.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		config, err := shared.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load created config: %w", err)
		}
		r.config = config
		r.writePlain("✓ Created %s\n", configPath)
	}

	switch r.config.Storage.Backend {
	case shared.BackendSQLite:
		r.logger.Info("initializing database", "path", r.config.Database.Path)

		db, err := shared.NewDatabase(r.config.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to create database: %w", err)
		}
		defer db.Close()

		shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

		r.logger.Info("running database migrations")
		if err := shared.RunMigrations(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		r.writePlain("✓ Database ready at %s\n", r.config.Database.Path)
	default:
		if err := os.MkdirAll(r.config.Storage.Dir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
		backend, err := store.NewFileBackend(r.config.Storage.Dir, r.config.Storage.Encoding)
		if err != nil {
			return err
		}
		if _, err := store.Open(backend); err != nil {
			return fmt.Errorf("existing data is unreadable: %w", err)
		}
		r.writePlain("✓ Data directory ready at %s\n", r.config.Storage.Dir)
	}

	r.logger.Infof("setup complete for %s backend", r.config.Storage.Backend)
	return nil
}
