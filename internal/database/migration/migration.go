package migration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"coilapi/internal/database"
	"coilapi/internal/logging"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_coils",
		SQL: `CREATE TABLE IF NOT EXISTS coils (
  coil_id    UUID             PRIMARY KEY,
  length     DOUBLE PRECISION NOT NULL CONSTRAINT check_length_positive CHECK (length > 0),
  weight     DOUBLE PRECISION NOT NULL CONSTRAINT check_weight_positive CHECK (weight > 0),
  created_at TIMESTAMPTZ      NOT NULL,
  deleted_at TIMESTAMPTZ      NULL,
  CONSTRAINT check_deleted_after_created CHECK (deleted_at IS NULL OR deleted_at >= created_at)
);`,
	},
	{
		Name: "create_index_coils_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_coils_created_at ON coils (created_at);`,
	},
	{
		Name: "create_index_coils_deleted_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_coils_deleted_at ON coils (deleted_at);`,
	},
}

var dropSteps = []migrationStep{
	{
		Name: "drop_table_coils",
		SQL:  `DROP TABLE IF EXISTS coils;`,
	},
}

// EnsureMigrated checks if the 'coils' table exists and runs migrations if it doesn't.
// It is meant to run inside database.SessionManager.Connection.
func EnsureMigrated(ctx context.Context, tx database.DBTX, dbHost string) error {
	start := time.Now()
	log := logging.WithFields(ctx, "component", "database", "db_host", dbHost)

	log.Info("db_migration_check", "status", "starting")

	var exists bool
	query := "SELECT to_regclass('public.coils') IS NOT NULL"
	if err := tx.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			"status", "error",
			"error_message", fmt.Sprintf("failed to check sentinel table: %v", err),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			"status", "success",
			"detail", "schema already exists, skipping migration",
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}

	log.Info("db_migration_start", "status", "in_progress")
	if err := run(ctx, tx, steps, log.With("phase", "up")); err != nil {
		return err
	}

	log.Info("db_migration_success",
		"status", "success",
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// DropAll removes every table created by EnsureMigrated.
func DropAll(ctx context.Context, tx database.DBTX, dbHost string) error {
	start := time.Now()
	log := logging.WithFields(ctx, "component", "database", "db_host", dbHost)

	if err := run(ctx, tx, dropSteps, log.With("phase", "down")); err != nil {
		return err
	}

	log.Info("db_drop_success",
		"status", "success",
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func run(ctx context.Context, tx database.DBTX, plan []migrationStep, log *slog.Logger) error {
	for _, step := range plan {
		stepStart := time.Now()
		if _, err := tx.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				"status", "error",
				"migration_step", step.Name,
				"error_message", err.Error(),
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			"status", "success",
			"migration_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}
	return nil
}
