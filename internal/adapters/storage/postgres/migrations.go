package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"dining-calendar/internal/platform/logger"
)

// Migration es un paso de esquema idempotente: Applied revisa su propia
// precondición y Apply solo corre si todavía no se aplicó.
type Migration struct {
	Name    string
	Applied func(ctx context.Context, tx *sql.Tx) (bool, error)
	Apply   func(ctx context.Context, tx *sql.Tx) error
}

// Migrations en orden. Solo aditivas: nunca se borran columnas ni se cambian tipos.
var Migrations = []Migration{
	{
		Name:    "create_dining_events",
		Applied: tableExists("dining_events"),
		Apply: execSQL(`
			CREATE TABLE dining_events (
				id BIGSERIAL PRIMARY KEY,
				title TEXT NOT NULL,
				date TIMESTAMPTZ NOT NULL,
				location TEXT NOT NULL,
				participants JSONB,
				cost_total NUMERIC NOT NULL DEFAULT 0,
				rating INTEGER NOT NULL DEFAULT 0,
				tags JSONB,
				notes TEXT NOT NULL DEFAULT '',
				image_path TEXT
			)
		`),
	},
	{
		Name:    "add_end_datetime",
		Applied: columnExists("dining_events", "end_datetime"),
		Apply:   execSQL(`ALTER TABLE dining_events ADD COLUMN end_datetime TIMESTAMPTZ NULL`),
	},
	{
		Name:    "add_category",
		Applied: columnExists("dining_events", "category"),
		Apply:   execSQL(`ALTER TABLE dining_events ADD COLUMN category TEXT NULL`),
	},
}

// Migrate aplica Migrations sobre db, cada paso en su propia transacción.
func Migrate(ctx context.Context, db *sql.DB, log logger.Logger) error {
	return RunMigrations(ctx, db, Migrations, log)
}

func RunMigrations(ctx context.Context, db *sql.DB, steps []Migration, log logger.Logger) error {
	for _, m := range steps {
		applied := false

		err := withTx(ctx, db, func(tx *sql.Tx) error {
			done, err := m.Applied(ctx, tx)
			if err != nil {
				return fmt.Errorf("check %s: %w", m.Name, err)
			}
			if done {
				return nil
			}
			if err := m.Apply(ctx, tx); err != nil {
				return fmt.Errorf("apply %s: %w", m.Name, err)
			}
			applied = true
			return nil
		})
		if err != nil {
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}

		if applied {
			log.Info("migration applied", map[string]any{"migration": m.Name})
		} else {
			log.Debug("migration already applied", map[string]any{"migration": m.Name})
		}
	}
	return nil
}

func tableExists(table string) func(ctx context.Context, tx *sql.Tx) (bool, error) {
	return func(ctx context.Context, tx *sql.Tx) (bool, error) {
		var ok bool
		err := tx.QueryRowContext(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.tables
				WHERE table_schema = current_schema() AND table_name = $1
			)
		`, table).Scan(&ok)
		return ok, err
	}
}

func columnExists(table, column string) func(ctx context.Context, tx *sql.Tx) (bool, error) {
	return func(ctx context.Context, tx *sql.Tx) (bool, error) {
		var ok bool
		err := tx.QueryRowContext(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.columns
				WHERE table_schema = current_schema() AND table_name = $1 AND column_name = $2
			)
		`, table, column).Scan(&ok)
		return ok, err
	}
}

func execSQL(stmt string) func(ctx context.Context, tx *sql.Tx) error {
	return func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, stmt)
		return err
	}
}
