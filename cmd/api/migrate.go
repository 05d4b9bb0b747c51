package main

import (
	"errors"
	"fmt"

	pg "dining-calendar/internal/adapters/storage/postgres"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Aplica los pasos de esquema pendientes sobre database.dsn.
Cada paso revisa su propia precondición, así que se puede correr varias veces.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.Database.DSN == "" {
			return errors.New("database.dsn is required for migrate")
		}

		ctx := cmd.Context()
		db, err := pg.Open(ctx, cfg.Database.DSN, pg.PoolOptions{
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
		})
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()

		log.Info("running database migrations", nil)
		if err := pg.Migrate(ctx, db, log); err != nil {
			return err
		}
		log.Info("database migrations completed", nil)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
