package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	pg "dining-calendar/internal/adapters/storage/postgres"
	"dining-calendar/internal/router"

	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		return runServer(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServer(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	h, err := router.NewRouter(router.Options{
		DB:                db,
		Logger:            log,
		Location:          cfg.Time.Location,
		UploadDir:         cfg.Uploads.Dir,
		UploadURLPrefix:   cfg.Uploads.URLPrefix,
		MaxUploadBytes:    cfg.Uploads.MaxBytes,
		UniqueUploadNames: cfg.Uploads.UniqueNames,
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped", nil)
	return nil
}

// openDatabase abre Postgres y aplica migraciones. Sin DSN devuelve nil (modo memoria).
func openDatabase(ctx context.Context) (*sql.DB, error) {
	if cfg.Database.DSN == "" {
		log.Warn("database.dsn not set; using in-memory storage", nil)
		return nil, nil
	}

	db, err := pg.Open(ctx, cfg.Database.DSN, pg.PoolOptions{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := pg.Migrate(ctx, db, log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}
