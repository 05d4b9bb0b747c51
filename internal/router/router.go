package router

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"dining-calendar/internal/adapters/storage/localfs"
	mem "dining-calendar/internal/adapters/storage/memory"
	pg "dining-calendar/internal/adapters/storage/postgres"
	"dining-calendar/internal/domain/dining"
	"dining-calendar/internal/domain/uploads"
	"dining-calendar/internal/middleware"
	"dining-calendar/internal/platform/logger"

	_ "dining-calendar/internal/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger   logger.Logger
	Location *time.Location

	UploadDir         string
	UploadURLPrefix   string
	MaxUploadBytes    int64
	UniqueUploadNames bool

	AllowedOrigins []string
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	var eventRepo dining.Repository
	if opts.DB != nil {
		eventRepo = pg.NewDiningRepo(opts.DB)
	} else {
		eventRepo = mem.NewDiningRepo()
	}

	uploadDir := opts.UploadDir
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	store, err := localfs.NewStore(uploadDir)
	if err != nil {
		return nil, fmt.Errorf("uploads: %w", err)
	}

	// Services por módulo
	diningSvc := dining.NewService(eventRepo, dining.NewNormalizer(opts.Location))
	uploadsSvc := uploads.NewService(store, uploads.Options{UniqueNames: opts.UniqueUploadNames})

	// Rutas por módulo
	dining.RegisterRoutes(r, diningSvc, log)
	uploads.RegisterRoutes(r, uploadsSvc, uploads.HandlerOptions{
		MaxBytes:  opts.MaxUploadBytes,
		Dir:       store.Dir(),
		URLPrefix: opts.UploadURLPrefix,
	}, log)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r, nil
}
