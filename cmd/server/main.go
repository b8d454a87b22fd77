package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"okr/internal/auth"
	"okr/internal/db"
	"okr/internal/domain/assessment"
	"okr/internal/domain/evaluation"
	"okr/internal/domain/reports"
	"okr/internal/domain/template"
	"okr/internal/platform/cache"
	"okr/internal/platform/config"
	"okr/internal/platform/metrics"
	"okr/internal/transport/http/api"
	assessmenthandler "okr/internal/transport/http/handlers/assessment"
	authhandler "okr/internal/transport/http/handlers/auth"
	evaluationhandler "okr/internal/transport/http/handlers/evaluation"
	reportshandler "okr/internal/transport/http/handlers/reports"
	templatehandler "okr/internal/transport/http/handlers/template"
	"okr/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	var snapshots *cache.Cache
	if cfg.RedisAddr != "" {
		snapshots, err = cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.SnapshotCacheTTL)
		if err != nil {
			log.Fatalf("redis connect failed: %v", err)
		}
		defer snapshots.Close()
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	userStore := auth.NewStore(pool)
	templateService := template.NewService(template.NewStore(pool))
	assessmentService := assessment.NewService(assessment.NewStore(pool), templateService, snapshots, collector)
	evaluationService := evaluation.NewService(evaluation.NewStore(pool), assessmentService, collector, cfg.AutosaveDebounce)
	reportService := reports.NewService(assessmentService, evaluationService, userStore, cfg.ReportsDir)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("db unreachable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(userStore, cfg.JWTSecret).RegisterRoutes(r)
		templatehandler.NewHandler(templateService).RegisterRoutes(r)
		assessmenthandler.NewHandler(assessmentService).RegisterRoutes(r)
		evaluationhandler.NewHandler(evaluationService, userStore).RegisterRoutes(r)
		reportshandler.NewHandler(reportService).RegisterRoutes(r)
	})

	log.Printf("OKR review server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
