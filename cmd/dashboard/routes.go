package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	getcostos "dwh-dashboard/http-server/costos/get"
	getdashboard "dwh-dashboard/http-server/dashboard/get"
	"dwh-dashboard/http-server/etl"
	"dwh-dashboard/http-server/report/export"
	getrendimiento "dwh-dashboard/http-server/rendimiento/get"
	gettable "dwh-dashboard/http-server/table/get"
	"dwh-dashboard/internal/config"
	"dwh-dashboard/internal/middleware/ratelimit"
	"dwh-dashboard/internal/middleware/secure"
	"dwh-dashboard/internal/observability"
	"dwh-dashboard/internal/service/dashboard"
	exportsvc "dwh-dashboard/internal/service/export"
)

type dependencies struct {
	dashboard *dashboard.Service
	export    *exportsvc.Service
	etl       etl.Runner
	feeds     etl.Invalidator
	metrics   *observability.Metrics
}

func routes(cfg config.Config, log *slog.Logger, deps dependencies) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(secure.Headers(cfg.Env == envProd))
	router.Use(deps.metrics.Middleware)

	router.Handle("/metrics", deps.metrics.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", getdashboard.GetOverview(log, deps.dashboard))
		r.Get("/rendimiento", getrendimiento.GetRendimiento(log, deps.dashboard))
		r.Get("/costos", getcostos.GetCostos(log, deps.dashboard))
		r.Get("/{domain}/table", gettable.GetTable(log, deps.dashboard))

		r.Get("/report/{domain}/excel", export.Excel(log, deps.export))
		r.Get("/report/{domain}/csv", export.CSV(log, deps.export))

		r.With(ratelimit.PerIP(cfg.RunsPerMinute)).Post("/etl/run", etl.Run(log, deps.etl, deps.feeds, cfg.InvalidateDelay))
		r.Get("/etl/status", etl.Status(log, deps.etl))
		r.Post("/refresh", etl.Refresh(log, deps.feeds))
	})

	frontendDir := cfg.FrontendDir
	if _, err := os.Stat(frontendDir); err != nil {
		log.Warn("frontend dir not found, serving the API only", slog.String("path", frontendDir))
		return router
	}

	fileServer := http.FileServer(http.Dir(frontendDir))
	router.Handle("/assets/*", fileServer)

	// SPA fallback: real files are served as is, every other path gets index.html
	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
	})

	return router
}
