package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/preclinic/triage/internal/api/handlers"
	mw "github.com/preclinic/triage/internal/api/middleware"
	"github.com/preclinic/triage/internal/buildconfig"
	"github.com/preclinic/triage/internal/config"
	"github.com/preclinic/triage/internal/domain"
	"github.com/preclinic/triage/internal/service"
)

// App holds the router and shared services.
type App struct {
	Router   *chi.Mux
	Sessions *service.SessionService

	kb           *domain.KnowledgeBase
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(kb *domain.KnowledgeBase, llmClient domain.LLMClient, logger *zap.Logger) *App {
	// Services
	sessionSvc := service.NewSessionService(kb, logger)
	interviewSvc := service.NewInterviewService(sessionSvc, llmClient, config.MaxQuestions(), logger)
	reportSvc := service.NewReportService(interviewSvc, llmClient, logger)

	// Handlers
	sessionHandler := handlers.NewSessionHandler(sessionSvc, interviewSvc)
	interviewHandler := handlers.NewInterviewHandler(interviewSvc)
	reportHandler := handlers.NewReportHandler(reportSvc)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		Sessions:  sessionSvc,
		kb:        kb,
		startTime: time.Now(),
	}

	// Metrics collector for middleware
	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	// Health and metrics (no auth)
	r.Get("/health", app.healthHandler())
	r.Get("/metrics", app.metricsHandler())

	// Authenticated routes
	r.Route("/v1", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(config.APIKey()))

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", sessionHandler.Snapshot)
				r.Delete("/", sessionHandler.Delete)
				r.Post("/restart", sessionHandler.Restart)
				r.Post("/utterance", interviewHandler.Utterance)
				r.Post("/answers", interviewHandler.Answer)
				r.Post("/question", interviewHandler.NextQuestion)
				r.Get("/cooccurring", interviewHandler.Cooccurring)
				r.Get("/report", reportHandler.Generate)
			})
		})
	})

	return app
}

// healthHandler reports liveness plus the degraded flag callers must react
// to when the dataset failed to load (empty knowledge base).
func (app *App) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		if app.kb.Empty() {
			status = "degraded"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":     status,
			"conditions": app.kb.Len(),
			"version":    buildconfig.Version(),
			"commit":     buildconfig.Commit(),
		})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}
