package ui

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"gosurvey/app"
	"gosurvey/internal/metrics"
	"gosurvey/internal/report"
)

// App represents the HTTP query API over a loaded survey dataset
type App struct {
	router  *chi.Mux
	service *app.AnalyzerService
	metrics *metrics.Metrics
	promReg *prometheus.Registry
	report  report.Options
}

// Config holds HTTP application configuration
type Config struct {
	ReportOptions report.Options
}

// NewApp creates the HTTP application over an analyzer service
func NewApp(service *app.AnalyzerService, config Config) *App {
	promReg := prometheus.NewRegistry()
	m := metrics.New(promReg)

	ds := service.Dataset()
	m.DatasetQuestions.Set(float64(ds.Registry.Len()))
	m.DatasetRespondents.Set(float64(ds.Responses.Len()))

	a := &App{
		router:  chi.NewRouter(),
		service: service,
		metrics: m,
		promReg: promReg,
		report:  config.ReportOptions,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a
}

// Router returns the configured HTTP handler
func (a *App) Router() http.Handler {
	return a.router
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.RealIP)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(a.metricsMiddleware)
}

func (a *App) setupRoutes() {
	a.router.Route("/api", func(r chi.Router) {
		r.Get("/questions", a.handleListQuestions)
		r.Get("/questions/search", a.handleSearchQuestions)
		r.Get("/options/search", a.handleSearchOptions)
		r.Get("/questions/{id}", a.handleGetQuestion)
		r.Get("/questions/{id}/options", a.handleQuestionOptions)
		r.Get("/questions/{id}/distribution", a.handleDistribution)
		r.Get("/questions/{id}/summary", a.handleNumericSummary)
		r.Get("/subsets", a.handleCreateSubset)
		r.Get("/compare", a.handleCompare)
		r.Get("/independence", a.handleIndependence)
		r.Get("/report", a.handleReport)
	})

	a.router.Get("/healthz", a.handleHealth)
	a.router.Method(http.MethodGet, "/metrics", metrics.Handler(a.promReg))
}

// metricsMiddleware records request counts and latency per route
func (a *App) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		routePattern := chi.RouteContext(r.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = r.URL.Path
		}
		a.metrics.HTTPRequestsTotal.WithLabelValues(
			r.Method, routePattern, strconv.Itoa(ww.Status()),
		).Inc()
		a.metrics.HTTPRequestDuration.WithLabelValues(
			r.Method, routePattern,
		).Observe(time.Since(start).Seconds())
	})
}
