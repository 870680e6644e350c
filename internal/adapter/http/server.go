package http

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/reservoir-dashboard/internal/domain"
	"github.com/couchcryptid/reservoir-dashboard/internal/presenter"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

const pageTitle = "Reservoir Storage Dashboard"

// Runner executes one render pass per page load.
type Runner interface {
	sharedobs.ReadinessChecker
	Run(ctx context.Context) (presenter.Dashboard, error)
}

// Server serves the dashboard page and JSON view, plus health, readiness
// and metrics endpoints.
type Server struct {
	httpServer *http.Server
	runner     Runner
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /, /api/dashboard, /healthz, /readyz
// and /metrics routes.
func NewServer(addr string, runner Runner, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		runner: runner,
		logger: logger,
	}

	r.Get("/", s.handlePage)
	r.Get("/api/dashboard", s.handleDashboardJSON)
	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/readyz", sharedobs.ReadinessHandler(runner))
	r.Handle("/metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type pageChart struct {
	ID     string      `json:"id"`
	Config chartConfig `json:"config"`
}

type pageData struct {
	Title     string
	Error     string
	Dashboard presenter.Dashboard
	Charts    []pageChart
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	d, passErr := s.runner.Run(r.Context())
	status := http.StatusOK
	if passErr != nil {
		status = statusFor(passErr)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := WritePage(w, d, passErr); err != nil {
		s.logger.Error("render dashboard page", "error", err)
	}
}

// WritePage renders the dashboard page for the result of one pass. A non-nil
// passErr renders the error notice and no charts.
func WritePage(w io.Writer, d presenter.Dashboard, passErr error) error {
	data := pageData{Title: pageTitle}
	if passErr != nil {
		data.Error = "The dashboard could not be built: " + errorSummary(passErr)
	} else {
		data.Dashboard = d
		data.Charts = make([]pageChart, len(d.Charts))
		for i, c := range d.Charts {
			data.Charts[i] = pageChart{ID: c.ID, Config: chartJSConfig(c)}
		}
	}
	return dashboardTmpl.Execute(w, data)
}

func (s *Server) handleDashboardJSON(w http.ResponseWriter, r *http.Request) {
	d, err := s.runner.Run(r.Context())
	if err != nil {
		render.Status(r, statusFor(err))
		render.JSON(w, r, map[string]string{
			"status": "error",
			"error":  err.Error(),
		})
		return
	}
	render.JSON(w, r, d)
}

// statusFor maps a failed pass to the response status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrTransport):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrFormat), errors.Is(err, domain.ErrEmptyInput):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func errorSummary(err error) string {
	switch {
	case errors.Is(err, domain.ErrTransport):
		return "the data source could not be fetched."
	case errors.Is(err, domain.ErrFormat):
		return "the data source is not a list of rows."
	case errors.Is(err, domain.ErrEmptyInput):
		return "no valid data rows found after cleaning."
	default:
		return "unexpected error."
	}
}
