package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/reservoir-dashboard/internal/domain"
	"github.com/couchcryptid/reservoir-dashboard/internal/observability"
	"github.com/couchcryptid/reservoir-dashboard/internal/presenter"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Loader reads the raw record set from the source.
type Loader interface {
	Load(ctx context.Context) ([]domain.RawRecord, error)
}

// Renderer receives every successfully built dashboard.
type Renderer interface {
	Name() string
	Render(ctx context.Context, d presenter.Dashboard) error
}

// Settings fixes what a pass computes.
type Settings struct {
	Source    string // location reported on the dashboard
	Schema    domain.Schema
	TopN      int
	Threshold float64
}

// Pipeline sequences load, sanitize, aggregate, present and render.
type Pipeline struct {
	loader    Loader
	renderers []Renderer
	settings  Settings
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
	inflight  singleflight.Group
}

// New creates a Pipeline. Renderers are called in order after each
// successful pass.
func New(l Loader, settings Settings, logger *slog.Logger, metrics *observability.Metrics, renderers ...Renderer) *Pipeline {
	return &Pipeline{
		loader:    l,
		renderers: renderers,
		settings:  settings,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once a pass has completed successfully.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no dashboard has been rendered yet")
	}
	return nil
}

// Run executes one render pass. Callers arriving while a pass is in flight
// wait for that pass and share its result; nothing is kept once it returns.
// The pass itself is not cancelled with ctx, only the wait is.
func (p *Pipeline) Run(ctx context.Context) (presenter.Dashboard, error) {
	passCtx := context.WithoutCancel(ctx)
	ch := p.inflight.DoChan("pass", func() (any, error) {
		return p.runOnce(passCtx)
	})

	select {
	case <-ctx.Done():
		return presenter.Dashboard{}, ctx.Err()
	case res := <-ch:
		if res.Shared {
			p.metrics.PassesShared.Inc()
		}
		if res.Err != nil {
			return presenter.Dashboard{}, res.Err
		}
		return res.Val.(presenter.Dashboard), nil
	}
}

func (p *Pipeline) runOnce(ctx context.Context) (presenter.Dashboard, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID)

	d, err := p.build(ctx, logger)
	if err != nil {
		outcome := outcomeOf(err)
		p.metrics.Passes.WithLabelValues(outcome).Inc()
		logger.Error("render pass failed", "error", err, "outcome", outcome)
		return presenter.Dashboard{}, err
	}

	d.RunID = runID
	d.GeneratedAt = domain.Clock().Now()
	d.Source = p.settings.Source

	p.render(ctx, logger, d)

	p.metrics.Passes.WithLabelValues("success").Inc()
	p.metrics.PassDuration.Observe(time.Since(start).Seconds())
	p.metrics.LastPassRows.Set(float64(d.KPIs.TotalRecords))
	p.ready.Store(true)

	logger.Info("render pass complete",
		"records", d.KPIs.TotalRecords,
		"average_percent", d.KPIs.AveragePercent,
		"above_threshold", d.KPIs.AboveThreshold,
		"duration", time.Since(start),
	)
	return d, nil
}

// build runs the pure part of a pass: load, sanitize and present.
func (p *Pipeline) build(ctx context.Context, logger *slog.Logger) (presenter.Dashboard, error) {
	raw, err := p.loader.Load(ctx)
	if err != nil {
		return presenter.Dashboard{}, fmt.Errorf("load %s: %w", p.settings.Source, err)
	}
	p.metrics.RecordsLoaded.Add(float64(len(raw)))

	clean, report := domain.SanitizeWithReport(raw, p.settings.Schema.Sequence)
	p.recordSanitize(report)
	logger.Debug("rows sanitized",
		"input", report.Input,
		"kept", report.Kept,
		"reserved", report.Reserved,
		"missing", report.Missing,
		"blank", report.Blank,
		"not_integer", report.NotInteger,
	)

	if len(clean) == 0 {
		return presenter.Dashboard{}, fmt.Errorf("no valid data rows found after cleaning %d rows: %w", len(raw), domain.ErrEmptyInput)
	}

	d, err := presenter.Build(presenter.Input{
		Records:   clean,
		Report:    report,
		Schema:    p.settings.Schema,
		TopN:      p.settings.TopN,
		Threshold: p.settings.Threshold,
	})
	if err != nil {
		return presenter.Dashboard{}, err
	}

	p.metrics.UnparseableValues.WithLabelValues("storage").Add(float64(d.Quality.UnparseableStorage))
	p.metrics.UnparseableValues.WithLabelValues("storage_percent").Add(float64(d.Quality.UnparseablePercentage))
	return d, nil
}

// render hands the dashboard to every sink. A failing sink is logged and
// does not affect the others.
func (p *Pipeline) render(ctx context.Context, logger *slog.Logger, d presenter.Dashboard) {
	for _, r := range p.renderers {
		if err := r.Render(ctx, d); err != nil {
			p.metrics.SinkErrors.WithLabelValues(r.Name()).Inc()
			logger.Warn("render sink failed", "sink", r.Name(), "error", err)
		}
	}
}

func (p *Pipeline) recordSanitize(r domain.SanitizeReport) {
	p.metrics.RecordsKept.Add(float64(r.Kept))
	p.metrics.RowsDropped.WithLabelValues("reserved").Add(float64(r.Reserved))
	p.metrics.RowsDropped.WithLabelValues("missing").Add(float64(r.Missing))
	p.metrics.RowsDropped.WithLabelValues("blank").Add(float64(r.Blank))
	p.metrics.RowsDropped.WithLabelValues("not_integer").Add(float64(r.NotInteger))
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrTransport):
		return "transport_error"
	case errors.Is(err, domain.ErrFormat):
		return "format_error"
	case errors.Is(err, domain.ErrEmptyInput):
		return "empty_input"
	default:
		return "error"
	}
}
