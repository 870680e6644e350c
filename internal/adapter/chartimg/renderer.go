// Package chartimg draws dashboard charts as PNG files with go-chart.
package chartimg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/couchcryptid/reservoir-dashboard/internal/presenter"
)

const (
	width  = 1024
	height = 600
)

// ErrNothingToDraw is returned for a chart with no points or only zero values.
var ErrNothingToDraw = errors.New("chart has nothing to draw")

// Renderer writes one PNG per chart into a directory.
// It implements pipeline.Renderer.
type Renderer struct {
	dir    string
	logger *slog.Logger
}

// NewRenderer creates a renderer writing into dir, which is created on demand.
func NewRenderer(dir string, logger *slog.Logger) *Renderer {
	return &Renderer{dir: dir, logger: logger}
}

func (r *Renderer) Name() string { return "png" }

// Render writes <dir>/<chart id>.png for each drawable chart. Charts with
// nothing to draw are skipped.
func (r *Renderer) Render(_ context.Context, d presenter.Dashboard) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}

	var errs []error
	for _, spec := range d.Charts {
		var buf bytes.Buffer
		if err := RenderChart(&buf, spec); err != nil {
			if errors.Is(err, ErrNothingToDraw) {
				r.logger.Info("chart skipped", "chart", spec.ID, "reason", err)
				continue
			}
			errs = append(errs, fmt.Errorf("chart %s: %w", spec.ID, err))
			continue
		}

		path := filepath.Join(r.dir, spec.ID+".png")
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", path, err))
			continue
		}
		r.logger.Debug("chart written", "chart", spec.ID, "path", path)
	}
	return errors.Join(errs...)
}

// RenderChart draws spec as a PNG. Doughnut charts are drawn as pies and
// every bar chart is drawn with vertical bars.
func RenderChart(w io.Writer, spec presenter.ChartSpec) error {
	if !drawable(spec.Series) {
		return ErrNothingToDraw
	}

	values := make([]chart.Value, spec.Series.Len())
	for i := range values {
		values[i] = chart.Value{
			Label: spec.Series.Labels[i],
			Value: spec.Series.Values[i],
			Style: chart.Style{
				FillColor:   paletteColor(spec.Palette, i),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1,
			},
		}
	}

	switch spec.Kind {
	case presenter.ChartDoughnut:
		pie := chart.PieChart{
			Title:  spec.Title,
			Width:  height,
			Height: height,
			Values: values,
		}
		return pie.Render(chart.PNG, w)
	default:
		bar := chart.BarChart{
			Title:    spec.Title,
			Width:    width,
			Height:   height,
			BarWidth: barWidth(len(values)),
			Background: chart.Style{
				Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
			},
			Bars: values,
		}
		if spec.BeginAtZero {
			bar.YAxis = chart.YAxis{
				Name:  spec.DatasetLabel,
				Range: &chart.ContinuousRange{Min: 0, Max: maxValue(spec.Series.Values)},
			}
		}
		return bar.Render(chart.PNG, w)
	}
}

// drawable reports whether the series has at least one positive value.
func drawable(s presenter.Series) bool {
	for _, v := range s.Values {
		if v > 0 {
			return true
		}
	}
	return false
}

func maxValue(values []float64) float64 {
	m := 0.0
	for _, v := range values {
		m = max(m, v)
	}
	return m
}

func barWidth(n int) int {
	return max(12, min(60, (width-100)/max(n, 1)-8))
}

func paletteColor(palette []string, i int) drawing.Color {
	if len(palette) == 0 {
		return chart.ColorBlue
	}
	return drawing.ColorFromHex(strings.TrimPrefix(palette[i%len(palette)], "#"))
}
