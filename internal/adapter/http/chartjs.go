package http

import "github.com/couchcryptid/reservoir-dashboard/internal/presenter"

// chartConfig is the subset of the Chart.js configuration object the page uses.
type chartConfig struct {
	Type    string       `json:"type"`
	Data    chartData    `json:"data"`
	Options chartOptions `json:"options"`
}

type chartData struct {
	Labels   []string       `json:"labels"`
	Datasets []chartDataset `json:"datasets"`
}

type chartDataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor any       `json:"backgroundColor"` // string for one color, []string for a palette
}

type chartOptions struct {
	IndexAxis           string               `json:"indexAxis,omitempty"`
	Responsive          bool                 `json:"responsive"`
	MaintainAspectRatio bool                 `json:"maintainAspectRatio"`
	Plugins             chartPlugins         `json:"plugins"`
	Scales              map[string]chartAxis `json:"scales,omitempty"`
}

type chartPlugins struct {
	Title chartTitle `json:"title"`
}

type chartTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

type chartAxis struct {
	BeginAtZero bool        `json:"beginAtZero"`
	Ticks       *chartTicks `json:"ticks,omitempty"`
}

type chartTicks struct {
	StepSize float64 `json:"stepSize"`
}

// chartJSConfig maps a chart spec onto a Chart.js configuration.
func chartJSConfig(spec presenter.ChartSpec) chartConfig {
	var background any
	switch len(spec.Palette) {
	case 0:
	case 1:
		background = spec.Palette[0]
	default:
		background = spec.Palette
	}

	cfg := chartConfig{
		Type: string(spec.Kind),
		Data: chartData{
			Labels: spec.Series.Labels,
			Datasets: []chartDataset{{
				Label:           spec.DatasetLabel,
				Data:            spec.Series.Values,
				BackgroundColor: background,
			}},
		},
		Options: chartOptions{
			Responsive: true,
			Plugins:    chartPlugins{Title: chartTitle{Display: true, Text: spec.Title}},
		},
	}

	if spec.Kind != presenter.ChartBar {
		return cfg
	}

	// The value axis is the one the bars grow along.
	valueAxis := "y"
	if spec.Horizontal() {
		cfg.Options.IndexAxis = "y"
		valueAxis = "x"
	}
	axis := chartAxis{BeginAtZero: spec.BeginAtZero}
	if spec.StepSize > 0 {
		axis.Ticks = &chartTicks{StepSize: spec.StepSize}
	}
	cfg.Options.Scales = map[string]chartAxis{valueAxis: axis}
	return cfg
}
