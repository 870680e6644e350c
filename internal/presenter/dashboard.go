package presenter

import (
	"fmt"
	"time"

	"github.com/couchcryptid/reservoir-dashboard/internal/domain"
)

// ChartKind is the chart family a spec asks the surface to draw.
type ChartKind string

const (
	ChartDoughnut ChartKind = "doughnut"
	ChartBar      ChartKind = "bar"
)

// Chart identifiers, stable across passes so surfaces can address them.
const (
	ChartStorageByDistrict = "storageByDistrict"
	ChartStorageByType     = "storageByType"
	ChartTopDams           = "topDams"
	ChartDamsByTaluka      = "damsByTaluka"
)

// ChartSpec describes one chart independently of the drawing library.
type ChartSpec struct {
	ID           string    `json:"id"`
	Kind         ChartKind `json:"kind"`
	IndexAxis    string    `json:"index_axis"` // "x" vertical bars, "y" horizontal bars
	Title        string    `json:"title"`
	DatasetLabel string    `json:"dataset_label"`
	Series       Series    `json:"series"`
	Palette      []string  `json:"palette"`
	BeginAtZero  bool      `json:"begin_at_zero"`
	StepSize     float64   `json:"step_size,omitempty"`
}

// Horizontal reports whether bars run along the y axis.
func (c ChartSpec) Horizontal() bool { return c.IndexAxis == "y" }

// KPIs are the scalar indicators shown above the charts.
type KPIs struct {
	TotalRecords   int     `json:"total_records"`
	AverageValue   float64 `json:"average_value"`
	AveragePercent string  `json:"average_percent"`
	Threshold      float64 `json:"threshold"`
	AboveThreshold int     `json:"above_threshold"`
}

// Quality is the additive data-quality report of a pass. It never changes
// any aggregate.
type Quality struct {
	Sanitize              domain.SanitizeReport `json:"sanitize"`
	UnparseableStorage    int                   `json:"unparseable_storage"`
	UnparseablePercentage int                   `json:"unparseable_percentage"`
}

// Dashboard is everything one render pass produces.
type Dashboard struct {
	RunID       string      `json:"run_id"`
	GeneratedAt time.Time   `json:"generated_at"`
	Source      string      `json:"source"`
	KPIs        KPIs        `json:"kpis"`
	Charts      []ChartSpec `json:"charts"`
	Quality     Quality     `json:"quality"`
}

// Chart returns the chart with the given id.
func (d Dashboard) Chart(id string) (ChartSpec, bool) {
	for _, c := range d.Charts {
		if c.ID == id {
			return c, true
		}
	}
	return ChartSpec{}, false
}

// Input carries the clean records and the knobs Build needs.
type Input struct {
	Records   []domain.CleanRecord
	Report    domain.SanitizeReport
	Schema    domain.Schema
	TopN      int
	Threshold float64
}

// Build computes the KPIs and the four dashboard charts.
func Build(in Input) (Dashboard, error) {
	s := in.Schema

	avg, err := domain.Average(in.Records, s.StoragePercent)
	if err != nil {
		return Dashboard{}, fmt.Errorf("build kpis: %w", err)
	}

	kpis := KPIs{
		TotalRecords:   len(in.Records),
		AverageValue:   avg,
		AveragePercent: FormatPercent(avg),
		Threshold:      in.Threshold,
		AboveThreshold: domain.CountAtOrAbove(in.Records, s.StoragePercent, in.Threshold),
	}

	charts := []ChartSpec{
		{
			ID:           ChartStorageByDistrict,
			Kind:         ChartDoughnut,
			Title:        "Total Water Storage by District",
			DatasetLabel: "Total Storage (MCFT)",
			Series:       FromBuckets(domain.SumByCategory(in.Records, s.District, s.Storage), MeasureTotal),
			Palette:      []string{"#007bff", "#28a745", "#ffc107", "#dc3545", "#17a2b8"},
		},
		{
			ID:           ChartStorageByType,
			Kind:         ChartBar,
			IndexAxis:    "x",
			Title:        "Total Storage by Project Type",
			DatasetLabel: "Total Storage (MCFT)",
			Series:       FromBuckets(domain.SumByCategory(in.Records, s.ProjectType, s.Storage), MeasureTotal),
			Palette:      []string{"#28a745"},
			BeginAtZero:  true,
		},
		{
			ID:           ChartTopDams,
			Kind:         ChartBar,
			IndexAxis:    "y",
			Title:        fmt.Sprintf("Top %d Dams by Total Storage Capacity", in.TopN),
			DatasetLabel: "Total Storage (MCFT)",
			Series:       FromTopEntities(domain.TopN(in.Records, s.Storage, in.TopN, s.Name)),
			Palette:      []string{"#ffc107"},
			BeginAtZero:  true,
		},
		{
			ID:           ChartDamsByTaluka,
			Kind:         ChartBar,
			IndexAxis:    "y",
			Title:        "Number of Dams per Taluka",
			DatasetLabel: "Number of Dams",
			Series:       FromBuckets(domain.CountByCategory(in.Records, s.Taluka), MeasureCount),
			Palette:      []string{"#dc3545"},
			BeginAtZero:  true,
			StepSize:     1,
		},
	}

	return Dashboard{
		KPIs:   kpis,
		Charts: charts,
		Quality: Quality{
			Sanitize:              in.Report,
			UnparseableStorage:    domain.CountUnparseable(in.Records, s.Storage),
			UnparseablePercentage: domain.CountUnparseable(in.Records, s.StoragePercent),
		},
	}, nil
}
