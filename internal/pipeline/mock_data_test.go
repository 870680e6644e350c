package pipeline_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/reservoir-dashboard/internal/adapter/source"
	"github.com/couchcryptid/reservoir-dashboard/internal/domain"
	"github.com/couchcryptid/reservoir-dashboard/internal/pipeline"
	"github.com/couchcryptid/reservoir-dashboard/internal/presenter"
)

var mockDataPath = filepath.Join("..", "adapter", "source", "testdata", "data1.json")

func TestPipeline_WithMockJSONData(t *testing.T) {
	p := pipeline.New(
		source.NewFileLoader(mockDataPath, slog.Default()),
		pipeline.Settings{Source: mockDataPath, Schema: domain.DefaultSchema(), TopN: 10, Threshold: 90},
		slog.Default(),
		newTestMetrics(),
	)

	d, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 9, d.KPIs.TotalRecords)
	assert.Equal(t, "75.7%", d.KPIs.AveragePercent)
	assert.Equal(t, 5, d.KPIs.AboveThreshold)

	q := d.Quality
	assert.Equal(t, 13, q.Sanitize.Input)
	assert.Equal(t, 2, q.Sanitize.Reserved)
	assert.Equal(t, 9, q.Sanitize.Kept)
	assert.Equal(t, 4, q.Sanitize.Dropped())
	assert.Equal(t, 1, q.UnparseableStorage)

	cases := []struct {
		chart  string
		labels []string
		values []float64
	}{
		{
			chart:  presenter.ChartStorageByDistrict,
			labels: []string{"सांगली", "कोल्हापूर", domain.UnknownKey},
			values: []float64{35705.25, 12636, 450},
		},
		{
			chart:  presenter.ChartStorageByType,
			labels: []string{"मोठा", "मध्यम", "लघु"},
			values: []float64{42761, 5460.25, 570},
		},
		{
			chart: presenter.ChartTopDams,
			labels: []string{
				"वारणा (चांदोली)", "राधानगरी", "कुंभी", "घटप्रभा", "दोड्डनाला",
				"संख", "मोरणा", "आटपाडी", "बसाप्पाचीवाडी",
			},
			values: []float64{34400, 8361, 2715, 1560, 610, 575.25, 450, 120, 0},
		},
	}

	for _, tc := range cases {
		t.Run(tc.chart, func(t *testing.T) {
			c, ok := d.Chart(tc.chart)
			require.True(t, ok)
			assert.ElementsMatch(t, tc.labels, c.Series.Labels)
			require.Len(t, c.Series.Values, len(tc.values))
			if tc.chart == presenter.ChartTopDams {
				assert.Equal(t, tc.labels, c.Series.Labels, "top dams are ordered by storage")
			}
			total, want := 0.0, 0.0
			for i := range tc.values {
				total += c.Series.Values[i]
				want += tc.values[i]
			}
			assert.InDelta(t, want, total, 1e-6)
		})
	}

	taluka, ok := d.Chart(presenter.ChartDamsByTaluka)
	require.True(t, ok)
	counts := map[string]float64{}
	for i, l := range taluka.Series.Labels {
		counts[l] = taluka.Series.Values[i]
	}
	assert.Equal(t, 2.0, counts["शिराळा"])
	assert.Equal(t, 2.0, counts["जत"])
	assert.Len(t, counts, 7)
}
