// Package presenter turns aggregation results into chart-ready series, chart
// specs and display KPIs. It knows nothing about how charts are drawn.
package presenter

import (
	"fmt"

	"github.com/couchcryptid/reservoir-dashboard/internal/domain"
)

// Series is a pair of positionally aligned label and value slices.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Len returns the number of points.
func (s Series) Len() int { return len(s.Labels) }

// Measure selects which bucket field becomes the series value.
type Measure int

const (
	MeasureTotal Measure = iota
	MeasureCount
)

// FromBuckets maps buckets to a series in bucket order.
func FromBuckets(buckets []domain.Bucket, m Measure) Series {
	s := Series{
		Labels: make([]string, len(buckets)),
		Values: make([]float64, len(buckets)),
	}
	for i, b := range buckets {
		s.Labels[i] = b.Key
		if m == MeasureCount {
			s.Values[i] = float64(b.Count)
		} else {
			s.Values[i] = b.Total
		}
	}
	return s
}

// FromTopEntities maps ranked entities to a series in rank order.
func FromTopEntities(entities []domain.TopEntity) Series {
	s := Series{
		Labels: make([]string, len(entities)),
		Values: make([]float64, len(entities)),
	}
	for i, e := range entities {
		s.Labels[i] = e.Name
		s.Values[i] = e.Value
	}
	return s
}

// FormatPercent renders v with one decimal place and a percent sign.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
