package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/montanaflynn/stats"
)

// UnknownKey groups records whose category field is missing or blank.
const UnknownKey = "Unknown"

// GroupKey returns the trimmed value of field, or UnknownKey.
func GroupKey(r RawRecord, field string) string {
	v, ok := r.Field(field)
	if !ok {
		return UnknownKey
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return UnknownKey
	}
	return v
}

// bucketSet accumulates buckets while remembering first-occurrence order.
type bucketSet struct {
	index   map[string]int
	buckets []Bucket
}

func newBucketSet() *bucketSet {
	return &bucketSet{index: make(map[string]int)}
}

func (s *bucketSet) add(key string, value float64) {
	i, ok := s.index[key]
	if !ok {
		i = len(s.buckets)
		s.index[key] = i
		s.buckets = append(s.buckets, Bucket{Key: key})
	}
	s.buckets[i].Total += value
	s.buckets[i].Count++
}

func (s *bucketSet) result() []Bucket {
	if s.buckets == nil {
		return []Bucket{}
	}
	return s.buckets
}

// SumByCategory groups records by categoryField and sums valueField in each
// group. Buckets are ordered by first occurrence of their key.
func SumByCategory(records []CleanRecord, categoryField, valueField string) []Bucket {
	set := newBucketSet()
	for _, r := range records {
		set.add(GroupKey(r.RawRecord, categoryField), fieldFloat(r.RawRecord, valueField))
	}
	return set.result()
}

// CountByCategory groups records by categoryField and counts each group.
// Bucket totals mirror the counts.
func CountByCategory(records []CleanRecord, categoryField string) []Bucket {
	set := newBucketSet()
	for _, r := range records {
		set.add(GroupKey(r.RawRecord, categoryField), 1)
	}
	return set.result()
}

// TopN returns up to n records with the largest valueField, largest first.
// Records with equal values keep their input order. The input slice is not
// reordered.
func TopN(records []CleanRecord, valueField string, n int, displayField string) []TopEntity {
	if n <= 0 || len(records) == 0 {
		return []TopEntity{}
	}

	ranked := make([]TopEntity, len(records))
	for i, r := range records {
		name, _ := r.Field(displayField)
		ranked[i] = TopEntity{
			Name:   name,
			Value:  fieldFloat(r.RawRecord, valueField),
			Record: r,
		}
	}

	slices.SortStableFunc(ranked, func(a, b TopEntity) int {
		return cmp.Compare(b.Value, a.Value)
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Average returns the mean of valueField across records.
func Average(records []CleanRecord, valueField string) (float64, error) {
	if len(records) == 0 {
		return 0, fmt.Errorf("average of %q: %w", valueField, ErrEmptyInput)
	}

	data := make(stats.Float64Data, len(records))
	for i, r := range records {
		data[i] = fieldFloat(r.RawRecord, valueField)
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return 0, fmt.Errorf("average of %q: %w", valueField, err)
	}
	return mean, nil
}

// CountAtOrAbove counts records whose valueField is >= threshold.
func CountAtOrAbove(records []CleanRecord, valueField string, threshold float64) int {
	n := 0
	for _, r := range records {
		if fieldFloat(r.RawRecord, valueField) >= threshold {
			n++
		}
	}
	return n
}

// Total sums valueField across records.
func Total(records []CleanRecord, valueField string) float64 {
	var sum float64
	for _, r := range records {
		sum += fieldFloat(r.RawRecord, valueField)
	}
	return sum
}

// CountUnparseable counts records whose valueField holds non-blank text that
// is not a number. Those values count as zero in every aggregate.
func CountUnparseable(records []CleanRecord, valueField string) int {
	n := 0
	for _, r := range records {
		s, ok := r.Field(valueField)
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		if _, ok := parseFloat(s); !ok {
			n++
		}
	}
	return n
}
