package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// RawRecord is one source row: column header to cell text. A nil value is a
// JSON null cell; a missing key is a column the row does not carry.
type RawRecord map[string]*string

// Field returns the cell text for name and whether it is present and non-null.
func (r RawRecord) Field(name string) (string, bool) {
	v, ok := r[name]
	if !ok || v == nil {
		return "", false
	}
	return *v, true
}

// UnmarshalJSON accepts a flat object whose values are strings, numbers,
// booleans or null. Numbers and booleans keep their literal JSON text.
// A JSON null row decodes to a nil record.
func (r *RawRecord) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = nil
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("row is not an object: %w", err)
	}

	rec := make(RawRecord, len(fields))
	for key, raw := range fields {
		value, err := cellText(raw)
		if err != nil {
			return fmt.Errorf("column %q: %w", key, err)
		}
		rec[key] = value
	}
	*r = rec
	return nil
}

func cellText(raw json.RawMessage) (*string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, err
		}
		return &s, nil
	case '{':
		return nil, errors.New("nested object is not a cell value")
	case '[':
		return nil, errors.New("array is not a cell value")
	default:
		// Numbers and booleans are kept verbatim.
		s := string(trimmed)
		return &s, nil
	}
}

// DecodeRecords parses a JSON array of row objects. Any other shape is
// reported as ErrFormat.
func DecodeRecords(data []byte) ([]RawRecord, error) {
	var records []RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	if records == nil {
		// Top-level null is not a list of rows.
		return nil, fmt.Errorf("%w: payload is not an array", ErrFormat)
	}
	return records, nil
}

// CleanRecord is a RawRecord that passed sanitization.
type CleanRecord struct {
	RawRecord
	Seq   int // parsed sequence number
	Index int // position in the raw input
}

// Bucket accumulates a total and a count for one group key.
type Bucket struct {
	Key   string  `json:"key"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// TopEntity is a record selected for a ranking chart.
type TopEntity struct {
	Name   string      `json:"name"`
	Value  float64     `json:"value"`
	Record CleanRecord `json:"-"`
}

// Ptr returns a pointer to s, handy for building records in tests and tools.
func Ptr(s string) *string { return &s }
