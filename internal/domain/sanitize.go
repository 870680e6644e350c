package domain

import "strings"

// ReservedRows is the number of leading rows that are always dropped.
const ReservedRows = 2

// SanitizeReport counts why rows were kept or dropped.
type SanitizeReport struct {
	Input      int `json:"input"`
	Reserved   int `json:"reserved"`
	Missing    int `json:"missing"`     // sequence field absent or null
	Blank      int `json:"blank"`       // sequence field empty after trimming
	NotInteger int `json:"not_integer"` // sequence field has no integer prefix
	Kept       int `json:"kept"`
}

// Dropped returns the number of rows excluded for any reason.
func (r SanitizeReport) Dropped() int {
	return r.Reserved + r.Missing + r.Blank + r.NotInteger
}

// Sanitize drops the reserved leading rows and every row without an integer
// sequence number in seqField. Order is preserved.
func Sanitize(raw []RawRecord, seqField string) []CleanRecord {
	clean, _ := SanitizeWithReport(raw, seqField)
	return clean
}

// SanitizeWithReport is Sanitize plus a per-reason drop count.
func SanitizeWithReport(raw []RawRecord, seqField string) ([]CleanRecord, SanitizeReport) {
	report := SanitizeReport{Input: len(raw)}
	report.Reserved = min(len(raw), ReservedRows)

	clean := make([]CleanRecord, 0, max(len(raw)-ReservedRows, 0))
	for i := ReservedRows; i < len(raw); i++ {
		value, ok := raw[i].Field(seqField)
		if !ok {
			report.Missing++
			continue
		}
		if strings.TrimSpace(value) == "" {
			report.Blank++
			continue
		}
		seq, ok := parseLeadingInt(value)
		if !ok {
			report.NotInteger++
			continue
		}
		clean = append(clean, CleanRecord{RawRecord: raw[i], Seq: seq, Index: i})
	}

	report.Kept = len(clean)
	return clean, report
}
