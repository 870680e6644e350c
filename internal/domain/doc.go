// Package domain models the reservoir storage dataset published by the
// Water Resources Department and the aggregations drawn from it.
//
// # Data Source
//
// The dataset is a spreadsheet exported row-by-row to a JSON array of flat
// objects. Each object maps a column header to the cell text. Headers are
// Marathi labels taken from the sheet's first row; columns whose header cell
// was blank or merged carry positional placeholder keys such as "__2".
//
// # Dataset Conventions
//
// Reserved rows:
//
//	The first two array elements are the sheet's title and sub-header rows.
//	They are always dropped, whatever they contain.
//
// Sequence number ("अ.क्र."):
//
//	Data rows carry an integer serial number. Rows without one are section
//	headings, district subtotals or the grand-total footer, and are dropped.
//	Parsing follows leading-prefix semantics: "12", " 12 " and "12a" are all
//	row 12; "", "एकूण" and "-" are not data rows.
//
// Storage columns:
//
//	"__2" is the total live storage in MCFT, "__3" the storage as a percent of
//	design capacity. Both are text in the source and may be blank, "-" or
//	carry trailing units.
//
// Categorical columns:
//
//	"जिल्हा" (district), "तालुका" (taluka, a sub-district) and
//	"प्रकल्प प्रकार" (project type, e.g. major/medium/minor) are grouped by
//	exact trimmed value. Missing or blank values group under "Unknown".
//
// # Lenient Parsing
//
// Numeric fields are read with [ParseFloatOrZero]: a missing, blank or
// non-numeric value contributes zero. Aggregations never fail on bad cells;
// [CountUnparseable] reports how many cells were zero-filled that way.
package domain
