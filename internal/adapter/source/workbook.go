package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"

	"github.com/couchcryptid/reservoir-dashboard/internal/domain"
	"github.com/xuri/excelize/v2"
)

// WorkbookLoader reads the dataset straight from the department's Excel
// sheet, producing the same rows the JSON export would.
type WorkbookLoader struct {
	path   string
	sheet  string
	logger *slog.Logger
}

// NewWorkbookLoader creates a loader for the workbook at path. An empty sheet
// selects the first sheet.
func NewWorkbookLoader(path, sheet string, logger *slog.Logger) *WorkbookLoader {
	return &WorkbookLoader{path: path, sheet: sheet, logger: logger}
}

// Load opens the workbook and converts the sheet to records.
func (l *WorkbookLoader) Load(_ context.Context) ([]domain.RawRecord, error) {
	f, err := excelize.OpenFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: open %s: %w", domain.ErrTransport, l.path, err)
		}
		return nil, fmt.Errorf("%w: open workbook %s: %w", domain.ErrFormat, l.path, err)
	}
	defer f.Close()

	sheet := l.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook %s has no sheets", domain.ErrFormat, l.path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %w", domain.ErrFormat, sheet, err)
	}

	records := RowsToRecords(rows)
	l.logger.Debug("workbook read", "path", l.path, "sheet", sheet, "rows", len(records))
	return records, nil
}

// RowsToRecords treats rows[0] as the header and turns every following
// non-blank row into a record. Blank header cells are named "__<column>"
// (zero-based), matching the "__2"/"__3" storage keys of the published JSON
// dataset. Repeated headers get "_<n>" suffixes, and empty cells are left out
// of the record.
func RowsToRecords(rows [][]string) []domain.RawRecord {
	if len(rows) == 0 {
		return []domain.RawRecord{}
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	headers := headerNames(rows[0], width)

	records := make([]domain.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(domain.RawRecord, len(row))
		for i, cell := range row {
			if cell == "" {
				continue
			}
			rec[headers[i]] = domain.Ptr(cell)
		}
		if len(rec) == 0 {
			continue
		}
		records = append(records, rec)
	}
	return records
}

func headerNames(header []string, width int) []string {
	names := make([]string, width)
	seen := make(map[string]int, width)
	for i := range names {
		name := ""
		if i < len(header) {
			name = strings.TrimSpace(header[i])
		}
		if name == "" {
			name = "__" + strconv.Itoa(i)
		}
		if n := seen[name]; n > 0 {
			seen[name] = n + 1
			name = name + "_" + strconv.Itoa(n)
		} else {
			seen[name] = 1
		}
		names[i] = name
	}
	return names
}
