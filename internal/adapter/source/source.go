// Package source loads the raw reservoir rows from a URL, a JSON file or an
// Excel workbook.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/couchcryptid/reservoir-dashboard/internal/domain"
)

// Loader fetches the raw record set in one attempt.
type Loader interface {
	Load(ctx context.Context) ([]domain.RawRecord, error)
}

// Options tunes how a location is read.
type Options struct {
	// Timeout bounds an HTTP fetch. Zero means no timeout.
	Timeout time.Duration
	// Sheet names the workbook sheet to read. Empty means the first sheet.
	Sheet string
}

// New picks a loader for location: http(s) URLs are fetched, ".xlsx" paths are
// read as workbooks, and anything else (including file:// URLs) is read as a
// JSON file.
func New(location string, opts Options, logger *slog.Logger) (Loader, error) {
	if location == "" {
		return nil, fmt.Errorf("source location is empty")
	}

	path := location
	if u, err := url.Parse(location); err == nil {
		switch u.Scheme {
		case "http", "https":
			return NewHTTPLoader(location, opts.Timeout, logger), nil
		case "file":
			path = u.Path
		case "":
		default:
			if len(u.Scheme) > 1 { // single letters are Windows drive names
				return nil, fmt.Errorf("unsupported source scheme %q", u.Scheme)
			}
		}
	}

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return NewWorkbookLoader(path, opts.Sheet, logger), nil
	}
	return NewFileLoader(path, logger), nil
}
