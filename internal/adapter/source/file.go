package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/couchcryptid/reservoir-dashboard/internal/domain"
)

// FileLoader reads the dataset from a local JSON file.
type FileLoader struct {
	path   string
	logger *slog.Logger
}

// NewFileLoader creates a loader for the JSON file at path.
func NewFileLoader(path string, logger *slog.Logger) *FileLoader {
	return &FileLoader{path: path, logger: logger}
}

// Load reads and decodes the file. A missing or unreadable file is a
// transport failure.
func (l *FileLoader) Load(_ context.Context) ([]domain.RawRecord, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrTransport, l.path, err)
	}

	records, err := domain.DecodeRecords(data)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("source read", "path", l.path, "bytes", len(data), "rows", len(records))
	return records, nil
}
