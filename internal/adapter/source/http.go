package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/reservoir-dashboard/internal/domain"
)

// maxErrorBody caps how much of a failed response is quoted in the error.
const maxErrorBody = 512

// HTTPLoader fetches the dataset with a single GET.
type HTTPLoader struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPLoader creates a loader for url. A zero timeout waits indefinitely.
func NewHTTPLoader(url string, timeout time.Duration, logger *slog.Logger) *HTTPLoader {
	return &HTTPLoader{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Load performs the GET and decodes the body as a JSON array of rows.
func (l *HTTPLoader) Load(ctx context.Context) ([]domain.RawRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", domain.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %w", domain.ErrTransport, l.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: fetch %s: status %d: %s", domain.ErrTransport, l.url, resp.StatusCode, body)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", domain.ErrTransport, err)
	}

	records, err := domain.DecodeRecords(data)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("source fetched", "url", l.url, "bytes", len(data), "rows", len(records))
	return records, nil
}
