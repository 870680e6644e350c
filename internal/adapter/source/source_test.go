package source

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/reservoir-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const fixturePath = "testdata/data1.json"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHTTPLoader_Success(t *testing.T) {
	payload, err := os.ReadFile(fixturePath)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/assets/data1.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	l := NewHTTPLoader(srv.URL+"/assets/data1.json", 0, discardLogger())
	records, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 13)

	name, ok := records[2].Field("धरणाचे नाव")
	assert.True(t, ok)
	assert.Equal(t, "वारणा (चांदोली)", name)
}

func TestHTTPLoader_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewHTTPLoader(srv.URL, 0, discardLogger()).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Contains(t, err.Error(), "status 404")
}

func TestHTTPLoader_BadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	_, err := NewHTTPLoader(srv.URL, 0, discardLogger()).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFormat)
}

func TestHTTPLoader_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPLoader(url, time.Second, discardLogger()).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestHTTPLoader_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewHTTPLoader(srv.URL, 50*time.Millisecond, discardLogger()).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestFileLoader(t *testing.T) {
	records, err := NewFileLoader(fixturePath, discardLogger()).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 13)

	_, err = NewFileLoader("testdata/missing.json", discardLogger()).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrTransport)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`"text"`), 0o600))
	_, err = NewFileLoader(bad, discardLogger()).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrFormat)
}

func TestWorkbookLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.xlsx")
	f := excelize.NewFile()
	rows := [][]any{
		{"अ.क्र.", "जिल्हा", "", "", "धरणाचे नाव"},
		{"", "", "एकूण पाणीसाठा", "टक्केवारी"},
		{1, "सांगली", 34400, 98.5, "वारणा"},
		{},
		{2, "कोल्हापूर", 8361, 100, "राधानगरी"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	records, err := NewWorkbookLoader(path, "", discardLogger()).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3, "header consumed and blank row skipped")

	storage, ok := records[1].Field("__2")
	assert.True(t, ok)
	assert.Equal(t, "34400", storage)

	name, _ := records[2].Field("धरणाचे नाव")
	assert.Equal(t, "राधानगरी", name)

	_, err = NewWorkbookLoader(path, "Missing", discardLogger()).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrFormat)

	_, err = NewWorkbookLoader(filepath.Join(t.TempDir(), "nope.xlsx"), "", discardLogger()).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestRowsToRecords_HeaderNaming(t *testing.T) {
	records := RowsToRecords([][]string{
		{"a", "", "a", " "},
		{"1", "2", "3", "4", "5"},
	})
	require.Len(t, records, 1)

	want := map[string]string{"a": "1", "__1": "2", "a_1": "3", "__3": "4", "__4": "5"}
	for key, v := range want {
		got, ok := records[0].Field(key)
		assert.True(t, ok, key)
		assert.Equal(t, v, got, key)
	}

	assert.Empty(t, RowsToRecords(nil))
}

func TestNew_PicksLoader(t *testing.T) {
	logger := discardLogger()

	l, err := New("https://example.org/data1.json", Options{}, logger)
	require.NoError(t, err)
	assert.IsType(t, &HTTPLoader{}, l)

	l, err = New("data/data1.json", Options{}, logger)
	require.NoError(t, err)
	assert.IsType(t, &FileLoader{}, l)

	l, err = New("file:///srv/data/data1.json", Options{}, logger)
	require.NoError(t, err)
	require.IsType(t, &FileLoader{}, l)
	assert.Equal(t, "/srv/data/data1.json", l.(*FileLoader).path)

	l, err = New("reports/Storage.XLSX", Options{Sheet: "June"}, logger)
	require.NoError(t, err)
	require.IsType(t, &WorkbookLoader{}, l)
	assert.Equal(t, "June", l.(*WorkbookLoader).sheet)

	_, err = New("", Options{}, logger)
	assert.Error(t, err)

	_, err = New("ftp://example.org/data.json", Options{}, logger)
	assert.Error(t, err)
}
