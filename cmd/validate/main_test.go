package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_MockDataPasses(t *testing.T) {
	var out bytes.Buffer
	code := run(&out, filepath.Join("..", "..", "data", "mock", "data1.json"), "", 5*time.Second, "एकूण", 110)

	assert.Equal(t, 0, code, out.String())
	assert.Contains(t, out.String(), "Rows: 13 loaded, 2 reserved, 2 dropped as non-data, 9 kept")
	assert.Contains(t, out.String(), "1 storage cells are not numeric")
}

func TestRun_FooterMismatchFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"अ.क्र.": "title"},
		{"अ.क्र.": "अ.क्र."},
		{"अ.क्र.": "1", "जिल्हा": "सांगली", "__2": "100", "__3": "50"},
		{"अ.क्र.": "1", "जिल्हा": "सांगली", "__2": "20", "__3": "140"},
		{"अ.क्र.": "एकूण", "__2": "999"}
	]`), 0o600))

	var out bytes.Buffer
	code := run(&out, path, "", 5*time.Second, "एकूण", 110)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "sequence 1 repeats row 2")
	assert.Contains(t, out.String(), "storage percent 140 outside [0, 110]")
	assert.Contains(t, out.String(), "footer declares 999 total storage, data rows sum to 120")
}
