// Command genmock converts a reservoir workbook exported by the department
// into the JSON fixture the dashboard and its tests read. Rows go through the
// same workbook loader the service uses, so the fixture matches what a live
// .xlsx source would produce.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -xlsx reservoirs.xlsx \
//	  -out data/mock/data1.json
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/couchcryptid/reservoir-dashboard/internal/adapter/source"
	"github.com/couchcryptid/reservoir-dashboard/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	xlsxPath := flag.String("xlsx", "", "path to the source .xlsx workbook")
	sheet := flag.String("sheet", "", "worksheet name (default first sheet)")
	out := flag.String("out", "", "output path for the JSON fixture")
	flag.Parse()

	if *xlsxPath == "" || *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -xlsx, -out")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	records, err := source.NewWorkbookLoader(*xlsxPath, *sheet, logger).Load(context.Background())
	if err != nil {
		return fmt.Errorf("reading %s: %w", *xlsxPath, err)
	}
	log.Printf("read %d rows", len(records))

	if err := writeFixture(*out, records); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote fixture: %s", *out)

	printStats(records)
	return nil
}

// writeFixture writes one record per line so fixture diffs stay readable.
func writeFixture(path string, records []domain.RawRecord) error {
	var buf bytes.Buffer
	buf.WriteString("[\n")
	for i, rec := range records {
		line, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		buf.WriteString("  ")
		buf.Write(line)
		if i < len(records)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("]\n")
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func printStats(records []domain.RawRecord) {
	schema := domain.DefaultSchema()
	clean, report := domain.SanitizeWithReport(records, schema.Sequence)

	log.Printf("data rows: %d (dropped %d)", report.Kept, report.Dropped())
	for _, b := range domain.CountByCategory(clean, schema.District) {
		log.Printf("  %s: %d dams", b.Key, b.Count)
	}
	log.Printf("total storage: %.2f", domain.Total(clean, schema.Storage))
}
