// Command validate checks a reservoir dataset before it is published to the
// dashboard. It loads the source the same way the service does, then reports
// row classification, field coverage, numeric quality and whether the
// aggregates reconcile with each other and with the sheet's own footer.
//
// Usage:
//
//	go run ./cmd/validate -source data/mock/data1.json
//	go run ./cmd/validate -source reservoirs.xlsx -sheet Sheet1
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/reservoir-dashboard/internal/adapter/source"
	"github.com/couchcryptid/reservoir-dashboard/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
	notes  []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) notef(format string, args ...any) {
	p.notes = append(p.notes, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	location := flag.String("source", "", "dataset location: URL, JSON file or .xlsx workbook")
	sheet := flag.String("sheet", "", "worksheet name for .xlsx sources (default first sheet)")
	timeout := flag.Duration("timeout", 30*time.Second, "load timeout")
	footer := flag.String("footer-label", "एकूण", "sequence cell text marking the grand-total footer row")
	maxPercent := flag.Float64("max-percent", 110, "storage percentages above this are reported")
	flag.Parse()

	if *location == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(os.Stdout, *location, *sheet, *timeout, *footer, *maxPercent))
}

func run(out io.Writer, location, sheet string, timeout time.Duration, footerLabel string, maxPercent float64) int {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	schema := domain.DefaultSchema()

	fmt.Fprintln(out, "=== Reservoir Dataset Validation ===")
	fmt.Fprintln(out)

	loader, err := source.New(location, source.Options{Timeout: timeout, Sheet: sheet}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	raw, err := loader.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load %s: %v\n", location, err)
		return 1
	}

	clean, report := domain.SanitizeWithReport(raw, schema.Sequence)

	phases := []*phase{
		validateRows(report, clean, schema),
		validateFields(clean, schema),
		validateNumbers(clean, schema, maxPercent),
		validateTotals(raw, clean, schema, footerLabel),
	}

	fmt.Fprintln(out)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Rows: %d loaded, %d reserved, %d dropped as non-data, %d kept\n",
		report.Input, report.Reserved, report.Dropped()-report.Reserved, report.Kept)

	for _, p := range phases {
		if len(p.errors) == 0 && len(p.notes) == 0 {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
		for _, n := range p.notes {
			fmt.Fprintf(out, "  note: %s\n", n)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// ── Phase 1: Row Classification ──

func validateRows(report domain.SanitizeReport, clean []domain.CleanRecord, schema domain.Schema) *phase {
	p := &phase{name: "Phase 1: Row Classification"}

	if report.Input < domain.ReservedRows {
		p.errorf("only %d rows; the sheet should start with %d title rows", report.Input, domain.ReservedRows)
	}
	if report.Kept == 0 {
		p.errorf("no data rows carry an integer %q", schema.Sequence)
	}
	if report.NotInteger > 0 {
		p.notef("%d rows dropped with a non-numeric %q (footers or headings)", report.NotInteger, schema.Sequence)
	}

	seen := map[int]int{}
	for _, r := range clean {
		if prev, ok := seen[r.Seq]; ok {
			p.errorf("row %d: sequence %d repeats row %d", r.Index, r.Seq, prev)
			continue
		}
		seen[r.Seq] = r.Index
	}
	return p
}

// ── Phase 2: Field Coverage ──

func validateFields(clean []domain.CleanRecord, schema domain.Schema) *phase {
	p := &phase{name: "Phase 2: Field Coverage"}

	required := []struct{ label, field string }{
		{"name", schema.Name},
		{"district", schema.District},
		{"taluka", schema.Taluka},
		{"project type", schema.ProjectType},
	}
	for _, req := range required {
		var missing []string
		for _, r := range clean {
			if v, ok := r.Field(req.field); !ok || strings.TrimSpace(v) == "" {
				missing = append(missing, fmt.Sprint(r.Seq))
			}
		}
		if len(missing) > 0 {
			p.notef("%s (%q) blank on rows %s; grouped as %q", req.label, req.field, strings.Join(missing, ", "), domain.UnknownKey)
		}
	}

	for _, r := range clean {
		v, ok := r.Field(schema.District)
		if ok && v != strings.TrimSpace(v) && strings.TrimSpace(v) != "" {
			p.notef("row %d: district %q has surrounding whitespace", r.Seq, v)
		}
	}
	return p
}

// ── Phase 3: Numeric Quality ──

func validateNumbers(clean []domain.CleanRecord, schema domain.Schema, maxPercent float64) *phase {
	p := &phase{name: "Phase 3: Numeric Quality"}

	if n := domain.CountUnparseable(clean, schema.Storage); n > 0 {
		p.notef("%d storage cells are not numeric and count as 0", n)
	}
	if n := domain.CountUnparseable(clean, schema.StoragePercent); n > 0 {
		p.notef("%d percentage cells are not numeric and count as 0", n)
	}

	for _, r := range clean {
		v, _ := r.Field(schema.StoragePercent)
		pct := domain.ParseFloatOrZero(v)
		if pct < 0 || pct > maxPercent {
			p.errorf("row %d: storage percent %g outside [0, %g]", r.Seq, pct, maxPercent)
		}
		s, _ := r.Field(schema.Storage)
		if domain.ParseFloatOrZero(s) < 0 {
			p.errorf("row %d: negative storage %q", r.Seq, s)
		}
	}
	return p
}

// ── Phase 4: Aggregate Reconciliation ──

func validateTotals(raw []domain.RawRecord, clean []domain.CleanRecord, schema domain.Schema, footerLabel string) *phase {
	p := &phase{name: "Phase 4: Aggregate Reconciliation"}

	total := domain.Total(clean, schema.Storage)

	for _, c := range []struct{ label, field string }{
		{"district", schema.District},
		{"project type", schema.ProjectType},
	} {
		if sum := bucketTotal(domain.SumByCategory(clean, c.field, schema.Storage)); !floatEq(sum, total) {
			p.errorf("%s buckets sum to %g, storage total is %g", c.label, sum, total)
		}
	}

	if n := bucketTotal(domain.CountByCategory(clean, schema.Taluka)); int(n) != len(clean) {
		p.errorf("taluka counts sum to %g, %d records kept", n, len(clean))
	}

	footer, ok := findFooter(raw, schema, footerLabel)
	if !ok {
		p.notef("no %q footer row; grand total not cross-checked", footerLabel)
		return p
	}
	if !floatEq(footer, total) {
		p.errorf("footer declares %g total storage, data rows sum to %g", footer, total)
	}
	return p
}

func findFooter(raw []domain.RawRecord, schema domain.Schema, label string) (float64, bool) {
	for i := len(raw) - 1; i >= domain.ReservedRows; i-- {
		seq, ok := raw[i].Field(schema.Sequence)
		if !ok || strings.TrimSpace(seq) != label {
			continue
		}
		v, _ := raw[i].Field(schema.Storage)
		return domain.ParseFloatOrZero(v), true
	}
	return 0, false
}

// ── Helpers ──

func bucketTotal(buckets []domain.Bucket) float64 {
	sum := 0.0
	for _, b := range buckets {
		sum += b.Total
	}
	return sum
}

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
