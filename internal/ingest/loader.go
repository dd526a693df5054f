// Package ingest loads carrier billing exports into in-memory tables.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/freight-audit/internal/common"
	"github.com/Veraticus/freight-audit/internal/model"
)

// ErrUnsupportedFormat is returned for files the loader cannot read.
var ErrUnsupportedFormat = common.ErrUnsupportedFormat

const bom = "\ufeff"

// Loader reads delimited carrier exports.
type Loader struct{}

// NewLoader creates a new loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Delimiter returns the field separator for a file name.
func Delimiter(path string) (rune, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ',', nil
	case ".tsv", ".txt":
		return '\t', nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// LoadFile reads one export from disk.
func (l *Loader) LoadFile(ctx context.Context, path string) (*model.Table, error) {
	delim, err := Delimiter(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Debug("Failed to close export", "path", path, "error", cerr)
		}
	}()

	table, err := l.Load(ctx, f, delim)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filepath.Base(path), err)
	}

	slog.Info("Loaded export", "file", filepath.Base(path), "rows", table.Len(), "columns", len(table.Columns))
	return table, nil
}

// Load reads delimited text with a header row.
func (l *Loader) Load(ctx context.Context, r io.Reader, delim rune) (*model.Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, common.ErrNoRecords
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := normalizeHeader(header)
	table := &model.Table{Columns: dedupe(columns)}

	for line := 2; ; line++ {
		if line%500 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("load canceled: %w", err)
			}
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if isBlank(row) {
			continue
		}

		rec := make(model.Record, len(columns))
		for i, col := range columns {
			if col == "" {
				continue
			}
			if _, seen := rec[col]; seen {
				continue
			}
			if i < len(row) {
				rec[col] = row[i]
			} else {
				rec[col] = ""
			}
		}
		table.Rows = append(table.Rows, rec)
	}

	return table, nil
}

// Merge concatenates tables, unioning their columns in first-seen order.
func Merge(tables ...*model.Table) *model.Table {
	merged := &model.Table{}
	seen := make(map[string]bool)
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, col := range t.Columns {
			if !seen[col] {
				seen[col] = true
				merged.Columns = append(merged.Columns, col)
			}
		}
		merged.Rows = append(merged.Rows, t.Rows...)
	}
	return merged
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, bom)
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}

// dedupe drops blank and repeated header names. The first occurrence wins.
func dedupe(columns []string) []string {
	seen := make(map[string]bool, len(columns))
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
