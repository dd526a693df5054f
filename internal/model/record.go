// Package model defines the core domain models used throughout the application.
package model

import (
	"sort"
	"strings"
)

// nullTokens are cell values that carrier exports and spreadsheet tools use for "no value".
var nullTokens = map[string]struct{}{
	"":     {},
	"nan":  {},
	"nat":  {},
	"null": {},
	"none": {},
	"n/a":  {},
	"#n/a": {},
	"<na>": {},
}

// IsNull reports whether a raw cell value should be treated as missing.
func IsNull(v string) bool {
	_, ok := nullTokens[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

// Record is a single row of a carrier billing export, keyed by column name.
// The schema is not fixed: any column may be absent.
type Record map[string]string

// Has reports whether the record carries the column at all, even if blank.
func (r Record) Has(column string) bool {
	_, ok := r[column]
	return ok
}

// Value returns the trimmed cell value and whether it is present and non-null.
func (r Record) Value(column string) (string, bool) {
	v, ok := r[column]
	if !ok || IsNull(v) {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an in-memory tabular dataset: an ordered column list and its rows.
type Table struct {
	Columns []string
	Rows    []Record
}

// NewTable builds a table from rows. Columns are the sorted union of the row keys.
func NewTable(rows ...Record) *Table {
	t := &Table{Rows: rows}
	seen := make(map[string]bool)
	for _, row := range rows {
		for col := range row {
			if !seen[col] {
				seen[col] = true
				t.Columns = append(t.Columns, col)
			}
		}
	}
	sort.Strings(t.Columns)
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether the table declares the column.
func (t *Table) HasColumn(column string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// HasAnyColumn reports whether at least one of the columns is declared.
func (t *Table) HasAnyColumn(columns ...string) bool {
	for _, c := range columns {
		if t.HasColumn(c) {
			return true
		}
	}
	return false
}

// FirstColumn returns the first of the candidates the table declares.
func (t *Table) FirstColumn(candidates ...string) (string, bool) {
	for _, c := range candidates {
		if t.HasColumn(c) {
			return c, true
		}
	}
	return "", false
}

// WithRows returns a table sharing this table's columns with a different row set.
func (t *Table) WithRows(rows []Record) *Table {
	cols := make([]string, len(t.Columns))
	copy(cols, t.Columns)
	return &Table{Columns: cols, Rows: rows}
}

// Clone returns a deep copy of the table, rows included.
func (t *Table) Clone() *Table {
	if t == nil {
		return &Table{}
	}
	rows := make([]Record, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = r.Clone()
	}
	return t.WithRows(rows)
}
