package fields

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/freight-audit/internal/model"
)

// dateLayouts are tried in order when parsing export dates.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05Z07:00",
	"1/2/2006",
	"01/02/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"1/2/06",
	"2006/01/02",
	"20060102",
	"Jan 2, 2006",
	"02-Jan-2006",
}

// First returns the first candidate column that is present, non-null and non-blank.
func First(rec model.Record, columns ...string) (string, bool) {
	for _, c := range columns {
		if v, ok := rec.Value(c); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// Text returns the first non-blank candidate value, or "".
func Text(rec model.Record, columns ...string) string {
	v, _ := First(rec, columns...)
	return v
}

// TextOf resolves a semantic field as text.
func TextOf(rec model.Record, name Name) string {
	return Text(rec, candidates[name]...)
}

// Float returns the first candidate that parses as an amount, or 0.
// Candidates whose values fail to parse are skipped.
func Float(rec model.Record, columns ...string) float64 {
	v, _ := FloatOK(rec, columns...)
	return v
}

// FloatOK is Float that also reports whether any candidate parsed.
func FloatOK(rec model.Record, columns ...string) (float64, bool) {
	for _, c := range columns {
		raw, ok := rec.Value(c)
		if !ok {
			continue
		}
		if f, ok := ParseAmount(raw); ok {
			return f, true
		}
	}
	return 0, false
}

// FloatOf resolves a semantic field as an amount.
func FloatOf(rec model.Record, name Name) float64 {
	return Float(rec, candidates[name]...)
}

// FloatOfOK resolves a semantic field as an amount and reports whether it was found.
func FloatOfOK(rec model.Record, name Name) (float64, bool) {
	return FloatOK(rec, candidates[name]...)
}

// Date parses the first non-blank candidate. A value that does not parse
// resolves to missing; later candidates are not consulted.
func Date(rec model.Record, columns ...string) (time.Time, bool) {
	raw, ok := First(rec, columns...)
	if !ok {
		return time.Time{}, false
	}
	return ParseDate(raw)
}

// DateOf resolves a semantic field as a date.
func DateOf(rec model.Record, name Name) (time.Time, bool) {
	return Date(rec, candidates[name]...)
}

// ParseAmount parses a currency cell: "$1,234.50", "(12.50)" and "-3" are accepted.
func ParseAmount(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if model.IsNull(s) {
		return 0, false
	}
	s = strings.NewReplacer("$", "", ",", "", "(", "-", ")", "", " ", "").Replace(s)
	s = strings.Replace(s, "--", "-", 1)
	if s == "" || s == "-" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseDate parses a date in any of the layouts seen in carrier exports.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if model.IsNull(s) {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Zip returns the recipient ZIP reduced to its first five digits.
func Zip(rec model.Record) string {
	z := TextOf(rec, RecipientZip)
	if z == "" {
		return ""
	}
	if i := strings.Index(z, "-"); i >= 0 {
		z = z[:i]
	}
	var b strings.Builder
	for _, r := range z {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == 5 {
				break
			}
		}
	}
	return b.String()
}

// NormalizeTracking strips spaces and hyphens and upper-cases a tracking number.
func NormalizeTracking(raw string) string {
	if model.IsNull(raw) {
		return ""
	}
	s := strings.TrimSpace(raw)
	s = strings.NewReplacer(" ", "", "-", "").Replace(s)
	return strings.ToUpper(s)
}

// Dimension returns the first positive value among the dimension's candidates, or 0.
func Dimension(rec model.Record, name Name) float64 {
	for _, c := range candidates[name] {
		raw, ok := rec.Value(c)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		if f > 0 {
			return f
		}
	}
	return 0
}

// JoinInfo joins the non-blank values of the columns with single spaces.
func JoinInfo(rec model.Record, columns []string) string {
	parts := make([]string, 0, len(columns))
	for _, c := range columns {
		if v, ok := rec.Value(c); ok && v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

// FormatDate renders a date as YYYY-MM-DD, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
