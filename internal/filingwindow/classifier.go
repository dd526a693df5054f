// Package filingwindow buckets actionable findings by whether their claim can
// still be filed with the carrier.
package filingwindow

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/freight-audit/internal/fields"
	"github.com/Veraticus/freight-audit/internal/model"
)

// Claim windows in days from the reference date.
const (
	LateDeliveryWindowDays   = 15
	LostDamageWindowDays     = 60
	BillingDisputeWindowDays = 180
	DefaultWindowDays        = 180
)

var actualDate = regexp.MustCompile(
	`Actual:\s*(\d{4}-\d{2}-\d{2}(?:[T\s][\d:]+(?:[+-]\d{2}:?\d{2}|Z)?)?|\d{1,2}/\d{1,2}/\d{4})`)

// category is one claim type: which findings it covers, how far back a claim
// may be filed and which date the window runs from.
type category struct {
	matches   func(errorType string) bool
	reference func(f model.Finding) (time.Time, bool)
	name      string
	window    int
}

// categories are evaluated in order; a finding is claimed by the first match.
var categories = []category{
	{
		name:      "late_delivery",
		window:    LateDeliveryWindowDays,
		matches:   containsAny("LATE DELIVERY"),
		reference: deliveryFromNotes,
	},
	{
		name:      "lost_damage",
		window:    LostDamageWindowDays,
		matches:   containsAny("LOST", "DAMAGE"),
		reference: firstDate(func(f model.Finding) string { return f.ShipmentDate }),
	},
	{
		name:      "billing_dispute",
		window:    BillingDisputeWindowDays,
		matches:   containsAny("DISPUTABLE SURCHARGE", "DUPLICATE"),
		reference: firstDate(func(f model.Finding) string { return f.InvoiceDate }),
	},
	{
		name:      "default",
		window:    DefaultWindowDays,
		matches:   func(string) bool { return true },
		reference: firstDate(func(f model.Finding) string { return f.InvoiceDate }),
	},
}

func containsAny(keywords ...string) func(string) bool {
	return func(errorType string) bool {
		for _, k := range keywords {
			if strings.Contains(errorType, k) {
				return true
			}
		}
		return false
	}
}

// firstDate uses the given field and falls back to the finding's generic date.
func firstDate(primary func(model.Finding) string) func(model.Finding) (time.Time, bool) {
	return func(f model.Finding) (time.Time, bool) {
		if t, ok := fields.ParseDate(primary(f)); ok {
			return t, true
		}
		return fields.ParseDate(f.Date)
	}
}

// deliveryFromNotes reads the "Actual: <date>" token. There is no fallback.
func deliveryFromNotes(f model.Finding) (time.Time, bool) {
	m := actualDate.FindStringSubmatch(f.Notes)
	if m == nil {
		return time.Time{}, false
	}
	return fields.ParseDate(m[1])
}

// Evaluation is the outcome for one finding.
type Evaluation struct {
	Reference   time.Time
	Status      model.FilingStatus
	Category    string
	WindowDays  int
	DaysElapsed int
}

// Evaluate moves one finding from pending to a terminal status.
func Evaluate(f model.Finding, today time.Time) Evaluation {
	ev := Evaluation{Status: model.FilingPending}
	errorType := strings.ToUpper(string(f.ErrorType))
	today = midnight(today)

	for _, c := range categories {
		if ev.Status != model.FilingPending {
			break
		}
		if !c.matches(errorType) {
			continue
		}
		ev.Category = c.name
		ev.WindowDays = c.window

		ref, ok := c.reference(f)
		if !ok {
			ev.Status = model.FilingMissingDate
			continue
		}
		ev.Reference = midnight(ref)
		ev.DaysElapsed = int(today.Sub(ev.Reference).Hours() / 24)
		if ev.DaysElapsed <= c.window {
			ev.Status = model.FilingWithinWindow
		} else {
			ev.Status = model.FilingExpired
		}
	}
	return ev
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Summary counts and values each bucket.
type Summary struct {
	TotalOriginal      int     `json:"total_original"`
	TotalOriginalValue float64 `json:"total_original_value"`
	WithinWindow       int     `json:"within_window"`
	WithinWindowValue  float64 `json:"within_window_value"`
	Expired            int     `json:"expired"`
	ExpiredValue       float64 `json:"expired_value"`
	MissingDate        int     `json:"missing_date"`
	MissingDateValue   float64 `json:"missing_date_value"`
}

// Result partitions the findings by filing status, preserving input order.
type Result struct {
	WithinWindow []model.Finding
	Expired      []model.Finding
	MissingDate  []model.Finding
	Summary      Summary
}

// Classify evaluates every finding as of today.
func Classify(findings []model.Finding, today time.Time) Result {
	var res Result
	total, within, expired, missing := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero

	for _, f := range findings {
		amt := decimal.NewFromFloat(f.RefundEstimate)
		total = total.Add(amt)

		switch Evaluate(f, today).Status {
		case model.FilingWithinWindow:
			res.WithinWindow = append(res.WithinWindow, f)
			within = within.Add(amt)
		case model.FilingExpired:
			res.Expired = append(res.Expired, f)
			expired = expired.Add(amt)
		default:
			res.MissingDate = append(res.MissingDate, f)
			missing = missing.Add(amt)
		}
	}

	res.Summary = Summary{
		TotalOriginal:      len(findings),
		TotalOriginalValue: total.InexactFloat64(),
		WithinWindow:       len(res.WithinWindow),
		WithinWindowValue:  within.InexactFloat64(),
		Expired:            len(res.Expired),
		ExpiredValue:       expired.InexactFloat64(),
		MissingDate:        len(res.MissingDate),
		MissingDateValue:   missing.InexactFloat64(),
	}
	return res
}
