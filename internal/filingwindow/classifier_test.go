package filingwindow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/freight-audit/internal/model"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name         string
		today        string
		wantStatus   model.FilingStatus
		wantCategory string
		finding      model.Finding
		wantElapsed  int
	}{
		{
			name:         "late delivery expired",
			finding:      model.Finding{ErrorType: model.ErrorLateDelivery, Notes: "Expected: 2023-12-29, Actual: 2024-01-01, 1 day(s) late"},
			today:        "2024-02-01",
			wantStatus:   model.FilingExpired,
			wantCategory: "late_delivery",
			wantElapsed:  31,
		},
		{
			name:         "late delivery within window",
			finding:      model.Finding{ErrorType: model.ErrorLateDelivery, Notes: "Expected: 2023-12-29, Actual: 2024-01-01, 1 day(s) late"},
			today:        "2024-01-10",
			wantStatus:   model.FilingWithinWindow,
			wantCategory: "late_delivery",
			wantElapsed:  9,
		},
		{
			name:         "late delivery on the last day",
			finding:      model.Finding{ErrorType: model.ErrorLateDelivery, Notes: "Actual: 1/1/2024"},
			today:        "2024-01-16",
			wantStatus:   model.FilingWithinWindow,
			wantCategory: "late_delivery",
			wantElapsed:  15,
		},
		{
			name:         "late delivery with timestamp",
			finding:      model.Finding{ErrorType: model.ErrorLateDelivery, Notes: "Actual: 2024-01-01T18:45:00Z"},
			today:        "2024-01-17",
			wantStatus:   model.FilingExpired,
			wantCategory: "late_delivery",
			wantElapsed:  16,
		},
		{
			name: "late delivery ignores other dates",
			finding: model.Finding{
				ErrorType:   model.ErrorLateDelivery,
				Date:        "2024-01-01",
				InvoiceDate: "2024-01-05",
				Notes:       "no delivery recorded",
			},
			today:        "2024-01-10",
			wantStatus:   model.FilingMissingDate,
			wantCategory: "late_delivery",
		},
		{
			name:         "surcharge uses invoice date",
			finding:      model.Finding{ErrorType: model.ErrorDisputableSurcharge, Date: "2023-01-01", InvoiceDate: "2024-01-01"},
			today:        "2024-06-01",
			wantStatus:   model.FilingWithinWindow,
			wantCategory: "billing_dispute",
			wantElapsed:  152,
		},
		{
			name:         "duplicate falls back to generic date",
			finding:      model.Finding{ErrorType: model.ErrorDuplicateTracking, Date: "2023-01-01"},
			today:        "2024-06-01",
			wantStatus:   model.FilingExpired,
			wantCategory: "billing_dispute",
			wantElapsed:  517,
		},
		{
			name:         "billing dispute without any date",
			finding:      model.Finding{ErrorType: model.ErrorDisputableSurcharge},
			today:        "2024-06-01",
			wantStatus:   model.FilingMissingDate,
			wantCategory: "billing_dispute",
		},
		{
			name:         "lost package uses shipment date",
			finding:      model.Finding{ErrorType: "Lost Package", ShipmentDate: "2024-04-01", Date: "2023-01-01"},
			today:        "2024-05-31",
			wantStatus:   model.FilingWithinWindow,
			wantCategory: "lost_damage",
			wantElapsed:  60,
		},
		{
			name:         "damage claim expired",
			finding:      model.Finding{ErrorType: "Damaged Shipment", Date: "2024-01-01"},
			today:        "2024-05-31",
			wantStatus:   model.FilingExpired,
			wantCategory: "lost_damage",
			wantElapsed:  151,
		},
		{
			name:         "other error type uses default window",
			finding:      model.Finding{ErrorType: "Zone Error", InvoiceDate: "2024-01-01"},
			today:        "2024-06-29",
			wantStatus:   model.FilingWithinWindow,
			wantCategory: "default",
			wantElapsed:  180,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := Evaluate(tt.finding, day(t, tt.today))
			assert.Equal(t, tt.wantStatus, ev.Status)
			assert.Equal(t, tt.wantCategory, ev.Category)
			assert.Equal(t, tt.wantElapsed, ev.DaysElapsed)
		})
	}
}

func TestEvaluate_TodayTimeOfDayIgnored(t *testing.T) {
	f := model.Finding{ErrorType: model.ErrorLateDelivery, Notes: "Actual: 2024-01-01"}
	today := time.Date(2024, 1, 16, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, model.FilingWithinWindow, Evaluate(f, today).Status)
}

func TestClassify(t *testing.T) {
	findings := []model.Finding{
		{ErrorType: model.ErrorLateDelivery, Notes: "Actual: 2024-01-01", RefundEstimate: 20},
		{ErrorType: model.ErrorLateDelivery, Notes: "Actual: 2024-01-25", RefundEstimate: 10.5},
		{ErrorType: model.ErrorDisputableSurcharge, InvoiceDate: "2024-01-15", RefundEstimate: 4.25},
		{ErrorType: model.ErrorDuplicateTracking, RefundEstimate: 50},
	}

	res := Classify(findings, day(t, "2024-02-01"))

	require.Len(t, res.WithinWindow, 2)
	require.Len(t, res.Expired, 1)
	require.Len(t, res.MissingDate, 1)
	assert.InDelta(t, 10.5, res.WithinWindow[0].RefundEstimate, 0.001)
	assert.InDelta(t, 4.25, res.WithinWindow[1].RefundEstimate, 0.001)

	assert.Equal(t, Summary{
		TotalOriginal:      4,
		TotalOriginalValue: 84.75,
		WithinWindow:       2,
		WithinWindowValue:  14.75,
		Expired:            1,
		ExpiredValue:       20,
		MissingDate:        1,
		MissingDateValue:   50,
	}, res.Summary)
}

func TestClassify_Empty(t *testing.T) {
	res := Classify(nil, time.Now())
	assert.Empty(t, res.WithinWindow)
	assert.Equal(t, Summary{}, res.Summary)
}
