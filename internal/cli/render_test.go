package cli

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/freight-audit/internal/audit"
	"github.com/Veraticus/freight-audit/internal/filingwindow"
	"github.com/Veraticus/freight-audit/internal/misccharges"
	"github.com/Veraticus/freight-audit/internal/model"
)

func sampleFindings() []model.Finding {
	return []model.Finding{
		{
			ErrorType:      model.ErrorDuplicateTracking,
			TrackingNumber: "999888777666",
			Carrier:        "FedEx",
			DisputeReason:  "Duplicate freight billing (2 identical charges)",
			RefundEstimate: 1250,
			ClaimStatus:    model.ClaimReadyToSubmit,
			ClaimPriority:  model.PriorityHigh,
		},
		{
			ErrorType:      model.ErrorDisputableSurcharge,
			TrackingNumber: "555444333222",
			DisputeReason:  "Fuel surcharge unusually high (40.0% of net charge)",
			RefundEstimate: 12,
			Notes:          "FUEL SURCHARGE $40.00, with comma",
			ClaimStatus:    model.ClaimReadyToSubmit,
			ClaimPriority:  model.PriorityMedium,
		},
	}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		want   string
		amount float64
	}{
		{amount: 0, want: "$0.00"},
		{amount: 12, want: "$12.00"},
		{amount: 1234.5, want: "$1,234.50"},
		{amount: 1234567.891, want: "$1,234,567.89"},
		{amount: -45.1, want: "-$45.10"},
		{amount: 999.999, want: "$1,000.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Money(tt.amount))
	}
}

func TestRenderer_Summary(t *testing.T) {
	var out bytes.Buffer
	res := &audit.Result{
		ID:               "abc-123",
		TotalShipments:   5,
		MainAuditCount:   4,
		ResidentialCount: 1,
		Findings:         sampleFindings(),
		Actionable:       sampleFindings(),
		Summary: audit.Summary{
			TotalCharges:      2450.10,
			TotalSavings:      1262,
			SavingsRate:       51.5,
			AffectedShipments: 2,
			TotalShipments:    4,
			AffectedRate:      50,
		},
		MiscErr: errors.New("bad row"),
	}

	NewRenderer(&out).Summary(res)

	got := out.String()
	assert.Contains(t, got, "abc-123")
	assert.Contains(t, got, "$2,450.10")
	assert.Contains(t, got, "$1,262.00 (51.5%)")
	assert.Contains(t, got, "2 findings, 2 ready to submit")
	assert.Contains(t, got, "Misc charge detection failed: bad row")
}

func TestRenderer_SummaryClean(t *testing.T) {
	var out bytes.Buffer
	NewRenderer(&out).Summary(&audit.Result{ID: "x"})
	assert.Contains(t, out.String(), "No billing errors found")
}

func TestRenderer_Findings(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out)

	r.Findings(sampleFindings(), 1)
	got := out.String()
	assert.Contains(t, got, "999888777666")
	assert.Contains(t, got, "$1,250.00")
	assert.NotContains(t, got, "555444333222")
	assert.Contains(t, got, "... and 1 more")

	out.Reset()
	r.Findings(nil, 0)
	assert.Empty(t, out.String())
}

func TestRenderer_FilingAndMisc(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out)

	today := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	r.Filing(filingwindow.Classify([]model.Finding{
		{ErrorType: model.ErrorLateDelivery, Notes: "Expected: 2023-12-29, Actual: 2024-01-01, 1 day(s) late", RefundEstimate: 20},
	}, today))
	assert.Contains(t, out.String(), "Expired:       1 ($20.00)")

	out.Reset()
	r.Misc(misccharges.Views{
		ByCategory: []misccharges.CategoryRollup{{Category: "Address Correction", Count: 2, Total: 36}},
		Summary:    misccharges.Summary{Count: 2, Sum: 36, Avg: 18},
	})
	assert.Contains(t, out.String(), "2 charges, $36.00 total, $18.00 average")
	assert.Contains(t, out.String(), "Address Correction")

	out.Reset()
	r.Misc(misccharges.Views{})
	assert.Empty(t, out.String())
}

func TestRenderer_History(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out)

	r.History(nil)
	assert.Contains(t, out.String(), "No audits saved yet")

	out.Reset()
	session := model.AuditSession{
		ID:           "sess-1",
		Filename:     "march.csv",
		AuditDate:    time.Date(2024, 3, 12, 9, 30, 0, 0, time.UTC),
		TotalCharges: 100,
		TotalSavings: 10,
		SavingsRate:  10,
	}
	r.History([]model.AuditSession{session})
	assert.Contains(t, out.String(), "sess-1")
	assert.Contains(t, out.String(), "2024-03-12 09:30")

	out.Reset()
	r.Session(&session, sampleFindings())
	assert.Contains(t, out.String(), "march.csv")
	assert.Contains(t, out.String(), "555444333222")

	out.Reset()
	r.Statistics(&model.AuditStatistics{SessionCount: 3, TotalSavings: 1500})
	assert.Contains(t, out.String(), "$1,500.00")
}

func TestWriteFindingsCSV(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteFindingsCSV(&out, sampleFindings()))

	records, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, exportHeader, records[0])
	assert.Equal(t, "1250.00", records[1][6])
	assert.Equal(t, "FUEL SURCHARGE $40.00, with comma", records[2][7])
	assert.Equal(t, "Medium", records[2][9])
}
