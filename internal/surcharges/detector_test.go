package surcharges

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/freight-audit/internal/model"
)

func newTestDetector() *Detector {
	return New(nil, nil, DefaultThresholds())
}

func detect(t *testing.T, rows ...model.Record) []model.Finding {
	t.Helper()
	findings, err := newTestDetector().Detect(context.Background(), model.NewTable(rows...))
	require.NoError(t, err)
	return findings
}

func TestDetector_AdditionalHandling(t *testing.T) {
	tests := []struct {
		name      string
		length    string
		width     string
		height    string
		weight    string
		wantFound bool
	}{
		{name: "small light package", length: "20", width: "15", height: "10", weight: "10", wantFound: true},
		{name: "large heavy package", length: "50", width: "20", height: "20", weight: "60"},
		{name: "heavy only", length: "20", width: "15", height: "10", weight: "50"},
		{name: "second side over limit", length: "40", width: "31", height: "5", weight: "10"},
		{name: "no dimensions", weight: "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := model.Record{
				"Tracking Number":     "111",
				"Service Type":        "Ground",
				"Additional Handling": "15.00",
				"Actual Weight":       tt.weight,
			}
			if tt.length != "" {
				rec["Length"], rec["Width"], rec["Height"] = tt.length, tt.width, tt.height
			}
			findings := detect(t, rec)
			if !tt.wantFound {
				assert.Empty(t, findings)
				return
			}
			require.Len(t, findings, 1)
			assert.Equal(t, model.ErrorDisputableSurcharge, findings[0].ErrorType)
			assert.InDelta(t, 15.0, findings[0].RefundEstimate, 0.001)
			assert.Equal(t, `ADDITIONAL HANDLING SURCHARGE $15.00 | Dims 20.0x15.0x10.0", Wt 10.0 lb`, findings[0].Notes)
		})
	}
}

func TestDetector_Fuel(t *testing.T) {
	tests := []struct {
		name       string
		net        string
		wantRefund float64
		wantFound  bool
	}{
		{name: "forty percent", net: "100", wantFound: true, wantRefund: 12.0},
		{name: "twenty percent", net: "200"},
		{name: "exactly at limit", net: "133.3333334"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := detect(t, model.Record{
				"Tracking Number":       "222",
				"Service Type":          "Ground",
				"Surcharge_Details":     "Fuel Surcharge: $40.00",
				"Net Charge Amount USD": tt.net,
			})
			if !tt.wantFound {
				assert.Empty(t, findings)
				return
			}
			require.Len(t, findings, 1)
			assert.InDelta(t, tt.wantRefund, findings[0].RefundEstimate, 0.001)
			assert.Equal(t, "Fuel surcharge unusually high (40.0% of net charge)", findings[0].DisputeReason)
		})
	}
}

func TestDetector_FuelInternationalUsesTrackingTotal(t *testing.T) {
	rows := []model.Record{
		{
			"Tracking Number":       "7788 9900",
			"Service Type":          "International Priority",
			"Surcharge_Details":     "Fuel Surcharge: $40.00",
			"Net Charge Amount USD": "60",
		},
		{
			"Tracking Number":       "77889900",
			"Service Type":          "International Priority",
			"Net Charge Amount USD": "80",
		},
	}
	assert.Empty(t, detect(t, rows...))

	rows[0]["Service Type"] = "Ground"
	rows[1]["Service Type"] = "Ground"
	findings := detect(t, rows...)
	require.Len(t, findings, 1)
	assert.InDelta(t, 12.0, findings[0].RefundEstimate, 0.001)
}

func TestDetector_FuelFallsBackToBaseRate(t *testing.T) {
	findings := detect(t, model.Record{
		"Tracking Number": "333",
		"Fuel Surcharge":  "10",
		"Base Rate":       "20",
	})
	require.Len(t, findings, 1)
	assert.InDelta(t, 3.0, findings[0].RefundEstimate, 0.001)
	assert.Equal(t, "FUEL SURCHARGE $10.00 | FSC $10.00 / Net Charge $20.00", findings[0].Notes)
}

func TestDetector_CategoryRules(t *testing.T) {
	tests := []struct {
		record     model.Record
		name       string
		wantReason string
		wantRefund float64
		wantFound  bool
	}{
		{
			name:       "address correction",
			record:     model.Record{"Address Correction": "20"},
			wantFound:  true,
			wantRefund: 16,
		},
		{
			name: "residential to business recipient",
			record: model.Record{
				"Residential Surcharge":  "5",
				"Recipient Company Name": "Sephora #42",
			},
			wantFound:  true,
			wantRefund: 5,
			wantReason: "Residential surcharge applied to business address",
		},
		{
			name: "residential to private recipient",
			record: model.Record{
				"Residential Surcharge": "5",
				"Recipient Name":        "Jane Doe",
			},
		},
		{
			name: "saturday delivery on a weekday",
			record: model.Record{
				"Saturday Delivery": "16",
				"Delivery Date":     "2024-03-05",
			},
			wantFound:  true,
			wantRefund: 16,
		},
		{
			name: "saturday delivery on saturday",
			record: model.Record{
				"Saturday Delivery": "16",
				"Delivery Date":     "2024-03-09",
			},
		},
		{
			name:       "return fee",
			record:     model.Record{"Return Fee": "10"},
			wantFound:  true,
			wantRefund: 6,
			wantReason: "RETURN FEE - verify customer/carrier request vs. error",
		},
		{
			name:       "billing error",
			record:     model.Record{"Surcharge_Details": "Rebill Fee: 7"},
			wantFound:  true,
			wantRefund: 7,
		},
		{
			name:       "oversize under thresholds",
			record:     model.Record{"Oversize Charge": "90", "Length": "60", "Width": "20", "Height": "10"},
			wantFound:  true,
			wantRefund: 90,
		},
		{
			name:   "oversize over length plus girth",
			record: model.Record{"Oversize Charge": "90", "Length": "60", "Width": "30", "Height": "10"},
		},
		{
			name:       "unauthorized package",
			record:     model.Record{"Unauthorized Package": "100"},
			wantFound:  true,
			wantRefund: 80,
		},
		{
			name:       "peak outside season",
			record:     model.Record{"Peak Surcharge": "10", "Shipment Date": "2024-06-10"},
			wantFound:  true,
			wantRefund: 7,
		},
		{
			name:       "peak in season on premium service",
			record:     model.Record{"Peak Surcharge": "10", "Shipment Date": "2024-12-10", "Service Type": "Priority Overnight"},
			wantFound:  true,
			wantRefund: 4,
		},
		{
			name:   "peak in season on ground",
			record: model.Record{"Peak Surcharge": "10", "Shipment Date": "2024-12-10", "Service Type": "Ground"},
		},
		{
			name:       "service failure",
			record:     model.Record{"Surcharge_Details": "Late Delivery Adjustment: 9"},
			wantFound:  true,
			wantRefund: 9,
		},
		{
			name: "weight correction over dim and actual",
			record: model.Record{
				"Weight Correction": "10",
				"Length":            "10", "Width": "10", "Height": "10",
				"Actual Weight": "5",
				"Billed Weight": "12",
			},
			wantFound:  true,
			wantRefund: 8,
			wantReason: "Billed weight appears 4 lb over correct billable",
		},
		{
			name: "weight correction within tolerance",
			record: model.Record{
				"Weight Correction": "10",
				"Length":            "10", "Width": "10", "Height": "10",
				"Actual Weight": "5",
				"Billed Weight": "9",
			},
		},
		{
			name:       "overweight on light package",
			record:     model.Record{"Overweight Charge": "25", "Actual Weight": "40"},
			wantFound:  true,
			wantRefund: 25,
			wantReason: "Overweight charge but actual weight 40.0 lb (<150 lb threshold)",
		},
		{
			name:       "customs on domestic shipment",
			record:     model.Record{"Brokerage Fee": "30", "Service Type": "Ground"},
			wantFound:  true,
			wantRefund: 15,
		},
		{
			name:   "customs on international shipment",
			record: model.Record{"Brokerage Fee": "30", "Service Type": "IP"},
		},
		{
			name:       "failed delivery",
			record:     model.Record{"Attempted Delivery": "10"},
			wantFound:  true,
			wantRefund: 7,
		},
		{
			name:       "declared value on low value package",
			record:     model.Record{"Declared Value Charge": "4", "Declared Value": "50"},
			wantFound:  true,
			wantRefund: 4,
			wantReason: "Declared value charge on low-value package ($50.00)",
		},
		{
			name:   "declared value on valuable package",
			record: model.Record{"Declared Value Charge": "4", "Declared Value": "500"},
		},
		{
			name:       "missing documentation",
			record:     model.Record{"Missing Documentation": "10"},
			wantFound:  true,
			wantRefund: 7,
		},
		{
			name:   "delivery area residential is not disputed",
			record: model.Record{"Surcharge_Details": "DAS Residential: 3.00"},
		},
		{
			name:       "single blank description",
			record:     model.Record{"Surcharge_Details": "$3.00"},
			wantFound:  true,
			wantRefund: 3,
			wantReason: "Charge with no description - carrier must provide a reason for all charges",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.record["Tracking Number"] = "444"
			findings := detect(t, tt.record)
			if !tt.wantFound {
				assert.Empty(t, findings)
				return
			}
			require.Len(t, findings, 1)
			assert.InDelta(t, tt.wantRefund, findings[0].RefundEstimate, 0.001)
			if tt.wantReason != "" {
				assert.Equal(t, tt.wantReason, findings[0].DisputeReason)
			}
		})
	}
}

func TestDetector_DuplicateSurcharges(t *testing.T) {
	t.Run("ordinary duplicate keeps one", func(t *testing.T) {
		findings := detect(t, model.Record{
			"Tracking Number":   "555",
			"Surcharge_Details": "Residential Surcharge: $5.00 | Residential Surcharge: $5.00",
			"Recipient Name":    "Jane Doe",
		})
		require.Len(t, findings, 1)
		assert.Equal(t, "Duplicate surcharge appears 2 times", findings[0].DisputeReason)
		assert.InDelta(t, 5.0, findings[0].RefundEstimate, 0.001)
		assert.Equal(t, "RESIDENTIAL SURCHARGE billed 2x, total $10.00", findings[0].Notes)
	})

	t.Run("repeated blanks refund in full", func(t *testing.T) {
		findings := detect(t, model.Record{
			"Tracking Number":   "556",
			"Surcharge_Details": "$3.00; : $4.00",
		})
		require.Len(t, findings, 1)
		assert.InDelta(t, 7.0, findings[0].RefundEstimate, 0.001)
		assert.Equal(t, "Multiple charges (2x) with blank descriptions - carrier must provide a reason for all charges",
			findings[0].DisputeReason)
	})

	t.Run("duplicates consolidated per tracking number", func(t *testing.T) {
		findings := detect(t, model.Record{
			"Tracking Number":   "557",
			"Surcharge_Details": "Fuel: 1 | Fuel: 1 | Address Correction: 2 | Address Correction: 2",
		})
		require.Len(t, findings, 3)

		assert.Equal(t, "Address correction fee - verify original label; often disputable", findings[0].DisputeReason)
		assert.Equal(t, "Address correction fee - verify original label; often disputable", findings[1].DisputeReason)

		merged := findings[2]
		assert.Equal(t, "Duplicate surcharges across 2 charge types", merged.DisputeReason)
		assert.InDelta(t, 3.0, merged.RefundEstimate, 0.001)
		assert.Equal(t,
			"FUEL SURCHARGE billed 2x, total $2.00 | ADDRESS CORRECTION billed 2x, total $4.00",
			merged.Notes)
	})
}

func TestDetector_SkipsReturnManager(t *testing.T) {
	assert.Empty(t, detect(t, model.Record{
		"Tracking Number":    "666",
		"Service Type":       "RMGR",
		"Address Correction": "20",
	}))
}

func TestDetector_FindingFields(t *testing.T) {
	findings := detect(t, model.Record{
		"Tracking Number":    "777",
		"Carrier":            "FedEx",
		"Service Type":       "Ground",
		"Shipment Date":      "2024-02-01",
		"Invoice Date":       "2024-02-08",
		"Address Correction": "20",
	})
	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, "777", f.TrackingNumber)
	assert.Equal(t, "FEDEX", f.Carrier)
	assert.Equal(t, "Ground", f.ServiceType)
	assert.Equal(t, "2024-02-01", f.Date)
	assert.Equal(t, "2024-02-08", f.InvoiceDate)
	assert.Equal(t, "ADDRESS CORRECTION $20.00", f.Notes)
}

func TestDetector_CustomThresholds(t *testing.T) {
	th := DefaultThresholds()
	th.FuelMaxPercent = 50

	d := New(nil, nil, th)
	findings, err := d.Detect(context.Background(), model.NewTable(model.Record{
		"Tracking Number":       "888",
		"Fuel Surcharge":        "40",
		"Net Charge Amount USD": "100",
	}))
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestDetector_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestDetector().Detect(ctx, model.NewTable(model.Record{"Fuel Surcharge": "1"}))
	assert.ErrorIs(t, err, context.Canceled)
}
