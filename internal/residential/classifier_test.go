package residential

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/freight-audit/internal/classification"
	"github.com/Veraticus/freight-audit/internal/model"
)

func TestClassifier_Split(t *testing.T) {
	tests := []struct {
		name            string
		record          model.Record
		wantResidential bool
	}{
		{
			name: "business recipient with private shipper goes to review",
			record: model.Record{
				"Tracking Number":        "111111111111",
				"Surcharge_Details":      "Residential Surcharge: $5.10",
				"Recipient Company Name": "TARGET #1234",
				"Shipper Name":           "Jane Doe",
				"Shipper Address":        "45 Elm St",
			},
			wantResidential: true,
		},
		{
			name: "both sides business stays in main audit",
			record: model.Record{
				"Tracking Number":        "222222222222",
				"Surcharge_Details":      "Residential Surcharge: $5.10",
				"Recipient Company Name": "Sephora Valley Fair",
				"Shipper Company Name":   "Acme Distribution LLC",
			},
			wantResidential: false,
		},
		{
			name: "private recipient with business shipper goes to review",
			record: model.Record{
				"Tracking Number":      "333333333333",
				"Charge Description":   "DAS Residential",
				"Recipient Name":       "John Smith",
				"Shipper Company Name": "Acme LLC",
			},
			wantResidential: true,
		},
		{
			name: "no residential phrase stays in main audit",
			record: model.Record{
				"Tracking Number":   "444444444444",
				"Surcharge_Details": "Fuel Surcharge: $3.00",
				"Recipient Name":    "John Smith",
			},
			wantResidential: false,
		},
		{
			name: "phrase match is case-insensitive",
			record: model.Record{
				"Tracking Number":     "555555555555",
				"Service Description": "HOME DELIVERY",
			},
			wantResidential: true,
		},
		{
			name: "null cells are ignored",
			record: model.Record{
				"Tracking Number":   "666666666666",
				"Surcharge_Details": "NaN",
			},
			wantResidential: false,
		},
	}

	c := New(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.Split(model.NewTable(tt.record))
			if tt.wantResidential {
				require.Len(t, res.Residential, 1)
				assert.Empty(t, res.Main)
				assert.Equal(t, []string{SourceResidentialDelivery}, res.Residential[0].Sources)
				return
			}
			assert.Empty(t, res.Residential)
			assert.Len(t, res.Main, 1)
		})
	}
}

func TestClassifier_SplitPreservesOrder(t *testing.T) {
	rows := []model.Record{
		{"Tracking Number": "1", "Surcharge_Details": "Residential Delivery: $4"},
		{"Tracking Number": "2"},
		{"Tracking Number": "3", "Surcharge_Details": "residential area surcharge 2.00"},
		{"Tracking Number": "4"},
	}
	res := New(nil, nil).Split(model.NewTable(rows...))

	require.Len(t, res.Residential, 2)
	require.Len(t, res.Main, 2)
	assert.Equal(t, "1", res.Residential[0].Record["Tracking Number"])
	assert.Equal(t, "3", res.Residential[1].Record["Tracking Number"])
	assert.Equal(t, "2", res.Main[0]["Tracking Number"])
	assert.Equal(t, "4", res.Main[1]["Tracking Number"])
	assert.Len(t, res.Records(), 2)
}

func TestClassifier_CustomPatternsAndIndicators(t *testing.T) {
	matcher, err := classification.NewBusinessMatcher(
		append(classification.DefaultBusinessIndicators(), "GILLUM DR"), nil)
	require.NoError(t, err)

	c := New([]string{"  Resi Fee "}, matcher)
	assert.Equal(t, []string{"resi fee"}, c.Patterns())

	rec := model.Record{
		"Charge Description":     "RESI FEE",
		"Recipient Company Name": "Nordstrom Rack",
		"Shipper Address":        "251 Gillum Dr",
	}
	assert.True(t, c.HasResidentialSurcharge(rec))
	assert.False(t, c.IsReviewCandidate(rec))

	assert.False(t, c.HasResidentialSurcharge(model.Record{"Charge Description": "Residential Surcharge"}))
}

func TestClassifier_SplitNilTable(t *testing.T) {
	res := New(nil, nil).Split(nil)
	assert.Empty(t, res.Residential)
	assert.Empty(t, res.Main)
}
