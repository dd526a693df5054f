package classification

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCanonicalizer(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		rules   []SurchargeRule
		wantErr bool
	}{
		{
			name:  "default rules",
			rules: DefaultSurchargeRules(),
		},
		{
			name:    "invalid regex",
			rules:   []SurchargeRule{{Label: "BAD", Regex: `[invalid`}},
			wantErr: true,
			errMsg:  "failed to compile rule BAD",
		},
		{
			name:  "empty rules",
			rules: []SurchargeRule{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCanonicalizer(tt.rules)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.rules), c.RuleCount())
		})
	}
}

// The table order is part of the contract: specific rules must precede the
// generic rules they overlap.
func TestDefaultSurchargeRules_Order(t *testing.T) {
	want := []string{
		LabelAddressCorrection,
		LabelDASResidential,
		LabelPeakResidential,
		LabelResidential,
		LabelSaturdayDelivery,
		LabelSaturdayPickup,
		LabelSundayWeekend,
		LabelReturnFee,
		LabelRedirectFee,
		LabelHoldAtLocation,
		LabelBillingError,
		LabelAHSPackaging,
		LabelDemandAdditionalHandling,
		LabelPeakAdditionalHandling,
		LabelAdditionalHandling,
		LabelDemandOversize,
		LabelPeakOversize,
		LabelOversize,
		LabelUnauthorizedPackage,
		LabelPeakSurcharge,
		LabelServiceFailure,
		LabelWeightCorrection,
		LabelDIMWeight,
		LabelOverweight,
		LabelCustomsBrokerage,
		LabelFailedPickupDelivery,
		LabelFuel,
		LabelDeclaredValue,
		LabelMissingDocumentation,
	}
	assert.Equal(t, want, MustDefaultCanonicalizer().Labels())
}

func TestCanonicalizer_Canonical(t *testing.T) {
	c := MustDefaultCanonicalizer()

	tests := []struct {
		label string
		want  string
	}{
		{"DAS Residential Surcharge", LabelDASResidential},
		{"Delivery Area Surcharge - Residential", LabelDASResidential},
		{"Residential Surcharge", LabelResidential},
		{"Res Surcharge", LabelResidential},
		{"Peak Residential", LabelPeakResidential},
		{"Address Correction", LabelAddressCorrection},
		{"Saturday Delivery", LabelSaturdayDelivery},
		{"Sat Pickup", LabelSaturdayPickup},
		{"Weekend Delivery", LabelSundayWeekend},
		{"Return to Shipper", LabelReturnFee},
		{"Delivery Change Fee", LabelRedirectFee},
		{"Hold at Location", LabelHoldAtLocation},
		{"Rebill Fee", LabelBillingError},
		{"Additional Handling - Packaging", LabelAHSPackaging},
		{"Demand Surcharge Additional Handling", LabelDemandAdditionalHandling},
		{"Peak Additional Handling", LabelPeakAdditionalHandling},
		{"Additional Handling", LabelAdditionalHandling},
		{"Addl Handling", LabelAdditionalHandling},
		{"AHS - Weight", LabelAdditionalHandling},
		{"Non-Machinable", LabelAdditionalHandling},
		{"Demand Oversize", LabelDemandOversize},
		{"Peak Oversize", LabelPeakOversize},
		{"Oversize Charge", LabelOversize},
		{"Large Package Surcharge", LabelOversize},
		{"Unauthorized Package", LabelUnauthorizedPackage},
		{"Peak Surcharge", LabelPeakSurcharge},
		{"Money-Back Guarantee", LabelServiceFailure},
		{"Weight Correction", LabelWeightCorrection},
		{"Dimensional Weight", LabelDIMWeight},
		{"Overweight Charge", LabelOverweight},
		{"Brokerage Fee", LabelCustomsBrokerage},
		{"Duty and Tax", LabelCustomsBrokerage},
		{"Attempted Delivery", LabelFailedPickupDelivery},
		{"Fuel Surcharge", LabelFuel},
		{"FSC", LabelFuel},
		{"Declared Value Charge", LabelDeclaredValue},
		{"Missing Documentation", LabelMissingDocumentation},
		{"  something unknown ", "SOMETHING UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Canonical(tt.label))
		})
	}
}

func TestCanonicalizer_Deterministic(t *testing.T) {
	c := MustDefaultCanonicalizer()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, LabelDASResidential, c.Canonical("das residential"))
			}
		}()
	}
	wg.Wait()
}

func TestCanonicalizer_UpdateRules(t *testing.T) {
	c := MustDefaultCanonicalizer()
	require.NoError(t, c.UpdateRules([]SurchargeRule{{Label: "ONLY", Regex: `X`}}))
	assert.Equal(t, 1, c.RuleCount())
	assert.Equal(t, "ONLY", c.Canonical("x-ray"))

	err := c.UpdateRules([]SurchargeRule{{Label: "BAD", Regex: `(`}})
	require.Error(t, err)
	assert.Equal(t, 1, c.RuleCount())
}
