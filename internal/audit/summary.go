package audit

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/freight-audit/internal/fields"
	"github.com/Veraticus/freight-audit/internal/model"
)

// chargeColumns are read in order for a row's billed total.
var chargeColumns = []string{"Total Charges", "Net Charge Amount USD", "Net Charge"}

// Summary aggregates one audit run. Money values are rounded to cents and
// rates are percentages.
type Summary struct {
	TotalCharges      float64 `json:"total_charges"`
	TotalSavings      float64 `json:"total_savings"`
	SavingsRate       float64 `json:"savings_rate"`
	AffectedRate      float64 `json:"affected_rate"`
	AffectedShipments int     `json:"affected_shipments"`
	TotalShipments    int     `json:"total_shipments"`
}

// Summarize computes the summary over the main-audit pool and its findings.
func Summarize(main []model.Record, findings []model.Finding) Summary {
	charges := decimal.Zero
	for _, rec := range main {
		charges = charges.Add(decimal.NewFromFloat(fields.Float(rec, chargeColumns...)))
	}

	savings := decimal.Zero
	affected := make(map[string]struct{})
	for _, f := range findings {
		savings = savings.Add(decimal.NewFromFloat(f.RefundEstimate))
		if tracking := fields.NormalizeTracking(f.TrackingNumber); tracking != "" {
			affected[tracking] = struct{}{}
		}
	}

	s := Summary{
		TotalCharges:      charges.Round(2).InexactFloat64(),
		TotalSavings:      savings.Round(2).InexactFloat64(),
		AffectedShipments: len(affected),
		TotalShipments:    len(main),
	}

	hundred := decimal.NewFromInt(100)
	if charges.IsPositive() {
		s.SavingsRate = savings.Div(charges).Mul(hundred).Round(2).InexactFloat64()
	}
	if s.TotalShipments > 0 {
		s.AffectedRate = decimal.NewFromInt(int64(s.AffectedShipments)).
			Div(decimal.NewFromInt(int64(s.TotalShipments))).Mul(hundred).Round(2).InexactFloat64()
	}
	return s
}
