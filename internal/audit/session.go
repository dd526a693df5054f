package audit

import (
	"time"

	"github.com/Veraticus/freight-audit/internal/model"
)

// Session converts a result into the header stored in audit history.
func (r *Result) Session(filename string) *model.AuditSession {
	return &model.AuditSession{
		ID:                r.ID,
		Filename:          filename,
		AuditDate:         r.AuditDate,
		CreatedAt:         time.Now().UTC(),
		TotalShipments:    r.TotalShipments,
		MainAuditCount:    r.MainAuditCount,
		ResidentialCount:  r.ResidentialCount,
		AffectedShipments: r.Summary.AffectedShipments,
		FindingCount:      len(r.Actionable),
		MiscChargeCount:   r.Misc.Summary.Count,
		TotalCharges:      r.Summary.TotalCharges,
		TotalSavings:      r.Summary.TotalSavings,
		SavingsRate:       r.Summary.SavingsRate,
		AffectedRate:      r.Summary.AffectedRate,
	}
}
