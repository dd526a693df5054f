package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Veraticus/freight-audit/internal/model"
)

var exportHeader = []string{
	"Error Type", "Tracking Number", "Date", "Carrier", "Service Type",
	"Dispute Reason", "Refund Estimate", "Notes", "Claim Status", "Claim Priority",
}

// WriteFindingsCSV writes findings in the column order claim teams expect.
func WriteFindingsCSV(w io.Writer, findings []model.Finding) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, f := range findings {
		row := []string{
			string(f.ErrorType),
			f.TrackingNumber,
			f.Date,
			f.Carrier,
			f.ServiceType,
			f.DisputeReason,
			strconv.FormatFloat(f.RefundEstimate, 'f', 2, 64),
			f.Notes,
			string(f.ClaimStatus),
			string(f.ClaimPriority),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write finding %s: %w", f.TrackingNumber, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}
	return nil
}
