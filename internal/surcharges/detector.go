package surcharges

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/freight-audit/internal/classification"
	"github.com/Veraticus/freight-audit/internal/fields"
	"github.com/Veraticus/freight-audit/internal/model"
)

// Detector evaluates every surcharge billed on each record.
type Detector struct {
	canon      *classification.Canonicalizer
	matcher    *classification.BusinessMatcher
	thresholds Thresholds
}

// New creates a surcharge detector. Nil collaborators select the defaults.
func New(canon *classification.Canonicalizer, matcher *classification.BusinessMatcher, thresholds Thresholds) *Detector {
	if canon == nil {
		canon = classification.MustDefaultCanonicalizer()
	}
	if matcher == nil {
		matcher = classification.DefaultBusinessMatcher()
	}
	return &Detector{canon: canon, matcher: matcher, thresholds: thresholds}
}

// pending is a finding awaiting the dataset-wide duplicate consolidation.
type pending struct {
	finding   model.Finding
	duplicate bool
}

// Detect returns per-surcharge findings followed by one duplicate-surcharge
// finding per tracking number.
func (d *Detector) Detect(ctx context.Context, table *model.Table) ([]model.Finding, error) {
	if table.Len() == 0 {
		return nil, nil
	}

	netByTracking := make(map[string]float64)
	for _, rec := range table.Rows {
		tracking := fields.NormalizeTracking(fields.TextOf(rec, fields.TrackingNumber))
		if tracking == "" {
			continue
		}
		netByTracking[tracking] += fields.FloatOf(rec, fields.NetCharge)
	}

	var all []pending
	for i, rec := range table.Rows {
		if i%500 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("surcharge check canceled: %w", err)
			}
		}
		all = append(all, d.evaluateRecord(rec, netByTracking)...)
	}

	findings := consolidate(all)
	slog.Debug("Surcharge check complete", "records", table.Len(), "findings", len(findings))
	return findings, nil
}

// Entries returns every canonical surcharge billed on a record: the parsed
// details field first, then the discrete columns.
func (d *Detector) Entries(rec model.Record) []model.SurchargeEntry {
	entries := ParseDetails(fields.TextOf(rec, fields.SurchargeDetails), d.canon)
	return append(entries, ColumnEntries(rec, d.canon)...)
}

func (d *Detector) evaluateRecord(rec model.Record, netByTracking map[string]float64) []pending {
	service := fields.TextOf(rec, fields.Service)
	if strings.Contains(strings.ToUpper(service), "RMGR") {
		return nil
	}

	entries := d.Entries(rec)
	if len(entries) == 0 {
		return nil
	}

	s := newShipment(rec, d.thresholds, netByTracking)
	for _, e := range entries {
		if e.IsBlank() {
			s.blankCount++
		}
	}

	var out []pending
	var order []string
	counts := make(map[string]int)
	totals := make(map[string]float64)

	for _, e := range entries {
		if counts[e.Label] == 0 {
			order = append(order, e.Label)
		}
		counts[e.Label]++
		totals[e.Label] += e.Amount

		v, ok := d.evaluate(s, e)
		if !ok {
			continue
		}
		notes := fmt.Sprintf("%s $%.2f", e.Label, e.Amount)
		if v.notes != "" {
			notes += " | " + v.notes
		}
		out = append(out, pending{finding: s.finding(v.reason, v.refund, notes)})
	}

	for _, label := range order {
		n := counts[label]
		if n < 2 {
			continue
		}
		total := totals[label]
		var f model.Finding
		if label == model.BlankDescriptionLabel {
			f = s.finding(
				fmt.Sprintf("Multiple charges (%dx) with blank descriptions - carrier must provide a reason for all charges", n),
				total,
				fmt.Sprintf("Blank description charges billed %dx, total $%.2f", n, total))
		} else {
			f = s.finding(
				fmt.Sprintf("Duplicate surcharge appears %d times", n),
				total*float64(n-1)/float64(n),
				fmt.Sprintf("%s billed %dx, total $%.2f", label, n, total))
		}
		out = append(out, pending{finding: f, duplicate: true})
	}
	return out
}

func (s *shipment) finding(reason string, refund float64, notes string) model.Finding {
	invoiced, _ := fields.DateOf(s.rec, fields.InvoiceDate)
	return model.Finding{
		ErrorType:      model.ErrorDisputableSurcharge,
		TrackingNumber: s.tracking,
		Date:           fields.FormatDate(s.shipDate),
		Carrier:        s.carrier,
		ServiceType:    s.service,
		DisputeReason:  reason,
		RefundEstimate: refund,
		Notes:          notes,
		ShipmentDate:   fields.FormatDate(s.shipDate),
		InvoiceDate:    fields.FormatDate(invoiced),
	}
}

// consolidate merges the duplicate-surcharge findings of each tracking number
// into one. Non-duplicate findings keep their order and come first.
func consolidate(all []pending) []model.Finding {
	var others []model.Finding
	var order []string
	groups := make(map[string][]model.Finding)

	for _, p := range all {
		if !p.duplicate {
			others = append(others, p.finding)
			continue
		}
		key := fields.NormalizeTracking(p.finding.TrackingNumber)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], p.finding)
	}

	out := others
	for _, key := range order {
		group := groups[key]
		if len(group) == 1 {
			out = append(out, group[0])
			continue
		}
		merged := group[0]
		merged.RefundEstimate = 0
		notes := make([]string, len(group))
		for i, f := range group {
			merged.RefundEstimate += f.RefundEstimate
			notes[i] = f.Notes
		}
		merged.DisputeReason = fmt.Sprintf("Duplicate surcharges across %d charge types", len(group))
		merged.Notes = strings.Join(notes, " | ")
		out = append(out, merged)
	}
	return out
}
