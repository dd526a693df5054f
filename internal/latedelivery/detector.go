// Package latedelivery flags guaranteed-service shipments delivered after their
// business-day transit commitment.
package latedelivery

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/freight-audit/internal/fields"
	"github.com/Veraticus/freight-audit/internal/model"
)

// DefaultFedExGuaranteedCodes are the FedEx service codes carrying a money-back guarantee.
func DefaultFedExGuaranteedCodes() []string {
	return []string{"PO", "FO", "SO", "ES", "OA", "LO", "IP"}
}

// DefaultTransitDays maps a service key to its committed transit time in business days.
// Keys are either the upper-cased, underscore-joined service description or
// CARRIER_SERVICETYPE.
func DefaultTransitDays() map[string]int {
	return map[string]int{
		"FEDEX_2DAY":                   2,
		"FEDEX_STANDARD_OVERNIGHT":     1,
		"FEDEX_PRIORITY_OVERNIGHT":     1,
		"FEDEX_INTERNATIONAL_PRIORITY": 1,
		"INTERNATIONAL_PRIORITY":       1,
		"FEDEX_FIRST_OVERNIGHT":        1,
		"FEDEX_INTL_PRIORITY_EXPRESS":  1,
		"UPS_NEXT_DAY_AIR":             1,
		"UPS_NEXT_DAY_AIR_SAVER":       1,
		"UPS_2ND_DAY_AIR":              2,
	}
}

// Detector evaluates each record independently.
type Detector struct {
	guaranteed map[string]bool
	transit    map[string]int
}

// New creates a detector with the default service tables.
func New() *Detector {
	return NewWithTables(DefaultFedExGuaranteedCodes(), DefaultTransitDays())
}

// NewWithTables creates a detector with custom service tables.
func NewWithTables(guaranteedCodes []string, transitDays map[string]int) *Detector {
	d := &Detector{
		guaranteed: make(map[string]bool, len(guaranteedCodes)),
		transit:    make(map[string]int, len(transitDays)),
	}
	for _, c := range guaranteedCodes {
		d.guaranteed[strings.ToUpper(strings.TrimSpace(c))] = true
	}
	for k, v := range transitDays {
		d.transit[strings.ToUpper(k)] = v
	}
	return d
}

// Detect returns one finding per late record. Records without both dates or
// with an unknown service are skipped.
func (d *Detector) Detect(ctx context.Context, table *model.Table) ([]model.Finding, error) {
	var findings []model.Finding
	if table == nil {
		return findings, nil
	}
	for i, rec := range table.Rows {
		if i%500 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("late delivery check canceled: %w", err)
			}
		}
		if f, ok := d.Evaluate(rec); ok {
			findings = append(findings, f)
		}
	}
	slog.Debug("Late delivery check complete", "records", table.Len(), "findings", len(findings))
	return findings, nil
}

// Evaluate checks a single record.
func (d *Detector) Evaluate(rec model.Record) (model.Finding, bool) {
	carrier := strings.ToUpper(fields.TextOf(rec, fields.Carrier))
	serviceType := fields.TextOf(rec, fields.ServiceType)

	if strings.Contains(carrier, "FEDEX") && !d.guaranteed[strings.ToUpper(serviceType)] {
		return model.Finding{}, false
	}

	days, ok := d.TransitDays(carrier, serviceType, fields.TextOf(rec, fields.ServiceDescription))
	if !ok {
		return model.Finding{}, false
	}

	shipped, ok := fields.DateOf(rec, fields.ShipDate)
	if !ok {
		slog.Debug("Skipping record without ship date", "tracking", fields.TextOf(rec, fields.TrackingNumber))
		return model.Finding{}, false
	}
	delivered, ok := fields.DateOf(rec, fields.DeliveryDate)
	if !ok {
		return model.Finding{}, false
	}

	expected := AddBusinessDays(calendarDay(shipped), days)
	actual := calendarDay(delivered)
	if !actual.After(expected) {
		return model.Finding{}, false
	}

	daysLate := int(actual.Sub(expected).Hours() / 24)
	refund := fields.FloatOf(rec, fields.TotalCharges)
	if refund == 0 {
		refund = fields.FloatOf(rec, fields.BaseRate)
	}
	if refund == 0 {
		refund = fields.FloatOf(rec, fields.BilledAmount)
	}

	invoiced, _ := fields.DateOf(rec, fields.InvoiceDate)
	return model.Finding{
		ErrorType:      model.ErrorLateDelivery,
		TrackingNumber: fields.TextOf(rec, fields.TrackingNumber),
		Date:           fields.FormatDate(shipped),
		Carrier:        fields.TextOf(rec, fields.Carrier),
		ServiceType:    serviceType,
		DisputeReason:  fmt.Sprintf("Package delivered %d day(s) late", daysLate),
		RefundEstimate: refund,
		Notes: fmt.Sprintf("Expected: %s, Actual: %s, %d day(s) late",
			fields.FormatDate(expected), fields.FormatDate(actual), daysLate),
		ShipmentDate: fields.FormatDate(shipped),
		InvoiceDate:  fields.FormatDate(invoiced),
	}, true
}

// TransitDays looks up the committed transit time, first by service description
// and then by carrier and service type.
func (d *Detector) TransitDays(carrier, serviceType, serviceDescription string) (int, bool) {
	descKey := strings.ReplaceAll(strings.ToUpper(serviceDescription), " ", "_")
	if days, ok := d.transit[descKey]; ok && descKey != "" {
		return days, true
	}
	typeKey := strings.ReplaceAll(strings.ToUpper(serviceType), " ", "_")
	days, ok := d.transit[strings.ToUpper(carrier)+"_"+typeKey]
	return days, ok
}

// AddBusinessDays advances t by n weekdays. Saturdays and Sundays are skipped;
// there is no holiday calendar.
func AddBusinessDays(t time.Time, n int) time.Time {
	for added := 0; added < n; {
		t = t.AddDate(0, 0, 1)
		if wd := t.Weekday(); wd != time.Saturday && wd != time.Sunday {
			added++
		}
	}
	return t
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
