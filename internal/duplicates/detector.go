package duplicates

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/Veraticus/freight-audit/internal/fields"
	"github.com/Veraticus/freight-audit/internal/model"
)

// ServiceColumns are checked in order for the Original+Return heuristic.
// The first one the table declares is used.
var ServiceColumns = []string{
	"Service Description", "Service Type", "Service", "Svc Desc",
	"Service Code", "Svc Type", "Svc Code",
}

// ReturnKeywords mark a return-service line.
var ReturnKeywords = []string{"RETURN", "RMGR", "RMA", "REVERSE", "RETURNMANAGER"}

type classifiedLine struct {
	rec   model.Record
	class model.LineClass
	line  Line
}

type group struct {
	key   string
	lines []classifiedLine
}

// Detector finds duplicate freight billing per (carrier, tracking number).
type Detector struct{}

// New creates a duplicate-tracking detector.
func New() *Detector {
	return &Detector{}
}

// Detect classifies every line, then groups and evaluates. Groups are emitted
// in order of their first appearance.
func (d *Detector) Detect(ctx context.Context, table *model.Table) ([]model.Finding, error) {
	var findings []model.Finding
	if table.Len() == 0 {
		return findings, nil
	}

	hasAmountColumns := table.HasAnyColumn(fields.Candidates(fields.Freight)...) ||
		table.HasAnyColumn(fields.Candidates(fields.DutyTax)...)

	classified := make([]classifiedLine, len(table.Rows))
	for i, rec := range table.Rows {
		l := LineFromRecord(rec, hasAmountColumns)
		classified[i] = classifiedLine{rec: rec, line: l, class: Classify(l)}
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("duplicate tracking check canceled: %w", err)
	}

	serviceColumn, hasServiceColumn := table.FirstColumn(ServiceColumns...)

	for _, g := range groupLines(classified) {
		if len(g.lines) < 2 {
			continue
		}
		if hasServiceColumn && isOriginalPlusReturn(g.lines, serviceColumn) {
			slog.Debug("Skipping original and return pair", "group", g.key)
			continue
		}
		if f, ok := evaluate(g); ok {
			findings = append(findings, f)
		}
	}

	slog.Debug("Duplicate tracking check complete", "records", table.Len(), "findings", len(findings))
	return findings, nil
}

func groupLines(lines []classifiedLine) []*group {
	var order []*group
	byKey := make(map[string]*group)
	for _, cl := range lines {
		tracking := fields.NormalizeTracking(fields.TextOf(cl.rec, fields.TrackingNumber))
		if tracking == "" {
			continue
		}
		carrier := strings.ToUpper(fields.TextOf(cl.rec, fields.Carrier))
		if carrier == "" {
			carrier = "UNKNOWN"
		}
		key := carrier + "||" + tracking

		g, ok := byKey[key]
		if !ok {
			g = &group{key: key}
			byKey[key] = g
			order = append(order, g)
		}
		g.lines = append(g.lines, cl)
	}
	return order
}

// isOriginalPlusReturn reports a legitimate outbound shipment paired with its return.
func isOriginalPlusReturn(lines []classifiedLine, serviceColumn string) bool {
	if len(lines) != 2 {
		return false
	}
	returns := 0
	for _, cl := range lines {
		v, _ := cl.rec.Value(serviceColumn)
		if IsReturnService(v) {
			returns++
		}
	}
	return returns == 1
}

// IsReturnService reports whether a service description names a return service.
func IsReturnService(service string) bool {
	u := strings.ToUpper(service)
	for _, k := range ReturnKeywords {
		if strings.Contains(u, k) {
			return true
		}
	}
	return false
}

func evaluate(g *group) (model.Finding, bool) {
	var transport, dutyTax []float64
	for _, cl := range g.lines {
		switch cl.class {
		case model.LineTransport:
			transport = append(transport, cl.line.Net)
		case model.LineDutyTax:
			dutyTax = append(dutyTax, cl.line.Net)
		}
	}

	// One freight line plus one duty/tax line is normal international split billing.
	if len(transport) == 1 && len(dutyTax) == 1 {
		return model.Finding{}, false
	}
	if len(transport) < 2 {
		return model.Finding{}, false
	}

	n := len(transport)
	total, largest := 0.0, math.Inf(-1)
	distinct := make(map[float64]bool)
	for _, v := range transport {
		total += v
		largest = math.Max(largest, v)
		distinct[math.Round(v*100)/100] = true
	}

	var refund float64
	var reason string
	if len(distinct) > 1 {
		refund = total - largest
		reason = fmt.Sprintf("Multiple freight charges (%d lines with different amounts)", n)
	} else {
		refund = transport[0] * float64(n-1)
		reason = fmt.Sprintf("Duplicate freight billing (%d identical charges)", n)
	}

	landed := total
	for _, v := range dutyTax {
		landed += v
	}

	first := g.lines[0].rec
	shipped, _ := fields.DateOf(first, fields.ShipDate)
	invoiced, _ := fields.DateOf(first, fields.InvoiceDate)
	return model.Finding{
		ErrorType:      model.ErrorDuplicateTracking,
		TrackingNumber: fields.TextOf(first, fields.TrackingNumber),
		Date:           fields.FormatDate(shipped),
		Carrier:        fields.TextOf(first, fields.Carrier),
		ServiceType:    fields.TextOf(first, fields.ServiceType),
		DisputeReason:  reason,
		RefundEstimate: refund,
		Notes:          fmt.Sprintf("Transport: %d, Duty/Tax: %d, Landed: $%.2f", n, len(dutyTax), landed),
		ShipmentDate:   fields.FormatDate(shipped),
		InvoiceDate:    fields.FormatDate(invoiced),
	}, true
}
