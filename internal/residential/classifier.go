// Package residential splits an export into a residential review pool and the
// main audit pool based on residential surcharge markers and business addresses.
package residential

import (
	"log/slog"
	"strings"

	"github.com/Veraticus/freight-audit/internal/classification"
	"github.com/Veraticus/freight-audit/internal/fields"
	"github.com/Veraticus/freight-audit/internal/model"
)

// SourceResidentialDelivery is the single source tag recorded on residential shipments.
const SourceResidentialDelivery = "Residential Delivery"

// DefaultPatterns returns the residential surcharge phrases used when none are configured.
func DefaultPatterns() []string {
	return []string{
		"residential surcharge",
		"residential delivery",
		"delivery area surcharge - residential",
		"das - residential",
		"das residential",
		"home delivery",
		"address correction - residential",
		"residential area surcharge",
		"residential area",
	}
}

// ScannedColumns are the surcharge and description columns searched for residential phrases.
var ScannedColumns = []string{
	"Surcharge_Details", "Service Description", "Service Type",
	"Charge Description", "Charge Type", "Net Charge Title",
	"Accessorial Charge", "Surcharge Description", "Surcharge Type",
	"Residential Surcharge", "Delivery Area Surcharge", "Additional Charges",
}

// Shipment is a record routed to residential review.
type Shipment struct {
	Record  model.Record `json:"record"`
	Sources []string     `json:"sources"`
}

// Result holds both pools in input order.
type Result struct {
	Residential []Shipment
	Main        []model.Record
}

// Classifier routes records carrying a residential surcharge.
type Classifier struct {
	matcher  *classification.BusinessMatcher
	patterns []string
}

// New creates a classifier. An empty pattern list selects DefaultPatterns and a
// nil matcher selects the default business indicators.
func New(patterns []string, matcher *classification.BusinessMatcher) *Classifier {
	if len(patterns) == 0 {
		patterns = DefaultPatterns()
	}
	lowered := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			lowered = append(lowered, p)
		}
	}
	if matcher == nil {
		matcher = classification.DefaultBusinessMatcher()
	}
	return &Classifier{patterns: lowered, matcher: matcher}
}

// Patterns returns the lower-cased phrases in use.
func (c *Classifier) Patterns() []string {
	out := make([]string, len(c.patterns))
	copy(out, c.patterns)
	return out
}

// HasResidentialSurcharge reports whether any scanned column contains a residential phrase.
func (c *Classifier) HasResidentialSurcharge(rec model.Record) bool {
	for _, col := range ScannedColumns {
		v, ok := rec.Value(col)
		if !ok {
			continue
		}
		v = strings.ToLower(v)
		for _, p := range c.patterns {
			if strings.Contains(v, p) {
				return true
			}
		}
	}
	return false
}

// IsReviewCandidate reports whether a record belongs in the residential pool.
// A residential surcharge stays in the main audit only when both the recipient
// and the shipper read as businesses.
func (c *Classifier) IsReviewCandidate(rec model.Record) bool {
	if !c.HasResidentialSurcharge(rec) {
		return false
	}
	recipientBusiness := c.matcher.IsBusiness(fields.JoinInfo(rec, fields.DestinationInfoColumns))
	shipperBusiness := c.matcher.IsBusiness(fields.JoinInfo(rec, fields.ShipperInfoColumns))
	return !recipientBusiness || !shipperBusiness
}

// Split partitions the table. Records are shared with the input, not copied.
func (c *Classifier) Split(table *model.Table) Result {
	var res Result
	if table == nil {
		return res
	}
	for _, rec := range table.Rows {
		if c.IsReviewCandidate(rec) {
			res.Residential = append(res.Residential, Shipment{
				Record:  rec,
				Sources: []string{SourceResidentialDelivery},
			})
			continue
		}
		res.Main = append(res.Main, rec)
	}

	slog.Debug("Residential split complete",
		"residential", len(res.Residential),
		"main", len(res.Main))
	return res
}

// Records returns the residential pool as plain records.
func (r Result) Records() []model.Record {
	out := make([]model.Record, len(r.Residential))
	for i, s := range r.Residential {
		out[i] = s.Record
	}
	return out
}
