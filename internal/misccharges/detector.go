// Package misccharges scores billing lines that are not real shipments, such as
// adjustments, paper invoice fees and standalone duties. Its output is advisory
// and never feeds refund totals.
package misccharges

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/Veraticus/freight-audit/internal/fields"
	"github.com/Veraticus/freight-audit/internal/model"
)

// ScoreThreshold is the minimum score classified as a non-shipment charge.
const ScoreThreshold = 3

// Category names.
const (
	CategoryMiscAdjustment    = "Misc Adjustment"
	CategoryManualAdjustment  = "Manual Adjustment"
	CategoryMiscFee           = "Misc Fee"
	CategoryPaperInvoiceFee   = "Paper Invoice Fee"
	CategoryDutiesTaxes       = "Duties/Taxes"
	CategoryAddressCorrection = "Address Correction"
)

var validTracking = regexp.MustCompile(`^(\d{12}|\d{15}|\d{22})$`)

// payTypeCategories is checked in order; the first key contained in the pay type wins.
var payTypeCategories = []struct {
	key      string
	category string
}{
	{"other4", CategoryMiscAdjustment},
	{"other3", CategoryMiscAdjustment},
	{"adjustment", CategoryManualAdjustment},
	{"miscfee", CategoryMiscFee},
	{"paperinvoice", CategoryPaperInvoiceFee},
	{"dutytax", CategoryDutiesTaxes},
	{"addresscorrection", CategoryAddressCorrection},
}

// miscPayTypes are pay-type fragments that mark a line as a misc charge.
var miscPayTypes = []string{"other4", "other3"}

// Detector builds the misc non-shipment views.
type Detector struct {
	threshold int
}

// New creates a detector with the default score threshold.
func New() *Detector {
	return &Detector{threshold: ScoreThreshold}
}

// Detect scores a deep copy of the table and builds the advisory views.
func (d *Detector) Detect(ctx context.Context, table *model.Table) (Views, error) {
	work := table.Clone()

	charges := make([]model.MiscCharge, 0, work.Len())
	for i, rec := range work.Rows {
		if i%500 == 0 {
			if err := ctx.Err(); err != nil {
				return Views{}, fmt.Errorf("misc charge detection canceled: %w", err)
			}
		}
		charges = append(charges, d.Normalize(rec))
	}
	return BuildViews(charges), nil
}

// Normalize computes the flags, score and category of one record.
func (d *Detector) Normalize(rec model.Record) model.MiscCharge {
	c := model.MiscCharge{
		Record:      rec,
		Carrier:     strings.ToLower(fields.TextOf(rec, fields.Carrier)),
		ServiceType: strings.ToLower(fields.TextOf(rec, fields.ServiceType)),
		ServiceDesc: strings.ToLower(fields.TextOf(rec, fields.ServiceDescription)),
		PayType:     strings.ToLower(fields.TextOf(rec, fields.PayType)),
		ShipTo:      fields.TextOf(rec, fields.RecipientName),
		Description: strings.ToLower(fields.TextOf(rec, fields.ChargeDescription)),
		Tracking:    fields.TextOf(rec, fields.TrackingNumber),
		Amount:      fields.FloatOf(rec, fields.MiscChargeAmount),
	}
	c.ShipDate = parseDate(rec, fields.ShipDate)
	c.DeliveryDate = parseDate(rec, fields.DeliveryDate)

	c.Flags = model.MiscFlags{
		ServiceBlank:        c.ServiceType == "" && c.ServiceDesc == "",
		DeliveryMissing:     c.DeliveryDate.IsZero(),
		PayTypeMisc:         isMiscPayType(c.PayType),
		ShipToMissing:       c.ShipTo == "",
		NonStandardTracking: !IsValidTracking(c.Tracking),
	}
	c.Score = c.Flags.Score()
	c.IsNonShipment = c.Score >= d.threshold
	c.Confidence = math.Round(float64(c.Score)/model.MiscFlagCount*100) / 100
	c.Category = Categorize(c.Description, c.PayType)
	return c
}

// parseDate resolves a date, treating year-1900 placeholders as missing.
func parseDate(rec model.Record, name fields.Name) time.Time {
	t, ok := fields.DateOf(rec, name)
	if !ok || t.Year() == 1900 {
		return time.Time{}
	}
	return t
}

func isMiscPayType(payType string) bool {
	if strings.TrimSpace(payType) == "" {
		return true
	}
	for _, p := range miscPayTypes {
		if strings.Contains(payType, p) {
			return true
		}
	}
	return false
}

// IsValidTracking reports whether a tracking number has a standard 12, 15 or 22 digit form.
func IsValidTracking(tracking string) bool {
	return validTracking.MatchString(strings.TrimSpace(tracking))
}

// Categorize assigns a category from description keywords, then the pay type.
func Categorize(description, payType string) string {
	desc := strings.ToLower(description)
	switch {
	case strings.Contains(desc, "address correction"):
		return CategoryAddressCorrection
	case strings.Contains(desc, "dutie") || strings.Contains(desc, "vat") || strings.Contains(desc, "tax"):
		return CategoryDutiesTaxes
	case strings.Contains(desc, "paper") && strings.Contains(desc, "invoice"):
		return CategoryPaperInvoiceFee
	}

	pt := strings.ToLower(payType)
	for _, m := range payTypeCategories {
		if strings.Contains(pt, m.key) {
			return m.category
		}
	}
	return CategoryMiscAdjustment
}
