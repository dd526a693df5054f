package surcharges

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/freight-audit/internal/classification"
	"github.com/Veraticus/freight-audit/internal/fields"
	"github.com/Veraticus/freight-audit/internal/model"
)

// weekendDeliveryColumns are tried for the weekend surcharge check.
var weekendDeliveryColumns = []string{
	"Actual Delivery Date", "Shipment Delivery Date (mm/dd/yyyy)", "Delivery Date",
}

// shipment is the per-record context every surcharge rule reads.
type shipment struct {
	shipDate      time.Time
	deliveryDate  time.Time
	rec           model.Record
	tracking      string
	carrier       string
	service       string
	longest       float64
	second        float64
	third         float64
	actualWeight  float64
	billedWeight  float64
	dimWeight     float64
	netCharge     float64
	blankCount    int
	hasShipDate   bool
	hasDelivery   bool
	international bool
}

func newShipment(rec model.Record, th Thresholds, netByTracking map[string]float64) *shipment {
	s := &shipment{
		rec:      rec,
		tracking: fields.TextOf(rec, fields.TrackingNumber),
		carrier:  strings.ToUpper(fields.TextOf(rec, fields.Carrier)),
		service:  fields.TextOf(rec, fields.Service),
	}
	s.shipDate, s.hasShipDate = fields.DateOf(rec, fields.ShipDate)
	s.deliveryDate, s.hasDelivery = fields.Date(rec, weekendDeliveryColumns...)
	s.international = IsInternational(s.service)

	l := fields.Dimension(rec, fields.Length)
	w := fields.Dimension(rec, fields.Width)
	h := fields.Dimension(rec, fields.Height)
	dims := []float64{l, w, h}
	sort.Sort(sort.Reverse(sort.Float64Slice(dims)))
	s.longest, s.second, s.third = dims[0], dims[1], dims[2]

	s.actualWeight = fields.FloatOf(rec, fields.ActualWeight)
	s.billedWeight = fields.FloatOf(rec, fields.BilledWeight)

	divisor := th.DomesticDIMDivisor
	if u := strings.ToUpper(s.service); strings.Contains(u, "INTERNATIONAL") || strings.Contains(u, "INTL") {
		divisor = th.InternationalDIMDivisor
	}
	if l > 0 && w > 0 && h > 0 && divisor > 0 {
		s.dimWeight = math.Ceil(l * w * h / divisor)
	}

	if total, ok := netByTracking[fields.NormalizeTracking(s.tracking)]; ok && s.international {
		s.netCharge = total
	} else {
		s.netCharge = fields.FloatOf(rec, fields.NetCharge)
	}
	if s.netCharge == 0 {
		s.netCharge = fields.FloatOf(rec, fields.BaseRate)
	}
	return s
}

func (s *shipment) girth() float64 {
	return 2 * (s.second + s.third)
}

// verdict is the outcome of one surcharge rule.
type verdict struct {
	reason string
	notes  string
	refund float64
}

// evaluate applies the category rule for one canonical surcharge. ok is false
// when the charge is not disputable.
func (d *Detector) evaluate(s *shipment, e model.SurchargeEntry) (verdict, bool) {
	th := d.thresholds
	amount := e.Amount

	switch e.Label {
	case model.BlankDescriptionLabel:
		// Repeated blank charges are reported once as a duplicate instead.
		if s.blankCount != 1 {
			return verdict{}, false
		}
		return verdict{
			reason: "Charge with no description - carrier must provide a reason for all charges",
			refund: amount,
			notes:  "Blank/missing surcharge description",
		}, true

	case classification.LabelAddressCorrection:
		return verdict{
			reason: "Address correction fee - verify original label; often disputable",
			refund: amount * 0.8,
		}, true

	case classification.LabelResidential:
		if !d.matcher.IsBusiness(fields.JoinInfo(s.rec, fields.DestinationInfoColumns)) {
			return verdict{}, false
		}
		v := verdict{reason: "Residential surcharge applied to business address", refund: amount}
		if d.matcher.IsBusiness(fields.JoinInfo(s.rec, fields.ShipperInfoColumns)) {
			v.notes = "Both recipient and shipper have business indicators (B2B)"
		} else {
			v.notes = "Recipient address has business indicators"
		}
		return v, true

	case classification.LabelSaturdayDelivery, classification.LabelSaturdayPickup, classification.LabelSundayWeekend:
		if !s.hasDelivery {
			return verdict{}, false
		}
		if wd := s.deliveryDate.Weekday(); wd == time.Saturday || wd == time.Sunday {
			return verdict{}, false
		}
		return verdict{
			reason: "Weekend surcharge but delivery/pickup occurred on weekday",
			refund: amount,
			notes:  "Date: " + s.deliveryDate.Weekday().String(),
		}, true

	case classification.LabelReturnFee, classification.LabelRedirectFee, classification.LabelHoldAtLocation:
		return verdict{
			reason: e.Label + " - verify customer/carrier request vs. error",
			refund: amount * 0.6,
		}, true

	case classification.LabelBillingError:
		return verdict{reason: "Billing error should not be passed to customer", refund: amount}, true

	case classification.LabelAdditionalHandling:
		needsHandling := s.longest > th.HandlingLongestIn ||
			s.second > th.HandlingSecondIn ||
			s.longest+s.girth() > th.HandlingLengthGirthIn ||
			s.actualWeight >= th.HandlingWeightLb
		if needsHandling || s.longest <= 0 {
			return verdict{}, false
		}
		return verdict{
			reason: "Additional Handling charged but size/weight thresholds not met",
			refund: amount,
			notes:  fmt.Sprintf(`Dims %.1fx%.1fx%.1f", Wt %.1f lb`, s.longest, s.second, s.third, s.actualWeight),
		}, true

	case classification.LabelOversize:
		lengthGirth := s.longest + s.girth()
		if s.longest > th.OversizeLongestIn || lengthGirth > th.OversizeLengthGirthIn || s.longest <= 0 {
			return verdict{}, false
		}
		return verdict{
			reason: "Oversize charge applied but thresholds not met",
			refund: amount,
			notes: fmt.Sprintf(`L=%.1f", L+G=%.1f" (thresholds: >%.0f" OR >%.0f")`,
				s.longest, lengthGirth, th.OversizeLongestIn, th.OversizeLengthGirthIn),
		}, true

	case classification.LabelUnauthorizedPackage:
		return verdict{
			reason: "Unauthorized package charge - verify proper authorization/labels",
			refund: amount * 0.8,
		}, true

	case classification.LabelPeakAdditionalHandling, classification.LabelPeakOversize,
		classification.LabelPeakResidential, classification.LabelPeakSurcharge:
		if s.hasShipDate && !th.IsPeakMonth(s.shipDate.Month()) {
			return verdict{reason: "Peak surcharge outside typical peak season", refund: amount * 0.7}, true
		}
		if isPremiumService(s.service) {
			return verdict{reason: "Peak surcharge on premium service - review reasonableness", refund: amount * 0.4}, true
		}
		return verdict{}, false

	case classification.LabelServiceFailure:
		return verdict{reason: "Service failure should be refunded, not charged", refund: amount}, true

	case classification.LabelWeightCorrection, classification.LabelDIMWeight, classification.LabelOverweight:
		var v verdict
		flagged := false
		if s.dimWeight > 0 && s.billedWeight > 0 {
			correct := math.Max(math.Round(s.actualWeight), s.dimWeight)
			if over := s.billedWeight - correct; over > th.WeightToleranceLb {
				v = verdict{
					reason: fmt.Sprintf("Billed weight appears %.0f lb over correct billable", over),
					refund: amount * 0.8,
					notes:  fmt.Sprintf("Actual %.1f, DIM %.0f (ceil), Billed %.0f", s.actualWeight, s.dimWeight, s.billedWeight),
				}
				flagged = true
			}
		}
		if e.Label == classification.LabelOverweight && s.actualWeight > 0 && s.actualWeight < th.OverweightLb {
			v.reason = fmt.Sprintf("Overweight charge but actual weight %.1f lb (<%.0f lb threshold)", s.actualWeight, th.OverweightLb)
			v.refund = amount
			flagged = true
		}
		return v, flagged

	case classification.LabelCustomsBrokerage:
		if s.international {
			return verdict{}, false
		}
		return verdict{
			reason: "Customs/brokerage fee - verify necessity and accuracy",
			refund: amount * 0.5,
		}, true

	case classification.LabelFailedPickupDelivery:
		return verdict{
			reason: "Failed delivery/pickup - verify carrier attempts & contact info",
			refund: amount * 0.7,
		}, true

	case classification.LabelFuel:
		if s.netCharge <= 0 {
			return verdict{}, false
		}
		pct := amount / s.netCharge * 100
		if pct <= th.FuelMaxPercent {
			return verdict{}, false
		}
		return verdict{
			reason: fmt.Sprintf("Fuel surcharge unusually high (%.1f%% of net charge)", pct),
			refund: amount * 0.3,
			notes:  fmt.Sprintf("FSC $%.2f / Net Charge $%.2f", amount, s.netCharge),
		}, true

	case classification.LabelDeclaredValue:
		dv := fields.FloatOf(s.rec, fields.DeclaredValue)
		if dv >= th.DeclaredValueMin {
			return verdict{}, false
		}
		return verdict{
			reason: fmt.Sprintf("Declared value charge on low-value package ($%.2f)", dv),
			refund: amount,
		}, true

	case classification.LabelMissingDocumentation:
		return verdict{
			reason: "Missing documentation fee - verify paperwork actually missing",
			refund: amount * 0.7,
		}, true
	}

	return verdict{}, false
}

func isPremiumService(service string) bool {
	u := strings.ToUpper(service)
	return strings.Contains(u, "OVERNIGHT") || strings.Contains(u, "PRIORITY") || strings.Contains(u, "EXPRESS")
}
