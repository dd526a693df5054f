// Package duplicates detects tracking numbers billed for freight more than once.
package duplicates

import (
	"math"

	"github.com/Veraticus/freight-audit/internal/fields"
	"github.com/Veraticus/freight-audit/internal/model"
)

// AmountTolerance is the epsilon below which an amount counts as zero.
const AmountTolerance = 0.01

// Line holds the amounts of one billing line used for classification.
type Line struct {
	Freight  float64
	Misc     float64
	Duty     float64
	Discount float64
	Net      float64
}

// FreightLike is freight plus misc surcharges plus the discount taken as positive.
func (l Line) FreightLike() float64 {
	return l.Freight + l.Misc + l.Discount
}

// LineFromRecord extracts line amounts. When the table has neither freight nor
// duty columns, a positive net on an otherwise empty line is treated as freight.
func LineFromRecord(rec model.Record, hasFreightOrDutyColumns bool) Line {
	l := Line{
		Freight:  fields.FloatOf(rec, fields.Freight),
		Misc:     fields.FloatOf(rec, fields.MiscSurcharges),
		Duty:     fields.FloatOf(rec, fields.DutyTax),
		Discount: math.Abs(fields.FloatOf(rec, fields.Discount)),
	}

	if net, ok := fields.FloatOfOK(rec, fields.TotalCharges); ok {
		l.Net = net
	} else {
		l.Net = l.Freight + l.Misc + l.Duty - l.Discount
	}

	if !hasFreightOrDutyColumns && l.Freight == 0 && l.Misc == 0 && l.Duty == 0 && l.Net > 0 {
		l.Freight = l.Net
	}
	return l
}

// Classify assigns exactly one line class. It depends only on the line itself.
func Classify(l Line) model.LineClass {
	switch {
	case l.FreightLike() > AmountTolerance && math.Abs(l.Duty) < AmountTolerance:
		return model.LineTransport
	case math.Abs(l.Duty) > AmountTolerance && math.Abs(l.Freight)+math.Abs(l.Misc) < AmountTolerance:
		return model.LineDutyTax
	case l.Net < -AmountTolerance:
		return model.LineCreditAdjust
	default:
		return model.LineMisc
	}
}
