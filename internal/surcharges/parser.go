// Package surcharges canonicalizes billed surcharges and evaluates each one
// against the carrier rule for its category.
package surcharges

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Veraticus/freight-audit/internal/classification"
	"github.com/Veraticus/freight-audit/internal/fields"
	"github.com/Veraticus/freight-audit/internal/model"
)

var (
	segmentSplit  = regexp.MustCompile(`\s*[|;,]\s*`)
	labeledAmount = regexp.MustCompile(`(.+?)[\s:]\s*\$?\s*(-?\d+(?:\.\d+)?)`)
	bareAmount    = regexp.MustCompile(`^\s*[:;]?\s*\$?\s*(-?\d+(?:\.\d+)?)\s*$`)
)

// DiscreteColumns are per-surcharge columns read alongside the free-text details field.
var DiscreteColumns = []string{
	"Address Correction", "Residential Surcharge",
	"Saturday Delivery", "Saturday Pickup", "Sunday Delivery", "Return Fee", "Redirect Fee",
	"Hold at Location", "Additional Handling", "Oversize Charge", "Overweight Charge", "Peak Surcharge",
	"Peak Additional Handling", "Peak Oversize", "Peak Residential", "Fuel Surcharge", "Declared Value Charge",
	"Brokerage Fee", "Duty and Tax", "Entry Preparation", "Clearance Entry", "Missing Documentation",
	"Attempted Delivery", "Undeliverable", "Weight Correction", "DIM Weight Adjustment", "Unauthorized Package",
}

// ParseDetails splits a "label: $amount" list delimited by |, ; or , into
// canonical entries. Segments without a usable label become blank-description
// charges. Zero amounts are dropped.
func ParseDetails(text string, canon *classification.Canonicalizer) []model.SurchargeEntry {
	if model.IsNull(text) {
		return nil
	}

	var out []model.SurchargeEntry
	for _, seg := range segmentSplit.Split(text, -1) {
		if strings.TrimSpace(seg) == "" {
			continue
		}

		if m := labeledAmount.FindStringSubmatch(seg); m != nil {
			amount, err := strconv.ParseFloat(m[2], 64)
			if err != nil || amount == 0 {
				continue
			}
			label := strings.TrimSpace(m[1])
			if isBlankLabel(label) {
				label = model.BlankDescriptionLabel
			} else {
				label = canon.Canonical(label)
			}
			out = append(out, model.SurchargeEntry{Label: label, Amount: amount})
			continue
		}

		if m := bareAmount.FindStringSubmatch(seg); m != nil {
			amount, err := strconv.ParseFloat(m[1], 64)
			if err != nil || amount == 0 {
				continue
			}
			out = append(out, model.SurchargeEntry{Label: model.BlankDescriptionLabel, Amount: amount})
		}
	}
	return out
}

func isBlankLabel(label string) bool {
	switch label {
	case "", ":", "-", ".":
		return true
	}
	return false
}

// ColumnEntries reads the discrete surcharge columns of a record.
func ColumnEntries(rec model.Record, canon *classification.Canonicalizer) []model.SurchargeEntry {
	var out []model.SurchargeEntry
	for _, col := range DiscreteColumns {
		raw, ok := rec.Value(col)
		if !ok {
			continue
		}
		amount, ok := fields.ParseAmount(raw)
		if !ok || amount == 0 {
			continue
		}
		out = append(out, model.SurchargeEntry{Label: canon.Canonical(col), Amount: amount})
	}
	return out
}

var (
	internationalKeywords = []string{"INTERNATIONAL", "INTL", "GLOBAL", "WORLD", "EXPORT", "IMPORT"}
	internationalCodes    = []string{"OA", "LO", "IP", "IE", "IF", "IG", "SG", "F1", "FO", "IX", "XS"}
)

// IsInternational reports whether a service type or description names an
// international service, by keyword or by FedEx international service code.
func IsInternational(service string) bool {
	u := strings.ToUpper(strings.TrimSpace(service))
	if u == "" {
		return false
	}
	for _, k := range internationalKeywords {
		if strings.Contains(u, k) {
			return true
		}
	}
	for _, code := range internationalCodes {
		if u == code || strings.HasPrefix(u, code) || strings.Contains(u, " "+code) {
			return true
		}
	}
	return false
}
