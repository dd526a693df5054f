package model

// BlankDescriptionLabel is the canonical label for a charge billed without a description.
const BlankDescriptionLabel = "BLANK DESCRIPTION CHARGE"

// SurchargeEntry is one billed surcharge after canonicalization.
type SurchargeEntry struct {
	Label  string
	Amount float64
}

// IsBlank reports whether the surcharge was billed without a description.
func (s SurchargeEntry) IsBlank() bool {
	return s.Label == BlankDescriptionLabel
}
