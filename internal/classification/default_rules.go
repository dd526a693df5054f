package classification

// Canonical surcharge labels.
const (
	LabelAddressCorrection        = "ADDRESS CORRECTION"
	LabelDASResidential           = "DAS RESIDENTIAL"
	LabelPeakResidential          = "PEAK RESIDENTIAL"
	LabelResidential              = "RESIDENTIAL SURCHARGE"
	LabelSaturdayDelivery         = "SATURDAY DELIVERY"
	LabelSaturdayPickup           = "SATURDAY PICKUP"
	LabelSundayWeekend            = "SUNDAY/WEEKEND CHARGE"
	LabelReturnFee                = "RETURN FEE"
	LabelRedirectFee              = "REDIRECT DELIVERY FEE"
	LabelHoldAtLocation           = "HOLD AT LOCATION FEE"
	LabelBillingError             = "BILLING ERROR FEE"
	LabelAHSPackaging             = "AHS PACKAGING"
	LabelDemandAdditionalHandling = "DEMAND ADDITIONAL HANDLING"
	LabelPeakAdditionalHandling   = "PEAK ADDITIONAL HANDLING"
	LabelAdditionalHandling       = "ADDITIONAL HANDLING SURCHARGE"
	LabelDemandOversize           = "DEMAND OVERSIZE"
	LabelPeakOversize             = "PEAK OVERSIZE"
	LabelOversize                 = "OVERSIZE CHARGE"
	LabelUnauthorizedPackage      = "UNAUTHORIZED PACKAGE CHARGE"
	LabelPeakSurcharge            = "PEAK SURCHARGE"
	LabelServiceFailure           = "SERVICE FAILURE ADJUSTMENT"
	LabelWeightCorrection         = "WEIGHT CORRECTION"
	LabelDIMWeight                = "DIM WEIGHT ADJUSTMENT"
	LabelOverweight               = "OVERWEIGHT CHARGE"
	LabelCustomsBrokerage         = "CUSTOMS/BROKERAGE FEE"
	LabelFailedPickupDelivery     = "FAILED PICKUP/DELIVERY FEE"
	LabelFuel                     = "FUEL SURCHARGE"
	LabelDeclaredValue            = "DECLARED VALUE CHARGE"
	LabelMissingDocumentation     = "MISSING DOCUMENTATION FEE"
)

// DefaultSurchargeRules returns the ordered canonicalization table.
// First match wins, so every specific rule sits above the generic rule it overlaps.
func DefaultSurchargeRules() []SurchargeRule {
	return []SurchargeRule{
		{Label: LabelAddressCorrection, Regex: `ADDRESS\s*CORR`},
		{Label: LabelDASResidential, Regex: `DAS.*RES(IDENTIAL)?|DELIVERY\s*AREA.*RES(IDENTIAL)?`},
		{Label: LabelPeakResidential, Regex: `PEAK\s*RESIDENTIAL`},
		{Label: LabelResidential, Regex: `\bRES(|IDENTIAL)\b|RES\s*SURCHARGE`},
		{Label: LabelSaturdayDelivery, Regex: `SAT(URDAY)?\s*DEL(IVERY)?`},
		{Label: LabelSaturdayPickup, Regex: `SAT(URDAY)?\s*PICKUP`},
		{Label: LabelSundayWeekend, Regex: `SUNDAY\s*DEL(IVERY)?|WEEKEND`},
		{Label: LabelReturnFee, Regex: `RETURN\s*(FEE|TO SHIPPER|RTS)`},
		{Label: LabelRedirectFee, Regex: `REDIRECT|DELIVERY\s*CHANGE|ADDRESS\s*CHANGE`},
		{Label: LabelHoldAtLocation, Regex: `HOLD\s*(AT)?\s*LOCATION|WILL\s*CALL`},
		{Label: LabelBillingError, Regex: `DUPLICATE\s*INVOICE|INVALID\s*ACCOUNT|INCORRECT\s*BILL(ING)?|REBILL|MANUAL\s*PROCESS`},
		// Packaging-driven handling (cylinders, unusual shapes) is legitimate.
		{Label: LabelAHSPackaging, Regex: `AD(D'?|DL)?(ITIONAL)?\s*HANDLING.*(PACKAGE|PACKAGING)`},
		{Label: LabelDemandAdditionalHandling, Regex: `DEMAND.*ADDITIONAL.*HANDLING`},
		{Label: LabelPeakAdditionalHandling, Regex: `PEAK\s*ADDITIONAL\s*HANDLING`},
		{Label: LabelAdditionalHandling, Regex: `AD(D'?|DL)?(ITIONAL)?\s*HANDLING|AHS|NON[-\s]*MACHINABLE`},
		{Label: LabelDemandOversize, Regex: `DEMAND.*OVERSIZE`},
		{Label: LabelPeakOversize, Regex: `PEAK\s*OVERSIZE`},
		{Label: LabelOversize, Regex: `OVERSIZE|OVER\s*SIZE|LARGE\s*PACKAGE`},
		{Label: LabelUnauthorizedPackage, Regex: `UNAUTH(ORIZED)?\s*PACKAGE`},
		{Label: LabelPeakSurcharge, Regex: `\bPEAK\b`},
		{Label: LabelServiceFailure, Regex: `MONEY[-\s]*BACK|LATE\s*DELIVERY|SERVICE\s*FAILURE|TRANSIT\s*TIME|DELIVERY\s*EXCEPTION`},
		{Label: LabelWeightCorrection, Regex: `WEIGHT\s*CORRECTION`},
		{Label: LabelDIMWeight, Regex: `DIM(ENSIONAL)?\s*WEIGHT|CUBIC\s*VOLUME`},
		{Label: LabelOverweight, Regex: `OVERWEIGHT`},
		{Label: LabelCustomsBrokerage, Regex: `BROKERAGE|DUTY\s*AND\s*TAX|ENTRY\s*PREPARATION|CLEARANCE\s*ENTRY|IMPORT\s*DATA\s*CORRECTION`},
		{Label: LabelFailedPickupDelivery, Regex: `INVALID\s*PICKUP|ATTEMPTED\s*DELIVERY|UNDELIVERABLE|DELIVERY\s*ATTEMPT`},
		{Label: LabelFuel, Regex: `FUEL|FSC`},
		{Label: LabelDeclaredValue, Regex: `DECLARED\s*VALUE|DV\s*CHARGE|INSURANCE`},
		{Label: LabelMissingDocumentation, Regex: `MISSING\s*DOC`},
	}
}
