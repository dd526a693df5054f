package model

// LineClass buckets a billing line for duplicate-tracking analysis.
type LineClass string

// Line classes. Every line gets exactly one.
const (
	LineTransport    LineClass = "TRANSPORT"
	LineDutyTax      LineClass = "DUTY_TAX"
	LineCreditAdjust LineClass = "CREDIT_ADJUST"
	LineMisc         LineClass = "MISC"
)
