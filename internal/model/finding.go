package model

// ErrorType names the detector category that produced a finding.
type ErrorType string

// Error types emitted by the core detectors.
const (
	ErrorLateDelivery        ErrorType = "Late Delivery"
	ErrorDuplicateTracking   ErrorType = "Duplicate Tracking"
	ErrorDisputableSurcharge ErrorType = "Disputable Surcharge"
)

// ActionableErrorTypes are the error types eligible for claim submission.
var ActionableErrorTypes = []ErrorType{
	ErrorLateDelivery,
	ErrorDuplicateTracking,
	ErrorDisputableSurcharge,
}

// IsActionable reports whether findings of this type can be submitted as claims.
func (e ErrorType) IsActionable() bool {
	for _, t := range ActionableErrorTypes {
		if t == e {
			return true
		}
	}
	return false
}

// ClaimStatus is the submission state of an actionable finding.
type ClaimStatus string

// Claim status constants.
const (
	ClaimReadyToSubmit ClaimStatus = "Ready to Submit"
)

// ClaimPriority ranks actionable findings by refund value.
type ClaimPriority string

// Claim priority constants.
const (
	PriorityHigh   ClaimPriority = "High"
	PriorityMedium ClaimPriority = "Medium"
	PriorityLow    ClaimPriority = "Low"
)

// Finding is one candidate billing error produced by a detector.
// Detectors create findings; only the orchestrator tags ClaimStatus and ClaimPriority.
type Finding struct {
	ErrorType      ErrorType     `json:"error_type"`
	TrackingNumber string        `json:"tracking_number"`
	Date           string        `json:"date"` // YYYY-MM-DD or empty
	Carrier        string        `json:"carrier"`
	ServiceType    string        `json:"service_type"`
	DisputeReason  string        `json:"dispute_reason"`
	Notes          string        `json:"notes"`
	ShipmentDate   string        `json:"shipment_date,omitempty"`
	InvoiceDate    string        `json:"invoice_date,omitempty"`
	ClaimStatus    ClaimStatus   `json:"claim_status,omitempty"`
	ClaimPriority  ClaimPriority `json:"claim_priority,omitempty"`
	RefundEstimate float64       `json:"refund_estimate"`
}
