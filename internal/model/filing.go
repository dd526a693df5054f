package model

// FilingStatus is the claim-deadline state of an actionable finding.
type FilingStatus string

// Filing statuses. Pending is transient and never leaves the classifier.
const (
	FilingPending      FilingStatus = "pending"
	FilingWithinWindow FilingStatus = "within_window"
	FilingExpired      FilingStatus = "expired"
	FilingMissingDate  FilingStatus = "missing_date"
)
