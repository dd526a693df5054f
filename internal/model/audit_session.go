package model

import "time"

// AuditSession is the persisted header of one audit run.
type AuditSession struct {
	CreatedAt         time.Time
	AuditDate         time.Time
	ID                string
	Filename          string
	TotalShipments    int
	MainAuditCount    int
	ResidentialCount  int
	AffectedShipments int
	FindingCount      int
	MiscChargeCount   int
	TotalCharges      float64
	TotalSavings      float64
	SavingsRate       float64
	AffectedRate      float64
}

// AuditStatistics aggregates the stored audit history.
type AuditStatistics struct {
	SessionCount       int
	FindingCount       int
	TotalSavings       float64
	TotalCharges       float64
	AverageSavingsRate float64
}
