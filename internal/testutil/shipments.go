// Package testutil provides shipment fixtures for tests.
//
// Example:
//
//	table := testutil.NewTable(
//		testutil.NewShipment("123456789012").
//			Carrier("FedEx").
//			Service("PO", "FedEx 2Day").
//			Shipped("2024-03-04").
//			Delivered("2024-03-07").
//			Total("45.10").
//			Build(),
//	)
package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/Veraticus/freight-audit/internal/model"
)

// ShipmentBuilder provides a fluent interface for constructing export rows.
type ShipmentBuilder struct {
	rec model.Record
}

// NewShipment starts a row for a tracking number.
func NewShipment(tracking string) *ShipmentBuilder {
	return &ShipmentBuilder{rec: model.Record{"Tracking Number": tracking}}
}

// Carrier sets the carrier column.
func (b *ShipmentBuilder) Carrier(carrier string) *ShipmentBuilder {
	return b.With("Carrier", carrier)
}

// Service sets the service type code and description.
func (b *ShipmentBuilder) Service(serviceType, description string) *ShipmentBuilder {
	if serviceType != "" {
		b.rec["Service Type"] = serviceType
	}
	if description != "" {
		b.rec["Service Description"] = description
	}
	return b
}

// Shipped sets the shipment date.
func (b *ShipmentBuilder) Shipped(date string) *ShipmentBuilder {
	return b.With("Shipment Date", date)
}

// Delivered sets the delivery date.
func (b *ShipmentBuilder) Delivered(date string) *ShipmentBuilder {
	return b.With("Delivery Date", date)
}

// Total sets the Total Charges column.
func (b *ShipmentBuilder) Total(amount string) *ShipmentBuilder {
	return b.With("Total Charges", amount)
}

// Net sets the Net Charge Amount USD column.
func (b *ShipmentBuilder) Net(amount string) *ShipmentBuilder {
	return b.With("Net Charge Amount USD", amount)
}

// Surcharges sets the free-text surcharge details.
func (b *ShipmentBuilder) Surcharges(details string) *ShipmentBuilder {
	return b.With("Surcharge_Details", details)
}

// Recipient sets the recipient company name.
func (b *ShipmentBuilder) Recipient(company string) *ShipmentBuilder {
	return b.With("Recipient Company Name", company)
}

// Shipper sets the shipper's personal name and address.
func (b *ShipmentBuilder) Shipper(name, address string) *ShipmentBuilder {
	b.rec["Shipper Name"] = name
	b.rec["Shipper Address"] = address
	return b
}

// With sets any column.
func (b *ShipmentBuilder) With(column, value string) *ShipmentBuilder {
	b.rec[column] = value
	return b
}

// Build returns a copy of the row.
func (b *ShipmentBuilder) Build() model.Record {
	return b.rec.Clone()
}

// NewTable builds a table with the sorted union of the rows' columns.
func NewTable(rows ...model.Record) *model.Table {
	return model.NewTable(rows...)
}

// Standard fixtures, one per main-audit check plus a residential review row.
var (
	// LateTwoDay is a FedEx 2Day shipment delivered one business day late.
	LateTwoDay = NewShipment("123456789012").Carrier("FedEx").Service("PO", "FedEx 2Day").
			Shipped("2024-03-04").Delivered("2024-03-07").Total("45.10")
	// DuplicateGround is a ground line billed twice at $50.
	DuplicateGround = NewShipment("999888777666").Carrier("FedEx").Service("", "Ground").Total("50")
	// HighFuel carries a $40 fuel surcharge against a $100 net charge.
	HighFuel = NewShipment("555444333222").Surcharges("Fuel Surcharge: $40.00").Net("100")
	// TargetResidential is a residential surcharge on a business recipient
	// shipped by a private person.
	TargetResidential = NewShipment("111222333444").Surcharges("Residential Surcharge: $5.10").
				Recipient("TARGET #1234").Shipper("Jane Doe", "45 Elm St").Total("20")
)

// StandardExport returns the standard fixtures as a five-row table.
func StandardExport() *model.Table {
	return NewTable(
		LateTwoDay.Build(),
		DuplicateGround.Build(),
		DuplicateGround.Build(),
		HighFuel.Build(),
		TargetResidential.Build(),
	)
}

// WriteCSV writes rows as a CSV export under dir and returns its path.
func WriteCSV(t *testing.T, dir, name string, rows ...model.Record) string {
	t.Helper()

	table := NewTable(rows...)
	columns := append([]string(nil), table.Columns...)
	sort.Strings(columns)

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		t.Fatalf("failed to write header: %v", err)
	}
	for _, rec := range table.Rows {
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = rec[c]
		}
		if err := w.Write(row); err != nil {
			t.Fatalf("failed to write row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("failed to flush %s: %v", name, err)
	}
	return path
}
