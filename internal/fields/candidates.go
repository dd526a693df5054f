// Package fields resolves semantically equivalent but differently named columns
// across carrier export formats.
package fields

// Name identifies a semantic field independent of any export's column naming.
type Name string

// Semantic field names.
const (
	Carrier            Name = "carrier"
	ServiceType        Name = "service_type"
	ServiceDescription Name = "service_description"
	Service            Name = "service"
	ShipDate           Name = "ship_date"
	DeliveryDate       Name = "delivery_date"
	InvoiceDate        Name = "invoice_date"
	TrackingNumber     Name = "tracking_number"
	TotalCharges       Name = "total_charges"
	NetCharge          Name = "net_charge"
	BaseRate           Name = "base_rate"
	BilledAmount       Name = "billed_amount"
	SurchargeDetails   Name = "surcharge_details"
	ActualWeight       Name = "actual_weight"
	BilledWeight       Name = "billed_weight"
	DeclaredValue      Name = "declared_value"
	RecipientZip       Name = "recipient_zip"
	RecipientAddress   Name = "recipient_address"
	RecipientName      Name = "recipient_name"
	PayType            Name = "pay_type"
	ChargeDescription  Name = "charge_description"
	MiscChargeAmount   Name = "misc_charge_amount"
	Freight            Name = "freight"
	MiscSurcharges     Name = "misc_surcharges"
	DutyTax            Name = "duty_tax"
	Discount           Name = "discount"
	Length             Name = "length"
	Width              Name = "width"
	Height             Name = "height"
)

// candidates lists, per semantic field, the column names seen in carrier exports
// in the order they are tried.
var candidates = map[Name][]string{
	Carrier:            {"Carrier", "OPCO"},
	ServiceType:        {"Service Type"},
	ServiceDescription: {"Service Description"},
	Service:            {"Service Type", "Service Description"},
	ShipDate:           {"Shipment Date", "Shipment Date (mm/dd/yyyy)", "Ship Date"},
	DeliveryDate:       {"Delivery Date", "Shipment Delivery Date (mm/dd/yyyy)", "Actual Delivery Date"},
	InvoiceDate:        {"Invoice Date", "Invoice Date (mm/dd/yyyy)", "Bill Date"},
	TrackingNumber:     {"Tracking Number", "Shipment Tracking Number", "Express or Ground Tracking ID"},
	TotalCharges:       {"Total Charges"},
	NetCharge:          {"Net Charge Amount USD", "Net Charge", "Total Charges"},
	BaseRate:           {"Base Rate"},
	BilledAmount:       {"Billed Amount"},
	SurchargeDetails:   {"Surcharge_Details"},
	ActualWeight:       {"Actual Weight", "Original Weight", "Shipment Actual Weight", "Package Weight", "Weight"},
	BilledWeight:       {"Billed Weight", "Shipment Rated Weight", "Rated Weight", "Billable Weight", "Chargeable Weight"},
	DeclaredValue:      {"Declared Value"},
	RecipientZip: {
		"Recipient Postal Code", "Recipient Zip", "Destination ZIP", "Destination Zip",
		"Recipient PostalCode", "Postal Code", "Recipient Postal",
	},
	RecipientAddress: {
		"Destination Address", "Recipient Address", "Recipient Original Address",
		"Ship To Address", "Delivery Address",
	},
	RecipientName:     {"Recipient Name"},
	PayType:           {"Pay Type"},
	ChargeDescription: {"Charge Description"},
	MiscChargeAmount: {
		"Shipment Miscellaneouse Charge USD", "Shipment Miscellaneous Charge USD",
		"Charge Amount USD", "amount",
	},
	Freight:        {"Freight Charges", "Base Rate", "Freight", "Transportation Charge"},
	MiscSurcharges: {"Surcharges", "Miscellaneous Charges", "Additional Charges", "Misc"},
	DutyTax:        {"Duty and Tax", "Duty & Tax", "Duties", "Taxes", "Customs Charges"},
	Discount:       {"Discount", "Discounts", "Credit"},
	Length:         {"Dimmed Length", "Length", "Length (in)", "Pkg Length", "Package Length", "Len"},
	Width:          {"Dimmed Width", "Width", "Width (in)", "Pkg Width", "Package Width", "Wid"},
	Height:         {"Dimmed Height", "Height", "Height (in)", "Pkg Height", "Package Height", "Hgt"},
}

// Candidates returns a copy of the ordered column names tried for a semantic field.
func Candidates(name Name) []string {
	c := candidates[name]
	out := make([]string, len(c))
	copy(out, c)
	return out
}

// DestinationInfoColumns are joined to describe the recipient side of a shipment.
var DestinationInfoColumns = []string{
	"Recipient Company Name", "Recipient Name", "Consignee",
	"Recipient Address", "Destination Address", "Recipient Original Address",
	"Recipient City", "Recipient State/Province", "Recipient Postal Code",
}

// ShipperInfoColumns are joined to describe the shipper side of a shipment.
var ShipperInfoColumns = []string{
	"Shipper Company Name", "Shipper Name", "Shipper",
	"Shipper Address", "Origin Address", "Ship From Address",
	"Shipper City", "Shipper State", "Shipper Postal Code",
}
