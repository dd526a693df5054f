package model

import "time"

// MiscFlags are the independent signals that a billing line is not a real shipment.
type MiscFlags struct {
	ServiceBlank        bool `json:"is_service_blank"`
	DeliveryMissing     bool `json:"is_deliv_missing"`
	PayTypeMisc         bool `json:"is_paytype_misc"`
	ShipToMissing       bool `json:"is_shipto_missing"`
	NonStandardTracking bool `json:"is_nonstandard_tracking"`
}

// Score returns the number of raised flags (0-5).
func (f MiscFlags) Score() int {
	score := 0
	for _, b := range []bool{f.ServiceBlank, f.DeliveryMissing, f.PayTypeMisc, f.ShipToMissing, f.NonStandardTracking} {
		if b {
			score++
		}
	}
	return score
}

// MiscFlagCount is the number of features in MiscFlags.
const MiscFlagCount = 5

// MiscCharge is the normalized misc-detector view of one input record.
type MiscCharge struct {
	ShipDate      time.Time `json:"ship_date"`
	DeliveryDate  time.Time `json:"delivery_date"`
	Record        Record    `json:"-"`
	Carrier       string    `json:"opco"`
	ServiceType   string    `json:"service_type"`
	ServiceDesc   string    `json:"service_desc"`
	PayType       string    `json:"pay_type"`
	ShipTo        string    `json:"ship_to"`
	Description   string    `json:"desc"`
	Tracking      string    `json:"tracking"`
	Category      string    `json:"misc_category"`
	Flags         MiscFlags `json:"flags"`
	Amount        float64   `json:"amount_num"`
	Confidence    float64   `json:"misc_confidence"`
	Score         int       `json:"misc_score"`
	IsNonShipment bool      `json:"is_misc_non_shipment"`
}
