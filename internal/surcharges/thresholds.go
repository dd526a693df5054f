package surcharges

import "time"

// Thresholds are the carrier policy limits the surcharge rules compare against.
type Thresholds struct {
	PeakMonths []time.Month `mapstructure:"peak_months" yaml:"peak_months"`

	// Additional handling applies above any of these.
	HandlingLongestIn       float64 `mapstructure:"handling_longest_in" yaml:"handling_longest_in"`
	HandlingSecondIn        float64 `mapstructure:"handling_second_in" yaml:"handling_second_in"`
	HandlingLengthGirthIn   float64 `mapstructure:"handling_length_girth_in" yaml:"handling_length_girth_in"`
	HandlingWeightLb        float64 `mapstructure:"handling_weight_lb" yaml:"handling_weight_lb"`
	OversizeLongestIn       float64 `mapstructure:"oversize_longest_in" yaml:"oversize_longest_in"`
	OversizeLengthGirthIn   float64 `mapstructure:"oversize_length_girth_in" yaml:"oversize_length_girth_in"`
	FuelMaxPercent          float64 `mapstructure:"fuel_max_percent" yaml:"fuel_max_percent"`
	DeclaredValueMin        float64 `mapstructure:"declared_value_min" yaml:"declared_value_min"`
	OverweightLb            float64 `mapstructure:"overweight_lb" yaml:"overweight_lb"`
	DomesticDIMDivisor      float64 `mapstructure:"domestic_dim_divisor" yaml:"domestic_dim_divisor"`
	InternationalDIMDivisor float64 `mapstructure:"international_dim_divisor" yaml:"international_dim_divisor"`
	WeightToleranceLb       float64 `mapstructure:"weight_tolerance_lb" yaml:"weight_tolerance_lb"`
}

// DefaultThresholds returns the published limits the rules were written against.
func DefaultThresholds() Thresholds {
	return Thresholds{
		PeakMonths:              []time.Month{time.November, time.December, time.January},
		HandlingLongestIn:       48,
		HandlingSecondIn:        30,
		HandlingLengthGirthIn:   105,
		HandlingWeightLb:        50,
		OversizeLongestIn:       96,
		OversizeLengthGirthIn:   130,
		FuelMaxPercent:          30,
		DeclaredValueMin:        100,
		OverweightLb:            150,
		DomesticDIMDivisor:      139,
		InternationalDIMDivisor: 166,
		WeightToleranceLb:       1,
	}
}

// IsPeakMonth reports whether m falls in the configured peak season.
func (t Thresholds) IsPeakMonth(m time.Month) bool {
	for _, pm := range t.PeakMonths {
		if pm == m {
			return true
		}
	}
	return false
}
