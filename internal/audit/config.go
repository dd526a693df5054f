package audit

import (
	"fmt"

	"github.com/Veraticus/freight-audit/internal/classification"
	"github.com/Veraticus/freight-audit/internal/common"
	"github.com/Veraticus/freight-audit/internal/surcharges"
)

// Config holds everything an Engine is built from.
type Config struct {
	// ResidentialPatterns replace the default residential phrases when non-empty.
	ResidentialPatterns []string
	// BusinessIndicators and BusinessAbbreviations extend the defaults with
	// customer-specific names and addresses.
	BusinessIndicators    []string
	BusinessAbbreviations []string
	// SurchargeRules replace the default canonicalization table when non-empty.
	SurchargeRules []classification.SurchargeRule
	Thresholds     surcharges.Thresholds
	Priority       PriorityThresholds
}

// PriorityThresholds split actionable findings by refund value.
type PriorityThresholds struct {
	High float64 `mapstructure:"high" yaml:"high"`
	Low  float64 `mapstructure:"low" yaml:"low"`
}

// DefaultPriorityThresholds returns High at $50 or more and Low under $10.
func DefaultPriorityThresholds() PriorityThresholds {
	return PriorityThresholds{High: 50, Low: 10}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Thresholds: surcharges.DefaultThresholds(),
		Priority:   DefaultPriorityThresholds(),
	}
}

// Validate checks the configuration for values no audit could run with.
func (c Config) Validate() error {
	if c.Priority.Low > c.Priority.High {
		return fmt.Errorf("%w: low priority threshold %.2f exceeds high threshold %.2f",
			common.ErrInvalidConfig, c.Priority.Low, c.Priority.High)
	}
	if c.Thresholds.DomesticDIMDivisor <= 0 || c.Thresholds.InternationalDIMDivisor <= 0 {
		return fmt.Errorf("%w: DIM divisors must be positive", common.ErrInvalidConfig)
	}
	if c.Thresholds.FuelMaxPercent <= 0 {
		return fmt.Errorf("%w: fuel percentage limit must be positive", common.ErrInvalidConfig)
	}
	for _, m := range c.Thresholds.PeakMonths {
		if m < 1 || m > 12 {
			return fmt.Errorf("%w: invalid peak month %d", common.ErrInvalidConfig, m)
		}
	}
	return nil
}
