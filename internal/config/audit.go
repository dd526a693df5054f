package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/freight-audit/internal/audit"
)

// Load builds the audit configuration from the global viper instance.
func Load() (audit.Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom builds a validated audit configuration. Values are layered:
// defaults, then the rules file, then the audit.* keys.
func LoadFrom(v *viper.Viper) (audit.Config, error) {
	cfg := audit.DefaultConfig()

	if path := v.GetString("audit.rules_file"); path != "" {
		rules, err := LoadRulesFile(path)
		if err != nil {
			return audit.Config{}, err
		}
		cfg.ResidentialPatterns = rules.ResidentialPatterns
		cfg.BusinessIndicators = rules.BusinessIndicators
		cfg.BusinessAbbreviations = rules.BusinessAbbreviations
		cfg.SurchargeRules = rules.SurchargeRules
	}

	if patterns := cleanList(v.GetStringSlice("audit.residential_patterns")); len(patterns) > 0 {
		cfg.ResidentialPatterns = patterns
	}
	cfg.BusinessIndicators = append(cfg.BusinessIndicators, cleanList(v.GetStringSlice("audit.business_indicators"))...)
	cfg.BusinessAbbreviations = append(cfg.BusinessAbbreviations, cleanList(v.GetStringSlice("audit.business_abbreviations"))...)

	if v.IsSet("audit.thresholds") {
		if v.IsSet("audit.thresholds.peak_months") {
			cfg.Thresholds.PeakMonths = nil
		}
		if err := v.UnmarshalKey("audit.thresholds", &cfg.Thresholds); err != nil {
			return audit.Config{}, fmt.Errorf("failed to decode audit thresholds: %w", err)
		}
	}
	if v.IsSet("audit.priority.high") {
		cfg.Priority.High = v.GetFloat64("audit.priority.high")
	}
	if v.IsSet("audit.priority.low") {
		cfg.Priority.Low = v.GetFloat64("audit.priority.low")
	}

	if err := cfg.Validate(); err != nil {
		return audit.Config{}, err
	}
	return cfg, nil
}

func cleanList(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
