package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/freight-audit/internal/classification"
	"github.com/Veraticus/freight-audit/internal/common"
)

// RulesFile is the on-disk shape of a customer rules file.
type RulesFile struct {
	ResidentialPatterns   []string                       `yaml:"residential_patterns"`
	BusinessIndicators    []string                       `yaml:"business_indicators"`
	BusinessAbbreviations []string                       `yaml:"business_abbreviations"`
	SurchargeRules        []classification.SurchargeRule `yaml:"surcharge_rules"`
}

// LoadRulesFile reads and validates a YAML rules file.
func LoadRulesFile(path string) (*RulesFile, error) {
	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var rules RulesFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("%w: failed to parse rules file %s: %w", common.ErrInvalidConfig, path, err)
	}

	for i, r := range rules.SurchargeRules {
		if r.Label == "" || r.Regex == "" {
			return nil, fmt.Errorf("%w: surcharge rule %d needs both label and regex", common.ErrInvalidConfig, i+1)
		}
	}
	if len(rules.SurchargeRules) > 0 {
		if _, err := classification.NewCanonicalizer(rules.SurchargeRules); err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
		}
	}

	return &rules, nil
}
