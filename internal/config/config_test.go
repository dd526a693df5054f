package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/freight-audit/internal/audit"
	"github.com/Veraticus/freight-audit/internal/common"
)

func viperFrom(t *testing.T, yamlConfig string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(yamlConfig)))
	return v
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)
	assert.Equal(t, audit.DefaultConfig(), cfg)
}

func TestLoadFrom_Overrides(t *testing.T) {
	v := viperFrom(t, `
audit:
  residential_patterns: ["home delivery", " "]
  business_indicators: ["Creative Plastics"]
  business_abbreviations: ["HB"]
  thresholds:
    fuel_max_percent: 25
    peak_months: [12]
  priority:
    high: 100
    low: 5
`)

	cfg, err := LoadFrom(v)
	require.NoError(t, err)

	assert.Equal(t, []string{"home delivery"}, cfg.ResidentialPatterns)
	assert.Equal(t, []string{"Creative Plastics"}, cfg.BusinessIndicators)
	assert.Equal(t, []string{"HB"}, cfg.BusinessAbbreviations)
	assert.InDelta(t, 25.0, cfg.Thresholds.FuelMaxPercent, 0.001)
	assert.Equal(t, []time.Month{time.December}, cfg.Thresholds.PeakMonths)
	assert.InDelta(t, 139.0, cfg.Thresholds.DomesticDIMDivisor, 0.001, "unset thresholds keep defaults")
	assert.Equal(t, audit.PriorityThresholds{High: 100, Low: 5}, cfg.Priority)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{name: "low above high", config: "audit:\n  priority:\n    high: 5\n    low: 10\n"},
		{name: "zero divisor", config: "audit:\n  thresholds:\n    domestic_dim_divisor: 0\n"},
		{name: "bad month", config: "audit:\n  thresholds:\n    peak_months: [13]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(viperFrom(t, tt.config))
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}

func TestLoadFrom_RulesFile(t *testing.T) {
	rules := writeFile(t, "rules.yaml", `
residential_patterns:
  - residential delivery
business_indicators:
  - acme warehouse
surcharge_rules:
  - label: FUEL SURCHARGE
    regex: (?i)fuel
`)

	v := viper.New()
	v.Set("audit.rules_file", rules)
	v.Set("audit.business_indicators", []string{"creative plastics"})

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, []string{"residential delivery"}, cfg.ResidentialPatterns)
	assert.Equal(t, []string{"acme warehouse", "creative plastics"}, cfg.BusinessIndicators)
	require.Len(t, cfg.SurchargeRules, 1)
	assert.Equal(t, "FUEL SURCHARGE", cfg.SurchargeRules[0].Label)
}

func TestLoadRulesFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "malformed yaml", content: "residential_patterns: [", wantErr: common.ErrInvalidConfig},
		{name: "missing regex", content: "surcharge_rules:\n  - label: FUEL\n", wantErr: common.ErrInvalidConfig},
		{name: "bad regex", content: "surcharge_rules:\n  - label: FUEL\n    regex: \"(\"\n", wantErr: common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRulesFile(writeFile(t, "rules.yaml", tt.content))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := LoadRulesFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("FREIGHT_TEST_DIR", "/data")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "audits.db"), ExpandPath("~/audits.db"))
	assert.Equal(t, "/data/x.csv", ExpandPath("$FREIGHT_TEST_DIR/x.csv"))
	assert.Equal(t, filepath.Join(home, ".config", "freightaudit", "audits.db"), DefaultDatabasePath())
}
