// Package classification maps free-text carrier charge labels onto canonical
// surcharge categories and recognises business addresses.
package classification

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// SurchargeRule maps a label pattern onto a canonical surcharge label.
type SurchargeRule struct {
	Label string `mapstructure:"label" yaml:"label"`
	Regex string `mapstructure:"regex" yaml:"regex"`
}

// compiledRule holds a compiled regex with its rule.
type compiledRule struct {
	compiledRegex *regexp.Regexp
	SurchargeRule
}

// Canonicalizer resolves surcharge labels with an ordered, first-match-wins rule table.
// It is safe for concurrent use.
type Canonicalizer struct {
	rules []compiledRule
	mu    sync.RWMutex
}

// NewCanonicalizer compiles the rules, preserving their order.
func NewCanonicalizer(rules []SurchargeRule) (*Canonicalizer, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Canonicalizer{rules: compiled}, nil
}

// MustDefaultCanonicalizer returns a canonicalizer over DefaultSurchargeRules.
func MustDefaultCanonicalizer() *Canonicalizer {
	c, err := NewCanonicalizer(DefaultSurchargeRules())
	if err != nil {
		panic(err)
	}
	return c
}

func compileRules(rules []SurchargeRule) ([]compiledRule, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		regexStr := r.Regex
		if !strings.HasPrefix(regexStr, "(?i)") {
			regexStr = "(?i)" + regexStr
		}

		re, err := regexp.Compile(regexStr)
		if err != nil {
			return nil, fmt.Errorf("failed to compile rule %s: %w", r.Label, err)
		}

		compiled = append(compiled, compiledRule{
			SurchargeRule: r,
			compiledRegex: re,
		})
	}
	return compiled, nil
}

// Canonical returns the label of the first matching rule. Labels that match
// nothing come back upper-cased and trimmed.
func (c *Canonicalizer) Canonical(label string) string {
	u := strings.ToUpper(strings.TrimSpace(label))

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, r := range c.rules {
		if r.compiledRegex.MatchString(u) {
			return r.Label
		}
	}
	return u
}

// UpdateRules swaps in a new rule table.
func (c *Canonicalizer) UpdateRules(rules []SurchargeRule) error {
	compiled, err := compileRules(rules)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.rules = compiled
	c.mu.Unlock()

	return nil
}

// Labels returns the canonical labels in evaluation order.
func (c *Canonicalizer) Labels() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	labels := make([]string, len(c.rules))
	for i, r := range c.rules {
		labels[i] = r.Label
	}
	return labels
}

// RuleCount returns the number of loaded rules.
func (c *Canonicalizer) RuleCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rules)
}
