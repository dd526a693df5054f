package classification

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultBusinessIndicators are keywords that mark an address as a business.
// They are matched as substrings, so each must be long enough to be unambiguous.
func DefaultBusinessIndicators() []string {
	return []string{
		// Generic business keywords
		"LLC", "INC", "CORP", "COMPANY", "BUSINESS", "OFFICE",
		"WAREHOUSE", "STORE", "SHOP", "CENTER", "DISTRIBUTION",

		// Retailers and retail locations
		"SEPHORA", "ULTA", "NORDSTROM", "BLOOMINGDALE", "MACY",
		"KOHLS", "TARGET", "MAC COSMETICS",
		"DIOR", "TOWER 28", "L'OREAL", "LOREAL",
		"MALL OF AMERICA", "VALLEY FAIR", "HOUSTON GALLERIA",
		"SANTA ANITA", "NORTH PARK", "CHESTNUT HILL", "CERRITOS",
		"CORAL GABLES", "DADELAND", "AVENTURA",
		"MILLSTREAM", "BELLEVUE", "BERKELEY",
	}
}

// DefaultBusinessAbbreviations are short indicators that only count as whole words,
// so "MAC" style fragments inside street names do not match.
func DefaultBusinessAbbreviations() []string {
	return []string{"NRD", "BLM"}
}

// BusinessMatcher decides whether address text describes a business.
type BusinessMatcher struct {
	keywords []string
	abbrevs  []*regexp.Regexp
}

// NewBusinessMatcher builds a matcher from substring keywords and word-boundary abbreviations.
func NewBusinessMatcher(keywords, abbreviations []string) (*BusinessMatcher, error) {
	m := &BusinessMatcher{
		keywords: make([]string, 0, len(keywords)),
		abbrevs:  make([]*regexp.Regexp, 0, len(abbreviations)),
	}
	for _, k := range keywords {
		k = strings.ToUpper(strings.TrimSpace(k))
		if k != "" {
			m.keywords = append(m.keywords, k)
		}
	}
	for _, a := range abbreviations {
		a = strings.ToUpper(strings.TrimSpace(a))
		if a == "" {
			continue
		}
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(a) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("failed to compile abbreviation %q: %w", a, err)
		}
		m.abbrevs = append(m.abbrevs, re)
	}
	return m, nil
}

// DefaultBusinessMatcher returns a matcher over the default indicator lists.
func DefaultBusinessMatcher() *BusinessMatcher {
	m, _ := NewBusinessMatcher(DefaultBusinessIndicators(), DefaultBusinessAbbreviations())
	return m
}

// IsBusiness reports whether the text carries any business indicator.
func (m *BusinessMatcher) IsBusiness(info string) bool {
	u := strings.ToUpper(info)
	if strings.TrimSpace(u) == "" {
		return false
	}
	for _, k := range m.keywords {
		if strings.Contains(u, k) {
			return true
		}
	}
	for _, re := range m.abbrevs {
		if re.MatchString(u) {
			return true
		}
	}
	return false
}
