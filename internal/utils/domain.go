package utils

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/idna"
)

var (
	ErrInvalidDomain   = errors.New("invalid domain")
	ErrInvalidSelector = errors.New("invalid selector")

	selectorPattern = regexp.MustCompile(`^([\S]+)([.]_domainkey)$`)
	domainProfile   = idna.New(
		idna.MapForLookup(),
		idna.ValidateLabels(true),
		idna.StrictDomainName(true),
		idna.Transitional(false),
	)
)

// NormalizeDomain lowercases, trims the trailing dot and converts unicode
// labels to punycode. Only names with at least two labels are accepted.
func NormalizeDomain(domain string) (string, error) {
	d := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(domain)), ".")
	if d == "" {
		return "", ErrInvalidDomain
	}
	ascii, err := domainProfile.ToASCII(d)
	if err != nil {
		return "", errors.Wrap(ErrInvalidDomain, err.Error())
	}
	if !strings.Contains(ascii, ".") {
		return "", ErrInvalidDomain
	}
	return ascii, nil
}

// NormalizeSelectors validates DKIM selectors of the form "selector1._domainkey"
// and removes duplicates.
func NormalizeSelectors(selectors []string) ([]string, error) {
	normalized := make([]string, 0, len(selectors))
	for _, s := range selectors {
		s = strings.ToLower(strings.TrimSpace(s))
		if !selectorPattern.MatchString(s) {
			return nil, errors.Wrap(ErrInvalidSelector, s)
		}
		normalized = append(normalized, s)
	}
	return Unique(normalized), nil
}
