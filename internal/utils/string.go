package utils

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/customeros/mailsherpa/mailvalidate"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)
	hostnameLabel    = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)
)

// Slugify lowercases, strips accents and joins words with dashes:
// "Ministère des Finances" -> "ministere-des-finances".
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	slug := slugInvalidChars.ReplaceAllString(strings.ToLower(stripped), "-")
	return strings.Trim(slug, "-")
}

func NormalizeUserName(userName string) string {
	return strings.ToLower(strings.TrimSpace(userName))
}

// IsValidEmail accepts addresses mailsherpa considers syntactically valid
// whose domain is a plain dotted hostname.
func IsValidEmail(email string) bool {
	if strings.ContainsAny(email, "<>\"") {
		return false
	}
	validation := mailvalidate.ValidateEmailSyntax(email)
	if !validation.IsValid {
		return false
	}

	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return false
	}
	labels := strings.Split(strings.ToLower(email[at+1:]), ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if !hostnameLabel.MatchString(label) {
			return false
		}
	}
	return true
}
