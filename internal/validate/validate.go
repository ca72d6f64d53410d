// Package validate holds the pure field validators shared by the address
// book model and the persistence layer. Every function here is side-effect
// free and never panics.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/tartampluch/go-assistant/internal/config"
)

var (
	nonDigitRe = regexp.MustCompile(`\D`)
	phoneRe    = regexp.MustCompile(`^\+` + config.CountryCode + `\d{10}$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

	tagFolder = cases.Fold()
)

// ErrInvalidBirthday is returned for any birthday not shaped DD-MM-YYYY.
var ErrInvalidBirthday = errors.New(config.ErrInvalidBday)

// NormalizePhone canonicalizes a raw phone string.
// All non-digit characters are stripped; exactly 10 digits get the
// national country code prefix, exactly 12 digits get a bare "+".
// Anything else is returned as "+<digits>" best effort and left for
// ValidatePhone to reject.
func NormalizePhone(raw string) string {
	if raw == "" {
		return ""
	}
	digits := nonDigitRe.ReplaceAllString(raw, "")

	switch len(digits) {
	case 10:
		return "+" + config.CountryCode + digits
	case 12:
		return "+" + digits
	default:
		return "+" + digits
	}
}

// ValidatePhone reports whether raw canonicalizes to a strict
// +<country><10 digits> number.
func ValidatePhone(raw string) bool {
	return phoneRe.MatchString(NormalizePhone(raw))
}

// ValidateEmail reports whether raw looks like local@domain.tld with no
// embedded whitespace and at least one dot after the "@".
func ValidateEmail(raw string) bool {
	if raw == "" {
		return false
	}
	return emailRe.MatchString(raw)
}

// ParseBirthday parses a DD-MM-YYYY date. Any other shape is rejected;
// there is deliberately no lenient fallback here.
func ParseBirthday(raw string) (time.Time, error) {
	t, err := time.Parse(config.DateFormatBirthday, raw)
	if err != nil {
		return time.Time{}, ErrInvalidBirthday
	}
	return t, nil
}

// NormalizeTag trims and case-folds a tag for storage and membership
// tests. Unicode case folding, not plain lowercasing, so that tags like
// "Straße"/"STRASSE" collapse to the same key.
func NormalizeTag(raw string) string {
	return tagFolder.String(strings.TrimSpace(raw))
}
