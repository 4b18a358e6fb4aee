package taxonomy

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Package taxonomy builds and checks canonical campaign names.
// Shape: BRANDCODE_MARKETCODE_PLATFORM_YYYY_CampaignName.

var (
	codePattern     = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	taxonomyPattern = regexp.MustCompile(`^[A-Z0-9_]+_[A-Z0-9_]+_[A-Z0-9_]+_\d{4}_[A-Za-z0-9_]+$`)
)

type InvalidInputError struct {
	Field  string
	Reason string
}

func (e InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Generate produces the canonical campaign name. A zero year means the
// current calendar year. The free-text name is reduced to its ASCII
// alphanumeric characters; brand and market codes must already be
// alphanumeric-with-underscores.
func Generate(brandCode, marketCode, channelPlatform, campaignName string, year int) (string, error) {
	if year == 0 {
		year = time.Now().Year()
	}

	sanitized := sanitizeName(campaignName)
	if sanitized == "" {
		return "", InvalidInputError{Field: "campaign_name", Reason: "must contain at least one alphanumeric character"}
	}
	if !codePattern.MatchString(brandCode) {
		return "", InvalidInputError{Field: "brand_code", Reason: fmt.Sprintf("%q must be alphanumeric with underscores", brandCode)}
	}
	if !codePattern.MatchString(marketCode) {
		return "", InvalidInputError{Field: "market_code", Reason: fmt.Sprintf("%q must be alphanumeric with underscores", marketCode)}
	}

	return fmt.Sprintf("%s_%s_%s_%d_%s",
		strings.ToUpper(brandCode),
		strings.ToUpper(marketCode),
		strings.ToUpper(channelPlatform),
		year,
		sanitized,
	), nil
}

// Validate reports whether a string is a well-formed taxonomy name.
func Validate(name string) bool {
	return taxonomyPattern.MatchString(name)
}

func sanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
