package qa

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	domainerrors "trafficdesk/contexts/ad-operations/ticket-service/domain/errors"
	"trafficdesk/contexts/ad-operations/ticket-service/domain/platforms"
	"trafficdesk/contexts/ad-operations/ticket-service/domain/translators"
	"trafficdesk/internal/shared/taxonomy"
)

// Input is everything the QA gate inspects: the ticket's payload plus the
// campaign/brand/channel snapshot resolved by the caller.
type Input struct {
	CampaignName  string
	BrandName     string
	Platform      platforms.Platform
	PayloadConfig json.RawMessage
}

// Verdict is the gate's structured result. Rules never panic or throw;
// exactly one reason is reported per evaluation.
type Verdict struct {
	Passed bool
	Reason string
}

// Brand names matching any of these substrings get the stricter
// family-friendly targeting rules.
var familyFriendlyMarkers = []string{"disney", "kids", "family", "junior", "children"}

// Evaluate runs the QA rules in fixed order and short-circuits at the
// first failure: taxonomy validity, brand safety, budget limits, payload
// schema. Pure: status transitions are the caller's job.
func Evaluate(in Input) Verdict {
	rules := []func(Input) (string, bool){
		checkTaxonomy,
		checkBrandSafety,
		checkBudgetLimits,
		checkPayloadSchema,
	}
	for _, rule := range rules {
		if reason, ok := rule(in); !ok {
			return Verdict{Passed: false, Reason: reason}
		}
	}
	return Verdict{Passed: true}
}

func checkTaxonomy(in Input) (string, bool) {
	if !taxonomy.Validate(in.CampaignName) {
		return fmt.Sprintf("Campaign name %q does not match taxonomy pattern", in.CampaignName), false
	}
	return "", true
}

// IsFamilyFriendlyBrand applies the substring heuristic on the brand name.
func IsFamilyFriendlyBrand(name string) bool {
	lower := strings.ToLower(name)
	for _, marker := range familyFriendlyMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func checkBrandSafety(in Input) (string, bool) {
	if !IsFamilyFriendlyBrand(in.BrandName) {
		return "", true
	}

	switch in.Platform {
	case platforms.Meta:
		cfg, err := translators.DecodeMetaConfig(in.PayloadConfig)
		if err != nil {
			return "payload_config is not valid JSON", false
		}
		for _, interest := range cfg.Targeting.Interests() {
			if name, blocked := platforms.BlockedMetaInterest(interest.ID); blocked {
				return fmt.Sprintf(
					"Family-friendly brand %q cannot target adult/alcohol interests (found: %s)",
					in.BrandName, name,
				), false
			}
		}
	case platforms.TikTok:
		cfg, err := translators.DecodeTikTokConfig(in.PayloadConfig)
		if err != nil {
			return "payload_config is not valid JSON", false
		}
		for _, id := range cfg.InterestCategoryIDs {
			if name, blocked := platforms.BlockedTikTokCategory(id); blocked {
				return fmt.Sprintf(
					"Family-friendly brand %q cannot target gambling or restricted categories (found: %s)",
					in.BrandName, name,
				), false
			}
		}
	}
	return "", true
}

func checkBudgetLimits(in Input) (string, bool) {
	for _, limit := range platforms.BudgetLimits(in.Platform) {
		amount, present, err := translators.FieldAmount(in.PayloadConfig, limit.Field)
		if err != nil {
			return fmt.Sprintf("%s is not a valid decimal amount", limit.Field), false
		}
		if !present {
			continue
		}
		if amount.Decimal().GreaterThan(limit.Max) {
			return fmt.Sprintf(
				"%s %s exceeds maximum allowed %s",
				limit.Field, amount.String(), limit.Max.String(),
			), false
		}
	}
	return "", true
}

func checkPayloadSchema(in Input) (string, bool) {
	gate := platforms.Fields(in.Platform).Gate
	if err := translators.RequireFields(in.PayloadConfig, gate); err != nil {
		var missing domainerrors.MissingFieldError
		if errors.As(err, &missing) {
			return missing.Error(), false
		}
		return "payload_config is not valid JSON", false
	}

	switch in.Platform {
	case platforms.Meta:
		cfg, err := translators.DecodeMetaConfig(in.PayloadConfig)
		if err != nil {
			return "payload_config is not valid JSON", false
		}
		if !cfg.Targeting.HasGeo() {
			return "Missing geographic locations targeting", false
		}
	case platforms.TikTok:
		cfg, err := translators.DecodeTikTokConfig(in.PayloadConfig)
		if err != nil {
			return "payload_config is not valid JSON", false
		}
		if len(cfg.LocationIDs) == 0 {
			return "Missing geographic locations targeting", false
		}
	}
	return "", true
}
