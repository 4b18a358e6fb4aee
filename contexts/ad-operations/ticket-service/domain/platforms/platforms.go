package platforms

import (
	"strings"

	domainerrors "trafficdesk/contexts/ad-operations/ticket-service/domain/errors"

	"github.com/shopspring/decimal"
)

// Platform is the closed set of ad platforms a ticket can target.
// Adding a platform means extending the constants here plus the exhaustive
// switches in this package and in translators.ForPlatform.
type Platform string

const (
	Meta   Platform = "meta"
	TikTok Platform = "tiktok"
	Google Platform = "google"
)

// Parse resolves a channel's free-text platform name.
func Parse(name string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "meta":
		return Meta, nil
	case "tiktok":
		return TikTok, nil
	case "google", "google ads":
		return Google, nil
	default:
		return "", domainerrors.UnsupportedPlatformError{Name: name}
	}
}

// Stage is one step of the trafficking pipeline.
type Stage string

const (
	StageCampaign Stage = "campaign"
	StageAdSet    Stage = "adset"
	StageAd       Stage = "ad"
)

// FieldSpec is the per-platform required-field table. The QA schema rule and
// the translators both read it, so the two gates cannot drift.
type FieldSpec struct {
	Campaign []string
	AdSet    []string
	Ad       []string
	// OneOf groups: at least one member must be present. Reported by
	// joining the members when all are absent.
	OneOf [][]string
	// Gate is the subset checked by the QA schema rule before a ticket may
	// reach READY_FOR_API.
	Gate []string
}

var fieldSpecs = map[Platform]FieldSpec{
	Meta: {
		Campaign: []string{"ad_account_id", "objective"},
		AdSet:    []string{"targeting", "optimization_goal", "billing_event"},
		Ad:       []string{"creative"},
		OneOf:    [][]string{{"daily_budget", "lifetime_budget"}},
		Gate:     []string{"ad_account_id", "objective"},
	},
	TikTok: {
		Campaign: []string{"advertiser_id", "objective_type"},
		AdSet:    []string{"advertiser_id", "placements", "location_ids", "budget", "bid_type", "optimization_goal"},
		Ad:       []string{"creatives", "landing_page_url"},
		Gate:     []string{"advertiser_id", "objective_type", "placements", "location_ids"},
	},
	Google: {
		Campaign: []string{"customer_id", "budget_id"},
		AdSet:    nil,
		Ad:       nil,
		Gate:     []string{"customer_id", "budget_id"},
	},
}

// Fields returns the required-field table for a platform.
func Fields(p Platform) FieldSpec {
	return fieldSpecs[p]
}

// RequiredForStage lists the required fields for one pipeline stage.
func RequiredForStage(p Platform, stage Stage) []string {
	spec := fieldSpecs[p]
	switch stage {
	case StageCampaign:
		return spec.Campaign
	case StageAdSet:
		return spec.AdSet
	case StageAd:
		return spec.Ad
	default:
		return nil
	}
}

// BudgetLimit is a QA ceiling on one budget field, in account currency.
type BudgetLimit struct {
	Field string
	Max   decimal.Decimal
}

var budgetLimits = map[Platform][]BudgetLimit{
	Meta: {
		{Field: "daily_budget", Max: decimal.NewFromInt(100_000)},
		{Field: "lifetime_budget", Max: decimal.NewFromInt(1_000_000)},
	},
	TikTok: {
		{Field: "budget", Max: decimal.NewFromInt(100_000)},
	},
}

// BudgetLimits returns the QA budget ceilings for a platform. Platforms with
// no configured ceiling (Google) return nil.
func BudgetLimits(p Platform) []BudgetLimit {
	return budgetLimits[p]
}

// Interest and category ids that family-friendly brands may not target.
var (
	metaBlockedInterestIDs = map[string]string{
		"6003139266461": "Alcohol",
		"6003348604581": "Gambling",
		"6002991239659": "Tobacco",
	}
	tiktokBlockedCategoryIDs = map[string]string{
		"100002": "Gambling",
		"100003": "Alcohol",
	}
)

// BlockedMetaInterest reports whether a Meta interest id is on the
// family-friendly blocklist.
func BlockedMetaInterest(id string) (string, bool) {
	name, ok := metaBlockedInterestIDs[id]
	return name, ok
}

// BlockedTikTokCategory reports whether a TikTok interest category id is on
// the family-friendly blocklist.
func BlockedTikTokCategory(id string) (string, bool) {
	name, ok := tiktokBlockedCategoryIDs[id]
	return name, ok
}
