package qa

import (
	"encoding/json"
	"strings"
	"testing"

	"trafficdesk/contexts/ad-operations/ticket-service/domain/platforms"
)

const validMetaConfig = `{
	"ad_account_id": "1234567890",
	"objective": "OUTCOME_TRAFFIC",
	"daily_budget": "500.00",
	"targeting": {"geo_locations": {"countries": ["US"]}}
}`

func TestEvaluatePassesValidTicket(t *testing.T) {
	verdict := Evaluate(Input{
		CampaignName:  "DIS_US_META_2026_SummerLaunch",
		BrandName:     "Acme Motors",
		Platform:      platforms.Meta,
		PayloadConfig: json.RawMessage(validMetaConfig),
	})
	if !verdict.Passed {
		t.Fatalf("expected pass, got reason %q", verdict.Reason)
	}
	if verdict.Reason != "" {
		t.Fatalf("passing verdict must carry no reason, got %q", verdict.Reason)
	}
}

func TestEvaluateRejectsBadTaxonomyName(t *testing.T) {
	verdict := Evaluate(Input{
		CampaignName:  "summer launch 2026",
		BrandName:     "Acme Motors",
		Platform:      platforms.Meta,
		PayloadConfig: json.RawMessage(validMetaConfig),
	})
	if verdict.Passed {
		t.Fatal("expected failure for non-taxonomy name")
	}
	want := `Campaign name "summer launch 2026" does not match taxonomy pattern`
	if verdict.Reason != want {
		t.Fatalf("unexpected reason: %q", verdict.Reason)
	}
}

func TestFamilyFriendlyBrandCannotTargetBlockedMetaInterests(t *testing.T) {
	config := `{
		"ad_account_id": "1234567890",
		"objective": "OUTCOME_TRAFFIC",
		"targeting": {
			"geo_locations": {"countries": ["US"]},
			"flexible_spec": [{"interests": [{"id": "6003139266461", "name": "Beer"}]}]
		}
	}`
	verdict := Evaluate(Input{
		CampaignName:  "DIS_US_META_2026_KidsMovie",
		BrandName:     "Disney Junior",
		Platform:      platforms.Meta,
		PayloadConfig: json.RawMessage(config),
	})
	if verdict.Passed {
		t.Fatal("expected brand safety failure")
	}
	want := `Family-friendly brand "Disney Junior" cannot target adult/alcohol interests (found: Alcohol)`
	if verdict.Reason != want {
		t.Fatalf("unexpected reason: %q", verdict.Reason)
	}
}

func TestFamilyFriendlyBrandCannotTargetBlockedTikTokCategories(t *testing.T) {
	config := `{
		"advertiser_id": "adv-1",
		"objective_type": "TRAFFIC",
		"placements": ["PLACEMENT_TIKTOK"],
		"location_ids": ["6252001"],
		"interest_category_ids": ["100002"]
	}`
	verdict := Evaluate(Input{
		CampaignName:  "DIS_US_TIKTOK_2026_KidsMovie",
		BrandName:     "Family Channel",
		Platform:      platforms.TikTok,
		PayloadConfig: json.RawMessage(config),
	})
	if verdict.Passed {
		t.Fatal("expected brand safety failure")
	}
	if !strings.Contains(verdict.Reason, "gambling or restricted categories (found: Gambling)") {
		t.Fatalf("unexpected reason: %q", verdict.Reason)
	}
}

func TestNonFamilyBrandMayTargetBlockedInterests(t *testing.T) {
	config := `{
		"ad_account_id": "1234567890",
		"objective": "OUTCOME_TRAFFIC",
		"targeting": {
			"geo_locations": {"countries": ["US"]},
			"flexible_spec": [{"interests": [{"id": "6003139266461", "name": "Beer"}]}]
		}
	}`
	verdict := Evaluate(Input{
		CampaignName:  "HEIN_US_META_2026_Lager",
		BrandName:     "Heineken",
		Platform:      platforms.Meta,
		PayloadConfig: json.RawMessage(config),
	})
	if !verdict.Passed {
		t.Fatalf("non-family brand should pass, got %q", verdict.Reason)
	}
}

func TestBudgetCeilingFailure(t *testing.T) {
	config := `{
		"ad_account_id": "1234567890",
		"objective": "OUTCOME_TRAFFIC",
		"daily_budget": "150000",
		"targeting": {"geo_locations": {"countries": ["US"]}}
	}`
	verdict := Evaluate(Input{
		CampaignName:  "DIS_US_META_2026_SummerLaunch",
		BrandName:     "Acme Motors",
		Platform:      platforms.Meta,
		PayloadConfig: json.RawMessage(config),
	})
	if verdict.Passed {
		t.Fatal("expected budget failure")
	}
	if verdict.Reason != "daily_budget 150000 exceeds maximum allowed 100000" {
		t.Fatalf("unexpected reason: %q", verdict.Reason)
	}
}

func TestGoogleHasNoBudgetCeiling(t *testing.T) {
	config := `{"customer_id": "customers/111", "budget_id": "222"}`
	verdict := Evaluate(Input{
		CampaignName:  "DIS_US_GOOGLE_2026_SummerLaunch",
		BrandName:     "Acme Motors",
		Platform:      platforms.Google,
		PayloadConfig: json.RawMessage(config),
	})
	if !verdict.Passed {
		t.Fatalf("google ticket should pass without budget ceiling, got %q", verdict.Reason)
	}
}

func TestSchemaGateReportsMissingField(t *testing.T) {
	verdict := Evaluate(Input{
		CampaignName:  "DIS_US_META_2026_SummerLaunch",
		BrandName:     "Acme Motors",
		Platform:      platforms.Meta,
		PayloadConfig: json.RawMessage(`{"objective": "OUTCOME_TRAFFIC", "targeting": {"geo_locations": {"countries": ["US"]}}}`),
	})
	if verdict.Passed {
		t.Fatal("expected schema failure")
	}
	if verdict.Reason != "payload_config missing required field: ad_account_id" {
		t.Fatalf("unexpected reason: %q", verdict.Reason)
	}
}

func TestMissingGeoTargetingFails(t *testing.T) {
	config := `{"ad_account_id": "1234567890", "objective": "OUTCOME_TRAFFIC", "targeting": {"age_min": 18}}`
	verdict := Evaluate(Input{
		CampaignName:  "DIS_US_META_2026_SummerLaunch",
		BrandName:     "Acme Motors",
		Platform:      platforms.Meta,
		PayloadConfig: json.RawMessage(config),
	})
	if verdict.Passed {
		t.Fatal("expected geo targeting failure")
	}
	if verdict.Reason != "Missing geographic locations targeting" {
		t.Fatalf("unexpected reason: %q", verdict.Reason)
	}
}

func TestIsFamilyFriendlyBrand(t *testing.T) {
	cases := map[string]bool{
		"Disney Junior":  true,
		"Kids Network":   true,
		"FAMILY channel": true,
		"Heineken":       false,
		"Acme Motors":    false,
	}
	for name, want := range cases {
		if got := IsFamilyFriendlyBrand(name); got != want {
			t.Fatalf("IsFamilyFriendlyBrand(%q) = %v, want %v", name, got, want)
		}
	}
}
