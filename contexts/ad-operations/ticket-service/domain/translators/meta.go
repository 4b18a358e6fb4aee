package translators

import (
	"encoding/json"

	"trafficdesk/contexts/ad-operations/ticket-service/domain/platforms"
)

// MetaTranslator produces Meta Graph API payloads:
// campaigns, adsets and ads under /act_{ad_account_id}/.
type MetaTranslator struct{}

func (MetaTranslator) Platform() platforms.Platform { return platforms.Meta }

func (MetaTranslator) BuildCampaignPayload(in Input) (Payload, error) {
	raw, err := parseRawConfig(in.Config)
	if err != nil {
		return nil, err
	}
	if err := raw.requireStage(platforms.Meta, platforms.StageCampaign); err != nil {
		return nil, err
	}
	cfg, err := DecodeMetaConfig(in.Config)
	if err != nil {
		return nil, err
	}

	specialAdCategories := cfg.SpecialAdCategories
	if specialAdCategories == nil {
		specialAdCategories = []string{}
	}
	payload := Payload{
		"name":                  in.CampaignName,
		"objective":             cfg.Objective,
		"status":                "PAUSED",
		"special_ad_categories": specialAdCategories,
	}
	if cfg.SpendCap.Present() {
		payload["spend_cap"] = cfg.SpendCap.Cents()
	}
	if cfg.BuyingType != "" {
		payload["buying_type"] = cfg.BuyingType
	}
	return payload, nil
}

func (MetaTranslator) BuildAdSetPayload(in Input, externalCampaignID string) (Payload, error) {
	raw, err := parseRawConfig(in.Config)
	if err != nil {
		return nil, err
	}
	if err := raw.requireStage(platforms.Meta, platforms.StageAdSet); err != nil {
		return nil, err
	}
	if err := raw.requireOneOf([]string{"daily_budget", "lifetime_budget"}); err != nil {
		return nil, err
	}
	cfg, err := DecodeMetaConfig(in.Config)
	if err != nil {
		return nil, err
	}

	payload := Payload{
		"name":              in.CampaignName + "_AdSet",
		"campaign_id":       externalCampaignID,
		"optimization_goal": cfg.OptimizationGoal,
		"billing_event":     cfg.BillingEvent,
		"status":            "PAUSED",
		"targeting":         cfg.Targeting.Raw(),
	}
	if cfg.DailyBudget.Present() {
		payload["daily_budget"] = cfg.DailyBudget.Cents()
	} else {
		payload["lifetime_budget"] = cfg.LifetimeBudget.Cents()
		if cfg.EndTime != "" {
			payload["end_time"] = cfg.EndTime
		}
	}
	if cfg.BidAmount.Present() {
		payload["bid_amount"] = cfg.BidAmount.Cents()
	}
	if len(cfg.PromotedObject) > 0 {
		payload["promoted_object"] = cfg.PromotedObject
	}
	return payload, nil
}

func (MetaTranslator) BuildAdPayload(in Input, externalAdSetID string) (Payload, error) {
	raw, err := parseRawConfig(in.Config)
	if err != nil {
		return nil, err
	}
	if err := raw.requireStage(platforms.Meta, platforms.StageAd); err != nil {
		return nil, err
	}
	cfg, err := DecodeMetaConfig(in.Config)
	if err != nil {
		return nil, err
	}

	payload := Payload{
		"name":     in.CampaignName + "_Ad",
		"adset_id": externalAdSetID,
		"status":   "PAUSED",
		"creative": cfg.Creative,
	}
	if len(cfg.TrackingSpecs) > 0 {
		payload["tracking_specs"] = cfg.TrackingSpecs
	}
	return payload, nil
}

func (MetaTranslator) ValidatePayloadConfig(raw json.RawMessage) bool {
	return validateAllStages(platforms.Meta, raw)
}

// ExternalID reads the Graph API create response, which is {"id": "..."}
// for every entity type.
func (MetaTranslator) ExternalID(_ platforms.Stage, body []byte) (string, error) {
	var parsed struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if parsed.ID == "" {
		return "", errNoExternalID
	}
	return parsed.ID, nil
}
