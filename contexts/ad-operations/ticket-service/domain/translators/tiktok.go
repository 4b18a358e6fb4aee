package translators

import (
	"encoding/json"

	"trafficdesk/contexts/ad-operations/ticket-service/domain/platforms"
)

// TikTokTranslator produces TikTok Marketing API payloads for
// /campaign/create/, /adgroup/create/ and /ad/create/.
type TikTokTranslator struct{}

func (TikTokTranslator) Platform() platforms.Platform { return platforms.TikTok }

func (TikTokTranslator) BuildCampaignPayload(in Input) (Payload, error) {
	raw, err := parseRawConfig(in.Config)
	if err != nil {
		return nil, err
	}
	if err := raw.requireStage(platforms.TikTok, platforms.StageCampaign); err != nil {
		return nil, err
	}
	cfg, err := DecodeTikTokConfig(in.Config)
	if err != nil {
		return nil, err
	}

	budgetMode := cfg.BudgetMode
	if budgetMode == "" {
		budgetMode = "BUDGET_MODE_INFINITE"
	}
	payload := Payload{
		"advertiser_id":    cfg.AdvertiserID,
		"campaign_name":    in.CampaignName,
		"objective_type":   cfg.ObjectiveType,
		"budget_mode":      budgetMode,
		"operation_status": "DISABLE",
	}
	if cfg.BudgetMode == "BUDGET_MODE_TOTAL" && cfg.Budget.Present() {
		payload["budget"] = cfg.Budget.Float64()
	}
	if len(cfg.SpecialIndustries) > 0 {
		payload["special_industries"] = cfg.SpecialIndustries
	}
	return payload, nil
}

func (TikTokTranslator) BuildAdSetPayload(in Input, externalCampaignID string) (Payload, error) {
	raw, err := parseRawConfig(in.Config)
	if err != nil {
		return nil, err
	}
	if err := raw.requireStage(platforms.TikTok, platforms.StageAdSet); err != nil {
		return nil, err
	}
	cfg, err := DecodeTikTokConfig(in.Config)
	if err != nil {
		return nil, err
	}

	payload := Payload{
		"advertiser_id":     cfg.AdvertiserID,
		"campaign_id":       externalCampaignID,
		"adgroup_name":      in.CampaignName + "_AdGroup",
		"placement_type":    "PLACEMENT_TYPE_NORMAL",
		"placements":        cfg.Placements,
		"location_ids":      cfg.LocationIDs,
		"budget":            cfg.Budget.Float64(),
		"budget_mode":       "BUDGET_MODE_DAY",
		"bid_type":          cfg.BidType,
		"optimization_goal": cfg.OptimizationGoal,
		"operation_status":  "DISABLE",
	}
	if len(cfg.AgeGroups) > 0 {
		payload["age_groups"] = cfg.AgeGroups
	}
	if cfg.Gender != "" {
		payload["gender"] = cfg.Gender
	}
	if len(cfg.InterestCategoryIDs) > 0 {
		payload["interest_category_ids"] = cfg.InterestCategoryIDs
	}
	if cfg.BidPrice.Present() {
		payload["bid_price"] = cfg.BidPrice.Float64()
	}
	if cfg.ScheduleStartTime != "" {
		payload["schedule_start_time"] = cfg.ScheduleStartTime
	}
	if cfg.ScheduleEndTime != "" {
		payload["schedule_end_time"] = cfg.ScheduleEndTime
	}
	if cfg.Pacing != "" {
		payload["pacing"] = cfg.Pacing
	}
	return payload, nil
}

func (TikTokTranslator) BuildAdPayload(in Input, externalAdSetID string) (Payload, error) {
	raw, err := parseRawConfig(in.Config)
	if err != nil {
		return nil, err
	}
	if err := raw.requireStage(platforms.TikTok, platforms.StageAd); err != nil {
		return nil, err
	}
	cfg, err := DecodeTikTokConfig(in.Config)
	if err != nil {
		return nil, err
	}

	payload := Payload{
		"advertiser_id":    cfg.AdvertiserID,
		"adgroup_id":       externalAdSetID,
		"ad_name":          in.CampaignName + "_Ad",
		"ad_format":        "SINGLE_VIDEO",
		"creatives":        cfg.Creatives,
		"landing_page_url": cfg.LandingPageURL,
		"operation_status": "DISABLE",
	}
	if cfg.DisplayName != "" {
		payload["display_name"] = cfg.DisplayName
	}
	if cfg.PixelID != "" {
		payload["pixel_id"] = cfg.PixelID
	}
	if cfg.AppID != "" {
		payload["app_id"] = cfg.AppID
	}
	return payload, nil
}

func (TikTokTranslator) ValidatePayloadConfig(raw json.RawMessage) bool {
	return validateAllStages(platforms.TikTok, raw)
}

// ExternalID reads the Marketing API envelope:
// {"code": 0, "data": {"campaign_id"|"adgroup_id"|"ad_ids": ...}}.
func (TikTokTranslator) ExternalID(stage platforms.Stage, body []byte) (string, error) {
	var parsed struct {
		Data struct {
			CampaignID string   `json:"campaign_id"`
			AdGroupID  string   `json:"adgroup_id"`
			AdIDs      []string `json:"ad_ids"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	switch stage {
	case platforms.StageCampaign:
		if parsed.Data.CampaignID != "" {
			return parsed.Data.CampaignID, nil
		}
	case platforms.StageAdSet:
		if parsed.Data.AdGroupID != "" {
			return parsed.Data.AdGroupID, nil
		}
	case platforms.StageAd:
		if len(parsed.Data.AdIDs) > 0 {
			return parsed.Data.AdIDs[0], nil
		}
	}
	return "", errNoExternalID
}
