package translators

import (
	"encoding/json"

	domainerrors "trafficdesk/contexts/ad-operations/ticket-service/domain/errors"
	"trafficdesk/contexts/ad-operations/ticket-service/domain/platforms"
)

// GoogleTranslator produces Google Ads API mutate payloads. Google is
// resource-based: the campaign references a budget resource path composed
// from customer_id and budget_id, and lower stages reference the parent
// resource name returned by the previous mutate.
type GoogleTranslator struct{}

func (GoogleTranslator) Platform() platforms.Platform { return platforms.Google }

func (GoogleTranslator) BuildCampaignPayload(in Input) (Payload, error) {
	raw, err := parseRawConfig(in.Config)
	if err != nil {
		return nil, err
	}
	if err := raw.requireStage(platforms.Google, platforms.StageCampaign); err != nil {
		return nil, err
	}
	cfg, err := DecodeGoogleConfig(in.Config)
	if err != nil {
		return nil, err
	}

	channelType := cfg.ChannelType
	if channelType == "" {
		channelType = "SEARCH"
	}
	campaign := Payload{
		"name":                     in.CampaignName,
		"status":                   "PAUSED",
		"advertising_channel_type": channelType,
		"campaign_budget":          cfg.CustomerID + "/campaignBudgets/" + cfg.BudgetID,
	}

	// Bidding strategy is a tagged choice: TARGET_CPA needs a numeric
	// target, MAXIMIZE_CONVERSIONS is bare, anything else means none.
	switch cfg.BiddingStrategy {
	case "TARGET_CPA":
		if !cfg.TargetCPA.Present() {
			return nil, domainerrors.MissingField("target_cpa")
		}
		campaign["target_cpa"] = Payload{
			"target_cpa_micros": cfg.TargetCPA.Micros(),
		}
	case "MAXIMIZE_CONVERSIONS":
		campaign["maximize_conversions"] = Payload{}
	}

	if len(cfg.Networks) > 0 {
		campaign["network_settings"] = cfg.Networks
	}
	return Payload{"campaign": campaign}, nil
}

func (GoogleTranslator) BuildAdSetPayload(in Input, externalCampaignID string) (Payload, error) {
	if _, err := parseRawConfig(in.Config); err != nil {
		return nil, err
	}
	cfg, err := DecodeGoogleConfig(in.Config)
	if err != nil {
		return nil, err
	}

	adGroupType := cfg.AdGroupType
	if adGroupType == "" {
		adGroupType = "SEARCH_STANDARD"
	}
	adGroup := Payload{
		"name":     in.CampaignName + "_AdGroup",
		"campaign": externalCampaignID,
		"status":   "PAUSED",
		"type":     adGroupType,
	}
	if cfg.CPCBidMicros > 0 {
		adGroup["cpc_bid_micros"] = cfg.CPCBidMicros
	}
	return Payload{"ad_group": adGroup}, nil
}

func (GoogleTranslator) BuildAdPayload(in Input, externalAdSetID string) (Payload, error) {
	if _, err := parseRawConfig(in.Config); err != nil {
		return nil, err
	}
	cfg, err := DecodeGoogleConfig(in.Config)
	if err != nil {
		return nil, err
	}

	headlines := make([]Payload, 0, len(cfg.Headlines))
	for _, h := range cfg.Headlines {
		headlines = append(headlines, Payload{"text": h})
	}
	descriptions := make([]Payload, 0, len(cfg.Descriptions))
	for _, d := range cfg.Descriptions {
		descriptions = append(descriptions, Payload{"text": d})
	}

	finalURLs := cfg.FinalURLs
	if finalURLs == nil {
		finalURLs = []string{}
	}
	return Payload{
		"ad_group_ad": Payload{
			"ad_group": externalAdSetID,
			"status":   "PAUSED",
			"ad": Payload{
				"responsive_search_ad": Payload{
					"headlines":    headlines,
					"descriptions": descriptions,
					"path1":        cfg.Path1,
					"path2":        cfg.Path2,
				},
				"final_urls": finalURLs,
			},
		},
	}, nil
}

func (GoogleTranslator) ValidatePayloadConfig(raw json.RawMessage) bool {
	return validateAllStages(platforms.Google, raw)
}

// ExternalID reads a mutate response: {"results": [{"resourceName": "..."}]}.
func (GoogleTranslator) ExternalID(_ platforms.Stage, body []byte) (string, error) {
	var parsed struct {
		Results []struct {
			ResourceName string `json:"resourceName"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Results) == 0 || parsed.Results[0].ResourceName == "" {
		return "", errNoExternalID
	}
	return parsed.Results[0].ResourceName, nil
}
