package platformapi

import (
	"fmt"
	"strings"

	domainerrors "trafficdesk/contexts/ad-operations/ticket-service/domain/errors"
	"trafficdesk/contexts/ad-operations/ticket-service/domain/platforms"
	"trafficdesk/contexts/ad-operations/ticket-service/ports"
)

const (
	defaultMetaBaseURL   = "https://graph.facebook.com/v18.0"
	defaultTikTokBaseURL = "https://business-api.tiktok.com/open_api/v1.3"
	defaultGoogleBaseURL = "https://googleads.googleapis.com/v14"
)

// ResolverConfig carries per-platform tokens and optional base URL
// overrides (tests point these at a local server).
type ResolverConfig struct {
	MetaAccessToken   string
	MetaBaseURL       string
	TikTokAccessToken string
	TikTokBaseURL     string
	GoogleAccessToken string
	GoogleBaseURL     string
}

// Resolver builds concrete per-stage endpoints from static configuration
// and the channel's account identifier. Meta and Google scope endpoints to
// the account in the URL path; TikTok carries the advertiser id in the
// request body instead.
type Resolver struct {
	cfg ResolverConfig
}

func NewResolver(cfg ResolverConfig) Resolver {
	if cfg.MetaBaseURL == "" {
		cfg.MetaBaseURL = defaultMetaBaseURL
	}
	if cfg.TikTokBaseURL == "" {
		cfg.TikTokBaseURL = defaultTikTokBaseURL
	}
	if cfg.GoogleBaseURL == "" {
		cfg.GoogleBaseURL = defaultGoogleBaseURL
	}
	return Resolver{cfg: cfg}
}

func (r Resolver) Resolve(platform platforms.Platform, accountID string) (ports.PlatformCredentials, error) {
	accountID = strings.TrimSpace(accountID)
	switch platform {
	case platforms.Meta:
		base := fmt.Sprintf("%s/act_%s", r.cfg.MetaBaseURL, accountID)
		return ports.PlatformCredentials{
			Token: r.cfg.MetaAccessToken,
			Endpoints: map[platforms.Stage]string{
				platforms.StageCampaign: base + "/campaigns",
				platforms.StageAdSet:    base + "/adsets",
				platforms.StageAd:       base + "/ads",
			},
		}, nil
	case platforms.TikTok:
		return ports.PlatformCredentials{
			Token: r.cfg.TikTokAccessToken,
			Endpoints: map[platforms.Stage]string{
				platforms.StageCampaign: r.cfg.TikTokBaseURL + "/campaign/create/",
				platforms.StageAdSet:    r.cfg.TikTokBaseURL + "/adgroup/create/",
				platforms.StageAd:       r.cfg.TikTokBaseURL + "/ad/create/",
			},
		}, nil
	case platforms.Google:
		base := fmt.Sprintf("%s/customers/%s", r.cfg.GoogleBaseURL, accountID)
		return ports.PlatformCredentials{
			Token: r.cfg.GoogleAccessToken,
			Endpoints: map[platforms.Stage]string{
				platforms.StageCampaign: base + "/campaigns:mutate",
				platforms.StageAdSet:    base + "/adGroups:mutate",
				platforms.StageAd:       base + "/adGroupAds:mutate",
			},
		}, nil
	default:
		return ports.PlatformCredentials{}, domainerrors.UnsupportedPlatformError{Name: string(platform)}
	}
}
