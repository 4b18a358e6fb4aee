package ports

import (
	"context"
	"time"

	"trafficdesk/contexts/ad-operations/catalog-service/domain/entities"
)

type MarketRepository interface {
	CreateMarket(ctx context.Context, market entities.Market) error
	UpdateMarket(ctx context.Context, market entities.Market) error
	GetMarket(ctx context.Context, marketID string) (entities.Market, error)
	ListMarkets(ctx context.Context) ([]entities.Market, error)
	DeleteMarket(ctx context.Context, marketID string) error
}

type BrandRepository interface {
	CreateBrand(ctx context.Context, brand entities.Brand) error
	UpdateBrand(ctx context.Context, brand entities.Brand) error
	GetBrand(ctx context.Context, brandID string) (entities.Brand, error)
	ListBrands(ctx context.Context) ([]entities.Brand, error)
	DeleteBrand(ctx context.Context, brandID string) error
}

type ChannelRepository interface {
	CreateChannel(ctx context.Context, channel entities.Channel) error
	UpdateChannel(ctx context.Context, channel entities.Channel) error
	GetChannel(ctx context.Context, channelID string) (entities.Channel, error)
	ListChannels(ctx context.Context) ([]entities.Channel, error)
	DeleteChannel(ctx context.Context, channelID string) error
}

type CampaignFilter struct {
	BrandID  string
	MarketID string
	Status   entities.CampaignStatus
}

type CampaignRepository interface {
	CreateCampaign(ctx context.Context, campaign entities.Campaign) error
	UpdateCampaign(ctx context.Context, campaign entities.Campaign) error
	GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error)
	ListCampaigns(ctx context.Context, filter CampaignFilter) ([]entities.Campaign, error)
	DeleteCampaign(ctx context.Context, campaignID string) error
	// CountCampaignsByReference guards market/brand deletion.
	CountCampaignsByReference(ctx context.Context, brandID, marketID string) (int64, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
