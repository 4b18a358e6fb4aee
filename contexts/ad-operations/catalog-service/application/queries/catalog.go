package queries

import (
	"context"
	"log/slog"
	"strings"

	"trafficdesk/contexts/ad-operations/catalog-service/domain/entities"
	"trafficdesk/contexts/ad-operations/catalog-service/ports"
)

type GetMarketUseCase struct {
	Markets ports.MarketRepository
	Logger  *slog.Logger
}

func (uc GetMarketUseCase) Execute(ctx context.Context, marketID string) (entities.Market, error) {
	return uc.Markets.GetMarket(ctx, strings.TrimSpace(marketID))
}

type ListMarketsUseCase struct {
	Markets ports.MarketRepository
	Logger  *slog.Logger
}

func (uc ListMarketsUseCase) Execute(ctx context.Context) ([]entities.Market, error) {
	return uc.Markets.ListMarkets(ctx)
}

type GetBrandUseCase struct {
	Brands ports.BrandRepository
	Logger *slog.Logger
}

func (uc GetBrandUseCase) Execute(ctx context.Context, brandID string) (entities.Brand, error) {
	return uc.Brands.GetBrand(ctx, strings.TrimSpace(brandID))
}

type ListBrandsUseCase struct {
	Brands ports.BrandRepository
	Logger *slog.Logger
}

func (uc ListBrandsUseCase) Execute(ctx context.Context) ([]entities.Brand, error) {
	return uc.Brands.ListBrands(ctx)
}

type GetChannelUseCase struct {
	Channels ports.ChannelRepository
	Logger   *slog.Logger
}

func (uc GetChannelUseCase) Execute(ctx context.Context, channelID string) (entities.Channel, error) {
	return uc.Channels.GetChannel(ctx, strings.TrimSpace(channelID))
}

type ListChannelsUseCase struct {
	Channels ports.ChannelRepository
	Logger   *slog.Logger
}

func (uc ListChannelsUseCase) Execute(ctx context.Context) ([]entities.Channel, error) {
	return uc.Channels.ListChannels(ctx)
}

type GetCampaignUseCase struct {
	Campaigns ports.CampaignRepository
	Logger    *slog.Logger
}

func (uc GetCampaignUseCase) Execute(ctx context.Context, campaignID string) (entities.Campaign, error) {
	return uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(campaignID))
}

type ListCampaignsUseCase struct {
	Campaigns ports.CampaignRepository
	Logger    *slog.Logger
}

func (uc ListCampaignsUseCase) Execute(ctx context.Context, filter ports.CampaignFilter) ([]entities.Campaign, error) {
	filter.BrandID = strings.TrimSpace(filter.BrandID)
	filter.MarketID = strings.TrimSpace(filter.MarketID)
	return uc.Campaigns.ListCampaigns(ctx, filter)
}
