package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"trafficdesk/contexts/ad-operations/catalog-service/application/commands"
	"trafficdesk/contexts/ad-operations/catalog-service/application/queries"
	"trafficdesk/contexts/ad-operations/catalog-service/domain/entities"
	domainerrors "trafficdesk/contexts/ad-operations/catalog-service/domain/errors"
	"trafficdesk/contexts/ad-operations/catalog-service/ports"
	httptransport "trafficdesk/contexts/ad-operations/catalog-service/transport/http"

	"github.com/shopspring/decimal"
)

type Handler struct {
	CreateMarket         commands.CreateMarketUseCase
	UpdateMarket         commands.UpdateMarketUseCase
	DeleteMarket         commands.DeleteMarketUseCase
	CreateBrand          commands.CreateBrandUseCase
	UpdateBrand          commands.UpdateBrandUseCase
	DeleteBrand          commands.DeleteBrandUseCase
	CreateChannel        commands.CreateChannelUseCase
	UpdateChannel        commands.UpdateChannelUseCase
	DeleteChannel        commands.DeleteChannelUseCase
	CreateCampaign       commands.CreateCampaignUseCase
	UpdateCampaign       commands.UpdateCampaignUseCase
	ChangeCampaignStatus commands.ChangeCampaignStatusUseCase
	DeleteCampaign       commands.DeleteCampaignUseCase
	GetMarket            queries.GetMarketUseCase
	ListMarkets          queries.ListMarketsUseCase
	GetBrand             queries.GetBrandUseCase
	ListBrands           queries.ListBrandsUseCase
	GetChannel           queries.GetChannelUseCase
	ListChannels         queries.ListChannelsUseCase
	GetCampaign          queries.GetCampaignUseCase
	ListCampaigns        queries.ListCampaignsUseCase
	Logger               *slog.Logger
}

func (h Handler) CreateMarketHandler(ctx context.Context, req httptransport.CreateMarketRequest) (httptransport.MarketResponse, error) {
	market, err := h.CreateMarket.Execute(ctx, commands.CreateMarketCommand{
		Code:    req.Code,
		Country: req.Country,
		Region:  req.Region,
	})
	if err != nil {
		return httptransport.MarketResponse{}, err
	}
	return httptransport.MarketResponse{Market: mapMarket(market)}, nil
}

func (h Handler) UpdateMarketHandler(ctx context.Context, marketID string, req httptransport.UpdateMarketRequest) (httptransport.MarketResponse, error) {
	market, err := h.UpdateMarket.Execute(ctx, commands.UpdateMarketCommand{
		MarketID: marketID,
		Country:  req.Country,
		Region:   req.Region,
	})
	if err != nil {
		return httptransport.MarketResponse{}, err
	}
	return httptransport.MarketResponse{Market: mapMarket(market)}, nil
}

func (h Handler) DeleteMarketHandler(ctx context.Context, marketID string) error {
	return h.DeleteMarket.Execute(ctx, marketID)
}

func (h Handler) GetMarketHandler(ctx context.Context, marketID string) (httptransport.MarketResponse, error) {
	market, err := h.GetMarket.Execute(ctx, marketID)
	if err != nil {
		return httptransport.MarketResponse{}, err
	}
	return httptransport.MarketResponse{Market: mapMarket(market)}, nil
}

func (h Handler) ListMarketsHandler(ctx context.Context) (httptransport.ListMarketsResponse, error) {
	items, err := h.ListMarkets.Execute(ctx)
	if err != nil {
		return httptransport.ListMarketsResponse{}, err
	}
	result := make([]httptransport.MarketDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapMarket(item))
	}
	return httptransport.ListMarketsResponse{Items: result}, nil
}

func (h Handler) CreateBrandHandler(ctx context.Context, req httptransport.CreateBrandRequest) (httptransport.BrandResponse, error) {
	brand, err := h.CreateBrand.Execute(ctx, commands.CreateBrandCommand{
		Name:         req.Name,
		InternalCode: req.InternalCode,
	})
	if err != nil {
		return httptransport.BrandResponse{}, err
	}
	return httptransport.BrandResponse{Brand: mapBrand(brand)}, nil
}

func (h Handler) UpdateBrandHandler(ctx context.Context, brandID string, req httptransport.UpdateBrandRequest) (httptransport.BrandResponse, error) {
	brand, err := h.UpdateBrand.Execute(ctx, commands.UpdateBrandCommand{
		BrandID: brandID,
		Name:    req.Name,
	})
	if err != nil {
		return httptransport.BrandResponse{}, err
	}
	return httptransport.BrandResponse{Brand: mapBrand(brand)}, nil
}

func (h Handler) DeleteBrandHandler(ctx context.Context, brandID string) error {
	return h.DeleteBrand.Execute(ctx, brandID)
}

func (h Handler) GetBrandHandler(ctx context.Context, brandID string) (httptransport.BrandResponse, error) {
	brand, err := h.GetBrand.Execute(ctx, brandID)
	if err != nil {
		return httptransport.BrandResponse{}, err
	}
	return httptransport.BrandResponse{Brand: mapBrand(brand)}, nil
}

func (h Handler) ListBrandsHandler(ctx context.Context) (httptransport.ListBrandsResponse, error) {
	items, err := h.ListBrands.Execute(ctx)
	if err != nil {
		return httptransport.ListBrandsResponse{}, err
	}
	result := make([]httptransport.BrandDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapBrand(item))
	}
	return httptransport.ListBrandsResponse{Items: result}, nil
}

func (h Handler) CreateChannelHandler(ctx context.Context, req httptransport.CreateChannelRequest) (httptransport.ChannelResponse, error) {
	channel, err := h.CreateChannel.Execute(ctx, commands.CreateChannelCommand{
		PlatformName:  req.PlatformName,
		APIIdentifier: req.APIIdentifier,
	})
	if err != nil {
		return httptransport.ChannelResponse{}, err
	}
	return httptransport.ChannelResponse{Channel: mapChannel(channel)}, nil
}

func (h Handler) UpdateChannelHandler(ctx context.Context, channelID string, req httptransport.UpdateChannelRequest) (httptransport.ChannelResponse, error) {
	channel, err := h.UpdateChannel.Execute(ctx, commands.UpdateChannelCommand{
		ChannelID:    channelID,
		PlatformName: req.PlatformName,
	})
	if err != nil {
		return httptransport.ChannelResponse{}, err
	}
	return httptransport.ChannelResponse{Channel: mapChannel(channel)}, nil
}

func (h Handler) DeleteChannelHandler(ctx context.Context, channelID string) error {
	return h.DeleteChannel.Execute(ctx, channelID)
}

func (h Handler) GetChannelHandler(ctx context.Context, channelID string) (httptransport.ChannelResponse, error) {
	channel, err := h.GetChannel.Execute(ctx, channelID)
	if err != nil {
		return httptransport.ChannelResponse{}, err
	}
	return httptransport.ChannelResponse{Channel: mapChannel(channel)}, nil
}

func (h Handler) ListChannelsHandler(ctx context.Context) (httptransport.ListChannelsResponse, error) {
	items, err := h.ListChannels.Execute(ctx)
	if err != nil {
		return httptransport.ListChannelsResponse{}, err
	}
	result := make([]httptransport.ChannelDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapChannel(item))
	}
	return httptransport.ListChannelsResponse{Items: result}, nil
}

func (h Handler) CreateCampaignHandler(ctx context.Context, req httptransport.CreateCampaignRequest) (httptransport.CampaignResponse, error) {
	budget, err := parseBudget(req.Budget)
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	campaign, err := h.CreateCampaign.Execute(ctx, commands.CreateCampaignCommand{
		BrandID:      req.BrandID,
		MarketID:     req.MarketID,
		CampaignName: req.CampaignName,
		Budget:       budget,
		Year:         req.Year,
	})
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	return httptransport.CampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) UpdateCampaignHandler(ctx context.Context, campaignID string, req httptransport.UpdateCampaignRequest) (httptransport.CampaignResponse, error) {
	cmd := commands.UpdateCampaignCommand{CampaignID: campaignID}
	if req.Budget != nil {
		budget, err := parseBudget(*req.Budget)
		if err != nil {
			return httptransport.CampaignResponse{}, err
		}
		cmd.Budget = &budget
	}
	campaign, err := h.UpdateCampaign.Execute(ctx, cmd)
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	return httptransport.CampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) ChangeCampaignStatusHandler(ctx context.Context, campaignID string, req httptransport.ChangeCampaignStatusRequest) (httptransport.CampaignResponse, error) {
	campaign, err := h.ChangeCampaignStatus.Execute(ctx, commands.ChangeCampaignStatusCommand{
		CampaignID: campaignID,
		Status:     entities.CampaignStatus(req.Status),
	})
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	return httptransport.CampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) DeleteCampaignHandler(ctx context.Context, campaignID string) error {
	return h.DeleteCampaign.Execute(ctx, campaignID)
}

func (h Handler) GetCampaignHandler(ctx context.Context, campaignID string) (httptransport.CampaignResponse, error) {
	campaign, err := h.GetCampaign.Execute(ctx, campaignID)
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	return httptransport.CampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) ListCampaignsHandler(ctx context.Context, brandID, marketID, status string) (httptransport.ListCampaignsResponse, error) {
	if status != "" && !entities.IsSupportedCampaignStatus(entities.CampaignStatus(status)) {
		return httptransport.ListCampaignsResponse{}, domainerrors.ErrInvalidCatalogInput
	}
	items, err := h.ListCampaigns.Execute(ctx, ports.CampaignFilter{
		BrandID:  brandID,
		MarketID: marketID,
		Status:   entities.CampaignStatus(status),
	})
	if err != nil {
		return httptransport.ListCampaignsResponse{}, err
	}
	result := make([]httptransport.CampaignDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapCampaign(item))
	}
	return httptransport.ListCampaignsResponse{Items: result}, nil
}

func parseBudget(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	budget, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, domainerrors.ErrInvalidCatalogInput
	}
	return budget, nil
}

func mapMarket(market entities.Market) httptransport.MarketDTO {
	return httptransport.MarketDTO{
		MarketID:  market.MarketID,
		Code:      market.Code,
		Country:   market.Country,
		Region:    market.Region,
		CreatedAt: market.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: market.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapBrand(brand entities.Brand) httptransport.BrandDTO {
	return httptransport.BrandDTO{
		BrandID:      brand.BrandID,
		Name:         brand.Name,
		InternalCode: brand.InternalCode,
		CreatedAt:    brand.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    brand.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapChannel(channel entities.Channel) httptransport.ChannelDTO {
	return httptransport.ChannelDTO{
		ChannelID:     channel.ChannelID,
		PlatformName:  channel.PlatformName,
		APIIdentifier: channel.APIIdentifier,
		CreatedAt:     channel.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     channel.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapCampaign(campaign entities.Campaign) httptransport.CampaignDTO {
	return httptransport.CampaignDTO{
		CampaignID: campaign.CampaignID,
		Name:       campaign.Name,
		BrandID:    campaign.BrandID,
		MarketID:   campaign.MarketID,
		Budget:     campaign.Budget.StringFixed(2),
		Status:     string(campaign.Status),
		CreatedAt:  campaign.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  campaign.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
