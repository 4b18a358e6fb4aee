package commands

import (
	"context"
	"log/slog"
	"strings"

	application "trafficdesk/contexts/ad-operations/catalog-service/application"
	"trafficdesk/contexts/ad-operations/catalog-service/domain/entities"
	domainerrors "trafficdesk/contexts/ad-operations/catalog-service/domain/errors"
	"trafficdesk/contexts/ad-operations/catalog-service/ports"
	"trafficdesk/internal/shared/taxonomy"

	"github.com/shopspring/decimal"
)

// taxonomyChannelPlaceholder stands in for the channel segment when a
// campaign is named at creation time, before any channel is attached.
const taxonomyChannelPlaceholder = "MULTI"

type CreateCampaignCommand struct {
	BrandID      string
	MarketID     string
	CampaignName string
	Budget       decimal.Decimal
	Year         int
}

type CreateCampaignUseCase struct {
	Campaigns   ports.CampaignRepository
	Brands      ports.BrandRepository
	Markets     ports.MarketRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc CreateCampaignUseCase) Execute(ctx context.Context, cmd CreateCampaignCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	brand, err := uc.Brands.GetBrand(ctx, strings.TrimSpace(cmd.BrandID))
	if err != nil {
		return entities.Campaign{}, err
	}
	market, err := uc.Markets.GetMarket(ctx, strings.TrimSpace(cmd.MarketID))
	if err != nil {
		return entities.Campaign{}, err
	}
	if cmd.Budget.IsNegative() {
		return entities.Campaign{}, domainerrors.ErrInvalidCatalogInput
	}

	year := cmd.Year
	if year == 0 {
		year = uc.Clock.Now().UTC().Year()
	}
	name, err := taxonomy.Generate(brand.InternalCode, market.Code, taxonomyChannelPlaceholder, cmd.CampaignName, year)
	if err != nil {
		return entities.Campaign{}, err
	}

	now := uc.Clock.Now().UTC()
	campaignID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Campaign{}, err
	}
	campaign := entities.Campaign{
		CampaignID: campaignID,
		Name:       name,
		BrandID:    brand.BrandID,
		MarketID:   market.MarketID,
		Budget:     cmd.Budget.Round(2),
		Status:     entities.CampaignStatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.Campaigns.CreateCampaign(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}

	logger.Info("campaign created",
		"event", "campaign_created",
		"module", "ad-operations/catalog-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"name", campaign.Name,
		"brand_id", campaign.BrandID,
		"market_id", campaign.MarketID,
	)
	return campaign, nil
}
