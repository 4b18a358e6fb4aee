package commands

import (
	"context"
	"log/slog"
	"strings"

	application "trafficdesk/contexts/ad-operations/catalog-service/application"
	"trafficdesk/contexts/ad-operations/catalog-service/domain/entities"
	domainerrors "trafficdesk/contexts/ad-operations/catalog-service/domain/errors"
	"trafficdesk/contexts/ad-operations/catalog-service/ports"
)

type CreateMarketCommand struct {
	Code    string
	Country string
	Region  string
}

type CreateMarketUseCase struct {
	Markets     ports.MarketRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc CreateMarketUseCase) Execute(ctx context.Context, cmd CreateMarketCommand) (entities.Market, error) {
	logger := application.ResolveLogger(uc.Logger)
	code := strings.ToUpper(strings.TrimSpace(cmd.Code))
	if code == "" {
		return entities.Market{}, domainerrors.ErrInvalidCatalogInput
	}

	now := uc.Clock.Now().UTC()
	marketID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Market{}, err
	}
	market := entities.Market{
		MarketID:  marketID,
		Code:      code,
		Country:   strings.TrimSpace(cmd.Country),
		Region:    strings.TrimSpace(cmd.Region),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.Markets.CreateMarket(ctx, market); err != nil {
		return entities.Market{}, err
	}
	logger.Info("market created",
		"event", "market_created",
		"module", "ad-operations/catalog-service",
		"layer", "application",
		"market_id", market.MarketID,
		"code", market.Code,
	)
	return market, nil
}

type UpdateMarketCommand struct {
	MarketID string
	Country  *string
	Region   *string
}

// UpdateMarketUseCase edits descriptive fields only. The code is identity
// and stays immutable once set.
type UpdateMarketUseCase struct {
	Markets ports.MarketRepository
	Clock   ports.Clock
	Logger  *slog.Logger
}

func (uc UpdateMarketUseCase) Execute(ctx context.Context, cmd UpdateMarketCommand) (entities.Market, error) {
	market, err := uc.Markets.GetMarket(ctx, cmd.MarketID)
	if err != nil {
		return entities.Market{}, err
	}
	if cmd.Country != nil {
		market.Country = strings.TrimSpace(*cmd.Country)
	}
	if cmd.Region != nil {
		market.Region = strings.TrimSpace(*cmd.Region)
	}
	market.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Markets.UpdateMarket(ctx, market); err != nil {
		return entities.Market{}, err
	}
	return market, nil
}

type DeleteMarketUseCase struct {
	Markets   ports.MarketRepository
	Campaigns ports.CampaignRepository
	Logger    *slog.Logger
}

func (uc DeleteMarketUseCase) Execute(ctx context.Context, marketID string) error {
	if _, err := uc.Markets.GetMarket(ctx, marketID); err != nil {
		return err
	}
	count, err := uc.Campaigns.CountCampaignsByReference(ctx, "", marketID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domainerrors.ErrMarketInUse
	}
	return uc.Markets.DeleteMarket(ctx, marketID)
}
