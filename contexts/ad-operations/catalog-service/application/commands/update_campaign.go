package commands

import (
	"context"
	"log/slog"
	"strings"

	application "trafficdesk/contexts/ad-operations/catalog-service/application"
	"trafficdesk/contexts/ad-operations/catalog-service/domain/entities"
	domainerrors "trafficdesk/contexts/ad-operations/catalog-service/domain/errors"
	"trafficdesk/contexts/ad-operations/catalog-service/ports"

	"github.com/shopspring/decimal"
)

type UpdateCampaignCommand struct {
	CampaignID string
	Budget     *decimal.Decimal
}

// UpdateCampaignUseCase edits the budget. The name is taxonomy identity
// and never changes after creation.
type UpdateCampaignUseCase struct {
	Campaigns ports.CampaignRepository
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (uc UpdateCampaignUseCase) Execute(ctx context.Context, cmd UpdateCampaignCommand) (entities.Campaign, error) {
	campaign, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(cmd.CampaignID))
	if err != nil {
		return entities.Campaign{}, err
	}
	if cmd.Budget != nil {
		if cmd.Budget.IsNegative() {
			return entities.Campaign{}, domainerrors.ErrInvalidCatalogInput
		}
		campaign.Budget = cmd.Budget.Round(2)
	}
	campaign.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Campaigns.UpdateCampaign(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}
	return campaign, nil
}

type ChangeCampaignStatusCommand struct {
	CampaignID string
	Status     entities.CampaignStatus
}

type ChangeCampaignStatusUseCase struct {
	Campaigns ports.CampaignRepository
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (uc ChangeCampaignStatusUseCase) Execute(ctx context.Context, cmd ChangeCampaignStatusCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !entities.IsSupportedCampaignStatus(cmd.Status) {
		return entities.Campaign{}, domainerrors.ErrInvalidCatalogInput
	}
	campaign, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(cmd.CampaignID))
	if err != nil {
		return entities.Campaign{}, err
	}
	if !campaign.CanChangeStatus(cmd.Status) {
		return entities.Campaign{}, domainerrors.ErrInvalidStatusChange
	}
	campaign.Status = cmd.Status
	campaign.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Campaigns.UpdateCampaign(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}
	logger.Info("campaign status changed",
		"event", "campaign_status_changed",
		"module", "ad-operations/catalog-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"status", string(campaign.Status),
	)
	return campaign, nil
}

type DeleteCampaignUseCase struct {
	Campaigns ports.CampaignRepository
	Logger    *slog.Logger
}

func (uc DeleteCampaignUseCase) Execute(ctx context.Context, campaignID string) error {
	if _, err := uc.Campaigns.GetCampaign(ctx, campaignID); err != nil {
		return err
	}
	return uc.Campaigns.DeleteCampaign(ctx, campaignID)
}
