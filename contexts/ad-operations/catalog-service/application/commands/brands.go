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

type CreateBrandCommand struct {
	Name         string
	InternalCode string
}

type CreateBrandUseCase struct {
	Brands      ports.BrandRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc CreateBrandUseCase) Execute(ctx context.Context, cmd CreateBrandCommand) (entities.Brand, error) {
	logger := application.ResolveLogger(uc.Logger)
	name := strings.TrimSpace(cmd.Name)
	code := strings.ToUpper(strings.TrimSpace(cmd.InternalCode))
	if name == "" || code == "" {
		return entities.Brand{}, domainerrors.ErrInvalidCatalogInput
	}

	now := uc.Clock.Now().UTC()
	brandID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Brand{}, err
	}
	brand := entities.Brand{
		BrandID:      brandID,
		Name:         name,
		InternalCode: code,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.Brands.CreateBrand(ctx, brand); err != nil {
		return entities.Brand{}, err
	}
	logger.Info("brand created",
		"event", "brand_created",
		"module", "ad-operations/catalog-service",
		"layer", "application",
		"brand_id", brand.BrandID,
		"internal_code", brand.InternalCode,
	)
	return brand, nil
}

type UpdateBrandCommand struct {
	BrandID string
	Name    *string
}

// UpdateBrandUseCase edits the display name. InternalCode is identity and
// stays immutable once set.
type UpdateBrandUseCase struct {
	Brands ports.BrandRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc UpdateBrandUseCase) Execute(ctx context.Context, cmd UpdateBrandCommand) (entities.Brand, error) {
	brand, err := uc.Brands.GetBrand(ctx, cmd.BrandID)
	if err != nil {
		return entities.Brand{}, err
	}
	if cmd.Name != nil {
		name := strings.TrimSpace(*cmd.Name)
		if name == "" {
			return entities.Brand{}, domainerrors.ErrInvalidCatalogInput
		}
		brand.Name = name
	}
	brand.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Brands.UpdateBrand(ctx, brand); err != nil {
		return entities.Brand{}, err
	}
	return brand, nil
}

type DeleteBrandUseCase struct {
	Brands    ports.BrandRepository
	Campaigns ports.CampaignRepository
	Logger    *slog.Logger
}

func (uc DeleteBrandUseCase) Execute(ctx context.Context, brandID string) error {
	if _, err := uc.Brands.GetBrand(ctx, brandID); err != nil {
		return err
	}
	count, err := uc.Campaigns.CountCampaignsByReference(ctx, brandID, "")
	if err != nil {
		return err
	}
	if count > 0 {
		return domainerrors.ErrBrandInUse
	}
	return uc.Brands.DeleteBrand(ctx, brandID)
}
