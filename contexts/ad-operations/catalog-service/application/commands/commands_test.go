package commands

import (
	"context"
	"errors"
	"testing"

	"trafficdesk/contexts/ad-operations/catalog-service/adapters/memory"
	"trafficdesk/contexts/ad-operations/catalog-service/domain/entities"
	domainerrors "trafficdesk/contexts/ad-operations/catalog-service/domain/errors"

	"github.com/shopspring/decimal"
)

func seedBrandAndMarket(t *testing.T, store *memory.Store) (entities.Brand, entities.Market) {
	t.Helper()
	ctx := context.Background()

	createBrand := CreateBrandUseCase{Brands: store, Clock: store, IDGenerator: store}
	brand, err := createBrand.Execute(ctx, CreateBrandCommand{Name: "Disney Junior", InternalCode: "dis"})
	if err != nil {
		t.Fatalf("seed brand: %v", err)
	}

	createMarket := CreateMarketUseCase{Markets: store, Clock: store, IDGenerator: store}
	market, err := createMarket.Execute(ctx, CreateMarketCommand{Code: "us", Country: "United States", Region: "AMER"})
	if err != nil {
		t.Fatalf("seed market: %v", err)
	}
	return brand, market
}

func TestCreateMarketUppercasesCode(t *testing.T) {
	store := memory.NewStore()
	uc := CreateMarketUseCase{Markets: store, Clock: store, IDGenerator: store}

	market, err := uc.Execute(context.Background(), CreateMarketCommand{Code: "de", Country: "Germany", Region: "EMEA"})
	if err != nil {
		t.Fatalf("create market: %v", err)
	}
	if market.Code != "DE" {
		t.Fatalf("expected uppercase code, got %q", market.Code)
	}
}

func TestCreateMarketRejectsDuplicateCode(t *testing.T) {
	store := memory.NewStore()
	uc := CreateMarketUseCase{Markets: store, Clock: store, IDGenerator: store}
	ctx := context.Background()

	if _, err := uc.Execute(ctx, CreateMarketCommand{Code: "US", Country: "United States", Region: "AMER"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := uc.Execute(ctx, CreateMarketCommand{Code: "us", Country: "United States", Region: "AMER"})
	if !errors.Is(err, domainerrors.ErrDuplicateMarketCode) {
		t.Fatalf("expected duplicate code error, got %v", err)
	}
}

func TestCreateBrandRejectsDuplicateInternalCode(t *testing.T) {
	store := memory.NewStore()
	uc := CreateBrandUseCase{Brands: store, Clock: store, IDGenerator: store}
	ctx := context.Background()

	if _, err := uc.Execute(ctx, CreateBrandCommand{Name: "Disney", InternalCode: "DIS"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := uc.Execute(ctx, CreateBrandCommand{Name: "Distributors Inc", InternalCode: "dis"})
	if !errors.Is(err, domainerrors.ErrDuplicateBrandCode) {
		t.Fatalf("expected duplicate brand code error, got %v", err)
	}
}

func TestCreateChannelValidatesPlatform(t *testing.T) {
	store := memory.NewStore()
	uc := CreateChannelUseCase{Channels: store, Clock: store, IDGenerator: store}
	ctx := context.Background()

	channel, err := uc.Execute(ctx, CreateChannelCommand{PlatformName: "Meta", APIIdentifier: "act-123"})
	if err != nil {
		t.Fatalf("create channel: %v", err)
	}
	if channel.PlatformName != "Meta" {
		t.Fatalf("unexpected platform name: %q", channel.PlatformName)
	}

	if _, err := uc.Execute(ctx, CreateChannelCommand{PlatformName: "Snapchat", APIIdentifier: "snap-1"}); err == nil {
		t.Fatal("expected unsupported platform rejection")
	}
}

func TestCreateCampaignGeneratesTaxonomyName(t *testing.T) {
	store := memory.NewStore()
	brand, market := seedBrandAndMarket(t, store)
	uc := CreateCampaignUseCase{Campaigns: store, Brands: store, Markets: store, Clock: store, IDGenerator: store}

	campaign, err := uc.Execute(context.Background(), CreateCampaignCommand{
		BrandID:      brand.BrandID,
		MarketID:     market.MarketID,
		CampaignName: "Summer Launch!",
		Budget:       decimal.RequireFromString("10000.555"),
		Year:         2026,
	})
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	if campaign.Name != "DIS_US_MULTI_2026_SummerLaunch" {
		t.Fatalf("unexpected taxonomy name: %q", campaign.Name)
	}
	if campaign.Status != entities.CampaignStatusDraft {
		t.Fatalf("new campaigns must be DRAFT, got %s", campaign.Status)
	}
	if campaign.Budget.String() != "10000.56" {
		t.Fatalf("budget must round to 2 places, got %s", campaign.Budget.String())
	}
}

func TestCreateCampaignRejectsNegativeBudget(t *testing.T) {
	store := memory.NewStore()
	brand, market := seedBrandAndMarket(t, store)
	uc := CreateCampaignUseCase{Campaigns: store, Brands: store, Markets: store, Clock: store, IDGenerator: store}

	_, err := uc.Execute(context.Background(), CreateCampaignCommand{
		BrandID:      brand.BrandID,
		MarketID:     market.MarketID,
		CampaignName: "Summer Launch",
		Budget:       decimal.RequireFromString("-5"),
	})
	if !errors.Is(err, domainerrors.ErrInvalidCatalogInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestCreateCampaignRejectsDuplicateName(t *testing.T) {
	store := memory.NewStore()
	brand, market := seedBrandAndMarket(t, store)
	uc := CreateCampaignUseCase{Campaigns: store, Brands: store, Markets: store, Clock: store, IDGenerator: store}
	ctx := context.Background()

	cmd := CreateCampaignCommand{
		BrandID:      brand.BrandID,
		MarketID:     market.MarketID,
		CampaignName: "Summer Launch",
		Budget:       decimal.NewFromInt(100),
		Year:         2026,
	}
	if _, err := uc.Execute(ctx, cmd); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := uc.Execute(ctx, cmd); !errors.Is(err, domainerrors.ErrDuplicateCampaignName) {
		t.Fatalf("expected duplicate name error, got %v", err)
	}
}

func TestChangeCampaignStatusFollowsLifecycle(t *testing.T) {
	store := memory.NewStore()
	brand, market := seedBrandAndMarket(t, store)
	create := CreateCampaignUseCase{Campaigns: store, Brands: store, Markets: store, Clock: store, IDGenerator: store}
	change := ChangeCampaignStatusUseCase{Campaigns: store, Clock: store}
	ctx := context.Background()

	campaign, err := create.Execute(ctx, CreateCampaignCommand{
		BrandID:      brand.BrandID,
		MarketID:     market.MarketID,
		CampaignName: "Summer Launch",
		Budget:       decimal.NewFromInt(100),
		Year:         2026,
	})
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}

	active, err := change.Execute(ctx, ChangeCampaignStatusCommand{CampaignID: campaign.CampaignID, Status: entities.CampaignStatusActive})
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	if active.Status != entities.CampaignStatusActive {
		t.Fatalf("expected ACTIVE, got %s", active.Status)
	}

	_, err = change.Execute(ctx, ChangeCampaignStatusCommand{CampaignID: campaign.CampaignID, Status: entities.CampaignStatusDraft})
	if !errors.Is(err, domainerrors.ErrInvalidStatusChange) {
		t.Fatalf("expected invalid status change, got %v", err)
	}

	done, err := change.Execute(ctx, ChangeCampaignStatusCommand{CampaignID: campaign.CampaignID, Status: entities.CampaignStatusCompleted})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != entities.CampaignStatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", done.Status)
	}

	_, err = change.Execute(ctx, ChangeCampaignStatusCommand{CampaignID: campaign.CampaignID, Status: entities.CampaignStatusActive})
	if !errors.Is(err, domainerrors.ErrInvalidStatusChange) {
		t.Fatalf("COMPLETED must be terminal, got %v", err)
	}
}

func TestDeleteMarketGuardsReferencedCampaigns(t *testing.T) {
	store := memory.NewStore()
	brand, market := seedBrandAndMarket(t, store)
	create := CreateCampaignUseCase{Campaigns: store, Brands: store, Markets: store, Clock: store, IDGenerator: store}
	ctx := context.Background()

	if _, err := create.Execute(ctx, CreateCampaignCommand{
		BrandID:      brand.BrandID,
		MarketID:     market.MarketID,
		CampaignName: "Summer Launch",
		Budget:       decimal.NewFromInt(100),
		Year:         2026,
	}); err != nil {
		t.Fatalf("create campaign: %v", err)
	}

	deleteMarket := DeleteMarketUseCase{Markets: store, Campaigns: store}
	if err := deleteMarket.Execute(ctx, market.MarketID); !errors.Is(err, domainerrors.ErrMarketInUse) {
		t.Fatalf("expected market in use, got %v", err)
	}

	deleteBrand := DeleteBrandUseCase{Brands: store, Campaigns: store}
	if err := deleteBrand.Execute(ctx, brand.BrandID); !errors.Is(err, domainerrors.ErrBrandInUse) {
		t.Fatalf("expected brand in use, got %v", err)
	}
}
