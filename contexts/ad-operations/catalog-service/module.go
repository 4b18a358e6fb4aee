package catalogservice

import (
	"log/slog"

	httpadapter "trafficdesk/contexts/ad-operations/catalog-service/adapters/http"
	"trafficdesk/contexts/ad-operations/catalog-service/adapters/memory"
	"trafficdesk/contexts/ad-operations/catalog-service/application/commands"
	"trafficdesk/contexts/ad-operations/catalog-service/application/queries"
	"trafficdesk/contexts/ad-operations/catalog-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store

	Markets   ports.MarketRepository
	Brands    ports.BrandRepository
	Channels  ports.ChannelRepository
	Campaigns ports.CampaignRepository
}

type Dependencies struct {
	Markets     ports.MarketRepository
	Brands      ports.BrandRepository
	Channels    ports.ChannelRepository
	Campaigns   ports.CampaignRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createMarket := commands.CreateMarketUseCase{
		Markets:     deps.Markets,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	updateMarket := commands.UpdateMarketUseCase{
		Markets: deps.Markets,
		Clock:   deps.Clock,
		Logger:  deps.Logger,
	}
	deleteMarket := commands.DeleteMarketUseCase{
		Markets:   deps.Markets,
		Campaigns: deps.Campaigns,
		Logger:    deps.Logger,
	}
	createBrand := commands.CreateBrandUseCase{
		Brands:      deps.Brands,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	updateBrand := commands.UpdateBrandUseCase{
		Brands: deps.Brands,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	deleteBrand := commands.DeleteBrandUseCase{
		Brands:    deps.Brands,
		Campaigns: deps.Campaigns,
		Logger:    deps.Logger,
	}
	createChannel := commands.CreateChannelUseCase{
		Channels:    deps.Channels,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	updateChannel := commands.UpdateChannelUseCase{
		Channels: deps.Channels,
		Clock:    deps.Clock,
		Logger:   deps.Logger,
	}
	deleteChannel := commands.DeleteChannelUseCase{
		Channels: deps.Channels,
		Logger:   deps.Logger,
	}
	createCampaign := commands.CreateCampaignUseCase{
		Campaigns:   deps.Campaigns,
		Brands:      deps.Brands,
		Markets:     deps.Markets,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	updateCampaign := commands.UpdateCampaignUseCase{
		Campaigns: deps.Campaigns,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}
	changeCampaignStatus := commands.ChangeCampaignStatusUseCase{
		Campaigns: deps.Campaigns,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}
	deleteCampaign := commands.DeleteCampaignUseCase{
		Campaigns: deps.Campaigns,
		Logger:    deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateMarket:         createMarket,
			UpdateMarket:         updateMarket,
			DeleteMarket:         deleteMarket,
			CreateBrand:          createBrand,
			UpdateBrand:          updateBrand,
			DeleteBrand:          deleteBrand,
			CreateChannel:        createChannel,
			UpdateChannel:        updateChannel,
			DeleteChannel:        deleteChannel,
			CreateCampaign:       createCampaign,
			UpdateCampaign:       updateCampaign,
			ChangeCampaignStatus: changeCampaignStatus,
			DeleteCampaign:       deleteCampaign,
			GetMarket:            queries.GetMarketUseCase{Markets: deps.Markets, Logger: deps.Logger},
			ListMarkets:          queries.ListMarketsUseCase{Markets: deps.Markets, Logger: deps.Logger},
			GetBrand:             queries.GetBrandUseCase{Brands: deps.Brands, Logger: deps.Logger},
			ListBrands:           queries.ListBrandsUseCase{Brands: deps.Brands, Logger: deps.Logger},
			GetChannel:           queries.GetChannelUseCase{Channels: deps.Channels, Logger: deps.Logger},
			ListChannels:         queries.ListChannelsUseCase{Channels: deps.Channels, Logger: deps.Logger},
			GetCampaign:          queries.GetCampaignUseCase{Campaigns: deps.Campaigns, Logger: deps.Logger},
			ListCampaigns:        queries.ListCampaignsUseCase{Campaigns: deps.Campaigns, Logger: deps.Logger},
			Logger:               deps.Logger,
		},
		Markets:   deps.Markets,
		Brands:    deps.Brands,
		Channels:  deps.Channels,
		Campaigns: deps.Campaigns,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Markets:     store,
		Brands:      store,
		Channels:    store,
		Campaigns:   store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
