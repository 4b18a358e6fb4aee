package bootstrap

import (
	"context"

	catalogports "trafficdesk/contexts/ad-operations/catalog-service/ports"
	ticketports "trafficdesk/contexts/ad-operations/ticket-service/ports"
)

// catalogDirectory adapts catalog repositories into the ticket service's
// read-only Directory port. Catalog not-found errors pass through unchanged
// so ticket callers can map them to responses.
type catalogDirectory struct {
	brands    catalogports.BrandRepository
	markets   catalogports.MarketRepository
	channels  catalogports.ChannelRepository
	campaigns catalogports.CampaignRepository
}

func newCatalogDirectory(
	brands catalogports.BrandRepository,
	markets catalogports.MarketRepository,
	channels catalogports.ChannelRepository,
	campaigns catalogports.CampaignRepository,
) catalogDirectory {
	return catalogDirectory{
		brands:    brands,
		markets:   markets,
		channels:  channels,
		campaigns: campaigns,
	}
}

func (d catalogDirectory) CampaignSnapshot(ctx context.Context, campaignID string) (ticketports.CampaignSnapshot, error) {
	campaign, err := d.campaigns.GetCampaign(ctx, campaignID)
	if err != nil {
		return ticketports.CampaignSnapshot{}, err
	}
	brand, err := d.brands.GetBrand(ctx, campaign.BrandID)
	if err != nil {
		return ticketports.CampaignSnapshot{}, err
	}
	market, err := d.markets.GetMarket(ctx, campaign.MarketID)
	if err != nil {
		return ticketports.CampaignSnapshot{}, err
	}
	return ticketports.CampaignSnapshot{
		CampaignID:   campaign.CampaignID,
		CampaignName: campaign.Name,
		BrandName:    brand.Name,
		BrandCode:    brand.InternalCode,
		MarketCode:   market.Code,
	}, nil
}

func (d catalogDirectory) ChannelSnapshot(ctx context.Context, channelID string) (ticketports.ChannelSnapshot, error) {
	channel, err := d.channels.GetChannel(ctx, channelID)
	if err != nil {
		return ticketports.ChannelSnapshot{}, err
	}
	return ticketports.ChannelSnapshot{
		ChannelID:     channel.ChannelID,
		PlatformName:  channel.PlatformName,
		APIIdentifier: channel.APIIdentifier,
	}, nil
}
