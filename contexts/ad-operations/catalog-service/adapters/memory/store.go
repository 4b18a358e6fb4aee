package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"trafficdesk/contexts/ad-operations/catalog-service/domain/entities"
	domainerrors "trafficdesk/contexts/ad-operations/catalog-service/domain/errors"
	"trafficdesk/contexts/ad-operations/catalog-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	markets   map[string]entities.Market
	brands    map[string]entities.Brand
	channels  map[string]entities.Channel
	campaigns map[string]entities.Campaign
}

func NewStore() *Store {
	return &Store{
		markets:   make(map[string]entities.Market),
		brands:    make(map[string]entities.Brand),
		channels:  make(map[string]entities.Channel),
		campaigns: make(map[string]entities.Campaign),
	}
}

func (s *Store) CreateMarket(_ context.Context, market entities.Market) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.markets {
		if existing.Code == market.Code {
			return domainerrors.ErrDuplicateMarketCode
		}
	}
	s.markets[market.MarketID] = market
	return nil
}

func (s *Store) UpdateMarket(_ context.Context, market entities.Market) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.markets[market.MarketID]; !exists {
		return domainerrors.ErrMarketNotFound
	}
	s.markets[market.MarketID] = market
	return nil
}

func (s *Store) GetMarket(_ context.Context, marketID string) (entities.Market, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.markets[strings.TrimSpace(marketID)]
	if !exists {
		return entities.Market{}, domainerrors.ErrMarketNotFound
	}
	return item, nil
}

func (s *Store) ListMarkets(_ context.Context) ([]entities.Market, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Market, 0, len(s.markets))
	for _, market := range s.markets {
		items = append(items, market)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Code < items[j].Code })
	return items, nil
}

func (s *Store) DeleteMarket(_ context.Context, marketID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.markets[marketID]; !exists {
		return domainerrors.ErrMarketNotFound
	}
	delete(s.markets, marketID)
	return nil
}

func (s *Store) CreateBrand(_ context.Context, brand entities.Brand) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.brands {
		if existing.InternalCode == brand.InternalCode {
			return domainerrors.ErrDuplicateBrandCode
		}
	}
	s.brands[brand.BrandID] = brand
	return nil
}

func (s *Store) UpdateBrand(_ context.Context, brand entities.Brand) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.brands[brand.BrandID]; !exists {
		return domainerrors.ErrBrandNotFound
	}
	s.brands[brand.BrandID] = brand
	return nil
}

func (s *Store) GetBrand(_ context.Context, brandID string) (entities.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.brands[strings.TrimSpace(brandID)]
	if !exists {
		return entities.Brand{}, domainerrors.ErrBrandNotFound
	}
	return item, nil
}

func (s *Store) ListBrands(_ context.Context) ([]entities.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Brand, 0, len(s.brands))
	for _, brand := range s.brands {
		items = append(items, brand)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].InternalCode < items[j].InternalCode })
	return items, nil
}

func (s *Store) DeleteBrand(_ context.Context, brandID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.brands[brandID]; !exists {
		return domainerrors.ErrBrandNotFound
	}
	delete(s.brands, brandID)
	return nil
}

func (s *Store) CreateChannel(_ context.Context, channel entities.Channel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.channels {
		if existing.APIIdentifier == channel.APIIdentifier {
			return domainerrors.ErrDuplicateAPIID
		}
	}
	s.channels[channel.ChannelID] = channel
	return nil
}

func (s *Store) UpdateChannel(_ context.Context, channel entities.Channel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.channels[channel.ChannelID]; !exists {
		return domainerrors.ErrChannelNotFound
	}
	s.channels[channel.ChannelID] = channel
	return nil
}

func (s *Store) GetChannel(_ context.Context, channelID string) (entities.Channel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.channels[strings.TrimSpace(channelID)]
	if !exists {
		return entities.Channel{}, domainerrors.ErrChannelNotFound
	}
	return item, nil
}

func (s *Store) ListChannels(_ context.Context) ([]entities.Channel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Channel, 0, len(s.channels))
	for _, channel := range s.channels {
		items = append(items, channel)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].APIIdentifier < items[j].APIIdentifier })
	return items, nil
}

func (s *Store) DeleteChannel(_ context.Context, channelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.channels[channelID]; !exists {
		return domainerrors.ErrChannelNotFound
	}
	delete(s.channels, channelID)
	return nil
}

func (s *Store) CreateCampaign(_ context.Context, campaign entities.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.campaigns {
		if existing.Name == campaign.Name {
			return domainerrors.ErrDuplicateCampaignName
		}
	}
	s.campaigns[campaign.CampaignID] = campaign
	return nil
}

func (s *Store) UpdateCampaign(_ context.Context, campaign entities.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.campaigns[campaign.CampaignID]; !exists {
		return domainerrors.ErrCampaignNotFound
	}
	s.campaigns[campaign.CampaignID] = campaign
	return nil
}

func (s *Store) GetCampaign(_ context.Context, campaignID string) (entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.campaigns[strings.TrimSpace(campaignID)]
	if !exists {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	return item, nil
}

func (s *Store) ListCampaigns(_ context.Context, filter ports.CampaignFilter) ([]entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Campaign, 0, len(s.campaigns))
	for _, campaign := range s.campaigns {
		if filter.BrandID != "" && campaign.BrandID != filter.BrandID {
			continue
		}
		if filter.MarketID != "" && campaign.MarketID != filter.MarketID {
			continue
		}
		if filter.Status != "" && campaign.Status != filter.Status {
			continue
		}
		items = append(items, campaign)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *Store) DeleteCampaign(_ context.Context, campaignID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.campaigns[campaignID]; !exists {
		return domainerrors.ErrCampaignNotFound
	}
	delete(s.campaigns, campaignID)
	return nil
}

func (s *Store) CountCampaignsByReference(_ context.Context, brandID, marketID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, campaign := range s.campaigns {
		if brandID != "" && campaign.BrandID != brandID {
			continue
		}
		if marketID != "" && campaign.MarketID != marketID {
			continue
		}
		count++
	}
	return count, nil
}

// Now lets the Store double as ports.Clock for in-memory wiring.
func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

// NewID lets the Store double as ports.IDGenerator for in-memory wiring.
func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
