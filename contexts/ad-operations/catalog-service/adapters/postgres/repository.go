package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"trafficdesk/contexts/ad-operations/catalog-service/domain/entities"
	domainerrors "trafficdesk/contexts/ad-operations/catalog-service/domain/errors"
	"trafficdesk/contexts/ad-operations/catalog-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateMarket(ctx context.Context, market entities.Market) error {
	row := marketModelFromEntity(market)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateMarketCode
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateMarket(ctx context.Context, market entities.Market) error {
	result := r.db.WithContext(ctx).
		Model(&marketModel{}).
		Where("market_id = ?", market.MarketID).
		Updates(map[string]any{
			"country":    market.Country,
			"region":     market.Region,
			"updated_at": market.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrMarketNotFound
	}
	return nil
}

func (r *Repository) GetMarket(ctx context.Context, marketID string) (entities.Market, error) {
	var row marketModel
	err := r.db.WithContext(ctx).
		Where("market_id = ?", strings.TrimSpace(marketID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Market{}, domainerrors.ErrMarketNotFound
		}
		return entities.Market{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListMarkets(ctx context.Context) ([]entities.Market, error) {
	var rows []marketModel
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Market, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) DeleteMarket(ctx context.Context, marketID string) error {
	result := r.db.WithContext(ctx).
		Where("market_id = ?", marketID).
		Delete(&marketModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrMarketNotFound
	}
	return nil
}

func (r *Repository) CreateBrand(ctx context.Context, brand entities.Brand) error {
	row := brandModelFromEntity(brand)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateBrandCode
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateBrand(ctx context.Context, brand entities.Brand) error {
	result := r.db.WithContext(ctx).
		Model(&brandModel{}).
		Where("brand_id = ?", brand.BrandID).
		Updates(map[string]any{
			"name":       brand.Name,
			"updated_at": brand.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrBrandNotFound
	}
	return nil
}

func (r *Repository) GetBrand(ctx context.Context, brandID string) (entities.Brand, error) {
	var row brandModel
	err := r.db.WithContext(ctx).
		Where("brand_id = ?", strings.TrimSpace(brandID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Brand{}, domainerrors.ErrBrandNotFound
		}
		return entities.Brand{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListBrands(ctx context.Context) ([]entities.Brand, error) {
	var rows []brandModel
	if err := r.db.WithContext(ctx).Order("internal_code ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Brand, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) DeleteBrand(ctx context.Context, brandID string) error {
	result := r.db.WithContext(ctx).
		Where("brand_id = ?", brandID).
		Delete(&brandModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrBrandNotFound
	}
	return nil
}

func (r *Repository) CreateChannel(ctx context.Context, channel entities.Channel) error {
	row := channelModelFromEntity(channel)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateAPIID
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateChannel(ctx context.Context, channel entities.Channel) error {
	result := r.db.WithContext(ctx).
		Model(&channelModel{}).
		Where("channel_id = ?", channel.ChannelID).
		Updates(map[string]any{
			"platform_name": channel.PlatformName,
			"updated_at":    channel.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrChannelNotFound
	}
	return nil
}

func (r *Repository) GetChannel(ctx context.Context, channelID string) (entities.Channel, error) {
	var row channelModel
	err := r.db.WithContext(ctx).
		Where("channel_id = ?", strings.TrimSpace(channelID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Channel{}, domainerrors.ErrChannelNotFound
		}
		return entities.Channel{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListChannels(ctx context.Context) ([]entities.Channel, error) {
	var rows []channelModel
	if err := r.db.WithContext(ctx).Order("api_identifier ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Channel, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) DeleteChannel(ctx context.Context, channelID string) error {
	result := r.db.WithContext(ctx).
		Where("channel_id = ?", channelID).
		Delete(&channelModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrChannelNotFound
	}
	return nil
}

func (r *Repository) CreateCampaign(ctx context.Context, campaign entities.Campaign) error {
	row := campaignModelFromEntity(campaign)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateCampaignName
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateCampaign(ctx context.Context, campaign entities.Campaign) error {
	result := r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Where("campaign_id = ?", campaign.CampaignID).
		Updates(map[string]any{
			"budget":     campaign.Budget,
			"status":     string(campaign.Status),
			"updated_at": campaign.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCampaignNotFound
	}
	return nil
}

func (r *Repository) GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error) {
	var row campaignModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Campaign{}, domainerrors.ErrCampaignNotFound
		}
		return entities.Campaign{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListCampaigns(ctx context.Context, filter ports.CampaignFilter) ([]entities.Campaign, error) {
	tx := r.db.WithContext(ctx).Model(&campaignModel{})
	if filter.BrandID != "" {
		tx = tx.Where("brand_id = ?", filter.BrandID)
	}
	if filter.MarketID != "" {
		tx = tx.Where("market_id = ?", filter.MarketID)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}

	var rows []campaignModel
	if err := tx.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Campaign, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) DeleteCampaign(ctx context.Context, campaignID string) error {
	result := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Delete(&campaignModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCampaignNotFound
	}
	return nil
}

func (r *Repository) CountCampaignsByReference(ctx context.Context, brandID, marketID string) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&campaignModel{})
	if brandID != "" {
		tx = tx.Where("brand_id = ?", brandID)
	}
	if marketID != "" {
		tx = tx.Where("market_id = ?", marketID)
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type marketModel struct {
	MarketID  string    `gorm:"column:market_id;primaryKey"`
	Code      string    `gorm:"column:code;uniqueIndex"`
	Country   string    `gorm:"column:country"`
	Region    string    `gorm:"column:region"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (marketModel) TableName() string {
	return "markets"
}

func (m marketModel) toEntity() entities.Market {
	return entities.Market{
		MarketID:  m.MarketID,
		Code:      m.Code,
		Country:   m.Country,
		Region:    m.Region,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func marketModelFromEntity(market entities.Market) marketModel {
	return marketModel{
		MarketID:  market.MarketID,
		Code:      market.Code,
		Country:   market.Country,
		Region:    market.Region,
		CreatedAt: market.CreatedAt.UTC(),
		UpdatedAt: market.UpdatedAt.UTC(),
	}
}

type brandModel struct {
	BrandID      string    `gorm:"column:brand_id;primaryKey"`
	Name         string    `gorm:"column:name"`
	InternalCode string    `gorm:"column:internal_code;uniqueIndex"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (brandModel) TableName() string {
	return "brands"
}

func (m brandModel) toEntity() entities.Brand {
	return entities.Brand{
		BrandID:      m.BrandID,
		Name:         m.Name,
		InternalCode: m.InternalCode,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func brandModelFromEntity(brand entities.Brand) brandModel {
	return brandModel{
		BrandID:      brand.BrandID,
		Name:         brand.Name,
		InternalCode: brand.InternalCode,
		CreatedAt:    brand.CreatedAt.UTC(),
		UpdatedAt:    brand.UpdatedAt.UTC(),
	}
}

type channelModel struct {
	ChannelID     string    `gorm:"column:channel_id;primaryKey"`
	PlatformName  string    `gorm:"column:platform_name"`
	APIIdentifier string    `gorm:"column:api_identifier;uniqueIndex"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (channelModel) TableName() string {
	return "channels"
}

func (m channelModel) toEntity() entities.Channel {
	return entities.Channel{
		ChannelID:     m.ChannelID,
		PlatformName:  m.PlatformName,
		APIIdentifier: m.APIIdentifier,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func channelModelFromEntity(channel entities.Channel) channelModel {
	return channelModel{
		ChannelID:     channel.ChannelID,
		PlatformName:  channel.PlatformName,
		APIIdentifier: channel.APIIdentifier,
		CreatedAt:     channel.CreatedAt.UTC(),
		UpdatedAt:     channel.UpdatedAt.UTC(),
	}
}

type campaignModel struct {
	CampaignID string          `gorm:"column:campaign_id;primaryKey"`
	Name       string          `gorm:"column:name;uniqueIndex"`
	BrandID    string          `gorm:"column:brand_id;index"`
	MarketID   string          `gorm:"column:market_id;index"`
	Budget     decimal.Decimal `gorm:"column:budget;type:numeric(14,2)"`
	Status     string          `gorm:"column:status"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
}

func (campaignModel) TableName() string {
	return "campaigns"
}

func (m campaignModel) toEntity() entities.Campaign {
	return entities.Campaign{
		CampaignID: m.CampaignID,
		Name:       m.Name,
		BrandID:    m.BrandID,
		MarketID:   m.MarketID,
		Budget:     m.Budget,
		Status:     entities.CampaignStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func campaignModelFromEntity(campaign entities.Campaign) campaignModel {
	return campaignModel{
		CampaignID: campaign.CampaignID,
		Name:       campaign.Name,
		BrandID:    campaign.BrandID,
		MarketID:   campaign.MarketID,
		Budget:     campaign.Budget,
		Status:     string(campaign.Status),
		CreatedAt:  campaign.CreatedAt.UTC(),
		UpdatedAt:  campaign.UpdatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
