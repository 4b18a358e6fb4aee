package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type MarketDTO struct {
	MarketID  string `json:"market_id"`
	Code      string `json:"code"`
	Country   string `json:"country"`
	Region    string `json:"region"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CreateMarketRequest struct {
	Code    string `json:"code"`
	Country string `json:"country"`
	Region  string `json:"region"`
}

type UpdateMarketRequest struct {
	Country *string `json:"country"`
	Region  *string `json:"region"`
}

type MarketResponse struct {
	Market MarketDTO `json:"market"`
}

type ListMarketsResponse struct {
	Items []MarketDTO `json:"items"`
}

type BrandDTO struct {
	BrandID      string `json:"brand_id"`
	Name         string `json:"name"`
	InternalCode string `json:"internal_code"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type CreateBrandRequest struct {
	Name         string `json:"name"`
	InternalCode string `json:"internal_code"`
}

type UpdateBrandRequest struct {
	Name *string `json:"name"`
}

type BrandResponse struct {
	Brand BrandDTO `json:"brand"`
}

type ListBrandsResponse struct {
	Items []BrandDTO `json:"items"`
}

type ChannelDTO struct {
	ChannelID     string `json:"channel_id"`
	PlatformName  string `json:"platform_name"`
	APIIdentifier string `json:"api_identifier"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type CreateChannelRequest struct {
	PlatformName  string `json:"platform_name"`
	APIIdentifier string `json:"api_identifier"`
}

type UpdateChannelRequest struct {
	PlatformName *string `json:"platform_name"`
}

type ChannelResponse struct {
	Channel ChannelDTO `json:"channel"`
}

type ListChannelsResponse struct {
	Items []ChannelDTO `json:"items"`
}

type CampaignDTO struct {
	CampaignID string `json:"campaign_id"`
	Name       string `json:"name"`
	BrandID    string `json:"brand_id"`
	MarketID   string `json:"market_id"`
	Budget     string `json:"budget"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type CreateCampaignRequest struct {
	BrandID      string `json:"brand_id"`
	MarketID     string `json:"market_id"`
	CampaignName string `json:"campaign_name"`
	Budget       string `json:"budget"`
	Year         int    `json:"year"`
}

type UpdateCampaignRequest struct {
	Budget *string `json:"budget"`
}

type ChangeCampaignStatusRequest struct {
	Status string `json:"status"`
}

type CampaignResponse struct {
	Campaign CampaignDTO `json:"campaign"`
}

type ListCampaignsResponse struct {
	Items []CampaignDTO `json:"items"`
}
