package errors

import "errors"

var (
	ErrMarketNotFound   = errors.New("market not found")
	ErrBrandNotFound    = errors.New("brand not found")
	ErrChannelNotFound  = errors.New("channel not found")
	ErrCampaignNotFound = errors.New("campaign not found")

	ErrDuplicateMarketCode   = errors.New("market code already exists")
	ErrDuplicateBrandCode    = errors.New("brand internal code already exists")
	ErrDuplicateAPIID        = errors.New("channel api identifier already exists")
	ErrDuplicateCampaignName = errors.New("campaign name already exists")

	ErrInvalidCatalogInput = errors.New("invalid catalog input")
	ErrInvalidStatusChange = errors.New("invalid campaign status change")
	ErrMarketInUse         = errors.New("market is referenced by a campaign")
	ErrBrandInUse          = errors.New("brand is referenced by a campaign")
)
