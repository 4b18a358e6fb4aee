package entities

import "time"

// Market is a sales geography. Its code is referenced by campaign taxonomy
// names and never changes once a campaign points at it.
type Market struct {
	MarketID  string
	Code      string
	Country   string
	Region    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
