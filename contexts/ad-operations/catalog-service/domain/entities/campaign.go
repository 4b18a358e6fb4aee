package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "DRAFT"
	CampaignStatusActive    CampaignStatus = "ACTIVE"
	CampaignStatusPaused    CampaignStatus = "PAUSED"
	CampaignStatusCompleted CampaignStatus = "COMPLETED"
)

// Campaign is the planning-side campaign record. Name is the
// taxonomy-generated string and is globally unique; Budget carries two
// fractional digits of currency.
type Campaign struct {
	CampaignID string
	Name       string
	BrandID    string
	MarketID   string
	Budget     decimal.Decimal
	Status     CampaignStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CanChangeStatus encodes the planning lifecycle. COMPLETED is terminal.
func (c Campaign) CanChangeStatus(next CampaignStatus) bool {
	switch c.Status {
	case CampaignStatusDraft:
		return next == CampaignStatusActive || next == CampaignStatusCompleted
	case CampaignStatusActive:
		return next == CampaignStatusPaused || next == CampaignStatusCompleted
	case CampaignStatusPaused:
		return next == CampaignStatusActive || next == CampaignStatusCompleted
	default:
		return false
	}
}

func IsSupportedCampaignStatus(value CampaignStatus) bool {
	switch value {
	case CampaignStatusDraft, CampaignStatusActive, CampaignStatusPaused, CampaignStatusCompleted:
		return true
	default:
		return false
	}
}
