package entities

import (
	"encoding/json"
	"time"
)

type TicketStatus string

const (
	TicketStatusDraft      TicketStatus = "DRAFT"
	TicketStatusQATesting  TicketStatus = "QA_TESTING"
	TicketStatusQAFailed   TicketStatus = "QA_FAILED"
	TicketStatusReady      TicketStatus = "READY_FOR_API"
	TicketStatusTrafficked TicketStatus = "TRAFFICKED_SUCCESS"
	TicketStatusFailed     TicketStatus = "FAILED"
)

// failureReasonLimit bounds qa_failure_reason for storage.
const failureReasonLimit = 512

const (
	RequestTypeNewCampaign  = "NEW_CAMPAIGN"
	RequestTypeUpdateBudget = "UPDATE_BUDGET"
	RequestTypeNewCreative  = "NEW_CREATIVE"
)

// Ticket is one trafficking request against one channel.
type Ticket struct {
	TicketID           string
	CampaignID         string
	ChannelID          string
	RequestType        string
	PayloadConfig      json.RawMessage
	Status             TicketStatus
	ExternalPlatformID string
	QAFailureReason    string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CanTransition encodes the ticket state machine:
//
//	DRAFT -> QA_TESTING -> {READY_FOR_API, QA_FAILED}
//	READY_FOR_API -> {TRAFFICKED_SUCCESS, FAILED}
//
// QA_FAILED and FAILED tickets may be re-edited back to DRAFT by an
// external actor; TRAFFICKED_SUCCESS is terminal.
func (t Ticket) CanTransition(next TicketStatus) bool {
	switch t.Status {
	case TicketStatusDraft:
		return next == TicketStatusQATesting
	case TicketStatusQATesting:
		return next == TicketStatusReady || next == TicketStatusQAFailed
	case TicketStatusReady:
		return next == TicketStatusTrafficked || next == TicketStatusFailed
	case TicketStatusQAFailed, TicketStatusFailed:
		return next == TicketStatusDraft
	default:
		return false
	}
}

// MarkQAPassed flips the ticket to READY_FOR_API and clears any prior
// failure reason.
func (t *Ticket) MarkQAPassed(now time.Time) {
	t.Status = TicketStatusReady
	t.QAFailureReason = ""
	t.UpdatedAt = now.UTC()
}

// MarkQAFailed records the first failing rule's reason.
func (t *Ticket) MarkQAFailed(reason string, now time.Time) {
	t.Status = TicketStatusQAFailed
	t.QAFailureReason = TruncateReason(reason)
	t.UpdatedAt = now.UTC()
}

// MarkTrafficked records a successful deployment.
func (t *Ticket) MarkTrafficked(externalID string, now time.Time) {
	t.Status = TicketStatusTrafficked
	t.ExternalPlatformID = externalID
	t.QAFailureReason = ""
	t.UpdatedAt = now.UTC()
}

// MarkDeploymentFailed records a terminal deployment failure.
func (t *Ticket) MarkDeploymentFailed(reason string, now time.Time) {
	t.Status = TicketStatusFailed
	t.QAFailureReason = TruncateReason(reason)
	t.UpdatedAt = now.UTC()
}

// TruncateReason bounds a failure reason for storage.
func TruncateReason(reason string) string {
	if len(reason) > failureReasonLimit {
		return reason[:failureReasonLimit]
	}
	return reason
}

func IsSupportedTicketStatus(value TicketStatus) bool {
	switch value {
	case TicketStatusDraft, TicketStatusQATesting, TicketStatusQAFailed,
		TicketStatusReady, TicketStatusTrafficked, TicketStatusFailed:
		return true
	default:
		return false
	}
}
