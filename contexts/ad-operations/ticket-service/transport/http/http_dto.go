package http

import "encoding/json"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type TicketDTO struct {
	TicketID           string          `json:"ticket_id"`
	CampaignID         string          `json:"campaign_id"`
	ChannelID          string          `json:"channel_id"`
	RequestType        string          `json:"request_type"`
	PayloadConfig      json.RawMessage `json:"payload_config"`
	Status             string          `json:"status"`
	ExternalPlatformID string          `json:"external_platform_id,omitempty"`
	QAFailureReason    string          `json:"qa_failure_reason,omitempty"`
	CreatedAt          string          `json:"created_at"`
	UpdatedAt          string          `json:"updated_at"`
}

type CreateTicketRequest struct {
	CampaignID    string          `json:"campaign_id"`
	ChannelID     string          `json:"channel_id"`
	RequestType   string          `json:"request_type"`
	PayloadConfig json.RawMessage `json:"payload_config"`
}

type CreateTicketResponse struct {
	Ticket TicketDTO `json:"ticket"`
}

type UpdateTicketRequest struct {
	RequestType   *string         `json:"request_type"`
	PayloadConfig json.RawMessage `json:"payload_config"`
}

type UpdateTicketResponse struct {
	Ticket TicketDTO `json:"ticket"`
}

type GetTicketResponse struct {
	Ticket TicketDTO `json:"ticket"`
}

type ListTicketsResponse struct {
	Items []TicketDTO `json:"items"`
}

type EvaluateTicketResponse struct {
	Ticket TicketDTO `json:"ticket"`
	Passed bool      `json:"passed"`
	Reason string    `json:"reason,omitempty"`
}

type DeployTicketResponse struct {
	Status   string `json:"status"`
	TicketID string `json:"ticket_id"`
	Platform string `json:"platform"`
	JobID    string `json:"job_id"`
}
