package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"trafficdesk/contexts/ad-operations/ticket-service/application/commands"
	"trafficdesk/contexts/ad-operations/ticket-service/application/queries"
	"trafficdesk/contexts/ad-operations/ticket-service/domain/entities"
	domainerrors "trafficdesk/contexts/ad-operations/ticket-service/domain/errors"
	"trafficdesk/contexts/ad-operations/ticket-service/ports"
	httptransport "trafficdesk/contexts/ad-operations/ticket-service/transport/http"
)

type Handler struct {
	CreateTicket      commands.CreateTicketUseCase
	UpdateTicket      commands.UpdateTicketUseCase
	DeleteTicket      commands.DeleteTicketUseCase
	EvaluateTicket    commands.EvaluateTicketUseCase
	RequestDeployment commands.RequestDeploymentUseCase
	GetTicket         queries.GetTicketUseCase
	ListTickets       queries.ListTicketsUseCase
	Logger            *slog.Logger
}

func (h Handler) CreateTicketHandler(ctx context.Context, req httptransport.CreateTicketRequest) (httptransport.CreateTicketResponse, error) {
	ticket, err := h.CreateTicket.Execute(ctx, commands.CreateTicketCommand{
		CampaignID:    req.CampaignID,
		ChannelID:     req.ChannelID,
		RequestType:   req.RequestType,
		PayloadConfig: req.PayloadConfig,
	})
	if err != nil {
		return httptransport.CreateTicketResponse{}, err
	}
	return httptransport.CreateTicketResponse{Ticket: mapTicket(ticket)}, nil
}

func (h Handler) UpdateTicketHandler(ctx context.Context, ticketID string, req httptransport.UpdateTicketRequest) (httptransport.UpdateTicketResponse, error) {
	ticket, err := h.UpdateTicket.Execute(ctx, commands.UpdateTicketCommand{
		TicketID:      ticketID,
		RequestType:   req.RequestType,
		PayloadConfig: req.PayloadConfig,
	})
	if err != nil {
		return httptransport.UpdateTicketResponse{}, err
	}
	return httptransport.UpdateTicketResponse{Ticket: mapTicket(ticket)}, nil
}

func (h Handler) DeleteTicketHandler(ctx context.Context, ticketID string) error {
	return h.DeleteTicket.Execute(ctx, commands.DeleteTicketCommand{TicketID: ticketID})
}

func (h Handler) GetTicketHandler(ctx context.Context, ticketID string) (httptransport.GetTicketResponse, error) {
	ticket, err := h.GetTicket.Execute(ctx, ticketID)
	if err != nil {
		return httptransport.GetTicketResponse{}, err
	}
	return httptransport.GetTicketResponse{Ticket: mapTicket(ticket)}, nil
}

func (h Handler) ListTicketsHandler(ctx context.Context, campaignID, channelID, status string) (httptransport.ListTicketsResponse, error) {
	if status != "" && !entities.IsSupportedTicketStatus(entities.TicketStatus(status)) {
		return httptransport.ListTicketsResponse{}, domainerrors.ErrInvalidTicketInput
	}
	items, err := h.ListTickets.Execute(ctx, ports.TicketFilter{
		CampaignID: campaignID,
		ChannelID:  channelID,
		Status:     entities.TicketStatus(status),
	})
	if err != nil {
		return httptransport.ListTicketsResponse{}, err
	}
	result := make([]httptransport.TicketDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapTicket(item))
	}
	return httptransport.ListTicketsResponse{Items: result}, nil
}

func (h Handler) EvaluateTicketHandler(ctx context.Context, ticketID string) (httptransport.EvaluateTicketResponse, error) {
	result, err := h.EvaluateTicket.Execute(ctx, commands.EvaluateTicketCommand{TicketID: ticketID})
	if err != nil {
		return httptransport.EvaluateTicketResponse{}, err
	}
	return httptransport.EvaluateTicketResponse{
		Ticket: mapTicket(result.Ticket),
		Passed: result.Verdict.Passed,
		Reason: result.Verdict.Reason,
	}, nil
}

func (h Handler) DeployTicketHandler(ctx context.Context, ticketID string) (httptransport.DeployTicketResponse, error) {
	result, err := h.RequestDeployment.Execute(ctx, commands.RequestDeploymentCommand{TicketID: ticketID})
	if err != nil {
		return httptransport.DeployTicketResponse{}, err
	}
	return httptransport.DeployTicketResponse{
		Status:   "queued",
		TicketID: result.TicketID,
		Platform: string(result.Platform),
		JobID:    result.JobID,
	}, nil
}

func mapTicket(ticket entities.Ticket) httptransport.TicketDTO {
	return httptransport.TicketDTO{
		TicketID:           ticket.TicketID,
		CampaignID:         ticket.CampaignID,
		ChannelID:          ticket.ChannelID,
		RequestType:        ticket.RequestType,
		PayloadConfig:      ticket.PayloadConfig,
		Status:             string(ticket.Status),
		ExternalPlatformID: ticket.ExternalPlatformID,
		QAFailureReason:    ticket.QAFailureReason,
		CreatedAt:          ticket.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:          ticket.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
