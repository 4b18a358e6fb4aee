package queries

import (
	"context"
	"log/slog"
	"strings"

	"trafficdesk/contexts/ad-operations/ticket-service/domain/entities"
	"trafficdesk/contexts/ad-operations/ticket-service/ports"
)

type GetTicketUseCase struct {
	Tickets ports.TicketRepository
	Logger  *slog.Logger
}

func (uc GetTicketUseCase) Execute(ctx context.Context, ticketID string) (entities.Ticket, error) {
	ticket, err := uc.Tickets.GetTicket(ctx, strings.TrimSpace(ticketID))
	if err != nil {
		return entities.Ticket{}, err
	}
	return ticket, nil
}

type ListTicketsUseCase struct {
	Tickets ports.TicketRepository
	Logger  *slog.Logger
}

func (uc ListTicketsUseCase) Execute(ctx context.Context, filter ports.TicketFilter) ([]entities.Ticket, error) {
	filter.CampaignID = strings.TrimSpace(filter.CampaignID)
	filter.ChannelID = strings.TrimSpace(filter.ChannelID)
	return uc.Tickets.ListTickets(ctx, filter)
}
