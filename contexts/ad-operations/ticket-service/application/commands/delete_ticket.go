package commands

import (
	"context"
	"log/slog"

	application "trafficdesk/contexts/ad-operations/ticket-service/application"
	"trafficdesk/contexts/ad-operations/ticket-service/ports"
)

type DeleteTicketCommand struct {
	TicketID string
}

type DeleteTicketUseCase struct {
	Tickets ports.TicketRepository
	Logger  *slog.Logger
}

func (uc DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	if _, err := uc.Tickets.GetTicket(ctx, cmd.TicketID); err != nil {
		return err
	}
	if err := uc.Tickets.DeleteTicket(ctx, cmd.TicketID); err != nil {
		return err
	}
	logger.Info("traffic ticket deleted",
		"event", "ticket_deleted",
		"module", "ad-operations/ticket-service",
		"layer", "application",
		"ticket_id", cmd.TicketID,
	)
	return nil
}
