package commands

import (
	"context"
	"encoding/json"
	"log/slog"

	application "trafficdesk/contexts/ad-operations/ticket-service/application"
	"trafficdesk/contexts/ad-operations/ticket-service/domain/entities"
	domainerrors "trafficdesk/contexts/ad-operations/ticket-service/domain/errors"
	"trafficdesk/contexts/ad-operations/ticket-service/domain/platforms"
	"trafficdesk/contexts/ad-operations/ticket-service/ports"
)

type UpdateTicketCommand struct {
	TicketID      string
	RequestType   *string
	PayloadConfig json.RawMessage
}

// UpdateTicketUseCase edits a ticket's request payload. Any edit sends the
// ticket back to DRAFT and clears prior QA or deployment failure state, so
// the next evaluation starts clean.
type UpdateTicketUseCase struct {
	Tickets   ports.TicketRepository
	Directory ports.Directory
	Notifier  ports.Notifier
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (uc UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (entities.Ticket, error) {
	logger := application.ResolveLogger(uc.Logger)
	ticket, err := uc.Tickets.GetTicket(ctx, cmd.TicketID)
	if err != nil {
		return entities.Ticket{}, err
	}
	if ticket.Status == entities.TicketStatusTrafficked {
		return entities.Ticket{}, domainerrors.ErrInvalidTransition
	}

	if cmd.PayloadConfig != nil {
		channel, err := uc.Directory.ChannelSnapshot(ctx, ticket.ChannelID)
		if err != nil {
			return entities.Ticket{}, err
		}
		platform, err := platforms.Parse(channel.PlatformName)
		if err != nil {
			return entities.Ticket{}, err
		}
		if err := decodeConfigForPlatform(platform, cmd.PayloadConfig); err != nil {
			return entities.Ticket{}, err
		}
		ticket.PayloadConfig = append(json.RawMessage(nil), cmd.PayloadConfig...)
	}
	if cmd.RequestType != nil {
		ticket.RequestType = normalizeRequestType(*cmd.RequestType)
	}

	now := uc.Clock.Now().UTC()
	ticket.Status = entities.TicketStatusDraft
	ticket.QAFailureReason = ""
	ticket.UpdatedAt = now
	if err := uc.Tickets.UpdateTicket(ctx, ticket); err != nil {
		return entities.Ticket{}, err
	}

	logger.Info("traffic ticket updated",
		"event", "ticket_updated",
		"module", "ad-operations/ticket-service",
		"layer", "application",
		"ticket_id", ticket.TicketID,
		"status", string(ticket.Status),
	)
	return ticket, nil
}
