package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	application "trafficdesk/contexts/ad-operations/ticket-service/application"
	"trafficdesk/contexts/ad-operations/ticket-service/domain/entities"
	domainerrors "trafficdesk/contexts/ad-operations/ticket-service/domain/errors"
	"trafficdesk/contexts/ad-operations/ticket-service/domain/platforms"
	"trafficdesk/contexts/ad-operations/ticket-service/domain/translators"
	"trafficdesk/contexts/ad-operations/ticket-service/ports"
)

type CreateTicketCommand struct {
	CampaignID    string
	ChannelID     string
	RequestType   string
	PayloadConfig json.RawMessage
}

type CreateTicketUseCase struct {
	Tickets     ports.TicketRepository
	Directory   ports.Directory
	Notifier    ports.Notifier
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (entities.Ticket, error) {
	logger := application.ResolveLogger(uc.Logger)
	campaignID := strings.TrimSpace(cmd.CampaignID)
	channelID := strings.TrimSpace(cmd.ChannelID)
	if campaignID == "" || channelID == "" {
		return entities.Ticket{}, domainerrors.ErrInvalidTicketInput
	}

	if _, err := uc.Directory.CampaignSnapshot(ctx, campaignID); err != nil {
		return entities.Ticket{}, err
	}
	channel, err := uc.Directory.ChannelSnapshot(ctx, channelID)
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

	now := uc.Clock.Now().UTC()
	ticketID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Ticket{}, err
	}

	ticket := entities.Ticket{
		TicketID:      ticketID,
		CampaignID:    campaignID,
		ChannelID:     channelID,
		RequestType:   normalizeRequestType(cmd.RequestType),
		PayloadConfig: append(json.RawMessage(nil), cmd.PayloadConfig...),
		Status:        entities.TicketStatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.Tickets.CreateTicket(ctx, ticket); err != nil {
		return entities.Ticket{}, err
	}

	if uc.Notifier != nil {
		eventID, err := uc.IDGenerator.NewID(ctx)
		if err != nil {
			return entities.Ticket{}, err
		}
		envelope, err := newTicketEnvelope(eventID, "ticket.created", ticket.TicketID, now, map[string]any{
			"ticket_id":   ticket.TicketID,
			"campaign_id": ticket.CampaignID,
			"channel_id":  ticket.ChannelID,
			"status":      string(ticket.Status),
		})
		if err != nil {
			return entities.Ticket{}, err
		}
		uc.Notifier.Broadcast(envelope)
	}

	logger.Info("traffic ticket created",
		"event", "ticket_created",
		"module", "ad-operations/ticket-service",
		"layer", "application",
		"ticket_id", ticket.TicketID,
		"campaign_id", ticket.CampaignID,
		"platform", string(platform),
	)
	return ticket, nil
}

func normalizeRequestType(requestType string) string {
	normalized := strings.ToUpper(strings.TrimSpace(requestType))
	if normalized == "" {
		return entities.RequestTypeNewCampaign
	}
	return normalized
}

// decodeConfigForPlatform rejects payloads the platform translator could
// never consume. Missing fields are tolerated here; structural errors in
// the fields that are present are not.
func decodeConfigForPlatform(platform platforms.Platform, raw json.RawMessage) error {
	switch platform {
	case platforms.Meta:
		_, err := translators.DecodeMetaConfig(raw)
		return err
	case platforms.TikTok:
		_, err := translators.DecodeTikTokConfig(raw)
		return err
	case platforms.Google:
		_, err := translators.DecodeGoogleConfig(raw)
		return err
	default:
		return domainerrors.UnsupportedPlatformError{Name: string(platform)}
	}
}
