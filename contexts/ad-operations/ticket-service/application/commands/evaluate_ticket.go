package commands

import (
	"context"
	"log/slog"

	application "trafficdesk/contexts/ad-operations/ticket-service/application"
	"trafficdesk/contexts/ad-operations/ticket-service/domain/entities"
	domainerrors "trafficdesk/contexts/ad-operations/ticket-service/domain/errors"
	"trafficdesk/contexts/ad-operations/ticket-service/domain/platforms"
	"trafficdesk/contexts/ad-operations/ticket-service/domain/qa"
	"trafficdesk/contexts/ad-operations/ticket-service/ports"
)

type EvaluateTicketCommand struct {
	TicketID string
}

type EvaluateTicketResult struct {
	Ticket  entities.Ticket
	Verdict qa.Verdict
}

// EvaluateTicketUseCase runs the QA rule chain against a DRAFT ticket and
// moves it to READY_FOR_API or QA_FAILED.
type EvaluateTicketUseCase struct {
	Tickets     ports.TicketRepository
	Directory   ports.Directory
	Notifier    ports.Notifier
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc EvaluateTicketUseCase) Execute(ctx context.Context, cmd EvaluateTicketCommand) (EvaluateTicketResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	ticket, err := uc.Tickets.GetTicket(ctx, cmd.TicketID)
	if err != nil {
		return EvaluateTicketResult{}, err
	}
	// QA_FAILED tickets re-enter evaluation through DRAFT.
	if ticket.Status == entities.TicketStatusQAFailed {
		ticket.Status = entities.TicketStatusDraft
	}
	if !ticket.CanTransition(entities.TicketStatusQATesting) {
		return EvaluateTicketResult{}, domainerrors.ErrInvalidTransition
	}

	campaign, err := uc.Directory.CampaignSnapshot(ctx, ticket.CampaignID)
	if err != nil {
		return EvaluateTicketResult{}, err
	}
	channel, err := uc.Directory.ChannelSnapshot(ctx, ticket.ChannelID)
	if err != nil {
		return EvaluateTicketResult{}, err
	}
	platform, err := platforms.Parse(channel.PlatformName)
	if err != nil {
		return EvaluateTicketResult{}, err
	}

	now := uc.Clock.Now().UTC()
	ticket.Status = entities.TicketStatusQATesting
	ticket.UpdatedAt = now
	if err := uc.Tickets.UpdateTicket(ctx, ticket); err != nil {
		return EvaluateTicketResult{}, err
	}

	verdict := qa.Evaluate(qa.Input{
		CampaignName:  campaign.CampaignName,
		BrandName:     campaign.BrandName,
		Platform:      platform,
		PayloadConfig: ticket.PayloadConfig,
	})
	if verdict.Passed {
		ticket.MarkQAPassed(uc.Clock.Now())
	} else {
		ticket.MarkQAFailed(verdict.Reason, uc.Clock.Now())
	}
	if err := uc.Tickets.UpdateTicket(ctx, ticket); err != nil {
		return EvaluateTicketResult{}, err
	}

	if uc.Notifier != nil {
		eventID, err := uc.IDGenerator.NewID(ctx)
		if err != nil {
			return EvaluateTicketResult{}, err
		}
		eventType := "ticket.qa_passed"
		if !verdict.Passed {
			eventType = "ticket.qa_failed"
		}
		envelope, err := newTicketEnvelope(eventID, eventType, ticket.TicketID, ticket.UpdatedAt, map[string]any{
			"ticket_id":         ticket.TicketID,
			"campaign_id":       ticket.CampaignID,
			"status":            string(ticket.Status),
			"qa_failure_reason": ticket.QAFailureReason,
		})
		if err != nil {
			return EvaluateTicketResult{}, err
		}
		uc.Notifier.Broadcast(envelope)
	}

	logger.Info("traffic ticket evaluated",
		"event", "ticket_evaluated",
		"module", "ad-operations/ticket-service",
		"layer", "application",
		"ticket_id", ticket.TicketID,
		"platform", string(platform),
		"passed", verdict.Passed,
		"reason", verdict.Reason,
	)
	return EvaluateTicketResult{Ticket: ticket, Verdict: verdict}, nil
}
