package commands

import (
	"context"
	"fmt"
	"log/slog"

	application "trafficdesk/contexts/ad-operations/ticket-service/application"
	"trafficdesk/contexts/ad-operations/ticket-service/domain/entities"
	domainerrors "trafficdesk/contexts/ad-operations/ticket-service/domain/errors"
	"trafficdesk/contexts/ad-operations/ticket-service/domain/platforms"
	"trafficdesk/contexts/ad-operations/ticket-service/ports"
)

type RequestDeploymentCommand struct {
	TicketID string
}

type RequestDeploymentResult struct {
	TicketID string
	Platform platforms.Platform
	JobID    string
}

// RequestDeploymentUseCase accepts a deployment request for a READY_FOR_API
// ticket and hands it to the durable queue. Precondition failures surface
// synchronously; everything after enqueue is the worker's problem.
type RequestDeploymentUseCase struct {
	Tickets     ports.TicketRepository
	Directory   ports.Directory
	Queue       ports.DeploymentQueue
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc RequestDeploymentUseCase) Execute(ctx context.Context, cmd RequestDeploymentCommand) (RequestDeploymentResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	ticket, err := uc.Tickets.GetTicket(ctx, cmd.TicketID)
	if err != nil {
		return RequestDeploymentResult{}, err
	}
	if ticket.Status != entities.TicketStatusReady {
		return RequestDeploymentResult{}, fmt.Errorf("%w: status %s", domainerrors.ErrTicketNotReady, ticket.Status)
	}

	channel, err := uc.Directory.ChannelSnapshot(ctx, ticket.ChannelID)
	if err != nil {
		return RequestDeploymentResult{}, err
	}
	platform, err := platforms.Parse(channel.PlatformName)
	if err != nil {
		return RequestDeploymentResult{}, err
	}

	jobID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return RequestDeploymentResult{}, err
	}
	job := ports.DeploymentJob{
		JobID:           jobID,
		TicketID:        ticket.TicketID,
		Attempt:         0,
		FirstEnqueuedAt: uc.Clock.Now().UTC(),
	}
	if err := uc.Queue.Enqueue(ctx, job, 0); err != nil {
		return RequestDeploymentResult{}, err
	}

	logger.Info("deployment queued",
		"event", "deployment_queued",
		"module", "ad-operations/ticket-service",
		"layer", "application",
		"ticket_id", ticket.TicketID,
		"job_id", jobID,
		"platform", string(platform),
	)
	return RequestDeploymentResult{TicketID: ticket.TicketID, Platform: platform, JobID: jobID}, nil
}
