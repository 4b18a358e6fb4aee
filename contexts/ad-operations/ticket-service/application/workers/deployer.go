package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	application "trafficdesk/contexts/ad-operations/ticket-service/application"
	"trafficdesk/contexts/ad-operations/ticket-service/domain/entities"
	domainerrors "trafficdesk/contexts/ad-operations/ticket-service/domain/errors"
	"trafficdesk/contexts/ad-operations/ticket-service/domain/platforms"
	"trafficdesk/contexts/ad-operations/ticket-service/domain/translators"
	"trafficdesk/contexts/ad-operations/ticket-service/ports"
	"trafficdesk/internal/shared/events"
)

const (
	defaultMaxAttempts    = 5
	defaultRateLimitPause = 60 * time.Second
	apiErrorBodyLimit     = 200
)

// Deployer drains the deployment queue and drives the three-stage
// campaign -> ad set -> ad pipeline against the ticket's platform.
// Delivery is at-least-once; a job whose ticket is no longer READY_FOR_API
// is dropped as a duplicate.
type Deployer struct {
	Tickets     ports.TicketRepository
	Directory   ports.Directory
	Queue       ports.DeploymentQueue
	Gateway     ports.PlatformGateway
	Credentials ports.CredentialResolver
	Notifier    ports.Notifier
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	MaxAttempts int
	MaxElapsed  time.Duration
	Logger      *slog.Logger
}

// Run blocks on the queue until ctx is cancelled.
func (d Deployer) Run(ctx context.Context) error {
	logger := application.ResolveLogger(d.Logger)
	for {
		job, ack, err := d.Queue.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			logger.Error("deployment dequeue failed",
				"event", "deployment_dequeue_failed",
				"module", "ad-operations/ticket-service",
				"layer", "worker",
				"error", err.Error(),
			)
			continue
		}
		if err := d.Handle(ctx, job); err != nil {
			logger.Error("deployment job failed",
				"event", "deployment_job_failed",
				"module", "ad-operations/ticket-service",
				"layer", "worker",
				"job_id", job.JobID,
				"ticket_id", job.TicketID,
				"error", err.Error(),
			)
			continue
		}
		if ack != nil {
			if err := ack(ctx); err != nil {
				logger.Error("deployment ack failed",
					"event", "deployment_ack_failed",
					"module", "ad-operations/ticket-service",
					"layer", "worker",
					"job_id", job.JobID,
					"error", err.Error(),
				)
			}
		}
	}
}

// Handle processes a single job end to end: attempt the pipeline, then act
// on the decision (finalize the ticket or re-enqueue with backoff).
func (d Deployer) Handle(ctx context.Context, job ports.DeploymentJob) error {
	logger := application.ResolveLogger(d.Logger)
	ticket, err := d.Tickets.GetTicket(ctx, job.TicketID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrTicketNotFound) {
			logger.Warn("deployment job dropped, ticket missing",
				"event", "deployment_job_dropped",
				"module", "ad-operations/ticket-service",
				"layer", "worker",
				"job_id", job.JobID,
				"ticket_id", job.TicketID,
			)
			return nil
		}
		return err
	}
	if ticket.Status != entities.TicketStatusReady {
		logger.Warn("deployment job dropped, ticket not ready",
			"event", "deployment_job_dropped",
			"module", "ad-operations/ticket-service",
			"layer", "worker",
			"job_id", job.JobID,
			"ticket_id", ticket.TicketID,
			"status", string(ticket.Status),
		)
		return nil
	}

	decision := d.attempt(ctx, ticket)
	switch decision.Kind {
	case DecisionSucceeded:
		return d.finalizeSuccess(ctx, ticket, decision.ExternalID, job)
	case DecisionRetry:
		return d.scheduleRetry(ctx, ticket, job, decision)
	case DecisionFatal:
		return d.finalizeFailure(ctx, ticket, decision.Reason, job)
	default:
		return fmt.Errorf("unhandled deployment decision %d", decision.Kind)
	}
}

// attempt runs the pipeline once and classifies the result. Builder errors
// and 4xx responses are fatal; 429, 5xx and transport failures retry.
func (d Deployer) attempt(ctx context.Context, ticket entities.Ticket) Decision {
	campaign, err := d.Directory.CampaignSnapshot(ctx, ticket.CampaignID)
	if err != nil {
		return Fatal(deploymentErrorReason(err))
	}
	channel, err := d.Directory.ChannelSnapshot(ctx, ticket.ChannelID)
	if err != nil {
		return Fatal(deploymentErrorReason(err))
	}
	platform, err := platforms.Parse(channel.PlatformName)
	if err != nil {
		return Fatal(deploymentErrorReason(err))
	}
	translator, err := translators.ForPlatform(platform)
	if err != nil {
		return Fatal(deploymentErrorReason(err))
	}
	creds, err := d.Credentials.Resolve(platform, channel.APIIdentifier)
	if err != nil {
		return Fatal(deploymentErrorReason(err))
	}

	in := translators.Input{CampaignName: campaign.CampaignName, Config: ticket.PayloadConfig}

	campaignID, decision := d.submitStage(ctx, ticket, platforms.StageCampaign, creds, translator, func() (translators.Payload, error) {
		return translator.BuildCampaignPayload(in)
	})
	if decision.Kind != DecisionSucceeded {
		return decision
	}
	adSetID, decision := d.submitStage(ctx, ticket, platforms.StageAdSet, creds, translator, func() (translators.Payload, error) {
		return translator.BuildAdSetPayload(in, campaignID)
	})
	if decision.Kind != DecisionSucceeded {
		return decision
	}
	_, decision = d.submitStage(ctx, ticket, platforms.StageAd, creds, translator, func() (translators.Payload, error) {
		return translator.BuildAdPayload(in, adSetID)
	})
	if decision.Kind != DecisionSucceeded {
		return decision
	}
	// The ticket records the campaign-level id; child ids live on the
	// platform under it.
	return Succeeded(campaignID)
}

func (d Deployer) submitStage(
	ctx context.Context,
	ticket entities.Ticket,
	stage platforms.Stage,
	creds ports.PlatformCredentials,
	translator translators.Translator,
	build func() (translators.Payload, error),
) (string, Decision) {
	payload, err := build()
	if err != nil {
		return "", Fatal(deploymentErrorReason(err))
	}
	endpoint, ok := creds.Endpoints[stage]
	if !ok {
		return "", Fatal(deploymentErrorReason(fmt.Errorf("no endpoint configured for stage %s", stage)))
	}

	resp, err := d.Gateway.Post(ctx, ports.GatewayRequest{
		Endpoint:       endpoint,
		Token:          creds.Token,
		IdempotencyKey: ticket.TicketID + ":" + string(stage),
		Payload:        payload,
	})
	if err != nil {
		// Transport failure: the request never got an HTTP answer.
		return "", Retry(0)
	}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		after := resp.RetryAfter
		if after <= 0 {
			after = defaultRateLimitPause
		}
		return "", Retry(after)
	case resp.StatusCode >= 500:
		return "", Retry(0)
	case resp.StatusCode >= 400:
		return "", Fatal(apiErrorReason(resp.StatusCode, resp.Body))
	}

	externalID, err := translator.ExternalID(stage, resp.Body)
	if err != nil {
		return "", Fatal(deploymentErrorReason(err))
	}
	return externalID, Succeeded(externalID)
}

func (d Deployer) scheduleRetry(ctx context.Context, ticket entities.Ticket, job ports.DeploymentJob, decision Decision) error {
	logger := application.ResolveLogger(d.Logger)
	maxAttempts := d.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	now := d.Clock.Now().UTC()
	exhausted := job.Attempt+1 >= maxAttempts
	if !exhausted && d.MaxElapsed > 0 && now.Sub(job.FirstEnqueuedAt) >= d.MaxElapsed {
		exhausted = true
	}
	if exhausted {
		reason := fmt.Sprintf("Deployment failed after %d attempts: retries exhausted", job.Attempt+1)
		return d.finalizeFailure(ctx, ticket, reason, job)
	}

	delay := decision.RetryAfter
	if delay <= 0 {
		delay = time.Duration(1<<uint(job.Attempt)) * time.Second
	}
	next := ports.DeploymentJob{
		JobID:           job.JobID,
		TicketID:        job.TicketID,
		Attempt:         job.Attempt + 1,
		FirstEnqueuedAt: job.FirstEnqueuedAt,
	}
	if err := d.Queue.Enqueue(ctx, next, delay); err != nil {
		return err
	}
	logger.Warn("deployment retry scheduled",
		"event", "deployment_retry_scheduled",
		"module", "ad-operations/ticket-service",
		"layer", "worker",
		"job_id", job.JobID,
		"ticket_id", ticket.TicketID,
		"attempt", next.Attempt,
		"delay_seconds", delay.Seconds(),
	)
	return nil
}

func (d Deployer) finalizeSuccess(ctx context.Context, ticket entities.Ticket, externalID string, job ports.DeploymentJob) error {
	logger := application.ResolveLogger(d.Logger)
	updated := ticket
	updated.MarkTrafficked(externalID, d.Clock.Now())
	if err := d.Tickets.TransitionTicket(ctx, updated, entities.TicketStatusReady); err != nil {
		if errors.Is(err, domainerrors.ErrTicketStatusConflict) {
			// Another delivery of the same job won the transition.
			return nil
		}
		return err
	}
	d.broadcast(ctx, "ticket.trafficked", updated)
	logger.Info("deployment succeeded",
		"event", "deployment_succeeded",
		"module", "ad-operations/ticket-service",
		"layer", "worker",
		"job_id", job.JobID,
		"ticket_id", ticket.TicketID,
		"external_platform_id", externalID,
	)
	return nil
}

func (d Deployer) finalizeFailure(ctx context.Context, ticket entities.Ticket, reason string, job ports.DeploymentJob) error {
	logger := application.ResolveLogger(d.Logger)
	updated := ticket
	updated.MarkDeploymentFailed(reason, d.Clock.Now())
	if err := d.Tickets.TransitionTicket(ctx, updated, entities.TicketStatusReady); err != nil {
		if errors.Is(err, domainerrors.ErrTicketStatusConflict) {
			return nil
		}
		return err
	}
	d.broadcast(ctx, "ticket.deployment_failed", updated)
	logger.Error("deployment failed",
		"event", "deployment_failed",
		"module", "ad-operations/ticket-service",
		"layer", "worker",
		"job_id", job.JobID,
		"ticket_id", ticket.TicketID,
		"reason", reason,
	)
	return nil
}

func (d Deployer) broadcast(ctx context.Context, eventType string, ticket entities.Ticket) {
	if d.Notifier == nil {
		return
	}
	eventID := ticket.TicketID
	if d.IDGenerator != nil {
		if id, err := d.IDGenerator.NewID(ctx); err == nil {
			eventID = id
		}
	}
	envelope := events.Envelope{
		EventID:        eventID,
		EventType:      eventType,
		SourceService:  "ticket-service",
		OccurredAtUTC:  ticket.UpdatedAt,
		EntityType:     "traffic_ticket",
		EntityID:       ticket.TicketID,
		PayloadVersion: 1,
	}
	payload := map[string]any{
		"ticket_id":            ticket.TicketID,
		"campaign_id":          ticket.CampaignID,
		"status":               string(ticket.Status),
		"external_platform_id": ticket.ExternalPlatformID,
		"qa_failure_reason":    ticket.QAFailureReason,
	}
	if raw, err := json.Marshal(payload); err == nil {
		envelope.Payload = raw
	}
	d.Notifier.Broadcast(envelope)
}

// apiErrorReason formats a terminal platform rejection, truncating the
// response body so storage stays bounded.
func apiErrorReason(status int, body []byte) string {
	text := string(body)
	if len(text) > apiErrorBodyLimit {
		text = text[:apiErrorBodyLimit]
	}
	return fmt.Sprintf("API Error %d: %s", status, text)
}

func deploymentErrorReason(err error) string {
	msg := err.Error()
	if len(msg) > apiErrorBodyLimit {
		msg = msg[:apiErrorBodyLimit]
	}
	return "Deployment error: " + msg
}
