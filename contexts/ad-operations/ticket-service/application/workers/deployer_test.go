package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"trafficdesk/contexts/ad-operations/ticket-service/domain/entities"
	domainerrors "trafficdesk/contexts/ad-operations/ticket-service/domain/errors"
	"trafficdesk/contexts/ad-operations/ticket-service/domain/platforms"
	"trafficdesk/contexts/ad-operations/ticket-service/domain/translators"
	"trafficdesk/contexts/ad-operations/ticket-service/ports"
	"trafficdesk/internal/shared/events"
)

type stubTickets struct {
	ticket      entities.Ticket
	found       bool
	transition  *entities.Ticket
	conflictErr error
}

func (s *stubTickets) CreateTicket(ctx context.Context, ticket entities.Ticket) error { return nil }
func (s *stubTickets) UpdateTicket(ctx context.Context, ticket entities.Ticket) error { return nil }
func (s *stubTickets) GetTicket(ctx context.Context, ticketID string) (entities.Ticket, error) {
	if !s.found {
		return entities.Ticket{}, domainerrors.ErrTicketNotFound
	}
	return s.ticket, nil
}
func (s *stubTickets) ListTickets(ctx context.Context, filter ports.TicketFilter) ([]entities.Ticket, error) {
	return nil, nil
}
func (s *stubTickets) DeleteTicket(ctx context.Context, ticketID string) error { return nil }
func (s *stubTickets) TransitionTicket(ctx context.Context, ticket entities.Ticket, expected entities.TicketStatus) error {
	if s.conflictErr != nil {
		return s.conflictErr
	}
	copied := ticket
	s.transition = &copied
	return nil
}

type stubDirectory struct{}

func (stubDirectory) CampaignSnapshot(ctx context.Context, campaignID string) (ports.CampaignSnapshot, error) {
	return ports.CampaignSnapshot{
		CampaignID:   campaignID,
		CampaignName: "DIS_US_META_2026_SummerLaunch",
		BrandName:    "Acme Motors",
		BrandCode:    "DIS",
		MarketCode:   "US",
	}, nil
}

func (stubDirectory) ChannelSnapshot(ctx context.Context, channelID string) (ports.ChannelSnapshot, error) {
	return ports.ChannelSnapshot{
		ChannelID:     channelID,
		PlatformName:  "Meta",
		APIIdentifier: "9876543210",
	}, nil
}

type stubQueue struct {
	enqueued []ports.DeploymentJob
	delays   []time.Duration
}

func (q *stubQueue) Enqueue(ctx context.Context, job ports.DeploymentJob, delay time.Duration) error {
	q.enqueued = append(q.enqueued, job)
	q.delays = append(q.delays, delay)
	return nil
}

func (q *stubQueue) Dequeue(ctx context.Context) (ports.DeploymentJob, ports.Ack, error) {
	return ports.DeploymentJob{}, nil, context.Canceled
}

// scriptedGateway answers each call from a fixed script and records the
// requests it saw.
type scriptedGateway struct {
	responses []ports.GatewayResponse
	err       error
	requests  []ports.GatewayRequest
}

func (g *scriptedGateway) Post(ctx context.Context, req ports.GatewayRequest) (ports.GatewayResponse, error) {
	g.requests = append(g.requests, req)
	if g.err != nil {
		return ports.GatewayResponse{}, g.err
	}
	idx := len(g.requests) - 1
	if idx >= len(g.responses) {
		return ports.GatewayResponse{StatusCode: 200, Body: []byte(`{"id": "fallback"}`)}, nil
	}
	return g.responses[idx], nil
}

type stubResolver struct{}

func (stubResolver) Resolve(platform platforms.Platform, accountID string) (ports.PlatformCredentials, error) {
	return ports.PlatformCredentials{
		Token: "token-1",
		Endpoints: map[platforms.Stage]string{
			platforms.StageCampaign: "https://example.test/act_" + accountID + "/campaigns",
			platforms.StageAdSet:    "https://example.test/act_" + accountID + "/adsets",
			platforms.StageAd:       "https://example.test/act_" + accountID + "/ads",
		},
	}, nil
}

type captureNotifier struct {
	events []events.Envelope
}

func (n *captureNotifier) Broadcast(event events.Envelope) {
	n.events = append(n.events, event)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type fixedIDs struct{}

func (fixedIDs) NewID(ctx context.Context) (string, error) { return "event-1", nil }

func readyTicket() entities.Ticket {
	return entities.Ticket{
		TicketID:   "tkt-1",
		CampaignID: "cmp-1",
		ChannelID:  "chn-1",
		Status:     entities.TicketStatusReady,
		PayloadConfig: json.RawMessage(`{
			"ad_account_id": "9876543210",
			"objective": "OUTCOME_TRAFFIC",
			"daily_budget": "500.00",
			"optimization_goal": "LINK_CLICKS",
			"billing_event": "IMPRESSIONS",
			"targeting": {"geo_locations": {"countries": ["US"]}},
			"creative": {"creative_id": "cr-1"}
		}`),
	}
}

func newDeployer(tickets *stubTickets, queue *stubQueue, gateway *scriptedGateway, notifier *captureNotifier, now time.Time) Deployer {
	return Deployer{
		Tickets:     tickets,
		Directory:   stubDirectory{},
		Queue:       queue,
		Gateway:     gateway,
		Credentials: stubResolver{},
		Notifier:    notifier,
		Clock:       fixedClock{now: now},
		IDGenerator: fixedIDs{},
		MaxAttempts: 5,
		MaxElapsed:  30 * time.Minute,
	}
}

func TestHandleRunsThreeStagePipeline(t *testing.T) {
	now := time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)
	tickets := &stubTickets{ticket: readyTicket(), found: true}
	gateway := &scriptedGateway{responses: []ports.GatewayResponse{
		{StatusCode: 200, Body: []byte(`{"id": "camp-ext"}`)},
		{StatusCode: 200, Body: []byte(`{"id": "adset-ext"}`)},
		{StatusCode: 200, Body: []byte(`{"id": "ad-ext"}`)},
	}}
	queue := &stubQueue{}
	notifier := &captureNotifier{}
	deployer := newDeployer(tickets, queue, gateway, notifier, now)

	job := ports.DeploymentJob{JobID: "job-1", TicketID: "tkt-1", FirstEnqueuedAt: now}
	if err := deployer.Handle(context.Background(), job); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(gateway.requests) != 3 {
		t.Fatalf("expected 3 platform calls, got %d", len(gateway.requests))
	}
	if gateway.requests[0].IdempotencyKey != "tkt-1:campaign" {
		t.Fatalf("unexpected idempotency key: %s", gateway.requests[0].IdempotencyKey)
	}
	adSetPayload, ok := gateway.requests[1].Payload.(translators.Payload)
	if !ok {
		t.Fatalf("unexpected adset payload type %T", gateway.requests[1].Payload)
	}
	if adSetPayload["campaign_id"] != "camp-ext" {
		t.Fatalf("adset must chain the external campaign id, got %v", adSetPayload["campaign_id"])
	}

	if tickets.transition == nil {
		t.Fatal("expected a status transition")
	}
	if tickets.transition.Status != entities.TicketStatusTrafficked {
		t.Fatalf("expected TRAFFICKED_SUCCESS, got %s", tickets.transition.Status)
	}
	if tickets.transition.ExternalPlatformID != "camp-ext" {
		t.Fatalf("ticket must record the campaign-level id, got %q", tickets.transition.ExternalPlatformID)
	}
	if len(notifier.events) != 1 || notifier.events[0].EventType != "ticket.trafficked" {
		t.Fatalf("expected one ticket.trafficked event, got %v", notifier.events)
	}
	if len(queue.enqueued) != 0 {
		t.Fatalf("success must not re-enqueue, got %d jobs", len(queue.enqueued))
	}
}

func TestHandleDropsDuplicateForNonReadyTicket(t *testing.T) {
	now := time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)
	ticket := readyTicket()
	ticket.Status = entities.TicketStatusTrafficked
	tickets := &stubTickets{ticket: ticket, found: true}
	gateway := &scriptedGateway{}
	queue := &stubQueue{}
	deployer := newDeployer(tickets, queue, gateway, &captureNotifier{}, now)

	err := deployer.Handle(context.Background(), ports.DeploymentJob{JobID: "job-1", TicketID: "tkt-1"})
	if err != nil {
		t.Fatalf("duplicate drop must not error: %v", err)
	}
	if len(gateway.requests) != 0 {
		t.Fatalf("dropped job must not call the platform, got %d calls", len(gateway.requests))
	}
	if tickets.transition != nil {
		t.Fatal("dropped job must not touch the ticket")
	}
}

func TestHandleDropsJobForMissingTicket(t *testing.T) {
	now := time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)
	tickets := &stubTickets{found: false}
	deployer := newDeployer(tickets, &stubQueue{}, &scriptedGateway{}, &captureNotifier{}, now)

	if err := deployer.Handle(context.Background(), ports.DeploymentJob{JobID: "job-1", TicketID: "gone"}); err != nil {
		t.Fatalf("missing ticket must not error: %v", err)
	}
}

func TestRateLimitRetriesWithServerPause(t *testing.T) {
	now := time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)
	tickets := &stubTickets{ticket: readyTicket(), found: true}
	gateway := &scriptedGateway{responses: []ports.GatewayResponse{
		{StatusCode: 429, RetryAfter: 42 * time.Second, Body: []byte(`{"error": "rate limit"}`)},
	}}
	queue := &stubQueue{}
	deployer := newDeployer(tickets, queue, gateway, &captureNotifier{}, now)

	job := ports.DeploymentJob{JobID: "job-1", TicketID: "tkt-1", Attempt: 0, FirstEnqueuedAt: now}
	if err := deployer.Handle(context.Background(), job); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(queue.enqueued) != 1 {
		t.Fatalf("expected one retry, got %d", len(queue.enqueued))
	}
	if queue.delays[0] != 42*time.Second {
		t.Fatalf("expected server-provided pause, got %s", queue.delays[0])
	}
	if queue.enqueued[0].Attempt != 1 {
		t.Fatalf("retry must increment attempt, got %d", queue.enqueued[0].Attempt)
	}
	if tickets.transition != nil {
		t.Fatal("retry must not finalize the ticket")
	}
}

func TestServerErrorUsesExponentialBackoff(t *testing.T) {
	now := time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)
	tickets := &stubTickets{ticket: readyTicket(), found: true}
	gateway := &scriptedGateway{responses: []ports.GatewayResponse{
		{StatusCode: 503, Body: []byte(`{"error": "unavailable"}`)},
	}}
	queue := &stubQueue{}
	deployer := newDeployer(tickets, queue, gateway, &captureNotifier{}, now)

	job := ports.DeploymentJob{JobID: "job-1", TicketID: "tkt-1", Attempt: 3, FirstEnqueuedAt: now}
	if err := deployer.Handle(context.Background(), job); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(queue.delays) != 1 || queue.delays[0] != 8*time.Second {
		t.Fatalf("expected 1<<3 seconds backoff, got %v", queue.delays)
	}
}

func TestTransportErrorRetries(t *testing.T) {
	now := time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)
	tickets := &stubTickets{ticket: readyTicket(), found: true}
	gateway := &scriptedGateway{err: errors.New("connection refused")}
	queue := &stubQueue{}
	deployer := newDeployer(tickets, queue, gateway, &captureNotifier{}, now)

	job := ports.DeploymentJob{JobID: "job-1", TicketID: "tkt-1", FirstEnqueuedAt: now}
	if err := deployer.Handle(context.Background(), job); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(queue.enqueued) != 1 {
		t.Fatalf("transport failure must retry, got %d jobs", len(queue.enqueued))
	}
}

func TestClientErrorIsFatalWithTruncatedBody(t *testing.T) {
	now := time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)
	tickets := &stubTickets{ticket: readyTicket(), found: true}
	body := strings.Repeat("e", 500)
	gateway := &scriptedGateway{responses: []ports.GatewayResponse{
		{StatusCode: 400, Body: []byte(body)},
	}}
	queue := &stubQueue{}
	notifier := &captureNotifier{}
	deployer := newDeployer(tickets, queue, gateway, notifier, now)

	job := ports.DeploymentJob{JobID: "job-1", TicketID: "tkt-1", FirstEnqueuedAt: now}
	if err := deployer.Handle(context.Background(), job); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if tickets.transition == nil || tickets.transition.Status != entities.TicketStatusFailed {
		t.Fatal("4xx must finalize the ticket as FAILED")
	}
	want := fmt.Sprintf("API Error 400: %s", strings.Repeat("e", 200))
	if tickets.transition.QAFailureReason != want {
		t.Fatalf("unexpected failure reason: %q", tickets.transition.QAFailureReason)
	}
	if len(queue.enqueued) != 0 {
		t.Fatal("fatal errors must not retry")
	}
	if len(notifier.events) != 1 || notifier.events[0].EventType != "ticket.deployment_failed" {
		t.Fatalf("expected deployment_failed event, got %v", notifier.events)
	}
}

func TestRetriesExhaustedFinalizesFailure(t *testing.T) {
	now := time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)
	tickets := &stubTickets{ticket: readyTicket(), found: true}
	gateway := &scriptedGateway{responses: []ports.GatewayResponse{
		{StatusCode: 503, Body: []byte(`{}`)},
	}}
	queue := &stubQueue{}
	deployer := newDeployer(tickets, queue, gateway, &captureNotifier{}, now)

	job := ports.DeploymentJob{JobID: "job-1", TicketID: "tkt-1", Attempt: 4, FirstEnqueuedAt: now}
	if err := deployer.Handle(context.Background(), job); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(queue.enqueued) != 0 {
		t.Fatal("exhausted job must not re-enqueue")
	}
	if tickets.transition == nil || tickets.transition.Status != entities.TicketStatusFailed {
		t.Fatal("exhausted job must finalize as FAILED")
	}
	if tickets.transition.QAFailureReason != "Deployment failed after 5 attempts: retries exhausted" {
		t.Fatalf("unexpected reason: %q", tickets.transition.QAFailureReason)
	}
}

func TestWallClockLimitExhaustsRetries(t *testing.T) {
	now := time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)
	tickets := &stubTickets{ticket: readyTicket(), found: true}
	gateway := &scriptedGateway{responses: []ports.GatewayResponse{
		{StatusCode: 503, Body: []byte(`{}`)},
	}}
	queue := &stubQueue{}
	deployer := newDeployer(tickets, queue, gateway, &captureNotifier{}, now)

	job := ports.DeploymentJob{
		JobID:           "job-1",
		TicketID:        "tkt-1",
		Attempt:         1,
		FirstEnqueuedAt: now.Add(-time.Hour),
	}
	if err := deployer.Handle(context.Background(), job); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(queue.enqueued) != 0 {
		t.Fatal("job past the wall clock limit must not re-enqueue")
	}
	if tickets.transition == nil || tickets.transition.Status != entities.TicketStatusFailed {
		t.Fatal("expected FAILED after wall clock exhaustion")
	}
}

func TestConcurrentTransitionConflictIsSwallowed(t *testing.T) {
	now := time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)
	tickets := &stubTickets{
		ticket:      readyTicket(),
		found:       true,
		conflictErr: domainerrors.ErrTicketStatusConflict,
	}
	gateway := &scriptedGateway{responses: []ports.GatewayResponse{
		{StatusCode: 200, Body: []byte(`{"id": "camp-ext"}`)},
		{StatusCode: 200, Body: []byte(`{"id": "adset-ext"}`)},
		{StatusCode: 200, Body: []byte(`{"id": "ad-ext"}`)},
	}}
	notifier := &captureNotifier{}
	deployer := newDeployer(tickets, &stubQueue{}, gateway, notifier, now)

	job := ports.DeploymentJob{JobID: "job-1", TicketID: "tkt-1", FirstEnqueuedAt: now}
	if err := deployer.Handle(context.Background(), job); err != nil {
		t.Fatalf("losing the transition race must not error: %v", err)
	}
	if len(notifier.events) != 0 {
		t.Fatal("losing worker must not broadcast")
	}
}
