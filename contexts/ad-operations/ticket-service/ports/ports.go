package ports

import (
	"context"
	"time"

	"trafficdesk/contexts/ad-operations/ticket-service/domain/entities"
	"trafficdesk/contexts/ad-operations/ticket-service/domain/platforms"
	"trafficdesk/internal/shared/events"
)

type TicketFilter struct {
	CampaignID string
	ChannelID  string
	Status     entities.TicketStatus
}

type TicketRepository interface {
	CreateTicket(ctx context.Context, ticket entities.Ticket) error
	UpdateTicket(ctx context.Context, ticket entities.Ticket) error
	GetTicket(ctx context.Context, ticketID string) (entities.Ticket, error)
	ListTickets(ctx context.Context, filter TicketFilter) ([]entities.Ticket, error)
	DeleteTicket(ctx context.Context, ticketID string) error
	// TransitionTicket writes the ticket's status fields only where the
	// stored status still equals expected; two workers racing on the same
	// ticket resolve through ErrTicketStatusConflict.
	TransitionTicket(ctx context.Context, ticket entities.Ticket, expected entities.TicketStatus) error
}

// CampaignSnapshot is the catalog view the QA gate and the translators
// need from a ticket's campaign.
type CampaignSnapshot struct {
	CampaignID   string
	CampaignName string
	BrandName    string
	BrandCode    string
	MarketCode   string
}

// ChannelSnapshot resolves the channel the ticket traffics against.
type ChannelSnapshot struct {
	ChannelID     string
	PlatformName  string
	APIIdentifier string
}

// Directory reads campaign and channel context from the catalog service.
type Directory interface {
	CampaignSnapshot(ctx context.Context, campaignID string) (CampaignSnapshot, error)
	ChannelSnapshot(ctx context.Context, channelID string) (ChannelSnapshot, error)
}

// DeploymentJob is one attempt's worth of work on the durable queue.
// Attempt counts prior retries, zero-indexed.
type DeploymentJob struct {
	JobID           string    `json:"job_id"`
	TicketID        string    `json:"ticket_id"`
	Attempt         int       `json:"attempt"`
	FirstEnqueuedAt time.Time `json:"first_enqueued_at"`
}

// Ack removes a delivered job from the queue once it has been handled.
type Ack func(ctx context.Context) error

// DeploymentQueue is the durable work queue driving deployment attempts.
// Delivery is at-least-once; the worker tolerates duplicates by re-reading
// ticket status.
type DeploymentQueue interface {
	Enqueue(ctx context.Context, job DeploymentJob, delay time.Duration) error
	// Dequeue blocks until a job is due or ctx is done.
	Dequeue(ctx context.Context) (DeploymentJob, Ack, error)
}

// GatewayRequest is one outbound platform call.
type GatewayRequest struct {
	Endpoint       string
	Token          string
	IdempotencyKey string
	Payload        any
}

// GatewayResponse is the classified-enough view of the platform's answer.
// RetryAfter is the parsed Retry-After header, zero when absent.
type GatewayResponse struct {
	StatusCode int
	RetryAfter time.Duration
	Body       []byte
}

// PlatformGateway posts JSON payloads to an ad platform. A non-nil error
// means the request never produced an HTTP response (network failure).
type PlatformGateway interface {
	Post(ctx context.Context, req GatewayRequest) (GatewayResponse, error)
}

// PlatformCredentials carries the bearer token and the per-stage endpoint
// for one platform.
type PlatformCredentials struct {
	Token     string
	Endpoints map[platforms.Stage]string
}

// CredentialResolver maps a platform and the channel's account identifier
// to a bearer token and concrete per-stage endpoints.
type CredentialResolver interface {
	Resolve(platform platforms.Platform, accountID string) (PlatformCredentials, error)
}

// Notifier broadcasts ticket lifecycle events to connected observers.
type Notifier interface {
	Broadcast(event events.Envelope)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
