package commands

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"trafficdesk/contexts/ad-operations/ticket-service/adapters/memory"
	"trafficdesk/contexts/ad-operations/ticket-service/domain/entities"
	domainerrors "trafficdesk/contexts/ad-operations/ticket-service/domain/errors"
	"trafficdesk/contexts/ad-operations/ticket-service/ports"
	"trafficdesk/internal/shared/events"
)

type fakeDirectory struct {
	campaignName string
	brandName    string
	platform     string
	campaignErr  error
	channelErr   error
}

func (d fakeDirectory) CampaignSnapshot(ctx context.Context, campaignID string) (ports.CampaignSnapshot, error) {
	if d.campaignErr != nil {
		return ports.CampaignSnapshot{}, d.campaignErr
	}
	return ports.CampaignSnapshot{
		CampaignID:   campaignID,
		CampaignName: d.campaignName,
		BrandName:    d.brandName,
		BrandCode:    "DIS",
		MarketCode:   "US",
	}, nil
}

func (d fakeDirectory) ChannelSnapshot(ctx context.Context, channelID string) (ports.ChannelSnapshot, error) {
	if d.channelErr != nil {
		return ports.ChannelSnapshot{}, d.channelErr
	}
	return ports.ChannelSnapshot{
		ChannelID:     channelID,
		PlatformName:  d.platform,
		APIIdentifier: "9876543210",
	}, nil
}

type collectNotifier struct {
	events []events.Envelope
}

func (n *collectNotifier) Broadcast(event events.Envelope) {
	n.events = append(n.events, event)
}

const validMetaConfig = `{
	"ad_account_id": "9876543210",
	"objective": "OUTCOME_TRAFFIC",
	"daily_budget": "500.00",
	"targeting": {"geo_locations": {"countries": ["US"]}}
}`

func metaDirectory() fakeDirectory {
	return fakeDirectory{
		campaignName: "DIS_US_META_2026_SummerLaunch",
		brandName:    "Acme Motors",
		platform:     "Meta",
	}
}

func TestCreateTicketStartsInDraft(t *testing.T) {
	store := memory.NewStore(nil)
	notifier := &collectNotifier{}
	uc := CreateTicketUseCase{
		Tickets:     store,
		Directory:   metaDirectory(),
		Notifier:    notifier,
		Clock:       store,
		IDGenerator: store,
	}

	ticket, err := uc.Execute(context.Background(), CreateTicketCommand{
		CampaignID:    "cmp-1",
		ChannelID:     "chn-1",
		PayloadConfig: json.RawMessage(validMetaConfig),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ticket.Status != entities.TicketStatusDraft {
		t.Fatalf("new tickets must be DRAFT, got %s", ticket.Status)
	}
	if ticket.RequestType != entities.RequestTypeNewCampaign {
		t.Fatalf("expected default request type, got %s", ticket.RequestType)
	}
	if len(notifier.events) != 1 || notifier.events[0].EventType != "ticket.created" {
		t.Fatalf("expected ticket.created event, got %v", notifier.events)
	}
}

func TestCreateTicketRejectsMalformedConfig(t *testing.T) {
	store := memory.NewStore(nil)
	uc := CreateTicketUseCase{
		Tickets:     store,
		Directory:   metaDirectory(),
		Clock:       store,
		IDGenerator: store,
	}

	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		CampaignID:    "cmp-1",
		ChannelID:     "chn-1",
		PayloadConfig: json.RawMessage(`{"ad_account_id": `),
	})
	if !errors.Is(err, domainerrors.ErrMalformedPayload) {
		t.Fatalf("expected malformed payload error, got %v", err)
	}
}

func TestCreateTicketRejectsUnknownPlatform(t *testing.T) {
	store := memory.NewStore(nil)
	directory := metaDirectory()
	directory.platform = "Snapchat"
	uc := CreateTicketUseCase{
		Tickets:     store,
		Directory:   directory,
		Clock:       store,
		IDGenerator: store,
	}

	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		CampaignID:    "cmp-1",
		ChannelID:     "chn-1",
		PayloadConfig: json.RawMessage(validMetaConfig),
	})
	if !errors.Is(err, domainerrors.ErrUnsupportedPlatform) {
		t.Fatalf("expected unsupported platform error, got %v", err)
	}
}

func TestUpdateTicketResetsToDraft(t *testing.T) {
	store := memory.NewStore([]entities.Ticket{{
		TicketID:        "tkt-1",
		CampaignID:      "cmp-1",
		ChannelID:       "chn-1",
		Status:          entities.TicketStatusQAFailed,
		QAFailureReason: "Missing geographic locations targeting",
	}})
	uc := UpdateTicketUseCase{
		Tickets:   store,
		Directory: metaDirectory(),
		Clock:     store,
	}

	ticket, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:      "tkt-1",
		PayloadConfig: json.RawMessage(validMetaConfig),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if ticket.Status != entities.TicketStatusDraft {
		t.Fatalf("edited ticket must return to DRAFT, got %s", ticket.Status)
	}
	if ticket.QAFailureReason != "" {
		t.Fatalf("edit must clear the failure reason, got %q", ticket.QAFailureReason)
	}
}

func TestUpdateTicketRejectsTraffickedTicket(t *testing.T) {
	store := memory.NewStore([]entities.Ticket{{
		TicketID: "tkt-1",
		Status:   entities.TicketStatusTrafficked,
	}})
	uc := UpdateTicketUseCase{
		Tickets:   store,
		Directory: metaDirectory(),
		Clock:     store,
	}

	_, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID:      "tkt-1",
		PayloadConfig: json.RawMessage(validMetaConfig),
	})
	if !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestEvaluateMovesDraftToReady(t *testing.T) {
	store := memory.NewStore([]entities.Ticket{{
		TicketID:      "tkt-1",
		CampaignID:    "cmp-1",
		ChannelID:     "chn-1",
		Status:        entities.TicketStatusDraft,
		PayloadConfig: json.RawMessage(validMetaConfig),
	}})
	notifier := &collectNotifier{}
	uc := EvaluateTicketUseCase{
		Tickets:     store,
		Directory:   metaDirectory(),
		Notifier:    notifier,
		Clock:       store,
		IDGenerator: store,
	}

	result, err := uc.Execute(context.Background(), EvaluateTicketCommand{TicketID: "tkt-1"})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !result.Verdict.Passed {
		t.Fatalf("expected pass, got %q", result.Verdict.Reason)
	}
	if result.Ticket.Status != entities.TicketStatusReady {
		t.Fatalf("expected READY_FOR_API, got %s", result.Ticket.Status)
	}
	if len(notifier.events) != 1 || notifier.events[0].EventType != "ticket.qa_passed" {
		t.Fatalf("expected qa_passed event, got %v", notifier.events)
	}
}

func TestEvaluateRecordsFirstFailureReason(t *testing.T) {
	store := memory.NewStore([]entities.Ticket{{
		TicketID:      "tkt-1",
		CampaignID:    "cmp-1",
		ChannelID:     "chn-1",
		Status:        entities.TicketStatusDraft,
		PayloadConfig: json.RawMessage(`{"ad_account_id": "1", "objective": "X", "targeting": {"age_min": 18}}`),
	}})
	notifier := &collectNotifier{}
	uc := EvaluateTicketUseCase{
		Tickets:     store,
		Directory:   metaDirectory(),
		Notifier:    notifier,
		Clock:       store,
		IDGenerator: store,
	}

	result, err := uc.Execute(context.Background(), EvaluateTicketCommand{TicketID: "tkt-1"})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result.Verdict.Passed {
		t.Fatal("expected QA failure")
	}
	if result.Ticket.Status != entities.TicketStatusQAFailed {
		t.Fatalf("expected QA_FAILED, got %s", result.Ticket.Status)
	}
	if result.Ticket.QAFailureReason != "Missing geographic locations targeting" {
		t.Fatalf("unexpected reason: %q", result.Ticket.QAFailureReason)
	}
	if len(notifier.events) != 1 || notifier.events[0].EventType != "ticket.qa_failed" {
		t.Fatalf("expected qa_failed event, got %v", notifier.events)
	}
}

func TestEvaluateAllowsQAFailedReentry(t *testing.T) {
	store := memory.NewStore([]entities.Ticket{{
		TicketID:      "tkt-1",
		CampaignID:    "cmp-1",
		ChannelID:     "chn-1",
		Status:        entities.TicketStatusQAFailed,
		PayloadConfig: json.RawMessage(validMetaConfig),
	}})
	uc := EvaluateTicketUseCase{
		Tickets:     store,
		Directory:   metaDirectory(),
		Clock:       store,
		IDGenerator: store,
	}

	result, err := uc.Execute(context.Background(), EvaluateTicketCommand{TicketID: "tkt-1"})
	if err != nil {
		t.Fatalf("re-evaluate after QA failure: %v", err)
	}
	if result.Ticket.Status != entities.TicketStatusReady {
		t.Fatalf("expected READY_FOR_API, got %s", result.Ticket.Status)
	}
}

func TestEvaluateRejectsReadyTicket(t *testing.T) {
	store := memory.NewStore([]entities.Ticket{{
		TicketID: "tkt-1",
		Status:   entities.TicketStatusReady,
	}})
	uc := EvaluateTicketUseCase{
		Tickets:     store,
		Directory:   metaDirectory(),
		Clock:       store,
		IDGenerator: store,
	}

	_, err := uc.Execute(context.Background(), EvaluateTicketCommand{TicketID: "tkt-1"})
	if !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestRequestDeploymentEnqueuesReadyTicket(t *testing.T) {
	store := memory.NewStore([]entities.Ticket{{
		TicketID:      "tkt-1",
		CampaignID:    "cmp-1",
		ChannelID:     "chn-1",
		Status:        entities.TicketStatusReady,
		PayloadConfig: json.RawMessage(validMetaConfig),
	}})
	queue := memory.NewQueue()
	uc := RequestDeploymentUseCase{
		Tickets:     store,
		Directory:   metaDirectory(),
		Queue:       queue,
		Clock:       store,
		IDGenerator: store,
	}

	result, err := uc.Execute(context.Background(), RequestDeploymentCommand{TicketID: "tkt-1"})
	if err != nil {
		t.Fatalf("request deployment: %v", err)
	}
	if result.Platform != "meta" {
		t.Fatalf("unexpected platform: %s", result.Platform)
	}
	if queue.Len() != 1 {
		t.Fatalf("expected one queued job, got %d", queue.Len())
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	job, _, err := queue.Dequeue(ctx)
	if err != nil {
		t.Fatalf("dequeue: %v", err)
	}
	if job.TicketID != "tkt-1" || job.Attempt != 0 {
		t.Fatalf("unexpected job: %+v", job)
	}
	if job.JobID != result.JobID {
		t.Fatalf("job id mismatch: %s vs %s", job.JobID, result.JobID)
	}
}

func TestRequestDeploymentRejectsDraftTicket(t *testing.T) {
	store := memory.NewStore([]entities.Ticket{{
		TicketID: "tkt-1",
		Status:   entities.TicketStatusDraft,
	}})
	uc := RequestDeploymentUseCase{
		Tickets:     store,
		Directory:   metaDirectory(),
		Queue:       memory.NewQueue(),
		Clock:       store,
		IDGenerator: store,
	}

	_, err := uc.Execute(context.Background(), RequestDeploymentCommand{TicketID: "tkt-1"})
	if !errors.Is(err, domainerrors.ErrTicketNotReady) {
		t.Fatalf("expected not ready error, got %v", err)
	}
	if !strings.Contains(err.Error(), "status DRAFT") {
		t.Fatalf("expected error to cite the current status, got %q", err.Error())
	}
}
