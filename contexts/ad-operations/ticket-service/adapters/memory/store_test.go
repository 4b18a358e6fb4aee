package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"trafficdesk/contexts/ad-operations/ticket-service/domain/entities"
	domainerrors "trafficdesk/contexts/ad-operations/ticket-service/domain/errors"
	"trafficdesk/contexts/ad-operations/ticket-service/ports"
)

func TestStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewStore(nil)

	ticket := entities.Ticket{TicketID: "tkt-1", CampaignID: "cmp-1", ChannelID: "chn-1", Status: entities.TicketStatusDraft}
	if err := store.CreateTicket(ctx, ticket); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.GetTicket(ctx, "tkt-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CampaignID != "cmp-1" {
		t.Fatalf("unexpected campaign id: %s", got.CampaignID)
	}

	got.RequestType = entities.RequestTypeUpdateBudget
	if err := store.UpdateTicket(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := store.DeleteTicket(ctx, "tkt-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetTicket(ctx, "tkt-1"); !errors.Is(err, domainerrors.ErrTicketNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestListTicketsFilters(t *testing.T) {
	ctx := context.Background()
	store := NewStore([]entities.Ticket{
		{TicketID: "tkt-1", CampaignID: "cmp-1", ChannelID: "chn-1", Status: entities.TicketStatusDraft},
		{TicketID: "tkt-2", CampaignID: "cmp-1", ChannelID: "chn-2", Status: entities.TicketStatusReady},
		{TicketID: "tkt-3", CampaignID: "cmp-2", ChannelID: "chn-1", Status: entities.TicketStatusDraft},
	})

	byCampaign, err := store.ListTickets(ctx, ports.TicketFilter{CampaignID: "cmp-1"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(byCampaign) != 2 {
		t.Fatalf("expected 2 tickets for cmp-1, got %d", len(byCampaign))
	}

	byStatus, err := store.ListTickets(ctx, ports.TicketFilter{Status: entities.TicketStatusReady})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].TicketID != "tkt-2" {
		t.Fatalf("unexpected status filter result: %v", byStatus)
	}
}

func TestTransitionTicketEnforcesExpectedStatus(t *testing.T) {
	ctx := context.Background()
	store := NewStore([]entities.Ticket{
		{TicketID: "tkt-1", Status: entities.TicketStatusReady},
	})

	winner, _ := store.GetTicket(ctx, "tkt-1")
	winner.MarkTrafficked("camp-ext", time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC))
	if err := store.TransitionTicket(ctx, winner, entities.TicketStatusReady); err != nil {
		t.Fatalf("first transition: %v", err)
	}

	loser, _ := store.GetTicket(ctx, "tkt-1")
	loser.MarkDeploymentFailed("late failure", time.Date(2026, time.April, 1, 9, 0, 1, 0, time.UTC))
	err := store.TransitionTicket(ctx, loser, entities.TicketStatusReady)
	if !errors.Is(err, domainerrors.ErrTicketStatusConflict) {
		t.Fatalf("expected status conflict, got %v", err)
	}

	final, _ := store.GetTicket(ctx, "tkt-1")
	if final.Status != entities.TicketStatusTrafficked {
		t.Fatalf("loser must not overwrite winner, got %s", final.Status)
	}
}

func TestQueueDeliversDueJobsInOrder(t *testing.T) {
	ctx := context.Background()
	queue := NewQueue()

	if err := queue.Enqueue(ctx, ports.DeploymentJob{JobID: "job-1", TicketID: "tkt-1"}, 0); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if err := queue.Enqueue(ctx, ports.DeploymentJob{JobID: "job-2", TicketID: "tkt-2"}, 0); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	first, ack, err := queue.Dequeue(ctx)
	if err != nil {
		t.Fatalf("dequeue: %v", err)
	}
	if first.JobID != "job-1" {
		t.Fatalf("expected FIFO for equal due times, got %s", first.JobID)
	}
	if err := ack(ctx); err != nil {
		t.Fatalf("ack: %v", err)
	}

	second, _, err := queue.Dequeue(ctx)
	if err != nil {
		t.Fatalf("dequeue: %v", err)
	}
	if second.JobID != "job-2" {
		t.Fatalf("expected job-2, got %s", second.JobID)
	}
	if queue.Len() != 0 {
		t.Fatalf("queue should be drained, len %d", queue.Len())
	}
}

func TestQueueHonorsDelay(t *testing.T) {
	ctx := context.Background()
	queue := NewQueue()

	if err := queue.Enqueue(ctx, ports.DeploymentJob{JobID: "slow"}, 40*time.Millisecond); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	start := time.Now()
	job, _, err := queue.Dequeue(ctx)
	if err != nil {
		t.Fatalf("dequeue: %v", err)
	}
	if job.JobID != "slow" {
		t.Fatalf("unexpected job %s", job.JobID)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Fatalf("job delivered before its delay elapsed: %s", elapsed)
	}
}

func TestQueueDequeueUnblocksOnCancel(t *testing.T) {
	queue := NewQueue()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, _, err := queue.Dequeue(ctx)
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("dequeue did not unblock on cancel")
	}
}
