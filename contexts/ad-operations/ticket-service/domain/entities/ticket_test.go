package entities

import (
	"strings"
	"testing"
	"time"
)

func TestTicketTransitions(t *testing.T) {
	cases := []struct {
		from    TicketStatus
		to      TicketStatus
		allowed bool
	}{
		{TicketStatusDraft, TicketStatusQATesting, true},
		{TicketStatusDraft, TicketStatusReady, false},
		{TicketStatusDraft, TicketStatusTrafficked, false},
		{TicketStatusQATesting, TicketStatusReady, true},
		{TicketStatusQATesting, TicketStatusQAFailed, true},
		{TicketStatusQATesting, TicketStatusDraft, false},
		{TicketStatusReady, TicketStatusTrafficked, true},
		{TicketStatusReady, TicketStatusFailed, true},
		{TicketStatusReady, TicketStatusQATesting, false},
		{TicketStatusQAFailed, TicketStatusDraft, true},
		{TicketStatusQAFailed, TicketStatusQATesting, false},
		{TicketStatusFailed, TicketStatusDraft, true},
		{TicketStatusTrafficked, TicketStatusDraft, false},
		{TicketStatusTrafficked, TicketStatusFailed, false},
	}
	for _, tc := range cases {
		ticket := Ticket{Status: tc.from}
		if got := ticket.CanTransition(tc.to); got != tc.allowed {
			t.Fatalf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestMarkQAPassedClearsFailureReason(t *testing.T) {
	now := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	ticket := Ticket{Status: TicketStatusQATesting, QAFailureReason: "old reason"}
	ticket.MarkQAPassed(now)
	if ticket.Status != TicketStatusReady {
		t.Fatalf("expected READY_FOR_API, got %s", ticket.Status)
	}
	if ticket.QAFailureReason != "" {
		t.Fatalf("failure reason must be cleared, got %q", ticket.QAFailureReason)
	}
	if !ticket.UpdatedAt.Equal(now) {
		t.Fatalf("updated_at not set: %v", ticket.UpdatedAt)
	}
}

func TestMarkTraffickedRecordsExternalID(t *testing.T) {
	now := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	ticket := Ticket{Status: TicketStatusReady}
	ticket.MarkTrafficked("camp-ext-9", now)
	if ticket.Status != TicketStatusTrafficked {
		t.Fatalf("expected TRAFFICKED_SUCCESS, got %s", ticket.Status)
	}
	if ticket.ExternalPlatformID != "camp-ext-9" {
		t.Fatalf("external id not recorded: %q", ticket.ExternalPlatformID)
	}
}

func TestTruncateReasonBoundsLongMessages(t *testing.T) {
	long := strings.Repeat("x", 2000)
	if got := TruncateReason(long); len(got) != 512 {
		t.Fatalf("expected 512 byte cap, got %d", len(got))
	}
	if got := TruncateReason("short"); got != "short" {
		t.Fatalf("short reason must be untouched, got %q", got)
	}
}

func TestIsSupportedTicketStatus(t *testing.T) {
	if !IsSupportedTicketStatus(TicketStatusQAFailed) {
		t.Fatal("QA_FAILED must be supported")
	}
	if IsSupportedTicketStatus(TicketStatus("ARCHIVED")) {
		t.Fatal("unknown status must be rejected")
	}
}
