package commands

import (
	"encoding/json"
	"time"

	"trafficdesk/internal/shared/events"
)

func newTicketEnvelope(
	eventID string,
	eventType string,
	ticketID string,
	occurredAt time.Time,
	data map[string]any,
) (events.Envelope, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return events.Envelope{}, err
	}
	return events.Envelope{
		EventID:        eventID,
		EventType:      eventType,
		SourceService:  "ticket-service",
		OccurredAtUTC:  occurredAt.UTC(),
		EntityType:     "traffic_ticket",
		EntityID:       ticketID,
		PayloadVersion: 1,
		Payload:        payload,
	}, nil
}
