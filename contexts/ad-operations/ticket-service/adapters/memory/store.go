package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"trafficdesk/contexts/ad-operations/ticket-service/domain/entities"
	domainerrors "trafficdesk/contexts/ad-operations/ticket-service/domain/errors"
	"trafficdesk/contexts/ad-operations/ticket-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	tickets map[string]entities.Ticket
}

func NewStore(seed []entities.Ticket) *Store {
	tickets := make(map[string]entities.Ticket, len(seed))
	for _, item := range seed {
		tickets[item.TicketID] = item
	}
	return &Store{tickets: tickets}
}

func (s *Store) CreateTicket(_ context.Context, ticket entities.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tickets[ticket.TicketID]; exists {
		return domainerrors.ErrInvalidTicketInput
	}
	s.tickets[ticket.TicketID] = ticket
	return nil
}

func (s *Store) UpdateTicket(_ context.Context, ticket entities.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tickets[ticket.TicketID]; !exists {
		return domainerrors.ErrTicketNotFound
	}
	s.tickets[ticket.TicketID] = ticket
	return nil
}

func (s *Store) GetTicket(_ context.Context, ticketID string) (entities.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.tickets[strings.TrimSpace(ticketID)]
	if !exists {
		return entities.Ticket{}, domainerrors.ErrTicketNotFound
	}
	return item, nil
}

func (s *Store) ListTickets(_ context.Context, filter ports.TicketFilter) ([]entities.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Ticket, 0, len(s.tickets))
	for _, ticket := range s.tickets {
		if filter.CampaignID != "" && ticket.CampaignID != filter.CampaignID {
			continue
		}
		if filter.ChannelID != "" && ticket.ChannelID != filter.ChannelID {
			continue
		}
		if filter.Status != "" && ticket.Status != filter.Status {
			continue
		}
		items = append(items, ticket)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].TicketID < items[j].TicketID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) DeleteTicket(_ context.Context, ticketID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tickets[ticketID]; !exists {
		return domainerrors.ErrTicketNotFound
	}
	delete(s.tickets, ticketID)
	return nil
}

func (s *Store) TransitionTicket(_ context.Context, ticket entities.Ticket, expected entities.TicketStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.tickets[ticket.TicketID]
	if !exists {
		return domainerrors.ErrTicketNotFound
	}
	if current.Status != expected {
		return domainerrors.ErrTicketStatusConflict
	}
	s.tickets[ticket.TicketID] = ticket
	return nil
}

// Now lets the Store double as ports.Clock for in-memory wiring.
func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

// NewID lets the Store double as ports.IDGenerator for in-memory wiring.
func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
