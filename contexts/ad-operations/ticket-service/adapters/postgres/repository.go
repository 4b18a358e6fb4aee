package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"trafficdesk/contexts/ad-operations/ticket-service/domain/entities"
	domainerrors "trafficdesk/contexts/ad-operations/ticket-service/domain/errors"
	"trafficdesk/contexts/ad-operations/ticket-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateTicket(ctx context.Context, ticket entities.Ticket) error {
	row := ticketModelFromEntity(ticket)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidTicketInput
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateTicket(ctx context.Context, ticket entities.Ticket) error {
	result := r.db.WithContext(ctx).
		Model(&ticketModel{}).
		Where("ticket_id = ?", strings.TrimSpace(ticket.TicketID)).
		Updates(ticketUpdatesFromEntity(ticket))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrTicketNotFound
	}
	return nil
}

func (r *Repository) GetTicket(ctx context.Context, ticketID string) (entities.Ticket, error) {
	var row ticketModel
	err := r.db.WithContext(ctx).
		Where("ticket_id = ?", strings.TrimSpace(ticketID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Ticket{}, domainerrors.ErrTicketNotFound
		}
		return entities.Ticket{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListTickets(ctx context.Context, filter ports.TicketFilter) ([]entities.Ticket, error) {
	tx := r.db.WithContext(ctx).Model(&ticketModel{})
	if strings.TrimSpace(filter.CampaignID) != "" {
		tx = tx.Where("campaign_id = ?", strings.TrimSpace(filter.CampaignID))
	}
	if strings.TrimSpace(filter.ChannelID) != "" {
		tx = tx.Where("channel_id = ?", strings.TrimSpace(filter.ChannelID))
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}

	var rows []ticketModel
	if err := tx.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.Ticket, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) DeleteTicket(ctx context.Context, ticketID string) error {
	result := r.db.WithContext(ctx).
		Where("ticket_id = ?", strings.TrimSpace(ticketID)).
		Delete(&ticketModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrTicketNotFound
	}
	return nil
}

// TransitionTicket is a compare-and-set on status: the update only lands
// when the stored row still carries the expected status, so concurrent
// workers cannot both finalize the same ticket.
func (r *Repository) TransitionTicket(ctx context.Context, ticket entities.Ticket, expected entities.TicketStatus) error {
	result := r.db.WithContext(ctx).
		Model(&ticketModel{}).
		Where("ticket_id = ? AND status = ?", strings.TrimSpace(ticket.TicketID), string(expected)).
		Updates(ticketUpdatesFromEntity(ticket))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&ticketModel{}).
			Where("ticket_id = ?", strings.TrimSpace(ticket.TicketID)).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrTicketNotFound
		}
		return domainerrors.ErrTicketStatusConflict
	}
	return nil
}

type ticketModel struct {
	TicketID           string    `gorm:"column:ticket_id;primaryKey"`
	CampaignID         string    `gorm:"column:campaign_id"`
	ChannelID          string    `gorm:"column:channel_id"`
	RequestType        string    `gorm:"column:request_type"`
	PayloadConfig      []byte    `gorm:"column:payload_config;type:jsonb"`
	Status             string    `gorm:"column:status"`
	ExternalPlatformID string    `gorm:"column:external_platform_id"`
	QAFailureReason    string    `gorm:"column:qa_failure_reason"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (ticketModel) TableName() string {
	return "traffic_tickets"
}

func (m ticketModel) toEntity() entities.Ticket {
	return entities.Ticket{
		TicketID:           m.TicketID,
		CampaignID:         m.CampaignID,
		ChannelID:          m.ChannelID,
		RequestType:        m.RequestType,
		PayloadConfig:      json.RawMessage(m.PayloadConfig),
		Status:             entities.TicketStatus(m.Status),
		ExternalPlatformID: m.ExternalPlatformID,
		QAFailureReason:    m.QAFailureReason,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func ticketModelFromEntity(ticket entities.Ticket) ticketModel {
	return ticketModel{
		TicketID:           strings.TrimSpace(ticket.TicketID),
		CampaignID:         strings.TrimSpace(ticket.CampaignID),
		ChannelID:          strings.TrimSpace(ticket.ChannelID),
		RequestType:        ticket.RequestType,
		PayloadConfig:      []byte(ticket.PayloadConfig),
		Status:             string(ticket.Status),
		ExternalPlatformID: ticket.ExternalPlatformID,
		QAFailureReason:    ticket.QAFailureReason,
		CreatedAt:          ticket.CreatedAt.UTC(),
		UpdatedAt:          ticket.UpdatedAt.UTC(),
	}
}

func ticketUpdatesFromEntity(ticket entities.Ticket) map[string]any {
	return map[string]any{
		"request_type":         ticket.RequestType,
		"payload_config":       []byte(ticket.PayloadConfig),
		"status":               string(ticket.Status),
		"external_platform_id": ticket.ExternalPlatformID,
		"qa_failure_reason":    ticket.QAFailureReason,
		"updated_at":           ticket.UpdatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
