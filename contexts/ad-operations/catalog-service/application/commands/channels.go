package commands

import (
	"context"
	"log/slog"
	"strings"

	application "trafficdesk/contexts/ad-operations/catalog-service/application"
	"trafficdesk/contexts/ad-operations/catalog-service/domain/entities"
	domainerrors "trafficdesk/contexts/ad-operations/catalog-service/domain/errors"
	"trafficdesk/contexts/ad-operations/catalog-service/ports"
	"trafficdesk/contexts/ad-operations/ticket-service/domain/platforms"
)

type CreateChannelCommand struct {
	PlatformName  string
	APIIdentifier string
}

type CreateChannelUseCase struct {
	Channels    ports.ChannelRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc CreateChannelUseCase) Execute(ctx context.Context, cmd CreateChannelCommand) (entities.Channel, error) {
	logger := application.ResolveLogger(uc.Logger)
	platformName := strings.TrimSpace(cmd.PlatformName)
	apiIdentifier := strings.TrimSpace(cmd.APIIdentifier)
	if apiIdentifier == "" {
		return entities.Channel{}, domainerrors.ErrInvalidCatalogInput
	}
	// Reject channels no translator exists for at creation time rather
	// than at first deployment.
	if _, err := platforms.Parse(platformName); err != nil {
		return entities.Channel{}, err
	}

	now := uc.Clock.Now().UTC()
	channelID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Channel{}, err
	}
	channel := entities.Channel{
		ChannelID:     channelID,
		PlatformName:  platformName,
		APIIdentifier: apiIdentifier,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.Channels.CreateChannel(ctx, channel); err != nil {
		return entities.Channel{}, err
	}
	logger.Info("channel created",
		"event", "channel_created",
		"module", "ad-operations/catalog-service",
		"layer", "application",
		"channel_id", channel.ChannelID,
		"platform_name", channel.PlatformName,
	)
	return channel, nil
}

type UpdateChannelCommand struct {
	ChannelID    string
	PlatformName *string
}

type UpdateChannelUseCase struct {
	Channels ports.ChannelRepository
	Clock    ports.Clock
	Logger   *slog.Logger
}

func (uc UpdateChannelUseCase) Execute(ctx context.Context, cmd UpdateChannelCommand) (entities.Channel, error) {
	channel, err := uc.Channels.GetChannel(ctx, cmd.ChannelID)
	if err != nil {
		return entities.Channel{}, err
	}
	if cmd.PlatformName != nil {
		platformName := strings.TrimSpace(*cmd.PlatformName)
		if _, err := platforms.Parse(platformName); err != nil {
			return entities.Channel{}, err
		}
		channel.PlatformName = platformName
	}
	channel.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Channels.UpdateChannel(ctx, channel); err != nil {
		return entities.Channel{}, err
	}
	return channel, nil
}

type DeleteChannelUseCase struct {
	Channels ports.ChannelRepository
	Logger   *slog.Logger
}

func (uc DeleteChannelUseCase) Execute(ctx context.Context, channelID string) error {
	if _, err := uc.Channels.GetChannel(ctx, channelID); err != nil {
		return err
	}
	return uc.Channels.DeleteChannel(ctx, channelID)
}
