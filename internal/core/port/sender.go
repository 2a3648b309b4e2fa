package port

import (
	"context"

	"clipbot/internal/core/domain"
)

type Responder interface {
	// Respond sends the initial response. It fails with domain.ErrAlreadyAcknowledged if the interaction was
	// already answered or deferred.
	Respond(ctx context.Context, interaction *domain.Interaction, reply domain.Reply) error
	// Defer sends a provisional "thinking" acknowledgement.
	Defer(ctx context.Context, interaction *domain.Interaction, ephemeral bool) error
	// FollowUp appends a message after an initial or deferred response.
	FollowUp(ctx context.Context, interaction *domain.Interaction, reply domain.Reply) error
	// Reply picks the right call for the interaction's current response phase.
	Reply(ctx context.Context, interaction *domain.Interaction, reply domain.Reply) error
}

type ChannelPoster interface {
	// SendChannelMessage posts content to a guild channel.
	SendChannelMessage(ctx context.Context, channelID string, content string) error
}
