package discord

import (
	"context"
	"fmt"

	"clipbot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Responder answers interactions and keeps their response phase current.
type Responder struct {
	session Session
}

func NewResponder(session Session) *Responder {
	return &Responder{session: session}
}

func flags(ephemeral bool) discordgo.MessageFlags {
	if ephemeral {
		return discordgo.MessageFlagsEphemeral
	}
	return 0
}

func ref(interaction *domain.Interaction) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:    interaction.ID,
		AppID: interaction.AppID,
		Token: interaction.Token,
	}
}

func (r *Responder) Respond(ctx context.Context, interaction *domain.Interaction, reply domain.Reply) error {
	return r.acknowledge(ctx, interaction, domain.PhaseResponded, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: reply.Content,
			Flags:   flags(reply.Ephemeral),
		},
	})
}

func (r *Responder) Defer(ctx context.Context, interaction *domain.Interaction, ephemeral bool) error {
	return r.acknowledge(ctx, interaction, domain.PhaseDeferred, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: flags(ephemeral)},
	})
}

func (r *Responder) acknowledge(ctx context.Context, interaction *domain.Interaction, next domain.ResponsePhase,
	resp *discordgo.InteractionResponse) error {
	if phase := interaction.Phase(); phase != domain.PhaseNone {
		return fmt.Errorf("%w: interaction is %s", domain.ErrAlreadyAcknowledged, phase)
	}

	err := r.session.InteractionRespond(ref(interaction), resp, discordgo.WithContext(ctx))
	if err != nil {
		if isAcknowledged(err) {
			interaction.Advance(domain.PhaseResponded)
			return fmt.Errorf("%w: %w", domain.ErrAlreadyAcknowledged, err)
		}
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	interaction.Advance(next)

	log.Debug().
		Str("interactionId", interaction.ID).
		Str("phase", next.String()).
		Msg("interaction acknowledged")

	return nil
}

func (r *Responder) FollowUp(ctx context.Context, interaction *domain.Interaction, reply domain.Reply) error {
	if interaction.Phase() == domain.PhaseNone {
		return domain.ErrNotAcknowledged
	}

	_, err := r.session.FollowupMessageCreate(ref(interaction), false, &discordgo.WebhookParams{
		Content: reply.Content,
		Flags:   flags(reply.Ephemeral),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}

// Reply answers with whichever call the interaction's phase allows. A
// deferred interaction gets its placeholder edited.
func (r *Responder) Reply(ctx context.Context, interaction *domain.Interaction, reply domain.Reply) error {
	switch interaction.Phase() {
	case domain.PhaseNone:
		return r.Respond(ctx, interaction, reply)
	case domain.PhaseDeferred:
		content := reply.Content
		_, err := r.session.InteractionResponseEdit(ref(interaction), &discordgo.WebhookEdit{Content: &content},
			discordgo.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
		}
		interaction.Advance(domain.PhaseResponded)
		return nil
	default:
		return r.FollowUp(ctx, interaction, reply)
	}
}

func (r *Responder) SendChannelMessage(ctx context.Context, channelID string, content string) error {
	_, err := r.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("error sending message to channel %s: %w", channelID, err)
	}

	return nil
}
