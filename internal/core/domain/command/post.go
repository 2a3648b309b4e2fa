package command

import (
	"context"
	"fmt"

	"clipbot/internal/core/domain"
	"clipbot/internal/core/port"
)

// poster delivers a message to a guild's bound channel after confirming the
// binding still resolves.
type poster struct {
	store     port.BindingStore
	checker   port.ResourceChecker
	responder port.Responder
	channels  port.ChannelPoster
}

type postReplies struct {
	unbound string
	sent    string
	failed  string
}

func (p *poster) post(ctx context.Context, interaction *domain.Interaction, resource domain.Resource,
	content string, replies postReplies) error {
	l := logger(interaction).With().Str("resource", string(resource)).Logger()

	ok, err := requireGuild(ctx, p.responder, interaction)
	if !ok || err != nil {
		return err
	}

	l.Info().Msg("handling request")

	binding, err := p.store.Get(ctx, interaction.GuildID)
	if err != nil {
		return fmt.Errorf("error loading bindings: %w", err)
	}

	status, err := p.checker.Check(ctx, binding, resource)
	if err != nil {
		return fmt.Errorf("error checking %s: %w", resource, err)
	}

	switch status.Health {
	case domain.Unbound:
		return p.responder.Reply(ctx, interaction, ephemeral(replies.unbound))
	case domain.BoundStale:
		return p.responder.Reply(ctx, interaction, ephemeral(fmt.Sprintf(
			"⚠️ The configured %s (ID: %s) no longer exists or is not accessible. "+
				"Please reconfigure it using `/bind`.", resource.Label(), status.ID)))
	}

	if err = p.channels.SendChannelMessage(ctx, status.ID, content); err != nil {
		l.Error().Err(err).Str("channelId", status.ID).Msg("error posting to bound channel")
		return p.responder.Reply(ctx, interaction, ephemeral(replies.failed))
	}

	return p.responder.Reply(ctx, interaction, ephemeral(fmt.Sprintf(replies.sent, mention(resource, status.ID))))
}
