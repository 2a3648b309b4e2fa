package command

import (
	"context"

	"clipbot/internal/core/domain"
	"clipbot/internal/core/port"
)

const pong = "🏓 Pong! Bot is alive and responding!"

type PingStats struct {
	poster
}

func NewPingStats(store port.BindingStore, checker port.ResourceChecker, responder port.Responder,
	channels port.ChannelPoster) *PingStats {
	return &PingStats{poster{store: store, checker: checker, responder: responder, channels: channels}}
}

func (p *PingStats) Schema() domain.CommandSchema {
	return domain.CommandSchema{
		Name:        "ping-stats",
		Description: "Send a pong message to the configured stats channel",
	}
}

func (p *PingStats) Respond(ctx context.Context, interaction *domain.Interaction) error {
	return p.post(ctx, interaction, domain.StatsChannel, pong, postReplies{
		unbound: "⚠️ No stats channel has been configured! Use `/bind stats_channel #channel` to set one up.",
		sent:    "✅ Pong sent to %s!",
		failed:  "❌ Failed to send message to stats channel. Please check bot permissions.",
	})
}
