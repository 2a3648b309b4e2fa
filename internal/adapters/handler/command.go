package handler

import (
	"context"
	"time"

	"clipbot/internal/adapters/discord"
	"clipbot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, interaction *domain.Interaction) domain.DispatchOutcome
}

// Command feeds gateway interactions to the dispatcher. discordgo runs each
// event handler on its own goroutine, so interactions are served concurrently.
type Command struct {
	dispatcher Dispatcher
	now        func() time.Time
}

func NewCommand(dispatcher Dispatcher) *Command {
	return &Command{dispatcher: dispatcher, now: time.Now}
}

func (c *Command) Handle(_ *discordgo.Session, event *discordgo.InteractionCreate) {
	if event == nil || event.Interaction == nil {
		return
	}

	interaction := discord.ToInteraction(event.Interaction, c.now())

	log.Debug().
		Str("interactionId", interaction.ID).
		Str("command", interaction.CommandName).
		Msg("received interaction")

	outcome := c.dispatcher.Dispatch(context.Background(), interaction)

	log.Debug().
		Str("interactionId", interaction.ID).
		Str("outcome", string(outcome)).
		Msg("interaction dispatched")
}
