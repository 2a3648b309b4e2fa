package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Session is the part of *discordgo.Session the bot talks to.
type Session interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse,
		options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit,
		options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams,
		options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSend(channelID string, content string,
		options ...discordgo.RequestOption) (*discordgo.Message, error)
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error)
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand,
		options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

var _ Session = (*discordgo.Session)(nil)

// NewSession creates a bot session with discordgo's logging routed to zerolog.
func NewSession(token string, level zerolog.Level) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}

	s.Identify.Intents = discordgo.IntentsGuilds
	s.LogLevel = logLevel(level)
	discordgo.Logger = logBridge

	return s, nil
}

func logLevel(level zerolog.Level) int {
	switch {
	case level <= zerolog.DebugLevel:
		return discordgo.LogDebug
	case level == zerolog.InfoLevel:
		return discordgo.LogInformational
	case level == zerolog.WarnLevel:
		return discordgo.LogWarning
	default:
		return discordgo.LogError
	}
}

func logBridge(msgL, _ int, format string, a ...any) {
	var e *zerolog.Event
	switch msgL {
	case discordgo.LogError:
		e = log.Error()
	case discordgo.LogWarning:
		e = log.Warn()
	case discordgo.LogInformational:
		e = log.Info()
	default:
		e = log.Debug()
	}

	e.Str("component", "discordgo").Msgf(format, a...)
}
