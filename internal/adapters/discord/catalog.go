package discord

import (
	"context"
	"fmt"

	"clipbot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

var optionTypes = map[domain.OptionType]discordgo.ApplicationCommandOptionType{
	domain.OptionString:  discordgo.ApplicationCommandOptionString,
	domain.OptionInteger: discordgo.ApplicationCommandOptionInteger,
	domain.OptionBoolean: discordgo.ApplicationCommandOptionBoolean,
	domain.OptionUser:    discordgo.ApplicationCommandOptionUser,
	domain.OptionChannel: discordgo.ApplicationCommandOptionChannel,
	domain.OptionRole:    discordgo.ApplicationCommandOptionRole,
}

// ApplicationCommand translates a command schema into its catalog entry.
func ApplicationCommand(schema domain.CommandSchema) (*discordgo.ApplicationCommand, error) {
	cmd := &discordgo.ApplicationCommand{
		Name:        schema.Name,
		Description: schema.Description,
		Type:        discordgo.ChatApplicationCommand,
	}

	if schema.AdminOnly {
		perms := int64(discordgo.PermissionAdministrator)
		cmd.DefaultMemberPermissions = &perms
	}

	for _, opt := range schema.Options {
		t, ok := optionTypes[opt.Type]
		if !ok {
			return nil, fmt.Errorf("%w: option %q of %q has unsupported type %d",
				domain.ErrInvalidDescriptor, opt.Name, schema.Name, opt.Type)
		}

		o := &discordgo.ApplicationCommandOption{
			Type:        t,
			Name:        opt.Name,
			Description: opt.Description,
			Required:    opt.Required,
		}

		if opt.TextChannelsOnly {
			o.ChannelTypes = []discordgo.ChannelType{discordgo.ChannelTypeGuildText}
		}

		for _, c := range opt.Choices {
			o.Choices = append(o.Choices, &discordgo.ApplicationCommandOptionChoice{Name: c.Name, Value: c.Value})
		}

		cmd.Options = append(cmd.Options, o)
	}

	return cmd, nil
}

// Publisher replaces the application's published command set.
type Publisher struct {
	session Session
	appID   string
}

func NewPublisher(session Session, appID string) *Publisher {
	return &Publisher{session: session, appID: appID}
}

// Publish overwrites the commands of guildID, or the global commands when
// guildID is empty.
func (p *Publisher) Publish(ctx context.Context, guildID string, schemas []domain.CommandSchema) (
	[]*discordgo.ApplicationCommand, error) {
	cmds := make([]*discordgo.ApplicationCommand, 0, len(schemas))
	for _, s := range schemas {
		cmd, err := ApplicationCommand(s)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}

	scope := "global"
	if guildID != "" {
		scope = "guild " + guildID
	}

	log.Info().Int("count", len(cmds)).Str("scope", scope).Msg("publishing application commands")

	published, err := p.session.ApplicationCommandBulkOverwrite(p.appID, guildID, cmds, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("error publishing commands to %s: %w", scope, err)
	}

	return published, nil
}
