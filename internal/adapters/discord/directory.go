package discord

import (
	"context"
	"fmt"

	"clipbot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

// Directory looks up guild channels and roles over the REST API.
type Directory struct {
	session Session
}

func NewDirectory(session Session) *Directory {
	return &Directory{session: session}
}

func (d *Directory) FetchChannel(ctx context.Context, guildID string, channelID string) (*domain.Channel, error) {
	ch, err := d.session.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, classify(err, "channel "+channelID)
	}

	// a channel moved to or living in another guild is gone from this one
	if ch.GuildID != guildID {
		return nil, fmt.Errorf("channel %s: %w in guild %s", channelID, domain.ErrResourceNotFound, guildID)
	}

	return &domain.Channel{
		ID:          ch.ID,
		GuildID:     ch.GuildID,
		Name:        ch.Name,
		TextCapable: textCapable(ch.Type),
	}, nil
}

func textCapable(t discordgo.ChannelType) bool {
	switch t {
	case discordgo.ChannelTypeGuildText,
		discordgo.ChannelTypeGuildNews,
		discordgo.ChannelTypeGuildNewsThread,
		discordgo.ChannelTypeGuildPublicThread,
		discordgo.ChannelTypeGuildPrivateThread:
		return true
	default:
		return false
	}
}

func (d *Directory) FetchRole(ctx context.Context, guildID string, roleID string) (*domain.Role, error) {
	roles, err := d.session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, classify(err, "roles of guild "+guildID)
	}

	for _, role := range roles {
		if role.ID == roleID {
			return &domain.Role{ID: role.ID, GuildID: guildID, Name: role.Name}, nil
		}
	}

	return nil, fmt.Errorf("role %s: %w", roleID, domain.ErrResourceNotFound)
}
