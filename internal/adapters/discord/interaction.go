package discord

import (
	"time"

	"clipbot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

// ToInteraction converts a gateway interaction. Anything other than a chat
// input command keeps KindOther and carries no command data.
func ToInteraction(i *discordgo.Interaction, receivedAt time.Time) *domain.Interaction {
	out := &domain.Interaction{
		ID:         i.ID,
		AppID:      i.AppID,
		Token:      i.Token,
		GuildID:    i.GuildID,
		ChannelID:  i.ChannelID,
		ReceivedAt: receivedAt,
	}

	switch {
	case i.Member != nil:
		out.IsAdministrator = i.Member.Permissions&discordgo.PermissionAdministrator != 0
		out.RoleIDs = i.Member.Roles
		if i.Member.User != nil {
			out.UserID = i.Member.User.ID
			out.Username = i.Member.User.Username
		}
	case i.User != nil:
		out.UserID = i.User.ID
		out.Username = i.User.Username
	}

	if i.Type != discordgo.InteractionApplicationCommand {
		return out
	}

	data := i.ApplicationCommandData()
	if data.CommandType != discordgo.ChatApplicationCommand {
		return out
	}

	out.Kind = domain.KindChatInput
	out.CommandName = data.Name
	out.Options = make(map[string]domain.Option, len(data.Options))

	for _, opt := range data.Options {
		t, ok := domainOptionType(opt.Type)
		if !ok {
			continue
		}
		out.Options[opt.Name] = domain.Option{Name: opt.Name, Type: t, Value: opt.Value}
	}

	return out
}

func domainOptionType(t discordgo.ApplicationCommandOptionType) (domain.OptionType, bool) {
	for k, v := range optionTypes {
		if v == t {
			return k, true
		}
	}
	return 0, false
}
