package command

import (
	"context"
	"fmt"

	"clipbot/internal/core/domain"
	"clipbot/internal/core/port"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const guildOnly = "This command can only be used in a server!"

var resourceChoices = []domain.OptionChoice{
	{Name: "Stats Channel", Value: string(domain.StatsChannel)},
	{Name: "Leaderboard Channel", Value: string(domain.LeaderboardChannel)},
	{Name: "Admin Role", Value: string(domain.AdminRole)},
}

func resourceOption(description string) domain.OptionSchema {
	return domain.OptionSchema{
		Name:        "resource",
		Description: description,
		Type:        domain.OptionString,
		Required:    true,
		Choices:     resourceChoices,
	}
}

func logger(interaction *domain.Interaction) zerolog.Logger {
	return log.With().
		Str("interactionId", interaction.ID).
		Str("guildId", interaction.GuildID).
		Str("userId", interaction.UserID).
		Str("command", interaction.CommandName).
		Logger()
}

func ephemeral(content string) domain.Reply {
	return domain.Reply{Content: content, Ephemeral: true}
}

// requireGuild answers interactions from direct messages and reports whether
// the command may continue.
func requireGuild(ctx context.Context, responder port.Responder, interaction *domain.Interaction) (bool, error) {
	if interaction.InGuild() {
		return true, nil
	}

	if err := responder.Reply(ctx, interaction, ephemeral(guildOnly)); err != nil {
		return false, fmt.Errorf("error sending guild only notice: %w", err)
	}

	return false, nil
}

// requireAdmin combines the guild and authorization checks of admin commands.
func requireAdmin(ctx context.Context, responder port.Responder, authorizer port.Authorizer,
	interaction *domain.Interaction) (bool, error) {
	ok, err := requireGuild(ctx, responder, interaction)
	if !ok || err != nil {
		return false, err
	}

	return authorizer.IsAuthorized(ctx, interaction)
}

func mention(resource domain.Resource, id string) string {
	if resource.Kind() == domain.RoleResource {
		return fmt.Sprintf("<@&%s>", id)
	}
	return fmt.Sprintf("<#%s>", id)
}

func parseResource(interaction *domain.Interaction) (domain.Resource, error) {
	raw, _ := interaction.StringOption("resource")

	resource, ok := domain.ParseResource(raw)
	if !ok {
		return "", fmt.Errorf("unknown resource %q", raw)
	}

	return resource, nil
}
