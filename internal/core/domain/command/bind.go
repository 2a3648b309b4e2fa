package command

import (
	"context"
	"fmt"

	"clipbot/internal/core/domain"
	"clipbot/internal/core/port"
)

type Bind struct {
	store      port.BindingStore
	responder  port.Responder
	authorizer port.Authorizer
}

func NewBind(store port.BindingStore, responder port.Responder, authorizer port.Authorizer) *Bind {
	return &Bind{store: store, responder: responder, authorizer: authorizer}
}

func (b *Bind) Schema() domain.CommandSchema {
	return domain.CommandSchema{
		Name:        "bind",
		Description: "Bind a resource to a channel or role",
		AdminOnly:   true,
		Options: []domain.OptionSchema{
			resourceOption("The resource to bind"),
			{
				Name:             "channel",
				Description:      "The channel to bind (for channel resources)",
				Type:             domain.OptionChannel,
				TextChannelsOnly: true,
			},
			{
				Name:        "role",
				Description: "The role to bind (for role resources)",
				Type:        domain.OptionRole,
			},
		},
	}
}

func (b *Bind) Respond(ctx context.Context, interaction *domain.Interaction) error {
	l := logger(interaction)

	ok, err := requireAdmin(ctx, b.responder, b.authorizer, interaction)
	if !ok || err != nil {
		return err
	}

	resource, err := parseResource(interaction)
	if err != nil {
		return err
	}

	l.Info().Str("resource", string(resource)).Msg("handling request")

	target, problem := bindTarget(resource, interaction)
	if problem != "" {
		l.Debug().Str("problem", problem).Msg("rejecting bind request")
		return b.responder.Reply(ctx, interaction, ephemeral(problem))
	}

	_, err = b.store.Upsert(ctx, interaction.GuildID, domain.UpdateOf(resource, domain.Set(target)))
	if err != nil {
		return fmt.Errorf("error binding %s: %w", resource, err)
	}

	l.Info().Str("resource", string(resource)).Str("resourceId", target).Msg("resource bound")

	return b.responder.Reply(ctx, interaction, domain.Reply{
		Content: fmt.Sprintf("✅ Successfully bound **%s** to %s", resource.Label(), mention(resource, target)),
	})
}

// bindTarget picks the option matching the resource's kind. The second
// return value is a user-facing reason when the options don't fit.
func bindTarget(resource domain.Resource, interaction *domain.Interaction) (string, string) {
	channel, hasChannel := interaction.StringOption("channel")
	role, hasRole := interaction.StringOption("role")

	if resource.Kind() == domain.RoleResource {
		switch {
		case !hasRole:
			return "", fmt.Sprintf("You must specify a role for the %s resource!", resource)
		case hasChannel:
			return "", fmt.Sprintf("You cannot bind a channel to the %s resource!", resource)
		}
		return role, ""
	}

	switch {
	case !hasChannel:
		return "", fmt.Sprintf("You must specify a channel for the %s resource!", resource)
	case hasRole:
		return "", fmt.Sprintf("You cannot bind a role to the %s resource!", resource)
	}
	return channel, ""
}
