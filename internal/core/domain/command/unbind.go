package command

import (
	"context"
	"fmt"

	"clipbot/internal/core/domain"
	"clipbot/internal/core/port"
)

type Unbind struct {
	store      port.BindingStore
	responder  port.Responder
	authorizer port.Authorizer
}

func NewUnbind(store port.BindingStore, responder port.Responder, authorizer port.Authorizer) *Unbind {
	return &Unbind{store: store, responder: responder, authorizer: authorizer}
}

func (u *Unbind) Schema() domain.CommandSchema {
	return domain.CommandSchema{
		Name:        "unbind",
		Description: "Remove a resource binding",
		AdminOnly:   true,
		Options:     []domain.OptionSchema{resourceOption("The resource to unbind")},
	}
}

func (u *Unbind) Respond(ctx context.Context, interaction *domain.Interaction) error {
	l := logger(interaction)

	ok, err := requireAdmin(ctx, u.responder, u.authorizer, interaction)
	if !ok || err != nil {
		return err
	}

	resource, err := parseResource(interaction)
	if err != nil {
		return err
	}

	l.Info().Str("resource", string(resource)).Msg("handling request")

	_, err = u.store.Upsert(ctx, interaction.GuildID, domain.UpdateOf(resource, domain.Clear()))
	if err != nil {
		return fmt.Errorf("error unbinding %s: %w", resource, err)
	}

	return u.responder.Reply(ctx, interaction, domain.Reply{
		Content: fmt.Sprintf("✅ **%s** is no longer bound", resource.Label()),
	})
}

type ResetBindings struct {
	store      port.BindingStore
	responder  port.Responder
	authorizer port.Authorizer
}

func NewResetBindings(store port.BindingStore, responder port.Responder, authorizer port.Authorizer) *ResetBindings {
	return &ResetBindings{store: store, responder: responder, authorizer: authorizer}
}

func (r *ResetBindings) Schema() domain.CommandSchema {
	return domain.CommandSchema{
		Name:        "reset-bindings",
		Description: "Remove every resource binding of this server",
		AdminOnly:   true,
	}
}

func (r *ResetBindings) Respond(ctx context.Context, interaction *domain.Interaction) error {
	l := logger(interaction)

	ok, err := requireAdmin(ctx, r.responder, r.authorizer, interaction)
	if !ok || err != nil {
		return err
	}

	l.Info().Msg("handling request")

	if err = r.store.Delete(ctx, interaction.GuildID); err != nil {
		return fmt.Errorf("error resetting bindings: %w", err)
	}

	return r.responder.Reply(ctx, interaction, domain.Reply{Content: "✅ All bindings have been removed"})
}
