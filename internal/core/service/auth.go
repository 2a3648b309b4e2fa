package service

import (
	"context"
	"fmt"
	"slices"

	"clipbot/internal/core/domain"
	"clipbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

// AdminAuthorizer admits administrators and holders of the guild's bound
// admin role.
type AdminAuthorizer struct {
	store     port.BindingStore
	responder port.Responder
}

func NewAdminAuthorizer(store port.BindingStore, responder port.Responder) *AdminAuthorizer {
	return &AdminAuthorizer{
		store:     store,
		responder: responder,
	}
}

const forbidden = "You are not allowed to use this command. Ask a server administrator to grant you the admin role."

func (a *AdminAuthorizer) IsAuthorized(ctx context.Context, interaction *domain.Interaction) (bool, error) {
	if !interaction.InGuild() {
		return false, domain.ErrNotInGuild
	}

	if interaction.IsAdministrator {
		return true, nil
	}

	binding, err := a.store.Get(ctx, interaction.GuildID)
	if err != nil {
		return false, fmt.Errorf("failed to load admin role: %w", err)
	}

	if roleID := binding.ID(domain.AdminRole); roleID != "" && slices.Contains(interaction.RoleIDs, roleID) {
		return true, nil
	}

	err = a.responder.Reply(ctx, interaction, domain.Reply{Content: forbidden, Ephemeral: true})
	if err != nil {
		log.Err(err).Str("interactionId", interaction.ID).Msg("failed to send unauthorized warning")
	}

	return false, nil
}
