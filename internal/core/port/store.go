package port

import (
	"context"

	"clipbot/internal/core/domain"
)

// BindingStore persists one GuildBinding per guild. Every failure wraps domain.ErrStorageUnavailable and leaves the
// stored row untouched.
type BindingStore interface {
	// Get returns the guild's binding, or nil without error if none exists.
	Get(ctx context.Context, guildID string) (*domain.GuildBinding, error)
	// Upsert merges the mentioned fields into the guild's binding, creating it if absent, and returns the result.
	Upsert(ctx context.Context, guildID string, update domain.BindingUpdate) (*domain.GuildBinding, error)
	// Delete removes the guild's binding. Deleting an absent binding is not an error.
	Delete(ctx context.Context, guildID string) error
}
