package port

import (
	"context"

	"clipbot/internal/core/domain"
)

type GuildDirectory interface {
	// FetchChannel looks up a channel of the guild. Missing channels fail with domain.ErrResourceNotFound, and
	// inaccessible ones with domain.ErrResourceAccessDenied.
	FetchChannel(ctx context.Context, guildID string, channelID string) (*domain.Channel, error)
	// FetchRole looks up a role of the guild, with the same error semantics as FetchChannel.
	FetchRole(ctx context.Context, guildID string, roleID string) (*domain.Role, error)
}

type ResourceChecker interface {
	// Check classifies one slot of a binding. It only fails on platform I/O errors other than not-found or
	// access-denied.
	Check(ctx context.Context, binding *domain.GuildBinding, resource domain.Resource) (domain.ResourceStatus, error)
	// CheckAll classifies every slot, in domain.Resources order.
	CheckAll(ctx context.Context, binding *domain.GuildBinding) ([]domain.ResourceStatus, error)
}
