package service

import (
	"context"
	"errors"
	"fmt"

	"clipbot/internal/core/domain"
	"clipbot/internal/core/port"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ResourceHealthChecker resolves bound identifiers against the platform. It
// never writes to the binding store; stale slots are only reported.
type ResourceHealthChecker struct {
	directory port.GuildDirectory
}

func NewResourceHealthChecker(directory port.GuildDirectory) *ResourceHealthChecker {
	return &ResourceHealthChecker{directory: directory}
}

func (c *ResourceHealthChecker) Check(ctx context.Context, binding *domain.GuildBinding,
	resource domain.Resource) (domain.ResourceStatus, error) {
	status := domain.ResourceStatus{Resource: resource, ID: binding.ID(resource)}
	if status.ID == "" {
		status.Health = domain.Unbound
		return status, nil
	}

	l := log.With().
		Str("guildId", binding.GuildID).
		Str("resource", string(resource)).
		Str("resourceId", status.ID).
		Logger()

	var err error
	switch resource.Kind() {
	case domain.RoleResource:
		_, err = c.directory.FetchRole(ctx, binding.GuildID, status.ID)
	default:
		var ch *domain.Channel
		ch, err = c.directory.FetchChannel(ctx, binding.GuildID, status.ID)
		if err == nil && !ch.TextCapable {
			err = domain.ErrWrongResourceKind
		}
	}

	switch {
	case err == nil:
		status.Health = domain.BoundHealthy
	case errors.Is(err, domain.ErrResourceNotFound),
		errors.Is(err, domain.ErrResourceAccessDenied),
		errors.Is(err, domain.ErrWrongResourceKind):
		l.Warn().Err(err).Msg("bound resource is stale")
		status.Health = domain.BoundStale
		status.Reason = err
	default:
		return status, fmt.Errorf("failed to look up %s: %w", resource.Label(), err)
	}

	return status, nil
}

func (c *ResourceHealthChecker) CheckAll(ctx context.Context, binding *domain.GuildBinding) (
	[]domain.ResourceStatus, error) {
	statuses := make([]domain.ResourceStatus, len(domain.Resources))

	g, ctx := errgroup.WithContext(ctx)
	for i, resource := range domain.Resources {
		g.Go(func() error {
			status, err := c.Check(ctx, binding, resource)
			if err != nil {
				return err
			}
			statuses[i] = status
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return statuses, nil
}
