package port

import (
	"context"

	"clipbot/internal/core/domain"
)

type Authorizer interface {
	// IsAuthorized reports whether the invoking member may run admin commands. Unauthorized members are told so.
	IsAuthorized(ctx context.Context, interaction *domain.Interaction) (bool, error)
}
