package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clipbot/internal/core/domain"
	"clipbot/internal/core/port"
)

type Status struct {
	store      port.BindingStore
	checker    port.ResourceChecker
	responder  port.Responder
	authorizer port.Authorizer
}

func NewStatus(store port.BindingStore, checker port.ResourceChecker, responder port.Responder,
	authorizer port.Authorizer) *Status {
	return &Status{store: store, checker: checker, responder: responder, authorizer: authorizer}
}

func (s *Status) Schema() domain.CommandSchema {
	return domain.CommandSchema{
		Name:        "status",
		Description: "Show current resource bindings and their health status",
		AdminOnly:   true,
	}
}

var statusTitles = map[domain.Resource]string{
	domain.StatsChannel:       "📈 Stats Channel",
	domain.LeaderboardChannel: "🏆 Leaderboard Channel",
	domain.AdminRole:          "👮 Admin Role",
}

func (s *Status) Respond(ctx context.Context, interaction *domain.Interaction) error {
	l := logger(interaction)

	ok, err := requireAdmin(ctx, s.responder, s.authorizer, interaction)
	if !ok || err != nil {
		return err
	}

	l.Info().Msg("handling request")

	// lookups against the platform can outlast the initial response window
	if err = s.responder.Defer(ctx, interaction, false); err != nil {
		return fmt.Errorf("error deferring status response: %w", err)
	}

	binding, err := s.store.Get(ctx, interaction.GuildID)
	if err != nil {
		return fmt.Errorf("error loading bindings: %w", err)
	}

	statuses, err := s.checker.CheckAll(ctx, binding)
	if err != nil {
		return fmt.Errorf("error checking bindings: %w", err)
	}

	return s.responder.Reply(ctx, interaction, domain.Reply{Content: renderStatus(binding, statuses)})
}

func renderStatus(binding *domain.GuildBinding, statuses []domain.ResourceStatus) string {
	var sb strings.Builder

	sb.WriteString("**📊 Resource Bindings Status**\n")

	for _, status := range statuses {
		fmt.Fprintf(&sb, "**%s**: %s\n", statusTitles[status.Resource], statusLine(status))
	}

	if binding == nil {
		sb.WriteString("_No bindings configured yet_")
	} else {
		fmt.Fprintf(&sb, "_Last updated: <t:%d:f>_", binding.UpdatedAt.Unix())
	}

	return sb.String()
}

func statusLine(status domain.ResourceStatus) string {
	switch status.Health {
	case domain.BoundHealthy:
		return "✅ Bound to " + mention(status.Resource, status.ID)
	case domain.BoundStale:
		kind := status.Resource.Kind()
		switch {
		case errors.Is(status.Reason, domain.ErrResourceNotFound):
			return fmt.Sprintf("⚠️ Bound to deleted %s (%s)", kind, status.ID)
		case errors.Is(status.Reason, domain.ErrWrongResourceKind):
			return fmt.Sprintf("⚠️ Bound to a %s that is no longer text based (%s)", kind, status.ID)
		default:
			return fmt.Sprintf("⚠️ Bound to inaccessible %s (%s)", kind, status.ID)
		}
	default:
		return "❌ Not bound"
	}
}
