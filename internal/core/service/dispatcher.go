package service

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"clipbot/internal/core/domain"
	"clipbot/internal/core/port"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Dispatcher routes chat input interactions to registered commands and
// contains every handler failure.
type Dispatcher struct {
	registry  port.CommandRegistry
	responder port.Responder
	metrics   port.DispatchMetrics
	timeout   time.Duration
	now       func() time.Time
}

func NewDispatcher(registry port.CommandRegistry, responder port.Responder, metrics port.DispatchMetrics,
	timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		registry:  registry,
		responder: responder,
		metrics:   metrics,
		timeout:   timeout,
		now:       time.Now,
	}
}

// Dispatch never panics or returns an error.
func (d *Dispatcher) Dispatch(ctx context.Context, interaction *domain.Interaction) domain.DispatchOutcome {
	start := d.now()

	if interaction == nil || interaction.Kind != domain.KindChatInput {
		return domain.OutcomeIgnored
	}

	l := log.With().
		Str("requestId", requestID()).
		Str("interactionId", interaction.ID).
		Str("command", interaction.CommandName).
		Str("guildId", interaction.GuildID).
		Str("userId", interaction.UserID).
		Logger()

	outcome := d.dispatch(ctx, l, interaction)

	if d.metrics != nil {
		d.metrics.ObserveDispatch(interaction.CommandName, outcome, d.now().Sub(start))
	}

	return outcome
}

func (d *Dispatcher) dispatch(ctx context.Context, l zerolog.Logger,
	interaction *domain.Interaction) domain.DispatchOutcome {
	cmd, ok := d.registry.Get(interaction.CommandName)
	if !ok {
		l.Error().Msg("no handler for command")
		return domain.OutcomeUnknownCommand
	}

	l.Debug().Msg("dispatching command")

	err := d.invoke(ctx, cmd, interaction)
	if err == nil {
		return domain.OutcomeHandled
	}

	l.Error().Err(err).Str("phase", interaction.Phase().String()).Msg("command failed")
	d.sendFailure(ctx, l, interaction)

	return domain.OutcomeFailed
}

func (d *Dispatcher) invoke(ctx context.Context, cmd port.Command, interaction *domain.Interaction) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("command panicked: %v\n%s", r, debug.Stack())
		}
	}()

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	return cmd.Respond(ctx, interaction)
}

// sendFailure posts the generic failure message using the call the platform
// accepts for the interaction's phase. Windows that have already closed are
// skipped instead of producing a late, rejected message.
func (d *Dispatcher) sendFailure(ctx context.Context, l zerolog.Logger, interaction *domain.Interaction) {
	reply := domain.Reply{Content: domain.GenericFailureMessage, Ephemeral: true}
	now := d.now()

	// the handler's context may be spent; the failure notice gets its own
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), domain.InitialResponseWindow)
	defer cancel()

	var err error
	switch interaction.Phase() {
	case domain.PhaseNone:
		if !interaction.CanRespond(now) {
			l.Warn().Msg("initial response window elapsed, suppressing failure notice")
			return
		}
		err = d.responder.Respond(ctx, interaction, reply)
	default:
		if !interaction.CanFollowUp(now) {
			l.Warn().Msg("interaction token expired, suppressing failure follow-up")
			return
		}
		err = d.responder.FollowUp(ctx, interaction, reply)
	}

	if err != nil {
		if errors.Is(err, domain.ErrAlreadyAcknowledged) {
			l.Warn().Err(err).Msg("interaction acknowledged concurrently, no failure notice sent")
			return
		}
		l.Error().Err(err).Msg(domain.ErrSendingReplyFailed.Error())
	}
}

func requestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return ""
	}
	return id.String()
}
