package cmd

import (
	"clipbot/internal/core/domain/command"
	"clipbot/internal/core/port"
)

type commandDeps struct {
	store      port.BindingStore
	checker    port.ResourceChecker
	responder  port.Responder
	channels   port.ChannelPoster
	authorizer port.Authorizer
	storage    string
}

// newRegistry registers the full command set and seals the registry.
func newRegistry(d commandDeps) (*command.Registry, error) {
	registry := command.NewRegistry()

	err := registry.RegisterAll(
		command.NewBind(d.store, d.responder, d.authorizer),
		command.NewUnbind(d.store, d.responder, d.authorizer),
		command.NewResetBindings(d.store, d.responder, d.authorizer),
		command.NewStatus(d.store, d.checker, d.responder, d.authorizer),
		command.NewPingStats(d.store, d.checker, d.responder, d.channels),
		command.NewLeaderboard(d.store, d.checker, d.responder, d.channels),
		command.NewDebug(registry, d.storage, d.responder, d.authorizer),
	)
	if err != nil {
		return nil, err
	}

	registry.Seal()

	return registry, nil
}
