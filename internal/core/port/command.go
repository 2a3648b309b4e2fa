package port

import (
	"context"

	"clipbot/internal/core/domain"
)

type Command interface {
	// Schema describes the command's name and options for the platform catalog.
	Schema() domain.CommandSchema
	// Respond handles a single interaction. Returned errors are reported to the user generically by the dispatcher.
	Respond(ctx context.Context, interaction *domain.Interaction) error
}

type CommandRegistry interface {
	// Register adds a command handler. It fails for malformed or duplicate descriptors.
	Register(handler Command) error
	// Get returns the Command registered under name.
	Get(name string) (Command, bool)
	// List returns every registered Command, in no particular order.
	List() []Command
}
