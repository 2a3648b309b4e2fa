package command

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"clipbot/internal/core/domain"
	"clipbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

// Registry maps command names to handlers. It is filled once at startup and
// sealed before the gateway starts delivering interactions.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]port.Command
	sealed   bool
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]port.Command)}
}

func (r *Registry) Register(handler port.Command) error {
	if isNil(handler) {
		return fmt.Errorf("%w: missing handler", domain.ErrInvalidDescriptor)
	}

	name := handler.Schema().Name
	if name == "" {
		return fmt.Errorf("%w: missing name", domain.ErrInvalidDescriptor)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("%w: cannot register %q", domain.ErrRegistryClosed, name)
	}

	if r.commands == nil {
		r.commands = make(map[string]port.Command)
	}

	if _, ok := r.commands[name]; ok {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateCommand, name)
	}

	log.Info().Str("handler", name).Msg("adding command handler to registry")
	r.commands[name] = handler

	return nil
}

// RegisterAll registers every handler in order. Malformed handlers are logged
// and skipped. A duplicate name or a sealed registry aborts with an error.
func (r *Registry) RegisterAll(handlers ...port.Command) error {
	for i, handler := range handlers {
		err := r.Register(handler)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrDuplicateCommand), errors.Is(err, domain.ErrRegistryClosed):
			return err
		default:
			log.Error().Err(err).Int("position", i).Msg("skipping malformed command handler")
		}
	}

	return nil
}

// Seal closes registration. Later calls to Register fail.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

func (r *Registry) Get(name string) (port.Command, bool) {
	log.Debug().Str("command", name).Msg("fetching command handler from registry")

	r.mu.RLock()
	defer r.mu.RUnlock()

	handler, ok := r.commands[name]
	return handler, ok
}

func (r *Registry) List() []port.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]port.Command, 0, len(r.commands))
	for _, handler := range r.commands {
		list = append(list, handler)
	}

	return list
}

func (r *Registry) ListCommands() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.commands))
	for k := range r.commands {
		keys = append(keys, k)
	}

	return keys
}

// Schemas returns the catalog entries of every registered command.
func (r *Registry) Schemas() []domain.CommandSchema {
	list := r.List()

	schemas := make([]domain.CommandSchema, len(list))
	for i, handler := range list {
		schemas[i] = handler.Schema()
	}

	return schemas
}

// isNil also catches typed nil pointers boxed in the interface.
func isNil(handler port.Command) bool {
	if handler == nil {
		return true
	}
	v := reflect.ValueOf(handler)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
