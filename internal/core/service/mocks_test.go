package service

import (
	"context"
	"time"

	"clipbot/internal/core/domain"
	"clipbot/internal/core/port"

	"github.com/stretchr/testify/mock"
)

type MockRegistry struct {
	mock.Mock
}

func (m *MockRegistry) Register(handler port.Command) error {
	args := m.Called(handler)
	return args.Error(0)
}

func (m *MockRegistry) Get(name string) (port.Command, bool) {
	args := m.Called(name)
	cmd, _ := args.Get(0).(port.Command)
	return cmd, args.Bool(1)
}

func (m *MockRegistry) List() []port.Command {
	args := m.Called()
	cmds, _ := args.Get(0).([]port.Command)
	return cmds
}

type MockCommand struct {
	mock.Mock
	name string
}

func (m *MockCommand) Schema() domain.CommandSchema {
	return domain.CommandSchema{Name: m.name}
}

func (m *MockCommand) Respond(ctx context.Context, interaction *domain.Interaction) error {
	args := m.Called(ctx, interaction)
	if fn, ok := args.Get(0).(func(*domain.Interaction) error); ok {
		return fn(interaction)
	}
	return args.Error(0)
}

type MockResponder struct {
	mock.Mock
}

func (m *MockResponder) Respond(ctx context.Context, interaction *domain.Interaction, reply domain.Reply) error {
	args := m.Called(ctx, interaction, reply)
	if args.Error(0) == nil {
		interaction.Advance(domain.PhaseResponded)
	}
	return args.Error(0)
}

func (m *MockResponder) Defer(ctx context.Context, interaction *domain.Interaction, ephemeral bool) error {
	args := m.Called(ctx, interaction, ephemeral)
	if args.Error(0) == nil {
		interaction.Advance(domain.PhaseDeferred)
	}
	return args.Error(0)
}

func (m *MockResponder) FollowUp(ctx context.Context, interaction *domain.Interaction, reply domain.Reply) error {
	args := m.Called(ctx, interaction, reply)
	return args.Error(0)
}

func (m *MockResponder) Reply(ctx context.Context, interaction *domain.Interaction, reply domain.Reply) error {
	args := m.Called(ctx, interaction, reply)
	return args.Error(0)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) ObserveDispatch(command string, outcome domain.DispatchOutcome, elapsed time.Duration) {
	m.Called(command, outcome, elapsed)
}

type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) FetchChannel(ctx context.Context, guildID string, channelID string) (*domain.Channel,
	error) {
	args := m.Called(ctx, guildID, channelID)
	ch, _ := args.Get(0).(*domain.Channel)
	return ch, args.Error(1)
}

func (m *MockDirectory) FetchRole(ctx context.Context, guildID string, roleID string) (*domain.Role, error) {
	args := m.Called(ctx, guildID, roleID)
	r, _ := args.Get(0).(*domain.Role)
	return r, args.Error(1)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, guildID string) (*domain.GuildBinding, error) {
	args := m.Called(ctx, guildID)
	b, _ := args.Get(0).(*domain.GuildBinding)
	return b, args.Error(1)
}

func (m *MockStore) Upsert(ctx context.Context, guildID string, update domain.BindingUpdate) (
	*domain.GuildBinding, error) {
	args := m.Called(ctx, guildID, update)
	b, _ := args.Get(0).(*domain.GuildBinding)
	return b, args.Error(1)
}

func (m *MockStore) Delete(ctx context.Context, guildID string) error {
	args := m.Called(ctx, guildID)
	return args.Error(0)
}
