package command

import (
	"context"

	"clipbot/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockResponder struct {
	mock.Mock
}

func (m *MockResponder) Respond(ctx context.Context, interaction *domain.Interaction, reply domain.Reply) error {
	args := m.Called(ctx, interaction, reply)
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
	if args.Error(0) == nil {
		interaction.Advance(domain.PhaseResponded)
	}
	return args.Error(0)
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

type MockChecker struct {
	mock.Mock
}

func (m *MockChecker) Check(ctx context.Context, binding *domain.GuildBinding, resource domain.Resource) (
	domain.ResourceStatus, error) {
	args := m.Called(ctx, binding, resource)
	return args.Get(0).(domain.ResourceStatus), args.Error(1)
}

func (m *MockChecker) CheckAll(ctx context.Context, binding *domain.GuildBinding) ([]domain.ResourceStatus, error) {
	args := m.Called(ctx, binding)
	s, _ := args.Get(0).([]domain.ResourceStatus)
	return s, args.Error(1)
}

type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) IsAuthorized(ctx context.Context, interaction *domain.Interaction) (bool, error) {
	args := m.Called(ctx, interaction)
	return args.Bool(0), args.Error(1)
}

type MockChannelPoster struct {
	mock.Mock
}

func (m *MockChannelPoster) SendChannelMessage(ctx context.Context, channelID string, content string) error {
	args := m.Called(ctx, channelID, content)
	return args.Error(0)
}

func guildInteraction(name string, options ...domain.Option) *domain.Interaction {
	opts := make(map[string]domain.Option, len(options))
	for _, o := range options {
		opts[o.Name] = o
	}

	return &domain.Interaction{
		ID:          "i1",
		Kind:        domain.KindChatInput,
		CommandName: name,
		GuildID:     "g1",
		UserID:      "u1",
		Options:     opts,
	}
}

func stringOpt(name string, t domain.OptionType, value string) domain.Option {
	return domain.Option{Name: name, Type: t, Value: value}
}
