package domain

import (
	"sync"
	"time"
)

type InteractionKind int

const (
	KindOther InteractionKind = iota
	KindChatInput
)

// ResponsePhase tracks how far an interaction has been answered. It only
// moves forward.
type ResponsePhase int

const (
	PhaseNone ResponsePhase = iota
	PhaseDeferred
	PhaseResponded
)

func (p ResponsePhase) String() string {
	switch p {
	case PhaseNone:
		return "none"
	case PhaseDeferred:
		return "deferred"
	case PhaseResponded:
		return "responded"
	default:
		return "unknown"
	}
}

type OptionType int

const (
	OptionString OptionType = iota + 1
	OptionInteger
	OptionBoolean
	OptionUser
	OptionChannel
	OptionRole
)

// Option is one typed value supplied with a command. Snowflake-typed options
// (user, channel, role) carry the referenced ID as a string.
type Option struct {
	Name  string
	Type  OptionType
	Value any
}

// Interaction is one inbound user-invoked command.
type Interaction struct {
	ID          string
	AppID       string
	Token       string
	Kind        InteractionKind
	CommandName string
	GuildID     string
	ChannelID   string
	UserID      string
	Username    string
	Options     map[string]Option
	ReceivedAt  time.Time

	// IsAdministrator is set when the invoking member holds the platform's
	// administrator permission.
	IsAdministrator bool
	RoleIDs         []string

	mu    sync.Mutex
	phase ResponsePhase
}

func (i *Interaction) Phase() ResponsePhase {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.phase
}

// Advance moves the interaction to phase p. Moving backwards is ignored.
func (i *Interaction) Advance(p ResponsePhase) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if p > i.phase {
		i.phase = p
	}
}

func (i *Interaction) InGuild() bool {
	return i.GuildID != ""
}

// StringOption returns a string-valued option, including snowflake options.
func (i *Interaction) StringOption(name string) (string, bool) {
	opt, ok := i.Options[name]
	if !ok {
		return "", false
	}
	s, ok := opt.Value.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// CanRespond reports whether an initial response would still be accepted.
func (i *Interaction) CanRespond(now time.Time) bool {
	return i.ReceivedAt.IsZero() || now.Sub(i.ReceivedAt) < InitialResponseWindow
}

// CanFollowUp reports whether the interaction token is still usable.
func (i *Interaction) CanFollowUp(now time.Time) bool {
	return i.ReceivedAt.IsZero() || now.Sub(i.ReceivedAt) < InteractionTokenLifespan
}

// Reply is an outbound text response.
type Reply struct {
	Content   string
	Ephemeral bool
}
