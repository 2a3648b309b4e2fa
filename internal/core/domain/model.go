package domain

import "time"

// Resource is a bot-managed slot a guild can bind to a channel or role.
type Resource string

const (
	StatsChannel       Resource = "stats_channel"
	LeaderboardChannel Resource = "leaderboard_channel"
	AdminRole          Resource = "admin_role"
)

// Resources lists every bindable slot in display order.
var Resources = []Resource{StatsChannel, LeaderboardChannel, AdminRole}

type ResourceKind string

const (
	ChannelResource ResourceKind = "channel"
	RoleResource    ResourceKind = "role"
)

func ParseResource(s string) (Resource, bool) {
	for _, r := range Resources {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

func (r Resource) Kind() ResourceKind {
	if r == AdminRole {
		return RoleResource
	}
	return ChannelResource
}

// Label is the human-readable name, e.g. "stats channel".
func (r Resource) Label() string {
	switch r {
	case StatsChannel:
		return "stats channel"
	case LeaderboardChannel:
		return "leaderboard channel"
	case AdminRole:
		return "admin role"
	default:
		return string(r)
	}
}

// GuildBinding is the per-guild resource configuration. An empty ID means
// the slot is not bound.
type GuildBinding struct {
	GuildID              string
	StatsChannelID       string
	LeaderboardChannelID string
	AdminRoleID          string
	UpdatedAt            time.Time
}

// ID returns the identifier bound to the given slot.
func (b *GuildBinding) ID(r Resource) string {
	if b == nil {
		return ""
	}
	switch r {
	case StatsChannel:
		return b.StatsChannelID
	case LeaderboardChannel:
		return b.LeaderboardChannelID
	case AdminRole:
		return b.AdminRoleID
	default:
		return ""
	}
}

// SameFields reports whether both bindings hold identical slot values.
// UpdatedAt is ignored.
func (b GuildBinding) SameFields(o GuildBinding) bool {
	return b.GuildID == o.GuildID &&
		b.StatsChannelID == o.StatsChannelID &&
		b.LeaderboardChannelID == o.LeaderboardChannelID &&
		b.AdminRoleID == o.AdminRoleID
}

// Merge applies the mentioned fields of u and leaves the rest untouched.
func (b GuildBinding) Merge(u BindingUpdate) GuildBinding {
	b.StatsChannelID = u.StatsChannelID.apply(b.StatsChannelID)
	b.LeaderboardChannelID = u.LeaderboardChannelID.apply(b.LeaderboardChannelID)
	b.AdminRoleID = u.AdminRoleID.apply(b.AdminRoleID)
	return b
}

type fieldOp uint8

const (
	opUnchanged fieldOp = iota
	opSet
	opClear
)

// FieldUpdate is a tri-state partial update. The zero value leaves the field
// alone.
type FieldUpdate struct {
	op    fieldOp
	value string
}

// Set binds the field to id. An empty id is the same as Clear.
func Set(id string) FieldUpdate {
	if id == "" {
		return Clear()
	}
	return FieldUpdate{op: opSet, value: id}
}

func Clear() FieldUpdate {
	return FieldUpdate{op: opClear}
}

// Mentioned reports whether the update touches the field at all.
func (f FieldUpdate) Mentioned() bool {
	return f.op != opUnchanged
}

// Value returns the new value and whether the field is being set.
func (f FieldUpdate) Value() (string, bool) {
	return f.value, f.op == opSet
}

func (f FieldUpdate) apply(current string) string {
	switch f.op {
	case opSet:
		return f.value
	case opClear:
		return ""
	default:
		return current
	}
}

// BindingUpdate carries zero or more field changes for one guild.
type BindingUpdate struct {
	StatsChannelID       FieldUpdate
	LeaderboardChannelID FieldUpdate
	AdminRoleID          FieldUpdate
}

// UpdateOf builds an update that touches only the given slot.
func UpdateOf(r Resource, f FieldUpdate) BindingUpdate {
	var u BindingUpdate
	switch r {
	case StatsChannel:
		u.StatsChannelID = f
	case LeaderboardChannel:
		u.LeaderboardChannelID = f
	case AdminRole:
		u.AdminRoleID = f
	}
	return u
}

// IsEmpty reports whether no field is mentioned.
func (u BindingUpdate) IsEmpty() bool {
	return !u.StatsChannelID.Mentioned() &&
		!u.LeaderboardChannelID.Mentioned() &&
		!u.AdminRoleID.Mentioned()
}

// Health is the three-way classification of a bound slot.
type Health int

const (
	Unbound Health = iota
	BoundHealthy
	BoundStale
)

func (h Health) String() string {
	switch h {
	case Unbound:
		return "unbound"
	case BoundHealthy:
		return "healthy"
	case BoundStale:
		return "stale"
	default:
		return "unknown"
	}
}

// ResourceStatus is the checked state of one slot. Reason is set for stale
// slots only.
type ResourceStatus struct {
	Resource Resource
	ID       string
	Health   Health
	Reason   error
}

// Channel is the subset of a platform channel the bot cares about.
type Channel struct {
	ID          string
	GuildID     string
	Name        string
	TextCapable bool
}

type Role struct {
	ID      string
	GuildID string
	Name    string
}

// DispatchOutcome labels how a single dispatch ended.
type DispatchOutcome string

const (
	OutcomeIgnored        DispatchOutcome = "ignored"
	OutcomeUnknownCommand DispatchOutcome = "unknown_command"
	OutcomeHandled        DispatchOutcome = "handled"
	OutcomeFailed         DispatchOutcome = "failed"
)
