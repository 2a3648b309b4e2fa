package store

import (
	"time"

	"clipbot/internal/core/domain"
)

// GuildBinding is the guild_settings row. NULL columns are unbound slots.
type GuildBinding struct {
	GuildID              string  `gorm:"column:guild_id;primaryKey;type:varchar(20)"`
	StatsChannelID       *string `gorm:"column:stats_channel_id;type:varchar(20)"`
	LeaderboardChannelID *string `gorm:"column:leaderboard_channel_id;type:varchar(20)"`
	AdminRoleID          *string `gorm:"column:admin_role_id;type:varchar(20)"`
	// Unix seconds. Not named UpdatedAt so gorm does not manage it.
	LastUpdated int64 `gorm:"column:updated_at;not null"`
}

func (GuildBinding) TableName() string {
	return "guild_settings"
}

func (g *GuildBinding) toDomain() *domain.GuildBinding {
	return &domain.GuildBinding{
		GuildID:              g.GuildID,
		StatsChannelID:       deref(g.StatsChannelID),
		LeaderboardChannelID: deref(g.LeaderboardChannelID),
		AdminRoleID:          deref(g.AdminRoleID),
		UpdatedAt:            time.Unix(g.LastUpdated, 0).UTC(),
	}
}

func fromDomain(b domain.GuildBinding) *GuildBinding {
	return &GuildBinding{
		GuildID:              b.GuildID,
		StatsChannelID:       nullable(b.StatsChannelID),
		LeaderboardChannelID: nullable(b.LeaderboardChannelID),
		AdminRoleID:          nullable(b.AdminRoleID),
		LastUpdated:          b.UpdatedAt.Unix(),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
