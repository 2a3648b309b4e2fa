package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clipbot/internal/core/domain"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	dbOperationTimeout = 10 * time.Second

	// width of the snowflake columns
	maxIDLength = 20
)

// BindingStore implements port.BindingStore on gorm.
type BindingStore struct {
	db    *gorm.DB
	locks *keyedMutex
	now   func() time.Time
}

func NewBindingStore(db *gorm.DB) *BindingStore {
	return &BindingStore{
		db:    db,
		locks: newKeyedMutex(),
		now:   time.Now,
	}
}

func (s *BindingStore) Get(ctx context.Context, guildID string) (*domain.GuildBinding, error) {
	if err := validateGuildID(guildID); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var row GuildBinding
	err := s.db.WithContext(ctx).Where("guild_id = ?", guildID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable(fmt.Errorf("failed to read binding: %w", err))
	}

	return row.toDomain(), nil
}

func (s *BindingStore) Upsert(ctx context.Context, guildID string, update domain.BindingUpdate) (
	*domain.GuildBinding, error) {
	if err := validateGuildID(guildID); err != nil {
		return nil, err
	}
	if err := validateUpdate(update); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(guildID)
	defer unlock()

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	binding, err := s.upsert(ctx, guildID, update)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// another process created the row between our read and insert
		log.Debug().Str("guildId", guildID).Msg("binding created concurrently, retrying upsert")
		binding, err = s.upsert(ctx, guildID, update)
	}
	if err != nil {
		return nil, unavailable(fmt.Errorf("failed to upsert binding: %w", err))
	}

	return binding, nil
}

func (s *BindingStore) upsert(ctx context.Context, guildID string, update domain.BindingUpdate) (
	*domain.GuildBinding, error) {
	var result domain.GuildBinding

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row GuildBinding
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("guild_id = ?", guildID).
			Take(&row).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			result = domain.GuildBinding{GuildID: guildID}.Merge(update)
			result.UpdatedAt = s.stamp(time.Time{})
			return tx.Create(fromDomain(result)).Error
		}
		if err != nil {
			return err
		}

		prior := *row.toDomain()
		result = prior.Merge(update)
		if result.SameFields(prior) {
			return nil
		}

		result.UpdatedAt = s.stamp(prior.UpdatedAt)
		next := fromDomain(result)

		return tx.Model(&GuildBinding{}).
			Where("guild_id = ?", guildID).
			Updates(map[string]any{
				"stats_channel_id":       next.StatsChannelID,
				"leaderboard_channel_id": next.LeaderboardChannelID,
				"admin_role_id":          next.AdminRoleID,
				"updated_at":             next.LastUpdated,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *BindingStore) Delete(ctx context.Context, guildID string) error {
	if err := validateGuildID(guildID); err != nil {
		return err
	}

	unlock := s.locks.Lock(guildID)
	defer unlock()

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := s.db.WithContext(ctx).Where("guild_id = ?", guildID).Delete(&GuildBinding{}).Error
	if err != nil {
		return unavailable(fmt.Errorf("failed to delete binding: %w", err))
	}

	return nil
}

// stamp returns the current second, never earlier than prev.
func (s *BindingStore) stamp(prev time.Time) time.Time {
	now := s.now().UTC().Truncate(time.Second)
	if now.Before(prev) {
		return prev
	}
	return now
}

func validateGuildID(guildID string) error {
	if guildID == "" || len(guildID) > maxIDLength {
		return fmt.Errorf("%w: malformed guild id %q", domain.ErrStorageUnavailable, guildID)
	}
	return nil
}

// validateUpdate rejects ids wider than their column. Postgres enforces the
// width itself, sqlite does not.
func validateUpdate(update domain.BindingUpdate) error {
	for _, f := range []domain.FieldUpdate{update.StatsChannelID, update.LeaderboardChannelID, update.AdminRoleID} {
		if id, ok := f.Value(); ok && len(id) > maxIDLength {
			return fmt.Errorf("%w: malformed resource id %q", domain.ErrStorageUnavailable, id)
		}
	}
	return nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, dbOperationTimeout)
}
