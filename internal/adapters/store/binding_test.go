package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"clipbot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore(t *testing.T) (*BindingStore, *fakeClock) {
	t.Helper()

	db, err := Open(t.Context(), TypeSQLite, filepath.Join(t.TempDir(), "data", "bot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	s := NewBindingStore(db)
	s.now = clock.Now

	return s, clock
}

func TestBindingStore_GetAbsent(t *testing.T) {
	s, _ := newTestStore(t)

	b, err := s.Get(t.Context(), "g1")
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestBindingStore_UpsertCreates(t *testing.T) {
	s, clock := newTestStore(t)

	got, err := s.Upsert(t.Context(), "g1", domain.UpdateOf(domain.StatsChannel, domain.Set("c1")))
	require.NoError(t, err)
	assert.Equal(t, "c1", got.StatsChannelID)

	b, err := s.Get(t.Context(), "g1")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, "g1", b.GuildID)
	assert.Equal(t, "c1", b.StatsChannelID)
	assert.Empty(t, b.LeaderboardChannelID)
	assert.Empty(t, b.AdminRoleID)
	assert.Equal(t, clock.Now().Unix(), b.UpdatedAt.Unix())
}

func TestBindingStore_UpsertMerges(t *testing.T) {
	s, clock := newTestStore(t)
	ctx := t.Context()

	_, err := s.Upsert(ctx, "g1", domain.BindingUpdate{
		StatsChannelID: domain.Set("c1"),
		AdminRoleID:    domain.Set("r1"),
	})
	require.NoError(t, err)

	clock.Advance(time.Minute)

	_, err = s.Upsert(ctx, "g1", domain.UpdateOf(domain.LeaderboardChannel, domain.Set("c2")))
	require.NoError(t, err)

	b, err := s.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "c1", b.StatsChannelID)
	assert.Equal(t, "c2", b.LeaderboardChannelID)
	assert.Equal(t, "r1", b.AdminRoleID)
	assert.Equal(t, clock.Now().Unix(), b.UpdatedAt.Unix())
}

func TestBindingStore_UpsertClear(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := t.Context()

	_, err := s.Upsert(ctx, "g1", domain.BindingUpdate{
		StatsChannelID: domain.Set("c1"),
		AdminRoleID:    domain.Set("r1"),
	})
	require.NoError(t, err)

	_, err = s.Upsert(ctx, "g1", domain.UpdateOf(domain.AdminRole, domain.Clear()))
	require.NoError(t, err)

	b, err := s.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "c1", b.StatsChannelID)
	assert.Empty(t, b.AdminRoleID)
}

func TestBindingStore_NoOpKeepsUpdatedAt(t *testing.T) {
	s, clock := newTestStore(t)
	ctx := t.Context()

	_, err := s.Upsert(ctx, "g1", domain.UpdateOf(domain.StatsChannel, domain.Set("c1")))
	require.NoError(t, err)
	before, err := s.Get(ctx, "g1")
	require.NoError(t, err)

	clock.Advance(time.Hour)

	tests := []struct {
		name   string
		update domain.BindingUpdate
	}{
		{name: "same value", update: domain.UpdateOf(domain.StatsChannel, domain.Set("c1"))},
		{name: "clear already clear", update: domain.UpdateOf(domain.AdminRole, domain.Clear())},
		{name: "nothing mentioned", update: domain.BindingUpdate{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Upsert(ctx, "g1", tc.update)
			require.NoError(t, err)

			after, err := s.Get(ctx, "g1")
			require.NoError(t, err)
			assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
			assert.True(t, before.SameFields(*after))
		})
	}
}

func TestBindingStore_UpdatedAtNeverDecreases(t *testing.T) {
	s, clock := newTestStore(t)
	ctx := t.Context()

	_, err := s.Upsert(ctx, "g1", domain.UpdateOf(domain.StatsChannel, domain.Set("c1")))
	require.NoError(t, err)
	before, err := s.Get(ctx, "g1")
	require.NoError(t, err)

	clock.Advance(-time.Hour)

	_, err = s.Upsert(ctx, "g1", domain.UpdateOf(domain.StatsChannel, domain.Set("c2")))
	require.NoError(t, err)

	after, err := s.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "c2", after.StatsChannelID)
	assert.False(t, after.UpdatedAt.Before(before.UpdatedAt))
}

func TestBindingStore_Delete(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := t.Context()

	_, err := s.Upsert(ctx, "g1", domain.UpdateOf(domain.StatsChannel, domain.Set("c1")))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "g1"))

	b, err := s.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Nil(t, b)

	require.NoError(t, s.Delete(ctx, "g1"))
	require.NoError(t, s.Delete(ctx, "never-bound"))
}

func TestBindingStore_ConcurrentDisjointUpserts(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := t.Context()

	const rounds = 10

	for i := range rounds {
		guildID := "g" + string(rune('a'+i))

		var wg sync.WaitGroup
		errs := make(chan error, 2)

		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := s.Upsert(ctx, guildID, domain.UpdateOf(domain.StatsChannel, domain.Set("A")))
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := s.Upsert(ctx, guildID, domain.UpdateOf(domain.AdminRole, domain.Set("B")))
			errs <- err
		}()
		wg.Wait()
		close(errs)

		for err := range errs {
			require.NoError(t, err)
		}

		b, err := s.Get(ctx, guildID)
		require.NoError(t, err)
		require.NotNil(t, b)
		assert.Equal(t, "A", b.StatsChannelID)
		assert.Equal(t, "B", b.AdminRoleID)
	}
}

func TestBindingStore_MalformedGuildID(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := t.Context()

	tests := []struct {
		name    string
		guildID string
	}{
		{name: "empty", guildID: ""},
		{name: "too long", guildID: "123456789012345678901"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Get(ctx, tc.guildID)
			require.ErrorIs(t, err, domain.ErrStorageUnavailable)

			_, err = s.Upsert(ctx, tc.guildID, domain.UpdateOf(domain.StatsChannel, domain.Set("c1")))
			require.ErrorIs(t, err, domain.ErrStorageUnavailable)

			err = s.Delete(ctx, tc.guildID)
			require.ErrorIs(t, err, domain.ErrStorageUnavailable)
		})
	}
}

func TestBindingStore_OversizedResourceID(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := t.Context()

	_, err := s.Upsert(ctx, "g1", domain.UpdateOf(domain.StatsChannel, domain.Set("123456789012345678901234")))
	require.ErrorIs(t, err, domain.ErrStorageUnavailable)

	b, err := s.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Nil(t, b)

	got, err := s.Upsert(ctx, "g1", domain.UpdateOf(domain.AdminRole, domain.Set("12345678901234567890")))
	require.NoError(t, err)
	assert.Equal(t, "12345678901234567890", got.AdminRoleID)
}

var errWriteFailed = errors.New("write failed")

func failWrites(t *testing.T, db *gorm.DB) {
	t.Helper()

	fail := func(tx *gorm.DB) { _ = tx.AddError(errWriteFailed) }
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_create", fail))
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test:fail_update", fail))
}

func TestBindingStore_FailedUpdateKeepsPriorRow(t *testing.T) {
	s, clock := newTestStore(t)
	ctx := t.Context()

	_, err := s.Upsert(ctx, "g1", domain.BindingUpdate{
		StatsChannelID: domain.Set("c1"),
		AdminRoleID:    domain.Set("r1"),
	})
	require.NoError(t, err)

	prior, err := s.Get(ctx, "g1")
	require.NoError(t, err)
	require.NotNil(t, prior)

	failWrites(t, s.db)
	clock.Advance(time.Hour)

	_, err = s.Upsert(ctx, "g1", domain.BindingUpdate{
		StatsChannelID:       domain.Set("c2"),
		LeaderboardChannelID: domain.Set("c3"),
		AdminRoleID:          domain.Clear(),
	})
	require.ErrorIs(t, err, domain.ErrStorageUnavailable)
	require.ErrorIs(t, err, errWriteFailed)

	got, err := s.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, prior, got)
}

func TestBindingStore_FailedCreateLeavesNoRow(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := t.Context()

	failWrites(t, s.db)

	_, err := s.Upsert(ctx, "g1", domain.UpdateOf(domain.StatsChannel, domain.Set("c1")))
	require.ErrorIs(t, err, domain.ErrStorageUnavailable)

	b, err := s.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestBindingStore_RetriesDuplicateCreate(t *testing.T) {
	tests := []struct {
		name         string
		failures     int
		wantErr      bool
		wantAttempts int
	}{
		{name: "created concurrently once", failures: 1, wantAttempts: 2},
		{name: "still duplicated after retry", failures: 2, wantErr: true, wantAttempts: 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			ctx := t.Context()

			attempts := 0
			err := s.db.Callback().Create().Before("gorm:create").Register("test:duplicate", func(tx *gorm.DB) {
				attempts++
				if attempts <= tc.failures {
					_ = tx.AddError(gorm.ErrDuplicatedKey)
				}
			})
			require.NoError(t, err)

			got, err := s.Upsert(ctx, "g1", domain.UpdateOf(domain.StatsChannel, domain.Set("c1")))
			assert.Equal(t, tc.wantAttempts, attempts)

			if tc.wantErr {
				require.ErrorIs(t, err, domain.ErrStorageUnavailable)
				require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "c1", got.StatsChannelID)

			b, err := s.Get(ctx, "g1")
			require.NoError(t, err)
			require.NotNil(t, b)
			assert.Equal(t, "c1", b.StatsChannelID)
		})
	}
}

func TestBindingStore_ClosedDatabase(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := t.Context()

	_, err := s.Upsert(ctx, "g1", domain.UpdateOf(domain.StatsChannel, domain.Set("c1")))
	require.NoError(t, err)

	require.NoError(t, Close(s.db))

	_, err = s.Get(ctx, "g1")
	require.ErrorIs(t, err, domain.ErrStorageUnavailable)

	_, err = s.Upsert(ctx, "g1", domain.UpdateOf(domain.StatsChannel, domain.Set("c2")))
	require.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestBindingStore_RespectsCallerDeadline(t *testing.T) {
	s, _ := newTestStore(t)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := s.Upsert(ctx, "g1", domain.UpdateOf(domain.StatsChannel, domain.Set("c1")))
	require.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestOpen_UnsupportedType(t *testing.T) {
	_, err := Open(t.Context(), "mongodb", "mongodb://localhost")
	require.Error(t, err)
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "data/bot.db?_busy_timeout=5000&_journal_mode=WAL", sqliteDSN("data/bot.db"))
	assert.Equal(t, "file:x.db?cache=shared&_busy_timeout=5000&_journal_mode=WAL", sqliteDSN("file:x.db?cache=shared"))
	assert.Equal(t, "x.db?_busy_timeout=1", sqliteDSN("x.db?_busy_timeout=1"))
}
