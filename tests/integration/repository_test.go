//go:build integration

package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bivex/creatorhub/internal/domain/entity"
	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
	pgrepo "github.com/bivex/creatorhub/internal/infrastructure/persistence/repository"
)

func TestTierRepository_AdjustSubscribers(t *testing.T) {
	ctx, f := reset(t)
	_, profile := f.Creator(t, ctx)
	tier := f.Tier(t, ctx, profile.ID, "5.00", 1)

	require.NoError(t, f.Tiers.AdjustSubscribers(ctx, tier.ID, 1))

	err := f.Tiers.AdjustSubscribers(ctx, tier.ID, 1)
	assert.ErrorIs(t, err, domainErrors.ErrTierFull)

	err = f.Tiers.AdjustSubscribers(ctx, tier.ID, -2)
	assert.ErrorIs(t, err, domainErrors.ErrCounterUnderflow)

	got, err := f.Tiers.GetByID(ctx, tier.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentSubscribers)
}

func TestTierRepository_Delete(t *testing.T) {
	ctx, f := reset(t)
	user := f.User(t, ctx, entity.RoleConsumer)
	_, profile := f.Creator(t, ctx)

	t.Run("unused tier", func(t *testing.T) {
		tier := f.Tier(t, ctx, profile.ID, "5.00", 0)
		require.NoError(t, f.Tiers.Delete(ctx, tier.ID))

		_, err := f.Tiers.GetByID(ctx, tier.ID)
		assert.ErrorIs(t, err, domainErrors.ErrTierNotFound)
	})

	t.Run("tier with subscription history", func(t *testing.T) {
		tier := f.Tier(t, ctx, profile.ID, "5.00", 0)
		now := time.Now().UTC()
		f.ActiveSubscription(t, ctx, user.ID, tier, now.Add(-48*time.Hour), now.Add(-24*time.Hour))

		err := f.Tiers.Delete(ctx, tier.ID)
		assert.ErrorIs(t, err, domainErrors.ErrTierHasSubscribers)
	})

	t.Run("missing tier", func(t *testing.T) {
		tier := entity.NewSubscriptionTier(profile.ID, "ghost", decimal.NewFromInt(1), "monthly", 0)
		err := f.Tiers.Delete(ctx, tier.ID)
		assert.True(t, domainErrors.IsNotFound(err))
	})
}

func TestContentAccessRepository_ExpireLapsed(t *testing.T) {
	ctx, f := reset(t)
	user := f.User(t, ctx, entity.RoleConsumer)
	creator, profile := f.Creator(t, ctx)
	content := f.PublishedContent(t, ctx, creator, profile, entity.VisibilitySubscribersOnly)
	other := f.PublishedContent(t, ctx, creator, profile, entity.VisibilitySubscribersOnly)

	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	lapsed := f.Grant(t, ctx, user.ID, content.ID, nil, &past)
	live := f.Grant(t, ctx, user.ID, other.ID, nil, &future)

	n, err := f.Grants.ExpireLapsed(ctx, now, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := f.Grants.GetByID(ctx, lapsed.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AccessStatusExpired, got.Status)

	got, err = f.Grants.GetByID(ctx, live.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AccessStatusActive, got.Status)

	n, err = f.Grants.ExpireLapsed(ctx, now, 10)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestContentAccessRepository_RecordAccess(t *testing.T) {
	ctx, f := reset(t)
	user := f.User(t, ctx, entity.RoleConsumer)
	creator, profile := f.Creator(t, ctx)
	content := f.PublishedContent(t, ctx, creator, profile, entity.VisibilitySubscribersOnly)
	grant := f.Grant(t, ctx, user.ID, content.ID, nil, nil)

	for want := 1; want <= 3; want++ {
		count, err := f.Grants.RecordAccess(ctx, grant.ID, time.Now().UTC())
		require.NoError(t, err)
		assert.Equal(t, want, count)
	}
}

func TestContentAccessRepository_GetForUserContent(t *testing.T) {
	ctx, f := reset(t)
	user := f.User(t, ctx, entity.RoleConsumer)
	creator, profile := f.Creator(t, ctx)
	content := f.PublishedContent(t, ctx, creator, profile, entity.VisibilitySubscribersOnly)

	now := time.Now().UTC()
	older := entity.NewContentAccess(user.ID, content.ID, nil, entity.AccessOneTimePurchase, nil, true, now.Add(-time.Hour))
	newer := entity.NewContentAccess(user.ID, content.ID, nil, entity.AccessOneTimePurchase, nil, true, now)
	require.NoError(t, f.Grants.Create(ctx, older))
	require.NoError(t, f.Grants.Create(ctx, newer))

	got, err := f.Grants.GetForUserContent(ctx, user.ID, content.ID)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID, "newest active grant wins")

	require.NoError(t, newer.Revoke(now, "chargeback"))
	require.NoError(t, f.Grants.UpdateStatus(ctx, newer))

	got, err = f.Grants.GetForUserContent(ctx, user.ID, content.ID)
	require.NoError(t, err)
	assert.Equal(t, older.ID, got.ID, "active grant beats a newer revoked one")

	require.NoError(t, older.Revoke(now, "chargeback"))
	require.NoError(t, f.Grants.UpdateStatus(ctx, older))

	got, err = f.Grants.GetForUserContent(ctx, user.ID, content.ID)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID, "newest grant when none is active")
}

func TestSubscriptionRepository_ListLapsed(t *testing.T) {
	ctx, f := reset(t)
	user := f.User(t, ctx, entity.RoleConsumer)
	_, profile := f.Creator(t, ctx)
	tier := f.Tier(t, ctx, profile.ID, "5.00", 0)
	otherTier := f.Tier(t, ctx, profile.ID, "7.00", 0)

	now := time.Now().UTC()
	lapsed := f.ActiveSubscription(t, ctx, user.ID, tier, now.Add(-48*time.Hour), now.Add(-time.Hour))
	f.ActiveSubscription(t, ctx, user.ID, otherTier, now, now.Add(24*time.Hour))

	subs, err := f.Subs.ListLapsed(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, lapsed.ID, subs[0].ID)
}

func TestSubscriptionRepository_GetLatestByUserAndCreator(t *testing.T) {
	ctx, f := reset(t)
	user := f.User(t, ctx, entity.RoleConsumer)
	_, profile := f.Creator(t, ctx)
	_, otherProfile := f.Creator(t, ctx)
	basic := f.Tier(t, ctx, profile.ID, "5.00", 0)
	gold := f.Tier(t, ctx, profile.ID, "15.00", 0)
	foreign := f.Tier(t, ctx, otherProfile.ID, "9.00", 0)

	now := time.Now().UTC()
	f.ActiveSubscription(t, ctx, user.ID, basic, now.Add(-72*time.Hour), now.Add(48*time.Hour))
	longest := f.ActiveSubscription(t, ctx, user.ID, gold, now.Add(-time.Hour), now.Add(30*24*time.Hour))
	f.ActiveSubscription(t, ctx, user.ID, foreign, now, now.Add(365*24*time.Hour))

	got, err := f.Subs.GetLatestByUserAndCreator(ctx, user.ID, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, longest.ID, got.ID)

	stranger := f.User(t, ctx, entity.RoleConsumer)
	_, err = f.Subs.GetLatestByUserAndCreator(ctx, stranger.ID, profile.ID)
	assert.ErrorIs(t, err, domainErrors.ErrSubscriptionNotFound)
}

func TestTxManager(t *testing.T) {
	ctx, f := reset(t)
	tx := pgrepo.NewTxManager(testDB.Pool, 3, zap.NewNop())

	t.Run("rolls back on error", func(t *testing.T) {
		user := entity.NewUser("rollback@example.com", "rollback", entity.RoleConsumer)
		boom := errors.New("boom")

		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			require.NoError(t, f.Users.Create(ctx, user))
			return boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = f.Users.GetByID(ctx, user.ID)
		assert.ErrorIs(t, err, domainErrors.ErrUserNotFound)
	})

	t.Run("commits and joins nested calls", func(t *testing.T) {
		user := entity.NewUser("commit@example.com", "commit", entity.RoleConsumer)

		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			if err := f.Users.Create(ctx, user); err != nil {
				return err
			}
			return tx.WithinTx(ctx, func(ctx context.Context) error {
				return f.Users.UpdateStatus(ctx, user.ID, entity.UserStatusActive)
			})
		})
		require.NoError(t, err)

		got, err := f.Users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.UserStatusActive, got.Status)
	})
}
