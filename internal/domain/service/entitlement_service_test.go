package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bivex/creatorhub/internal/domain/entitlement"
	"github.com/bivex/creatorhub/internal/domain/entity"
	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
	"github.com/bivex/creatorhub/internal/domain/service"
)

func newEntitlementService(f *fixture) *service.EntitlementService {
	return service.NewEntitlementService(f.engine, f.tx, f.users, f.content, f.grants, f.subs, f.tiers, f.profiles, f.cache, nil)
}

func TestEntitlementService_CheckAccess(t *testing.T) {
	ctx := context.Background()

	t.Run("public content needs no grant", func(t *testing.T) {
		f := newFixture(t)
		svc := newEntitlementService(f)
		user := activeUser(entity.RoleConsumer)
		content := entity.NewContent(uuid.New(), uuid.New(), "Hello", entity.ContentTypePost, entity.VisibilityPublic)
		content.Status = entity.ContentPublished

		f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		f.content.On("GetByID", mock.Anything, content.ID).Return(content, nil)

		res, err := svc.CheckAccess(ctx, user.ID, content.ID)
		require.NoError(t, err)
		assert.True(t, res.Decision.Allowed)
		assert.Equal(t, entitlement.ReasonPublicContent, res.Decision.Reason)
		assert.False(t, res.HasExpiry)
		f.grants.AssertNotCalled(t, "GetForUserContent", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("inactive user is decided without a grant lookup", func(t *testing.T) {
		f := newFixture(t)
		svc := newEntitlementService(f)
		user := activeUser(entity.RoleConsumer)
		user.Status = entity.UserStatusSuspended
		content := entity.NewContent(uuid.New(), uuid.New(), "Members", entity.ContentTypeVideo, "")

		f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		f.content.On("GetByID", mock.Anything, content.ID).Return(content, nil)

		res, err := svc.CheckAccess(ctx, user.ID, content.ID)
		require.NoError(t, err)
		assert.Equal(t, entitlement.ReasonAccountInactive, res.Decision.Reason)
		f.grants.AssertNotCalled(t, "GetForUserContent", mock.Anything, mock.Anything, mock.Anything)
		f.subs.AssertNotCalled(t, "GetLatestByUserAndTier", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("subscriber content resolves through the creator subscription", func(t *testing.T) {
		f := newFixture(t)
		svc := newEntitlementService(f)
		user := activeUser(entity.RoleConsumer)
		profileID := uuid.New()
		content := entity.NewContent(uuid.New(), profileID, "Members", entity.ContentTypeVideo, entity.VisibilitySubscribersOnly)
		content.Status = entity.ContentPublished
		sub := entity.NewSubscription(user.ID, uuid.New(), dec("10"), dec("0"), dec("10"), true)
		require.NoError(t, sub.Activate(now.Add(-time.Hour), now.AddDate(0, 1, 0)))

		f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		f.content.On("GetByID", mock.Anything, content.ID).Return(content, nil)
		f.grants.On("GetForUserContent", mock.Anything, user.ID, content.ID).Return(nil, domainErrors.ErrGrantNotFound)
		f.subs.On("GetLatestByUserAndCreator", mock.Anything, user.ID, profileID).Return(sub, nil)

		res, err := svc.CheckAccess(ctx, user.ID, content.ID)
		require.NoError(t, err)
		assert.True(t, res.Decision.Allowed)
		assert.Equal(t, entitlement.ReasonGranted, res.Decision.Reason)
		assert.Nil(t, res.Grant)
		f.grants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("tier specific content needs its own tier", func(t *testing.T) {
		f := newFixture(t)
		svc := newEntitlementService(f)
		user := activeUser(entity.RoleConsumer)
		tierID := uuid.New()
		content := entity.NewContent(uuid.New(), uuid.New(), "Gold only", entity.ContentTypeVideo, entity.VisibilityTierSpecific)
		content.RequiredTierID = &tierID
		content.Status = entity.ContentPublished

		f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		f.content.On("GetByID", mock.Anything, content.ID).Return(content, nil)
		f.grants.On("GetForUserContent", mock.Anything, user.ID, content.ID).Return(nil, domainErrors.ErrGrantNotFound)
		f.subs.On("GetLatestByUserAndTier", mock.Anything, user.ID, tierID).Return(nil, domainErrors.ErrSubscriptionNotFound)

		res, err := svc.CheckAccess(ctx, user.ID, content.ID)
		require.NoError(t, err)
		assert.False(t, res.Decision.Allowed)
		assert.Equal(t, entitlement.ReasonNoGrant, res.Decision.Reason)
		f.subs.AssertNotCalled(t, "GetLatestByUserAndCreator", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lapsed creator subscription is reported as inactive", func(t *testing.T) {
		f := newFixture(t)
		svc := newEntitlementService(f)
		user := activeUser(entity.RoleConsumer)
		profileID := uuid.New()
		content := entity.NewContent(uuid.New(), profileID, "Members", entity.ContentTypeVideo, "")
		content.Status = entity.ContentPublished
		sub := entity.NewSubscription(user.ID, uuid.New(), dec("10"), dec("0"), dec("10"), true)
		require.NoError(t, sub.Activate(now.AddDate(0, -1, 0), now.Add(-time.Minute)))

		f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		f.content.On("GetByID", mock.Anything, content.ID).Return(content, nil)
		f.grants.On("GetForUserContent", mock.Anything, user.ID, content.ID).Return(nil, domainErrors.ErrGrantNotFound)
		f.subs.On("GetLatestByUserAndCreator", mock.Anything, user.ID, profileID).Return(sub, nil)

		res, err := svc.CheckAccess(ctx, user.ID, content.ID)
		require.NoError(t, err)
		assert.Equal(t, entitlement.ReasonSubscriptionInactive, res.Decision.Reason)
	})

	t.Run("missing grant on private content is denied", func(t *testing.T) {
		f := newFixture(t)
		svc := newEntitlementService(f)
		user := activeUser(entity.RoleConsumer)
		content := entity.NewContent(uuid.New(), uuid.New(), "Members", entity.ContentTypeVideo, "")

		f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		f.content.On("GetByID", mock.Anything, content.ID).Return(content, nil)
		f.grants.On("GetForUserContent", mock.Anything, user.ID, content.ID).Return(nil, domainErrors.ErrGrantNotFound)

		res, err := svc.CheckAccess(ctx, user.ID, content.ID)
		require.NoError(t, err)
		assert.False(t, res.Decision.Allowed)
		assert.Equal(t, entitlement.ReasonNoGrant, res.Decision.Reason)
	})

	t.Run("subscription grant follows the linked subscription", func(t *testing.T) {
		f := newFixture(t)
		svc := newEntitlementService(f)
		user := activeUser(entity.RoleConsumer)
		tierID := uuid.New()
		content := entity.NewContent(uuid.New(), uuid.New(), "Members", entity.ContentTypeVideo, "")
		grant := entity.NewContentAccess(user.ID, content.ID, &tierID, entity.AccessSubscription, nil, true, now.Add(-time.Hour))
		sub := entity.NewSubscription(user.ID, tierID, dec("10"), dec("0"), dec("10"), true)
		require.NoError(t, sub.Activate(now.AddDate(0, -1, 0), now.Add(-time.Minute)))

		f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		f.content.On("GetByID", mock.Anything, content.ID).Return(content, nil)
		f.grants.On("GetForUserContent", mock.Anything, user.ID, content.ID).Return(grant, nil)
		f.subs.On("GetLatestByUserAndTier", mock.Anything, user.ID, tierID).Return(sub, nil)

		res, err := svc.CheckAccess(ctx, user.ID, content.ID)
		require.NoError(t, err)
		assert.False(t, res.Decision.Allowed)
		assert.Equal(t, entitlement.ReasonSubscriptionInactive, res.Decision.Reason)
		assert.Equal(t, 0, grant.AccessCount)
	})
}

func TestEntitlementService_ConsumeAccess(t *testing.T) {
	ctx := context.Background()

	t.Run("allowed grant writes back the atomic count", func(t *testing.T) {
		f := newFixture(t)
		svc := newEntitlementService(f)
		user := activeUser(entity.RoleConsumer)
		content := entity.NewContent(uuid.New(), uuid.New(), "Members", entity.ContentTypeVideo, "")
		expires := now.Add(49 * time.Hour)
		grant := entity.NewContentAccess(user.ID, content.ID, nil, entity.AccessOneTimePurchase, &expires, false, now.Add(-time.Hour))
		grant.AccessCount = 4

		f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		f.content.On("GetByID", mock.Anything, content.ID).Return(content, nil)
		f.grants.On("GetForUserContent", mock.Anything, user.ID, content.ID).Return(grant, nil)
		f.grants.On("RecordAccess", mock.Anything, grant.ID, now).Return(7, nil)

		res, err := svc.ConsumeAccess(ctx, user.ID, content.ID)
		require.NoError(t, err)
		assert.True(t, res.Decision.Allowed)
		assert.Equal(t, entitlement.ReasonGranted, res.Decision.Reason)
		assert.Equal(t, 7, res.Grant.AccessCount)
		assert.True(t, res.HasExpiry)
		assert.Equal(t, 3, res.DaysUntilExpiry)
		assert.Equal(t, 1, f.tx.Calls)
	})

	t.Run("first consume through a subscription issues the grant", func(t *testing.T) {
		f := newFixture(t)
		svc := newEntitlementService(f)
		user := activeUser(entity.RoleConsumer)
		profileID := uuid.New()
		content := entity.NewContent(uuid.New(), profileID, "Members", entity.ContentTypeVideo, "")
		content.Status = entity.ContentPublished
		sub := entity.NewSubscription(user.ID, uuid.New(), dec("10"), dec("0"), dec("10"), true)
		require.NoError(t, sub.Activate(now.Add(-time.Hour), now.AddDate(0, 1, 0)))

		f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		f.content.On("GetByID", mock.Anything, content.ID).Return(content, nil)
		f.grants.On("GetForUserContent", mock.Anything, user.ID, content.ID).Return(nil, domainErrors.ErrGrantNotFound)
		f.subs.On("GetLatestByUserAndCreator", mock.Anything, user.ID, profileID).Return(sub, nil)
		f.grants.On("Create", mock.Anything, mock.MatchedBy(func(g *entity.ContentAccess) bool {
			return g.AccessType == entity.AccessSubscription &&
				g.SubscriptionTierID != nil && *g.SubscriptionTierID == sub.TierID &&
				g.AccessCount == 1
		})).Return(nil)

		res, err := svc.ConsumeAccess(ctx, user.ID, content.ID)
		require.NoError(t, err)
		assert.True(t, res.Decision.Allowed)
		require.NotNil(t, res.Grant)
		assert.Equal(t, 1, res.Grant.AccessCount)
		assert.False(t, res.HasExpiry)
		f.grants.AssertNotCalled(t, "RecordAccess", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("expired purchase falls back to an active subscription", func(t *testing.T) {
		f := newFixture(t)
		svc := newEntitlementService(f)
		user := activeUser(entity.RoleConsumer)
		profileID := uuid.New()
		content := entity.NewContent(uuid.New(), profileID, "Members", entity.ContentTypeVideo, "")
		content.Status = entity.ContentPublished
		expired := now.Add(-time.Hour)
		purchase := entity.NewContentAccess(user.ID, content.ID, nil, entity.AccessOneTimePurchase, &expired, false, now.AddDate(0, -1, 0))
		sub := entity.NewSubscription(user.ID, uuid.New(), dec("10"), dec("0"), dec("10"), true)
		require.NoError(t, sub.Activate(now.Add(-time.Hour), now.AddDate(0, 1, 0)))

		f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		f.content.On("GetByID", mock.Anything, content.ID).Return(content, nil)
		f.grants.On("GetForUserContent", mock.Anything, user.ID, content.ID).Return(purchase, nil)
		f.subs.On("GetLatestByUserAndCreator", mock.Anything, user.ID, profileID).Return(sub, nil)
		f.grants.On("Create", mock.Anything, mock.AnythingOfType("*entity.ContentAccess")).Return(nil)

		res, err := svc.ConsumeAccess(ctx, user.ID, content.ID)
		require.NoError(t, err)
		assert.True(t, res.Decision.Allowed)
		assert.NotEqual(t, purchase.ID, res.Grant.ID)
	})

	t.Run("denied access records nothing", func(t *testing.T) {
		f := newFixture(t)
		svc := newEntitlementService(f)
		user := activeUser(entity.RoleConsumer)
		content := entity.NewContent(uuid.New(), uuid.New(), "Members", entity.ContentTypeVideo, "")
		grant := entity.NewContentAccess(user.ID, content.ID, nil, entity.AccessInvite, nil, true, now)
		require.NoError(t, grant.Revoke(now, "abuse"))

		f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		f.content.On("GetByID", mock.Anything, content.ID).Return(content, nil)
		f.grants.On("GetForUserContent", mock.Anything, user.ID, content.ID).Return(grant, nil)

		res, err := svc.ConsumeAccess(ctx, user.ID, content.ID)
		require.NoError(t, err)
		assert.Equal(t, entitlement.ReasonGrantRevoked, res.Decision.Reason)
		f.grants.AssertNotCalled(t, "RecordAccess", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown content surfaces not found", func(t *testing.T) {
		f := newFixture(t)
		svc := newEntitlementService(f)
		user := activeUser(entity.RoleConsumer)
		contentID := uuid.New()

		f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		f.content.On("GetByID", mock.Anything, contentID).Return(nil, domainErrors.ErrContentNotFound)

		_, err := svc.ConsumeAccess(ctx, user.ID, contentID)
		assert.True(t, domainErrors.IsNotFound(err))
	})
}

func TestEntitlementService_Tiers(t *testing.T) {
	ctx := context.Background()

	t.Run("TierPrice reads through the cache", func(t *testing.T) {
		f := newFixture(t)
		svc := newEntitlementService(f)
		tier := monthlyTier(uuid.New(), "12", 0)

		f.cache.On("Get", mock.Anything, tier.ID).Return(nil, service.ErrCacheMiss).Once()
		f.tiers.On("GetByID", mock.Anything, tier.ID).Return(tier, nil).Once()
		f.cache.On("Set", mock.Anything, tier).Return(nil).Once()
		f.cache.On("Get", mock.Anything, tier.ID).Return(tier, nil).Once()

		first, err := svc.TierPrice(ctx, tier.ID)
		require.NoError(t, err)
		second, err := svc.TierPrice(ctx, tier.ID)
		require.NoError(t, err)

		assert.True(t, first.Price.Equal(dec("12")))
		assert.False(t, first.HasDiscount)
		assert.True(t, second.Price.Equal(first.Price))
	})

	t.Run("TierRevenue is limited to the owner", func(t *testing.T) {
		f := newFixture(t)
		svc := newEntitlementService(f)
		owner := activeUser(entity.RoleCreator)
		profile := creatorProfile(owner.ID)
		tier := entity.NewSubscriptionTier(profile.ID, "Annual", dec("120"), "yearly", 0)
		tier.CurrentSubscribers = 3

		f.cache.On("Get", mock.Anything, tier.ID).Return(tier, nil)
		f.profiles.On("GetByUserID", mock.Anything, owner.ID).Return(profile, nil)

		rev, got, err := svc.TierRevenue(ctx, service.Actor{UserID: owner.ID, Role: owner.Role}, tier.ID)
		require.NoError(t, err)
		assert.Equal(t, tier, got)
		assert.True(t, rev.MonthlyNormalized.Equal(dec("360")))
		assert.True(t, rev.NativeCycleTotal.Equal(dec("4320")))

		stranger := activeUser(entity.RoleCreator)
		f.profiles.On("GetByUserID", mock.Anything, stranger.ID).Return(nil, domainErrors.ErrCreatorProfileNotFound)
		_, _, err = svc.TierRevenue(ctx, service.Actor{UserID: stranger.ID, Role: stranger.Role}, tier.ID)
		assert.ErrorIs(t, err, domainErrors.ErrNotOwner)
	})
}
