package entitlement_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bivex/creatorhub/internal/domain/entitlement"
	"github.com/bivex/creatorhub/internal/domain/entity"
)

func activeUser() *entity.User {
	u := entity.NewUser("fan@example.com", "fan", entity.RoleConsumer)
	u.Status = entity.UserStatusActive
	return u
}

func content(visibility entity.ContentVisibility, status entity.ContentStatus) *entity.Content {
	c := entity.NewContent(uuid.New(), uuid.New(), "Behind the scenes", entity.ContentTypeVideo, visibility)
	c.Status = status
	return c
}

func subscriptionGrant(user *entity.User, c *entity.Content) *entity.ContentAccess {
	tierID := uuid.New()
	return entity.NewContentAccess(user.ID, c.ID, &tierID, entity.AccessSubscription, nil, false, today.AddDate(0, 0, -5))
}

func TestEngine(t *testing.T) {
	engine := entitlement.NewEngine(entitlement.FixedClock{At: today})

	t.Run("inactive user is denied even for public content", func(t *testing.T) {
		user := activeUser()
		user.Status = entity.UserStatusInactive

		d := engine.Check(entitlement.AccessRequest{
			User:    user,
			Content: content(entity.VisibilityPublic, entity.ContentPublished),
		})

		assert.Equal(t, entitlement.Decision{Allowed: false, Reason: entitlement.ReasonAccountInactive}, d)
	})

	t.Run("public published content is open", func(t *testing.T) {
		d := engine.Check(entitlement.AccessRequest{
			User:    activeUser(),
			Content: content(entity.VisibilityPublic, entity.ContentPublished),
		})

		assert.Equal(t, entitlement.Decision{Allowed: true, Reason: entitlement.ReasonPublicContent}, d)
	})

	t.Run("public draft still needs a grant", func(t *testing.T) {
		d := engine.Check(entitlement.AccessRequest{
			User:    activeUser(),
			Content: content(entity.VisibilityPublic, entity.ContentDraft),
		})

		assert.Equal(t, entitlement.ReasonNoGrant, d.Reason)
		assert.False(t, d.Allowed)
	})

	t.Run("missing grant", func(t *testing.T) {
		d := engine.Check(entitlement.AccessRequest{
			User:    activeUser(),
			Content: content(entity.VisibilitySubscribersOnly, entity.ContentPublished),
		})

		assert.Equal(t, entitlement.Decision{Allowed: false, Reason: entitlement.ReasonNoGrant}, d)
	})

	t.Run("revoked grant", func(t *testing.T) {
		user := activeUser()
		c := content(entity.VisibilitySubscribersOnly, entity.ContentPublished)
		g := entity.NewContentAccess(user.ID, c.ID, nil, entity.AccessInvite, nil, true, today)
		g.Status = entity.AccessStatusRevoked

		d := engine.Check(entitlement.AccessRequest{User: user, Content: c, Grant: g})

		assert.Equal(t, entitlement.Decision{Allowed: false, Reason: entitlement.ReasonGrantRevoked}, d)
	})

	t.Run("cancelled subscription with future end date", func(t *testing.T) {
		user := activeUser()
		c := content(entity.VisibilitySubscribersOnly, entity.ContentPublished)
		g := subscriptionGrant(user, c)
		sub := subscriptionEnding(entity.StatusCancelled, today.AddDate(0, 0, 10))

		d := engine.Check(entitlement.AccessRequest{User: user, Content: c, Grant: g, Subscription: sub})

		assert.Equal(t, entitlement.Decision{Allowed: false, Reason: entitlement.ReasonSubscriptionInactive}, d)
	})

	t.Run("subscription grant without linked subscription", func(t *testing.T) {
		user := activeUser()
		c := content(entity.VisibilitySubscribersOnly, entity.ContentPublished)

		d := engine.Check(entitlement.AccessRequest{User: user, Content: c, Grant: subscriptionGrant(user, c)})

		assert.Equal(t, entitlement.ReasonSubscriptionInactive, d.Reason)
	})

	t.Run("subscription grant with lapsed active subscription", func(t *testing.T) {
		user := activeUser()
		c := content(entity.VisibilitySubscribersOnly, entity.ContentPublished)
		sub := subscriptionEnding(entity.StatusActive, today.Add(-time.Hour))

		d := engine.Check(entitlement.AccessRequest{User: user, Content: c, Grant: subscriptionGrant(user, c), Subscription: sub})

		assert.Equal(t, entitlement.ReasonSubscriptionInactive, d.Reason)
	})

	t.Run("subscription grant with live subscription", func(t *testing.T) {
		user := activeUser()
		c := content(entity.VisibilityTierSpecific, entity.ContentPublished)
		sub := subscriptionEnding(entity.StatusActive, today.AddDate(0, 0, 10))

		d := engine.Check(entitlement.AccessRequest{User: user, Content: c, Grant: subscriptionGrant(user, c), Subscription: sub})

		assert.Equal(t, entitlement.Decision{Allowed: true, Reason: entitlement.ReasonGranted}, d)
	})

	t.Run("grant without expiry and not unlimited is allowed", func(t *testing.T) {
		user := activeUser()
		c := content(entity.VisibilitySubscribersOnly, entity.ContentPublished)
		g := entity.NewContentAccess(user.ID, c.ID, nil, entity.AccessOneTimePurchase, nil, false, today)

		d := engine.Check(entitlement.AccessRequest{User: user, Content: c, Grant: g})

		assert.True(t, d.Allowed)
		assert.Equal(t, entitlement.ReasonGranted, d.Reason)
	})

	t.Run("check is read-only and repeatable", func(t *testing.T) {
		user := activeUser()
		c := content(entity.VisibilitySubscribersOnly, entity.ContentPublished)
		g := entity.NewContentAccess(user.ID, c.ID, nil, entity.AccessFree, nil, false, today)
		req := entitlement.AccessRequest{User: user, Content: c, Grant: g}

		first := engine.Check(req)
		second := engine.Check(req)

		assert.Equal(t, first, second)
		assert.Equal(t, 0, g.AccessCount)
		assert.Nil(t, g.LastAccessedAt)
	})

	t.Run("consume records access on allow via grant", func(t *testing.T) {
		user := activeUser()
		c := content(entity.VisibilitySubscribersOnly, entity.ContentPublished)
		g := entity.NewContentAccess(user.ID, c.ID, nil, entity.AccessFree, nil, false, today)

		d := engine.Consume(entitlement.AccessRequest{User: user, Content: c, Grant: g})

		assert.True(t, d.Allowed)
		assert.Equal(t, 1, g.AccessCount)
		if assert.NotNil(t, g.LastAccessedAt) {
			assert.Equal(t, today, *g.LastAccessedAt)
		}
	})

	t.Run("consume of public content leaves grant alone", func(t *testing.T) {
		user := activeUser()
		c := content(entity.VisibilityPublic, entity.ContentPublished)
		g := entity.NewContentAccess(user.ID, c.ID, nil, entity.AccessFree, nil, false, today)

		d := engine.Consume(entitlement.AccessRequest{User: user, Content: c, Grant: g})

		assert.Equal(t, entitlement.ReasonPublicContent, d.Reason)
		assert.Equal(t, 0, g.AccessCount)
	})

	t.Run("consume on denial leaves grant alone", func(t *testing.T) {
		user := activeUser()
		c := content(entity.VisibilitySubscribersOnly, entity.ContentPublished)
		g := entity.NewContentAccess(user.ID, c.ID, nil, entity.AccessFree, at(today.Add(-time.Hour)), false, today.AddDate(0, 0, -1))

		d := engine.Consume(entitlement.AccessRequest{User: user, Content: c, Grant: g})

		assert.Equal(t, entitlement.ReasonGrantExpired, d.Reason)
		assert.Equal(t, 0, g.AccessCount)
	})

	t.Run("price and revenue use the engine clock", func(t *testing.T) {
		tier := discountedTier("10", "50", today.Add(24*time.Hour))
		tier.CurrentSubscribers = 2

		assert.True(t, engine.Price(tier).Equal(dec("5")))
		assert.True(t, engine.HasActiveDiscount(tier))
		assert.True(t, engine.ProjectedRevenue(tier).MonthlyNormalized.Equal(dec("10")))

		later := entitlement.NewEngine(entitlement.FixedClock{At: today.Add(25 * time.Hour)})
		assert.True(t, later.Price(tier).Equal(dec("10")))
	})
}
