package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bivex/creatorhub/internal/domain/entity"
	"github.com/bivex/creatorhub/internal/domain/repository"
	"github.com/bivex/creatorhub/internal/domain/valueobject"
	pgrepo "github.com/bivex/creatorhub/internal/infrastructure/persistence/repository"
)

// Factory persists test entities through the real repositories
type Factory struct {
	Users    repository.UserRepository
	Profiles repository.CreatorProfileRepository
	Tiers    repository.SubscriptionTierRepository
	Subs     repository.SubscriptionRepository
	Payments repository.PaymentRepository
	Content  repository.ContentRepository
	Grants   repository.ContentAccessRepository
}

func NewFactory(pool *pgxpool.Pool) *Factory {
	return &Factory{
		Users:    pgrepo.NewUserRepository(pool),
		Profiles: pgrepo.NewCreatorProfileRepository(pool),
		Tiers:    pgrepo.NewSubscriptionTierRepository(pool),
		Subs:     pgrepo.NewSubscriptionRepository(pool),
		Payments: pgrepo.NewPaymentRepository(pool),
		Content:  pgrepo.NewContentRepository(pool),
		Grants:   pgrepo.NewContentAccessRepository(pool),
	}
}

// User creates an active user with a unique email
func (f *Factory) User(t *testing.T, ctx context.Context, role entity.UserRole) *entity.User {
	t.Helper()
	suffix := uuid.NewString()[:8]
	u := entity.NewUser("test_"+suffix+"@example.com", "user_"+suffix, role)
	u.Status = entity.UserStatusActive
	require.NoError(t, f.Users.Create(ctx, u))
	return u
}

// Creator creates a creator user together with its profile
func (f *Factory) Creator(t *testing.T, ctx context.Context) (*entity.User, *entity.CreatorProfile) {
	t.Helper()
	u := f.User(t, ctx, entity.RoleCreator)
	p := entity.NewCreatorProfile(u.ID, entity.CategoryWriter)
	require.NoError(t, f.Profiles.Create(ctx, p))
	return u, p
}

// Tier creates an active monthly tier
func (f *Factory) Tier(t *testing.T, ctx context.Context, profileID uuid.UUID, price string, maxSubscribers int) *entity.SubscriptionTier {
	t.Helper()
	tier := entity.NewSubscriptionTier(profileID, "Tier "+uuid.NewString()[:4], decimal.RequireFromString(price), valueobject.CycleMonthly, maxSubscribers)
	require.NoError(t, f.Tiers.Create(ctx, tier))
	return tier
}

// ActiveSubscription creates a subscription active over [start, end)
func (f *Factory) ActiveSubscription(t *testing.T, ctx context.Context, userID uuid.UUID, tier *entity.SubscriptionTier, start, end time.Time) *entity.Subscription {
	t.Helper()
	s := entity.NewSubscription(userID, tier.ID, tier.Price, decimal.Zero, tier.Price, true)
	require.NoError(t, s.Activate(start, end))
	require.NoError(t, f.Subs.Create(ctx, s))
	return s
}

// PublishedContent creates published content with the given visibility
func (f *Factory) PublishedContent(t *testing.T, ctx context.Context, creator *entity.User, profile *entity.CreatorProfile, visibility entity.ContentVisibility) *entity.Content {
	t.Helper()
	c := entity.NewContent(creator.ID, profile.ID, "Post "+uuid.NewString()[:4], entity.ContentTypePost, visibility)
	now := time.Now().UTC()
	c.Status = entity.ContentPublished
	c.PublishedAt = &now
	require.NoError(t, f.Content.Create(ctx, c))
	return c
}

// Grant creates an active grant; expiresAt nil with unlimited false is a grant with no end
func (f *Factory) Grant(t *testing.T, ctx context.Context, userID, contentID uuid.UUID, tierID *uuid.UUID, expiresAt *time.Time) *entity.ContentAccess {
	t.Helper()
	accessType := entity.AccessOneTimePurchase
	if tierID != nil {
		accessType = entity.AccessSubscription
	}
	g := entity.NewContentAccess(userID, contentID, tierID, accessType, expiresAt, false, time.Now().UTC())
	require.NoError(t, f.Grants.Create(ctx, g))
	return g
}
