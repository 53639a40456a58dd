package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bivex/creatorhub/internal/domain/entity"
	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
	"github.com/bivex/creatorhub/internal/domain/service"
	"github.com/bivex/creatorhub/internal/domain/valueobject"
)

func TestTierService_Create(t *testing.T) {
	ctx := context.Background()
	owner := activeUser(entity.RoleCreator)
	actor := service.Actor{UserID: owner.ID, Role: owner.Role}

	t.Run("stores a tier on the creator profile", func(t *testing.T) {
		f := newFixture(t)
		svc := service.NewTierService(f.clock, f.tiers, f.profiles, f.cache, nil)
		profile := creatorProfile(owner.ID)

		f.profiles.On("GetByUserID", mock.Anything, owner.ID).Return(profile, nil)
		f.tiers.On("Create", mock.Anything, mock.AnythingOfType("*entity.SubscriptionTier")).Return(nil)

		pct := dec("20")
		until := now.Add(72 * time.Hour)
		tier, err := svc.Create(ctx, actor, service.CreateTierParams{
			Name:               "  Gold ",
			Price:              dec("9.999"),
			BillingCycle:       valueobject.CycleMonthly,
			MaxSubscribers:     100,
			DiscountPercentage: &pct,
			DiscountValidUntil: &until,
		})
		require.NoError(t, err)
		assert.Equal(t, "Gold", tier.Name)
		assert.Equal(t, profile.ID, tier.CreatorProfileID)
		assert.True(t, tier.Price.Equal(dec("10")))
		require.NotNil(t, tier.Discount())
		assert.True(t, tier.Discount().Percentage.Equal(pct))
	})

	cases := []struct {
		name   string
		params service.CreateTierParams
		want   error
	}{
		{
			name:   "negative price",
			params: service.CreateTierParams{Name: "Gold", Price: dec("-1"), BillingCycle: valueobject.CycleMonthly},
			want:   domainErrors.ErrNegativePrice,
		},
		{
			name:   "negative capacity",
			params: service.CreateTierParams{Name: "Gold", Price: dec("1"), BillingCycle: valueobject.CycleMonthly, MaxSubscribers: -1},
			want:   domainErrors.ErrInvalidCapacity,
		},
		{
			name:   "unknown billing cycle",
			params: service.CreateTierParams{Name: "Gold", Price: dec("1"), BillingCycle: "weekly"},
			want:   domainErrors.ErrInvalidBillingCycle,
		},
		{
			name:   "missing name",
			params: service.CreateTierParams{Price: dec("1"), BillingCycle: valueobject.CycleMonthly},
			want:   domainErrors.ErrInvalidInput,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			svc := service.NewTierService(f.clock, f.tiers, f.profiles, f.cache, nil)

			tier, err := svc.Create(ctx, actor, tc.params)
			assert.ErrorIs(t, err, tc.want)
			assert.Nil(t, tier)
		})
	}

	t.Run("discount fields must be set together", func(t *testing.T) {
		f := newFixture(t)
		svc := service.NewTierService(f.clock, f.tiers, f.profiles, f.cache, nil)
		f.profiles.On("GetByUserID", mock.Anything, owner.ID).Return(creatorProfile(owner.ID), nil)

		pct := dec("10")
		_, err := svc.Create(ctx, actor, service.CreateTierParams{
			Name: "Gold", Price: dec("5"), BillingCycle: valueobject.CycleMonthly, DiscountPercentage: &pct,
		})
		assert.ErrorIs(t, err, domainErrors.ErrIncompleteDiscount)
	})

	t.Run("discount above 100 is rejected", func(t *testing.T) {
		f := newFixture(t)
		svc := service.NewTierService(f.clock, f.tiers, f.profiles, f.cache, nil)
		f.profiles.On("GetByUserID", mock.Anything, owner.ID).Return(creatorProfile(owner.ID), nil)

		pct := dec("150")
		until := now.Add(time.Hour)
		_, err := svc.Create(ctx, actor, service.CreateTierParams{
			Name: "Gold", Price: dec("5"), BillingCycle: valueobject.CycleMonthly,
			DiscountPercentage: &pct, DiscountValidUntil: &until,
		})
		assert.ErrorIs(t, err, domainErrors.ErrInvalidDiscount)
	})

	t.Run("users without a creator profile cannot create tiers", func(t *testing.T) {
		f := newFixture(t)
		svc := service.NewTierService(f.clock, f.tiers, f.profiles, f.cache, nil)
		f.profiles.On("GetByUserID", mock.Anything, owner.ID).Return(nil, domainErrors.ErrCreatorProfileNotFound)

		_, err := svc.Create(ctx, actor, service.CreateTierParams{Name: "Gold", Price: dec("5"), BillingCycle: valueobject.CycleMonthly})
		assert.ErrorIs(t, err, domainErrors.ErrNotCreator)
	})
}

func TestTierService_Mutations(t *testing.T) {
	ctx := context.Background()
	owner := activeUser(entity.RoleCreator)
	actor := service.Actor{UserID: owner.ID, Role: owner.Role}

	t.Run("AddDiscount updates the tier and invalidates the cache", func(t *testing.T) {
		f := newFixture(t)
		svc := service.NewTierService(f.clock, f.tiers, f.profiles, f.cache, nil)
		profile := creatorProfile(owner.ID)
		tier := monthlyTier(profile.ID, "10", 0)

		f.tiers.On("GetByID", mock.Anything, tier.ID).Return(tier, nil)
		f.profiles.On("GetByUserID", mock.Anything, owner.ID).Return(profile, nil)
		f.tiers.On("Update", mock.Anything, tier).Return(nil)
		f.cache.On("Invalidate", mock.Anything, []uuid.UUID{tier.ID}).Return(nil)

		updated, err := svc.AddDiscount(ctx, actor, tier.ID, dec("25"), now.Add(time.Hour))
		require.NoError(t, err)
		assert.True(t, updated.Discount().Percentage.Equal(dec("25")))
		assert.Equal(t, now, updated.UpdatedAt)
	})

	t.Run("other creators are refused", func(t *testing.T) {
		f := newFixture(t)
		svc := service.NewTierService(f.clock, f.tiers, f.profiles, f.cache, nil)
		tier := monthlyTier(uuid.New(), "10", 0)

		f.tiers.On("GetByID", mock.Anything, tier.ID).Return(tier, nil)
		f.profiles.On("GetByUserID", mock.Anything, owner.ID).Return(creatorProfile(owner.ID), nil)

		_, err := svc.RemoveDiscount(ctx, actor, tier.ID)
		assert.ErrorIs(t, err, domainErrors.ErrNotOwner)
		assert.True(t, domainErrors.IsForbidden(err))
	})

	t.Run("admins may archive any tier", func(t *testing.T) {
		f := newFixture(t)
		svc := service.NewTierService(f.clock, f.tiers, f.profiles, f.cache, nil)
		tier := monthlyTier(uuid.New(), "10", 0)

		f.tiers.On("GetByID", mock.Anything, tier.ID).Return(tier, nil)
		f.tiers.On("Update", mock.Anything, tier).Return(nil)
		f.cache.On("Invalidate", mock.Anything, []uuid.UUID{tier.ID}).Return(nil)

		archived, err := svc.Archive(ctx, service.Actor{UserID: uuid.New(), Role: entity.RoleAdmin}, tier.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.TierStatusArchived, archived.Status)
	})

	t.Run("Delete is refused while the tier has subscribers", func(t *testing.T) {
		f := newFixture(t)
		svc := service.NewTierService(f.clock, f.tiers, f.profiles, f.cache, nil)
		tier := monthlyTier(uuid.New(), "10", 0)
		tier.CurrentSubscribers = 2

		f.tiers.On("GetByID", mock.Anything, tier.ID).Return(tier, nil)

		err := svc.Delete(ctx, service.SystemActor, tier.ID)
		assert.ErrorIs(t, err, domainErrors.ErrTierHasSubscribers)
		f.tiers.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Delete removes an empty tier", func(t *testing.T) {
		f := newFixture(t)
		svc := service.NewTierService(f.clock, f.tiers, f.profiles, f.cache, nil)
		tier := monthlyTier(uuid.New(), "10", 0)

		f.tiers.On("GetByID", mock.Anything, tier.ID).Return(tier, nil)
		f.tiers.On("Delete", mock.Anything, tier.ID).Return(nil)
		f.cache.On("Invalidate", mock.Anything, []uuid.UUID{tier.ID}).Return(nil)

		require.NoError(t, svc.Delete(ctx, service.SystemActor, tier.ID))
	})
}
