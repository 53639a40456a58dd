package entitlement_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bivex/creatorhub/internal/domain/entitlement"
	"github.com/bivex/creatorhub/internal/domain/entity"
	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
	"github.com/bivex/creatorhub/internal/domain/valueobject"
)

func TestProjectedRevenue(t *testing.T) {
	tests := []struct {
		name    string
		cycle   valueobject.BillingCycle
		monthly string
		native  string
	}{
		{"monthly", valueobject.CycleMonthly, "50", "50"},
		{"quarterly", valueobject.CycleQuarterly, "50", "150"},
		{"yearly", valueobject.CycleYearly, "50", "600"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier := entity.NewSubscriptionTier(uuid.New(), "Gold", dec("10"), tt.cycle, 0)
			tier.CurrentSubscribers = 5

			rev := entitlement.ProjectedRevenue(tier, today)

			assert.True(t, rev.MonthlyNormalized.Equal(dec(tt.monthly)), "monthly %s", rev.MonthlyNormalized)
			assert.True(t, rev.NativeCycleTotal.Equal(dec(tt.native)), "native %s", rev.NativeCycleTotal)
			assert.Equal(t, tt.cycle, rev.BillingCycle)
		})
	}

	t.Run("uses discounted price", func(t *testing.T) {
		tier := discountedTier("10", "50", today.Add(time.Hour))
		tier.CurrentSubscribers = 3

		rev := entitlement.ProjectedRevenue(tier, today)
		assert.True(t, rev.MonthlyNormalized.Equal(dec("15")))
	})

	t.Run("no subscribers", func(t *testing.T) {
		tier := entity.NewSubscriptionTier(uuid.New(), "Gold", dec("10"), valueobject.CycleYearly, 0)

		rev := entitlement.ProjectedRevenue(tier, today)
		assert.True(t, rev.MonthlyNormalized.IsZero())
		assert.True(t, rev.NativeCycleTotal.IsZero())
	})
}

func TestApplyEarnings(t *testing.T) {
	t.Run("adds to both figures", func(t *testing.T) {
		profile := entity.NewCreatorProfile(uuid.New(), entity.CategoryArtist)

		require.NoError(t, entitlement.ApplyEarnings(profile, dec("12.50")))
		require.NoError(t, entitlement.ApplyEarnings(profile, dec("7.50")))

		assert.True(t, profile.TotalEarnings.Equal(dec("20")))
		assert.True(t, profile.MonthlyEarnings.Equal(dec("20")))
	})

	t.Run("refund reduces both figures", func(t *testing.T) {
		profile := entity.NewCreatorProfile(uuid.New(), entity.CategoryArtist)
		profile.TotalEarnings = dec("100")
		profile.MonthlyEarnings = dec("30")

		require.NoError(t, entitlement.ApplyEarnings(profile, dec("-10")))

		assert.True(t, profile.TotalEarnings.Equal(dec("90")))
		assert.True(t, profile.MonthlyEarnings.Equal(dec("20")))
	})

	t.Run("refund after the monthly reset floors the monthly figure", func(t *testing.T) {
		tests := []struct {
			name    string
			monthly string
		}{
			{"monthly already reset", "0"},
			{"monthly below the refund", "5"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				profile := entity.NewCreatorProfile(uuid.New(), entity.CategoryArtist)
				profile.TotalEarnings = dec("100")
				profile.MonthlyEarnings = dec(tt.monthly)

				require.NoError(t, entitlement.ApplyEarnings(profile, dec("-10")))

				assert.True(t, profile.TotalEarnings.Equal(dec("90")))
				assert.True(t, profile.MonthlyEarnings.IsZero())
			})
		}
	})

	t.Run("refuses negative total and leaves profile untouched", func(t *testing.T) {
		profile := entity.NewCreatorProfile(uuid.New(), entity.CategoryArtist)
		profile.TotalEarnings = dec("5")
		profile.MonthlyEarnings = dec("5")

		err := entitlement.ApplyEarnings(profile, dec("-10"))

		assert.ErrorIs(t, err, domainErrors.ErrNegativeEarnings)
		assert.True(t, domainErrors.IsInvalidState(err))
		assert.True(t, profile.TotalEarnings.Equal(dec("5")))
		assert.True(t, profile.MonthlyEarnings.Equal(dec("5")))
	})
}

func TestAdjustCounter(t *testing.T) {
	next, err := entitlement.AdjustCounter(3, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, next)

	next, err = entitlement.AdjustCounter(1, -1)
	require.NoError(t, err)
	assert.Equal(t, 0, next)

	next, err = entitlement.AdjustCounter(0, -1)
	assert.ErrorIs(t, err, domainErrors.ErrCounterUnderflow)
	assert.Equal(t, 0, next)
}

func TestCheckCapacity(t *testing.T) {
	capped := entity.NewSubscriptionTier(uuid.New(), "Limited", dec("10"), valueobject.CycleMonthly, 2)
	capped.CurrentSubscribers = 2

	err := entitlement.CheckCapacity(capped, 1)
	assert.ErrorIs(t, err, domainErrors.ErrTierFull)
	assert.NoError(t, entitlement.CheckCapacity(capped, -1))

	unlimited := entity.NewSubscriptionTier(uuid.New(), "Open", dec("10"), valueobject.CycleMonthly, 0)
	unlimited.CurrentSubscribers = 10000
	assert.NoError(t, entitlement.CheckCapacity(unlimited, 1))
}
