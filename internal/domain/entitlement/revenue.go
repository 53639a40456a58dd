package entitlement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bivex/creatorhub/internal/domain/entity"
	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
	"github.com/bivex/creatorhub/internal/domain/valueobject"
)

// Revenue carries both projections of a tier's income
type Revenue struct {
	MonthlyNormalized decimal.Decimal         `json:"monthly_normalized"`
	NativeCycleTotal  decimal.Decimal         `json:"native_cycle_total"`
	BillingCycle      valueobject.BillingCycle `json:"billing_cycle"`
}

// ProjectedRevenue multiplies the effective price by current subscribers, then scales
// by the number of months in the tier's billing cycle.
func ProjectedRevenue(tier *entity.SubscriptionTier, now time.Time) Revenue {
	monthly := EffectivePrice(tier, now).Mul(decimal.NewFromInt(int64(tier.CurrentSubscribers)))
	native := monthly.Mul(decimal.NewFromInt(int64(tier.BillingCycle.Months())))
	return Revenue{
		MonthlyNormalized: valueobject.RoundMoney(monthly),
		NativeCycleTotal:  valueobject.RoundMoney(native),
		BillingCycle:      tier.BillingCycle,
	}
}

// ApplyEarnings adds delta to both earnings figures. Negative deltas are refunds
// and are refused only when the lifetime total would drop below zero. The
// monthly figure is floored at zero, since a refund may reach back past the
// monthly reset.
func ApplyEarnings(profile *entity.CreatorProfile, delta decimal.Decimal) error {
	total := profile.TotalEarnings.Add(delta)
	if total.IsNegative() {
		return domainErrors.NewInvalidStateError("creator_profile", profile.ID.String(), domainErrors.ErrNegativeEarnings)
	}
	monthly := decimal.Max(profile.MonthlyEarnings.Add(delta), decimal.Zero)
	profile.TotalEarnings = valueobject.RoundMoney(total)
	profile.MonthlyEarnings = valueobject.RoundMoney(monthly)
	return nil
}

// AdjustCounter returns current+delta, refusing negative results
func AdjustCounter(current, delta int) (int, error) {
	next := current + delta
	if next < 0 {
		return current, domainErrors.ErrCounterUnderflow
	}
	return next, nil
}

// CheckCapacity refuses a subscriber delta that would overfill a capped tier
func CheckCapacity(tier *entity.SubscriptionTier, delta int) error {
	if delta <= 0 || tier.IsUnlimited() {
		return nil
	}
	if tier.CurrentSubscribers+delta > tier.MaxSubscribers {
		return domainErrors.NewInvalidStateError("subscription_tier", tier.ID.String(), domainErrors.ErrTierFull)
	}
	return nil
}
