package entitlement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bivex/creatorhub/internal/domain/entity"
	"github.com/bivex/creatorhub/internal/domain/valueobject"
)

// activeDiscount returns the discount percentage in force at now, if any.
// A discount is in force while DiscountValidUntil is strictly after now.
func activeDiscount(tier *entity.SubscriptionTier, now time.Time) (decimal.Decimal, bool) {
	if tier.DiscountPercentage == nil || tier.DiscountValidUntil == nil {
		return decimal.Zero, false
	}
	if !tier.DiscountValidUntil.After(now) {
		return decimal.Zero, false
	}
	return *tier.DiscountPercentage, true
}

// HasActiveDiscount reports whether EffectivePrice would apply a discount at now
func HasActiveDiscount(tier *entity.SubscriptionTier, now time.Time) bool {
	_, ok := activeDiscount(tier, now)
	return ok
}

// EffectivePrice is the tier price after any discount in force at now,
// rounded to cents and never below zero.
func EffectivePrice(tier *entity.SubscriptionTier, now time.Time) decimal.Decimal {
	pct, ok := activeDiscount(tier, now)
	if !ok {
		return valueobject.RoundMoney(tier.Price)
	}

	price := tier.Price.Mul(valueobject.Discount{Percentage: pct}.Factor())
	if price.IsNegative() {
		return decimal.Zero
	}
	return valueobject.RoundMoney(price)
}
