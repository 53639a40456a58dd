package entitlement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bivex/creatorhub/internal/domain/entity"
	"github.com/bivex/creatorhub/internal/domain/valueobject"
)

// IsActive reports the stored status only
func IsActive(sub *entity.Subscription) bool {
	return sub.Status == entity.StatusActive
}

// IsExpired reports whether now is past EndDate, whatever the status
func IsExpired(sub *entity.Subscription, now time.Time) bool {
	return now.After(sub.EndDate)
}

// DaysUntilExpiry is the number of started days left before EndDate; negative once expired
func DaysUntilExpiry(sub *entity.Subscription, now time.Time) int {
	return daysUntil(sub.EndDate, now)
}

// EffectivelyActive treats an active subscription whose EndDate has lapsed as inactive
func EffectivelyActive(sub *entity.Subscription, now time.Time) bool {
	return IsActive(sub) && !IsExpired(sub, now)
}

// NextBillingDate advances from by one billing cycle in calendar months
func NextBillingDate(from time.Time, cycle valueobject.BillingCycle) time.Time {
	return cycle.Advance(from)
}

// FinalAmount is amount minus discount, floored at zero
func FinalAmount(amount, discount decimal.Decimal) decimal.Decimal {
	final := amount.Sub(discount)
	if final.IsNegative() {
		return decimal.Zero
	}
	return valueobject.RoundMoney(final)
}

// NetPaid sums what the payer kept paid: amount minus refunds over settled payments
func NetPaid(payments []*entity.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		switch p.Status {
		case entity.PaymentCompleted, entity.PaymentPartiallyRefunded, entity.PaymentRefunded:
			total = total.Add(p.Amount.Sub(p.RefundedAmount))
		}
	}
	return valueobject.RoundMoney(total)
}
