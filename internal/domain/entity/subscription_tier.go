package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bivex/creatorhub/internal/domain/valueobject"
)

type TierStatus string

const (
	TierStatusActive   TierStatus = "active"
	TierStatusInactive TierStatus = "inactive"
	TierStatusArchived TierStatus = "archived"
)

// SubscriptionTier is a priced membership level offered by a creator.
// MaxSubscribers == 0 means unlimited; otherwise CurrentSubscribers <= MaxSubscribers.
type SubscriptionTier struct {
	ID                 uuid.UUID
	CreatorProfileID   uuid.UUID
	Name               string
	Description        string
	Price              decimal.Decimal
	BillingCycle       valueobject.BillingCycle
	MaxSubscribers     int
	CurrentSubscribers int
	Status             TierStatus
	IsPopular          bool
	DiscountPercentage *decimal.Decimal
	DiscountValidUntil *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewSubscriptionTier creates an active tier without a discount
func NewSubscriptionTier(profileID uuid.UUID, name string, price decimal.Decimal, cycle valueobject.BillingCycle, maxSubscribers int) *SubscriptionTier {
	now := time.Now()
	return &SubscriptionTier{
		ID:               uuid.New(),
		CreatorProfileID: profileID,
		Name:             name,
		Price:            price,
		BillingCycle:     cycle,
		MaxSubscribers:   maxSubscribers,
		Status:           TierStatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// IsUnlimited returns true when the tier has no capacity cap
func (t *SubscriptionTier) IsUnlimited() bool {
	return t.MaxSubscribers == 0
}

// IsAvailable returns true if the tier is active and has room for another subscriber
func (t *SubscriptionTier) IsAvailable() bool {
	return t.Status == TierStatusActive && (t.IsUnlimited() || t.CurrentSubscribers < t.MaxSubscribers)
}

// Discount returns the configured discount, or nil when either field is unset
func (t *SubscriptionTier) Discount() *valueobject.Discount {
	if t.DiscountPercentage == nil || t.DiscountValidUntil == nil {
		return nil
	}
	return &valueobject.Discount{Percentage: *t.DiscountPercentage, ValidUntil: *t.DiscountValidUntil}
}

// SetDiscount stores a validated discount on the tier
func (t *SubscriptionTier) SetDiscount(d valueobject.Discount) {
	pct := d.Percentage
	until := d.ValidUntil
	t.DiscountPercentage = &pct
	t.DiscountValidUntil = &until
	t.UpdatedAt = time.Now()
}

// ClearDiscount removes any discount
func (t *SubscriptionTier) ClearDiscount() {
	t.DiscountPercentage = nil
	t.DiscountValidUntil = nil
	t.UpdatedAt = time.Now()
}
