package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
)

type SubscriptionStatus string

const (
	StatusPending   SubscriptionStatus = "pending"
	StatusActive    SubscriptionStatus = "active"
	StatusPaused    SubscriptionStatus = "paused"
	StatusCancelled SubscriptionStatus = "cancelled"
	StatusExpired   SubscriptionStatus = "expired"
	StatusFailed    SubscriptionStatus = "failed"
)

type CancellationReason string

const (
	CancelTooExpensive     CancellationReason = "too_expensive"
	CancelNotEnoughContent CancellationReason = "not_enough_content"
	CancelQualityIssues    CancellationReason = "quality_issues"
	CancelPersonalReasons  CancellationReason = "personal_reasons"
	CancelFoundAlternative CancellationReason = "found_alternative"
	CancelOther            CancellationReason = "other"
)

// ParseCancellationReason validates a cancellation reason; empty means other
func ParseCancellationReason(reason string) (CancellationReason, error) {
	if reason == "" {
		return CancelOther, nil
	}
	r := CancellationReason(reason)
	switch r {
	case CancelTooExpensive, CancelNotEnoughContent, CancelQualityIssues,
		CancelPersonalReasons, CancelFoundAlternative, CancelOther:
		return r, nil
	default:
		return "", domainErrors.ErrInvalidReason
	}
}

type Subscription struct {
	ID                 uuid.UUID
	SubscriberID       uuid.UUID
	TierID             uuid.UUID
	Status             SubscriptionStatus
	StartDate          time.Time
	EndDate            time.Time
	NextBillingDate    *time.Time
	CancelledAt        *time.Time
	CancellationReason *CancellationReason
	CancellationNote   string
	AutoRenew          bool
	Amount             decimal.Decimal
	DiscountAmount     decimal.Decimal
	FinalAmount        decimal.Decimal
	IsGift             bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewSubscription creates a pending subscription. FinalAmount is computed by the caller.
func NewSubscription(subscriberID, tierID uuid.UUID, amount, discountAmount, finalAmount decimal.Decimal, autoRenew bool) *Subscription {
	now := time.Now()
	return &Subscription{
		ID:             uuid.New(),
		SubscriberID:   subscriberID,
		TierID:         tierID,
		Status:         StatusPending,
		StartDate:      now,
		EndDate:        now,
		AutoRenew:      autoRenew,
		Amount:         amount,
		DiscountAmount: discountAmount,
		FinalAmount:    finalAmount,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsTerminated returns true if the subscription is cancelled or expired
func (s *Subscription) IsTerminated() bool {
	return s.Status == StatusCancelled || s.Status == StatusExpired
}

// Activate moves a pending subscription to active for one billing period [start, end)
func (s *Subscription) Activate(start, end time.Time) error {
	if s.Status != StatusPending {
		return fmt.Errorf("activate %s subscription: %w", s.Status, domainErrors.ErrInvalidTransition)
	}
	s.Status = StatusActive
	s.StartDate = start
	s.EndDate = end
	if s.AutoRenew {
		next := end
		s.NextBillingDate = &next
	}
	s.UpdatedAt = start
	return nil
}

// Cancel terminates a pending, active or paused subscription
func (s *Subscription) Cancel(now time.Time, reason CancellationReason, note string) error {
	switch s.Status {
	case StatusPending, StatusActive, StatusPaused:
	default:
		return fmt.Errorf("cancel %s subscription: %w", s.Status, domainErrors.ErrInvalidTransition)
	}
	s.Status = StatusCancelled
	s.CancelledAt = &now
	s.CancellationReason = &reason
	s.CancellationNote = note
	s.AutoRenew = false
	s.NextBillingDate = nil
	s.UpdatedAt = now
	return nil
}

// Expire marks an active or paused subscription as expired
func (s *Subscription) Expire(now time.Time) error {
	if s.Status != StatusActive && s.Status != StatusPaused {
		return fmt.Errorf("expire %s subscription: %w", s.Status, domainErrors.ErrInvalidTransition)
	}
	s.Status = StatusExpired
	s.NextBillingDate = nil
	s.UpdatedAt = now
	return nil
}
