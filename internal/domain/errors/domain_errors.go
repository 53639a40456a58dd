package errors

import (
	"errors"
	"fmt"
)

// Base classes. Every domain error wraps exactly one of these so callers can
// branch with errors.Is without knowing the concrete sentinel.
var (
	ErrNotFound               = errors.New("not found")
	ErrInvalidState           = errors.New("invalid state")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrForbidden              = errors.New("forbidden")
)

var (
	// Not found
	ErrUserNotFound           = fmt.Errorf("user %w", ErrNotFound)
	ErrCreatorProfileNotFound = fmt.Errorf("creator profile %w", ErrNotFound)
	ErrTierNotFound           = fmt.Errorf("subscription tier %w", ErrNotFound)
	ErrSubscriptionNotFound   = fmt.Errorf("subscription %w", ErrNotFound)
	ErrPaymentNotFound        = fmt.Errorf("payment %w", ErrNotFound)
	ErrContentNotFound        = fmt.Errorf("content %w", ErrNotFound)
	ErrGrantNotFound          = fmt.Errorf("content access grant %w", ErrNotFound)

	// Invalid state
	ErrNegativePrice      = fmt.Errorf("price must be non-negative: %w", ErrInvalidState)
	ErrInvalidDiscount    = fmt.Errorf("discount percentage must be within [0,100]: %w", ErrInvalidState)
	ErrIncompleteDiscount = fmt.Errorf("discount percentage and validity end must be set together: %w", ErrInvalidState)
	ErrInvalidCapacity    = fmt.Errorf("max subscribers must be non-negative: %w", ErrInvalidState)
	ErrTierFull           = fmt.Errorf("subscription tier is at capacity: %w", ErrInvalidState)
	ErrTierUnavailable    = fmt.Errorf("subscription tier is not available: %w", ErrInvalidState)
	ErrTierHasSubscribers = fmt.Errorf("cannot delete tier with active subscribers: %w", ErrInvalidState)
	ErrCounterUnderflow   = fmt.Errorf("counter would become negative: %w", ErrInvalidState)
	ErrNegativeEarnings   = fmt.Errorf("earnings would become negative: %w", ErrInvalidState)
	ErrRefundExceedsNet   = fmt.Errorf("refund exceeds remaining refundable amount: %w", ErrInvalidState)
	ErrInvalidTransition  = fmt.Errorf("status transition not allowed: %w", ErrInvalidState)
	ErrUserNotActive      = fmt.Errorf("user account is not active: %w", ErrInvalidState)
	ErrMissingTier        = fmt.Errorf("subscription grants require a tier: %w", ErrInvalidState)
	ErrAlreadySubscribed  = fmt.Errorf("user already holds an active subscription to this tier: %w", ErrInvalidState)
	ErrNotCreator         = fmt.Errorf("user has no creator profile: %w", ErrInvalidState)
	ErrNoRecipient        = fmt.Errorf("payment has no recipient creator: %w", ErrInvalidState)
	ErrCreatorInactive    = fmt.Errorf("creator profile is deactivated: %w", ErrInvalidState)
	ErrProfileExists      = fmt.Errorf("user already has a creator profile: %w", ErrInvalidState)

	// Forbidden
	ErrNotOwner = fmt.Errorf("caller does not own this resource: %w", ErrForbidden)
)

// NotFoundError wraps an error with not found context
type NotFoundError struct {
	Entity string
	ID     string
	Err    error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id '%s' not found: %v", e.Entity, e.ID, e.Err)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// NewNotFoundError builds a NotFoundError around one of the not found sentinels.
func NewNotFoundError(entity string, id fmt.Stringer, err error) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id.String(), Err: err}
}

// InvalidStateError reports a rule violation on a specific entity
type InvalidStateError struct {
	Entity string
	Reason string
	Err    error
}

func (e *InvalidStateError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %v", e.Entity, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Entity, e.Reason, e.Err)
}

func (e *InvalidStateError) Unwrap() error {
	return e.Err
}

// NewInvalidStateError builds an InvalidStateError around one of the invalid state sentinels.
func NewInvalidStateError(entity, reason string, err error) *InvalidStateError {
	return &InvalidStateError{Entity: entity, Reason: reason, Err: err}
}

// IsNotFound reports whether err belongs to the not found class.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidState reports whether err belongs to the invalid state class.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

// IsForbidden reports whether err belongs to the forbidden class.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsConcurrentModification reports whether err is a collided write.
func IsConcurrentModification(err error) bool {
	return errors.Is(err, ErrConcurrentModification)
}
