package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
)

type AccessType string

const (
	AccessSubscription    AccessType = "subscription"
	AccessOneTimePurchase AccessType = "one_time_purchase"
	AccessFree            AccessType = "free"
	AccessInvite          AccessType = "invite"
	AccessAdmin           AccessType = "admin"
)

// ParseAccessType validates an access type string
func ParseAccessType(accessType string) (AccessType, error) {
	a := AccessType(accessType)
	switch a {
	case AccessSubscription, AccessOneTimePurchase, AccessFree, AccessInvite, AccessAdmin:
		return a, nil
	default:
		return "", domainErrors.ErrInvalidAccessType
	}
}

type AccessStatus string

const (
	AccessStatusActive  AccessStatus = "active"
	AccessStatusExpired AccessStatus = "expired"
	AccessStatusRevoked AccessStatus = "revoked"
	AccessStatusPending AccessStatus = "pending"
)

// ContentAccess is a grant of one user to one piece of content. Rows are
// never deleted; they only move between statuses.
type ContentAccess struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	ContentID          uuid.UUID
	SubscriptionTierID *uuid.UUID
	AccessType         AccessType
	Status             AccessStatus
	GrantedAt          time.Time
	ExpiresAt          *time.Time
	RevokedAt          *time.Time
	RevokeReason       string
	IsUnlimited        bool
	AccessCount        int
	LastAccessedAt     *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewContentAccess creates an active grant
func NewContentAccess(userID, contentID uuid.UUID, tierID *uuid.UUID, accessType AccessType, expiresAt *time.Time, unlimited bool, now time.Time) *ContentAccess {
	return &ContentAccess{
		ID:                 uuid.New(),
		UserID:             userID,
		ContentID:          contentID,
		SubscriptionTierID: tierID,
		AccessType:         accessType,
		Status:             AccessStatusActive,
		GrantedAt:          now,
		ExpiresAt:          expiresAt,
		IsUnlimited:        unlimited,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// Revoke moves an active or pending grant to revoked
func (a *ContentAccess) Revoke(now time.Time, reason string) error {
	if a.Status == AccessStatusRevoked {
		return fmt.Errorf("revoke grant: already revoked: %w", domainErrors.ErrInvalidTransition)
	}
	a.Status = AccessStatusRevoked
	a.RevokedAt = &now
	a.RevokeReason = reason
	a.UpdatedAt = now
	return nil
}

// Expire moves an active grant to expired
func (a *ContentAccess) Expire(now time.Time) error {
	if a.Status != AccessStatusActive {
		return fmt.Errorf("expire %s grant: %w", a.Status, domainErrors.ErrInvalidTransition)
	}
	a.Status = AccessStatusExpired
	a.UpdatedAt = now
	return nil
}
