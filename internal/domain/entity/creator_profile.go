package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

type CreatorCategory string

const (
	CategoryArtist       CreatorCategory = "artist"
	CategoryMusician     CreatorCategory = "musician"
	CategoryWriter       CreatorCategory = "writer"
	CategoryPhotographer CreatorCategory = "photographer"
	CategoryVideographer CreatorCategory = "videographer"
	CategoryPodcaster    CreatorCategory = "podcaster"
	CategoryEducator     CreatorCategory = "educator"
	CategoryFitness      CreatorCategory = "fitness"
	CategoryCooking      CreatorCategory = "cooking"
	CategoryGaming       CreatorCategory = "gaming"
	CategoryOther        CreatorCategory = "other"
)

// ParseVerificationStatus validates a verification status string
func ParseVerificationStatus(s string) (VerificationStatus, error) {
	switch v := VerificationStatus(s); v {
	case VerificationPending, VerificationVerified, VerificationRejected:
		return v, nil
	}
	return "", domainErrors.ErrInvalidStatus
}

// ParseCreatorCategory validates a category string; empty means other
func ParseCreatorCategory(s string) (CreatorCategory, error) {
	switch c := CreatorCategory(s); c {
	case "":
		return CategoryOther, nil
	case CategoryArtist, CategoryMusician, CategoryWriter, CategoryPhotographer, CategoryVideographer,
		CategoryPodcaster, CategoryEducator, CategoryFitness, CategoryCooking, CategoryGaming, CategoryOther:
		return c, nil
	}
	return "", domainErrors.ErrInvalidCategory
}

// CreatorProfile is the 1:1 creator extension of a User. TotalSubscribers and
// TotalContent move only through explicit +/-1 deltas.
type CreatorProfile struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Category           CreatorCategory
	Bio                string
	IsVerified         bool
	VerificationStatus VerificationStatus
	TotalEarnings      decimal.Decimal
	MonthlyEarnings    decimal.Decimal
	TotalSubscribers   int
	TotalContent       int
	IsActive           bool
	DeactivationReason string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewCreatorProfile creates an empty, active, unverified profile
func NewCreatorProfile(userID uuid.UUID, category CreatorCategory) *CreatorProfile {
	now := time.Now()
	return &CreatorProfile{
		ID:                 uuid.New(),
		UserID:             userID,
		Category:           category,
		VerificationStatus: VerificationPending,
		TotalEarnings:      decimal.Zero,
		MonthlyEarnings:    decimal.Zero,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// IsVerifiedCreator requires both the flag and the verified status
func (p *CreatorProfile) IsVerifiedCreator() bool {
	return p.IsVerified && p.VerificationStatus == VerificationVerified
}

// Deactivate hides an active profile from new subscriptions and payments
func (p *CreatorProfile) Deactivate(now time.Time, reason string) error {
	if !p.IsActive {
		return fmt.Errorf("deactivate creator profile: already inactive: %w", domainErrors.ErrInvalidTransition)
	}
	p.IsActive = false
	p.DeactivationReason = reason
	p.UpdatedAt = now
	return nil
}

// Reactivate reopens a deactivated profile and clears the reason
func (p *CreatorProfile) Reactivate(now time.Time) error {
	if p.IsActive {
		return fmt.Errorf("reactivate creator profile: already active: %w", domainErrors.ErrInvalidTransition)
	}
	p.IsActive = true
	p.DeactivationReason = ""
	p.UpdatedAt = now
	return nil
}

// SetVerification records a review outcome; IsVerified follows the status
func (p *CreatorProfile) SetVerification(now time.Time, status VerificationStatus) {
	p.VerificationStatus = status
	p.IsVerified = status == VerificationVerified
	p.UpdatedAt = now
}
