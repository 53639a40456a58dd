package entitlement

import (
	"time"

	"github.com/bivex/creatorhub/internal/domain/entity"
)

func withinExpiry(grant *entity.ContentAccess, now time.Time) bool {
	return grant.IsUnlimited || grant.ExpiresAt == nil || !now.After(*grant.ExpiresAt)
}

// CanAccess reports whether the grant permits access at now
func CanAccess(grant *entity.ContentAccess, now time.Time) bool {
	return grant.Status == entity.AccessStatusActive &&
		withinExpiry(grant, now) &&
		grant.Status != entity.AccessStatusRevoked
}

// DenialReason names the first check the grant fails, or ReasonNone when CanAccess holds
func DenialReason(grant *entity.ContentAccess, now time.Time) Reason {
	switch grant.Status {
	case entity.AccessStatusRevoked:
		return ReasonGrantRevoked
	case entity.AccessStatusPending:
		return ReasonGrantPending
	case entity.AccessStatusExpired:
		return ReasonGrantExpired
	case entity.AccessStatusActive:
		if !withinExpiry(grant, now) {
			return ReasonGrantExpired
		}
		return ReasonNone
	default:
		return ReasonGrantInactive
	}
}

// GrantDaysUntilExpiry returns the started days left, negative once past.
// ok is false for unlimited or open-ended grants.
func GrantDaysUntilExpiry(grant *entity.ContentAccess, now time.Time) (days int, ok bool) {
	if grant.IsUnlimited || grant.ExpiresAt == nil {
		return 0, false
	}
	return daysUntil(*grant.ExpiresAt, now), true
}

// RecordAccess bumps the usage counters on the snapshot
func RecordAccess(grant *entity.ContentAccess, now time.Time) {
	grant.AccessCount++
	at := now
	grant.LastAccessedAt = &at
}
