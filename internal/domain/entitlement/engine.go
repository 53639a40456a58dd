package entitlement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bivex/creatorhub/internal/domain/entity"
)

// AccessRequest bundles the snapshots needed for one access decision.
// Grant and Subscription may be nil.
type AccessRequest struct {
	User         *entity.User
	Content      *entity.Content
	Grant        *entity.ContentAccess
	Subscription *entity.Subscription
}

// Engine evaluates access rules and prices against its clock
type Engine struct {
	clock Clock
}

// NewEngine creates an engine; a nil clock means the system clock
func NewEngine(clock Clock) *Engine {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Engine{clock: clock}
}

// Now exposes the engine clock to collaborators that stamp writes
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}

// Check decides access without touching the grant
func (e *Engine) Check(req AccessRequest) Decision {
	return e.decide(req, e.clock.Now())
}

// Consume decides access and records usage on the grant when access flows through it
func (e *Engine) Consume(req AccessRequest) Decision {
	now := e.clock.Now()
	d := e.decide(req, now)
	if d.Allowed && d.Reason == ReasonGranted {
		RecordAccess(req.Grant, now)
	}
	return d
}

func (e *Engine) decide(req AccessRequest, now time.Time) Decision {
	if req.User == nil || !req.User.IsActive() {
		return deny(ReasonAccountInactive)
	}
	if req.Content != nil && req.Content.IsPublic() && req.Content.IsPublished() {
		return allow(ReasonPublicContent)
	}
	if req.Grant == nil {
		return deny(ReasonNoGrant)
	}
	if !CanAccess(req.Grant, now) {
		return deny(DenialReason(req.Grant, now))
	}
	if req.Grant.AccessType == entity.AccessSubscription {
		if req.Subscription == nil || !EffectivelyActive(req.Subscription, now) {
			return deny(ReasonSubscriptionInactive)
		}
	}
	return allow(ReasonGranted)
}

// Price is the effective tier price now
func (e *Engine) Price(tier *entity.SubscriptionTier) decimal.Decimal {
	return EffectivePrice(tier, e.clock.Now())
}

// HasActiveDiscount reports whether a discount is in force now
func (e *Engine) HasActiveDiscount(tier *entity.SubscriptionTier) bool {
	return HasActiveDiscount(tier, e.clock.Now())
}

// ProjectedRevenue projects tier revenue now
func (e *Engine) ProjectedRevenue(tier *entity.SubscriptionTier) Revenue {
	return ProjectedRevenue(tier, e.clock.Now())
}
