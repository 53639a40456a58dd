package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bivex/creatorhub/internal/domain/entitlement"
	"github.com/bivex/creatorhub/internal/domain/entity"
	"github.com/bivex/creatorhub/internal/domain/service"
	"github.com/bivex/creatorhub/internal/domain/valueobject"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(valueobject.MoneyScale)
}

func optionalID(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

// NewTierResponse maps a tier
func NewTierResponse(t *entity.SubscriptionTier) TierResponse {
	resp := TierResponse{
		ID:                 t.ID.String(),
		CreatorProfileID:   t.CreatorProfileID.String(),
		Name:               t.Name,
		Description:        t.Description,
		Price:              money(t.Price),
		BillingCycle:       t.BillingCycle.String(),
		MaxSubscribers:     t.MaxSubscribers,
		CurrentSubscribers: t.CurrentSubscribers,
		Status:             string(t.Status),
		IsPopular:          t.IsPopular,
		DiscountValidUntil: t.DiscountValidUntil,
	}
	if t.DiscountPercentage != nil {
		resp.DiscountPercentage = t.DiscountPercentage.String()
	}
	return resp
}

// NewTierRevenueResponse maps a revenue projection
func NewTierRevenueResponse(t *entity.SubscriptionTier, rev entitlement.Revenue) TierRevenueResponse {
	return TierRevenueResponse{
		TierID:             t.ID.String(),
		BillingCycle:       rev.BillingCycle.String(),
		CurrentSubscribers: t.CurrentSubscribers,
		MonthlyNormalized:  money(rev.MonthlyNormalized),
		NativeCycleTotal:   money(rev.NativeCycleTotal),
	}
}

// NewSubscriptionResponse maps a subscription
func NewSubscriptionResponse(s *entity.Subscription) SubscriptionResponse {
	resp := SubscriptionResponse{
		ID:              s.ID.String(),
		SubscriberID:    s.SubscriberID.String(),
		TierID:          s.TierID.String(),
		Status:          string(s.Status),
		StartDate:       s.StartDate,
		EndDate:         s.EndDate,
		NextBillingDate: s.NextBillingDate,
		AutoRenew:       s.AutoRenew,
		Amount:          money(s.Amount),
		DiscountAmount:  money(s.DiscountAmount),
		FinalAmount:     money(s.FinalAmount),
		IsGift:          s.IsGift,
		CancelledAt:     s.CancelledAt,
	}
	if s.CancellationReason != nil {
		resp.CancellationReason = string(*s.CancellationReason)
	}
	return resp
}

// NewPaymentResponse maps a payment
func NewPaymentResponse(p *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                 p.ID.String(),
		TransactionID:      p.TransactionID,
		UserID:             p.UserID.String(),
		SubscriptionID:     optionalID(p.SubscriptionID),
		RecipientProfileID: optionalID(p.RecipientProfileID),
		Type:               string(p.Type),
		Status:             string(p.Status),
		Amount:             money(p.Amount),
		TaxAmount:          money(p.TaxAmount),
		FeeAmount:          money(p.FeeAmount),
		NetAmount:          money(p.NetAmount),
		RefundedAmount:     money(p.RefundedAmount),
		Currency:           p.Currency,
		ProcessedAt:        p.ProcessedAt,
		RefundedAt:         p.RefundedAt,
	}
}

// NewGrantResponse maps a content access grant
func NewGrantResponse(g *entity.ContentAccess) GrantResponse {
	return GrantResponse{
		ID:             g.ID.String(),
		UserID:         g.UserID.String(),
		ContentID:      g.ContentID.String(),
		TierID:         optionalID(g.SubscriptionTierID),
		AccessType:     string(g.AccessType),
		Status:         string(g.Status),
		GrantedAt:      g.GrantedAt,
		ExpiresAt:      g.ExpiresAt,
		RevokedAt:      g.RevokedAt,
		RevokeReason:   g.RevokeReason,
		IsUnlimited:    g.IsUnlimited,
		AccessCount:    g.AccessCount,
		LastAccessedAt: g.LastAccessedAt,
	}
}

// NewCreatorProfileResponse maps a creator profile
func NewCreatorProfileResponse(p *entity.CreatorProfile) CreatorProfileResponse {
	return CreatorProfileResponse{
		ID:                 p.ID.String(),
		UserID:             p.UserID.String(),
		Category:           string(p.Category),
		Bio:                p.Bio,
		IsVerified:         p.IsVerified,
		VerificationStatus: string(p.VerificationStatus),
		IsActive:           p.IsActive,
		DeactivationReason: p.DeactivationReason,
		TotalEarnings:      money(p.TotalEarnings),
		MonthlyEarnings:    money(p.MonthlyEarnings),
		TotalSubscribers:   p.TotalSubscribers,
		TotalContent:       p.TotalContent,
	}
}

// NewContentResponse maps content
func NewContentResponse(c *entity.Content) ContentResponse {
	return ContentResponse{
		ID:               c.ID.String(),
		CreatorProfileID: c.CreatorProfileID.String(),
		Title:            c.Title,
		Type:             string(c.Type),
		Status:           string(c.Status),
		Visibility:       string(c.Visibility),
		RequiredTierID:   optionalID(c.RequiredTierID),
		PublishedAt:      c.PublishedAt,
	}
}

// NewAccessDecisionResponse maps an access decision
func NewAccessDecisionResponse(res *service.AccessResult) *AccessDecisionResponse {
	resp := &AccessDecisionResponse{
		Allowed: res.Decision.Allowed,
		Reason:  res.Decision.Reason.String(),
	}
	if res.HasExpiry {
		days := res.DaysUntilExpiry
		resp.DaysUntilExpiry = &days
	}
	if res.Grant != nil {
		resp.GrantID = res.Grant.ID.String()
		resp.AccessCount = res.Grant.AccessCount
	}
	return resp
}
