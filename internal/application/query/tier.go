package query

import (
	"context"

	"github.com/bivex/creatorhub/internal/application/dto"
	"github.com/bivex/creatorhub/internal/domain/service"
	"github.com/bivex/creatorhub/internal/domain/valueobject"
)

// TierPricingQuery handles tier price and revenue lookups
type TierPricingQuery struct {
	entitlements *service.EntitlementService
}

// NewTierPricingQuery creates a new tier pricing query
func NewTierPricingQuery(entitlements *service.EntitlementService) *TierPricingQuery {
	return &TierPricingQuery{entitlements: entitlements}
}

// Price returns the effective price of a tier
func (q *TierPricingQuery) Price(ctx context.Context, tierID string) (*dto.TierPriceResponse, error) {
	id, err := dto.ParseID("tier_id", tierID)
	if err != nil {
		return nil, err
	}

	price, err := q.entitlements.TierPrice(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.TierPriceResponse{
		TierID:         price.Tier.ID.String(),
		BasePrice:      price.Tier.Price.StringFixed(valueobject.MoneyScale),
		EffectivePrice: price.Price.StringFixed(valueobject.MoneyScale),
		HasDiscount:    price.HasDiscount,
		BillingCycle:   price.Tier.BillingCycle.String(),
	}, nil
}

// Revenue returns the projected revenue of a tier
func (q *TierPricingQuery) Revenue(ctx context.Context, actor service.Actor, tierID string) (*dto.TierRevenueResponse, error) {
	id, err := dto.ParseID("tier_id", tierID)
	if err != nil {
		return nil, err
	}

	rev, tier, err := q.entitlements.TierRevenue(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewTierRevenueResponse(tier, *rev)
	return &resp, nil
}
