package query

import (
	"context"

	"github.com/bivex/creatorhub/internal/application/dto"
	"github.com/bivex/creatorhub/internal/domain/service"
	"github.com/bivex/creatorhub/internal/domain/valueobject"
)

// GetSubscriptionQuery handles getting subscription details
type GetSubscriptionQuery struct {
	subscriptions *service.SubscriptionService
}

// NewGetSubscriptionQuery creates a new get subscription query
func NewGetSubscriptionQuery(subscriptions *service.SubscriptionService) *GetSubscriptionQuery {
	return &GetSubscriptionQuery{subscriptions: subscriptions}
}

// Execute executes the get subscription query
func (q *GetSubscriptionQuery) Execute(ctx context.Context, actor service.Actor, subscriptionID string) (*dto.SubscriptionDetailResponse, error) {
	id, err := dto.ParseID("subscription_id", subscriptionID)
	if err != nil {
		return nil, err
	}

	view, err := q.subscriptions.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return &dto.SubscriptionDetailResponse{
		SubscriptionResponse: dto.NewSubscriptionResponse(view.Subscription),
		EffectivelyActive:    view.EffectivelyActive,
		DaysUntilExpiry:      view.DaysUntilExpiry,
		NetPaid:              view.NetPaid.StringFixed(valueobject.MoneyScale),
	}, nil
}
