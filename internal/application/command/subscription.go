package command

import (
	"context"

	"github.com/bivex/creatorhub/internal/application/dto"
	"github.com/bivex/creatorhub/internal/domain/entity"
	"github.com/bivex/creatorhub/internal/domain/service"
)

// CreateSubscriptionCommand subscribes the caller to a tier
type CreateSubscriptionCommand struct {
	subscriptions *service.SubscriptionService
}

// NewCreateSubscriptionCommand creates a new create subscription command
func NewCreateSubscriptionCommand(subscriptions *service.SubscriptionService) *CreateSubscriptionCommand {
	return &CreateSubscriptionCommand{subscriptions: subscriptions}
}

// Execute executes the create subscription command
func (c *CreateSubscriptionCommand) Execute(ctx context.Context, actor service.Actor, req *dto.CreateSubscriptionRequest) (*dto.CreateSubscriptionResponse, error) {
	tierID, err := dto.ParseID("tier_id", req.TierID)
	if err != nil {
		return nil, err
	}
	autoRenew := true
	if req.AutoRenew != nil {
		autoRenew = *req.AutoRenew
	}

	sub, payment, err := c.subscriptions.Subscribe(ctx, actor.UserID, tierID, autoRenew, req.IsGift)
	if err != nil {
		return nil, err
	}
	return &dto.CreateSubscriptionResponse{
		Subscription: dto.NewSubscriptionResponse(sub),
		Payment:      dto.NewPaymentResponse(payment),
	}, nil
}

// CancelSubscriptionCommand handles subscription cancellation
type CancelSubscriptionCommand struct {
	subscriptions *service.SubscriptionService
}

// NewCancelSubscriptionCommand creates a new cancel subscription command
func NewCancelSubscriptionCommand(subscriptions *service.SubscriptionService) *CancelSubscriptionCommand {
	return &CancelSubscriptionCommand{subscriptions: subscriptions}
}

// Execute executes the cancel subscription command
func (c *CancelSubscriptionCommand) Execute(ctx context.Context, actor service.Actor, subscriptionID string, req *dto.CancelSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	id, err := dto.ParseID("subscription_id", subscriptionID)
	if err != nil {
		return nil, err
	}
	reason, err := entity.ParseCancellationReason(req.Reason)
	if err != nil {
		return nil, err
	}

	sub, err := c.subscriptions.Cancel(ctx, actor, id, reason, req.Note)
	if err != nil {
		return nil, err
	}
	resp := dto.NewSubscriptionResponse(sub)
	return &resp, nil
}
