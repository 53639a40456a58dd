package command

import (
	"context"

	"github.com/bivex/creatorhub/internal/application/dto"
	"github.com/bivex/creatorhub/internal/domain/service"
	"github.com/bivex/creatorhub/internal/domain/valueobject"
)

// CreateTierCommand creates a subscription tier for the calling creator
type CreateTierCommand struct {
	tiers *service.TierService
}

// NewCreateTierCommand creates a new create tier command
func NewCreateTierCommand(tiers *service.TierService) *CreateTierCommand {
	return &CreateTierCommand{tiers: tiers}
}

// Execute executes the create tier command
func (c *CreateTierCommand) Execute(ctx context.Context, actor service.Actor, req *dto.CreateTierRequest) (*dto.TierResponse, error) {
	price, err := dto.ParseAmount("price", req.Price)
	if err != nil {
		return nil, err
	}
	cycle, err := valueobject.NewBillingCycle(req.BillingCycle)
	if err != nil {
		return nil, err
	}

	params := service.CreateTierParams{
		Name:               req.Name,
		Description:        req.Description,
		Price:              price,
		BillingCycle:       cycle,
		MaxSubscribers:     req.MaxSubscribers,
		IsPopular:          req.IsPopular,
		DiscountValidUntil: req.DiscountValidUntil,
	}
	if req.DiscountPercentage != nil {
		pct, err := dto.ParseAmount("discount_percentage", *req.DiscountPercentage)
		if err != nil {
			return nil, err
		}
		params.DiscountPercentage = &pct
	}

	tier, err := c.tiers.Create(ctx, actor, params)
	if err != nil {
		return nil, err
	}
	resp := dto.NewTierResponse(tier)
	return &resp, nil
}

// TierDiscountCommand adds or removes a tier discount
type TierDiscountCommand struct {
	tiers *service.TierService
}

// NewTierDiscountCommand creates a new tier discount command
func NewTierDiscountCommand(tiers *service.TierService) *TierDiscountCommand {
	return &TierDiscountCommand{tiers: tiers}
}

// Add sets the discount described by req
func (c *TierDiscountCommand) Add(ctx context.Context, actor service.Actor, tierID string, req *dto.AddDiscountRequest) (*dto.TierResponse, error) {
	id, err := dto.ParseID("tier_id", tierID)
	if err != nil {
		return nil, err
	}
	pct, err := dto.ParseAmount("percentage", req.Percentage)
	if err != nil {
		return nil, err
	}

	tier, err := c.tiers.AddDiscount(ctx, actor, id, pct, req.ValidUntil)
	if err != nil {
		return nil, err
	}
	resp := dto.NewTierResponse(tier)
	return &resp, nil
}

// Remove clears the tier discount
func (c *TierDiscountCommand) Remove(ctx context.Context, actor service.Actor, tierID string) (*dto.TierResponse, error) {
	id, err := dto.ParseID("tier_id", tierID)
	if err != nil {
		return nil, err
	}

	tier, err := c.tiers.RemoveDiscount(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewTierResponse(tier)
	return &resp, nil
}

// RetireTierCommand archives or deletes tiers
type RetireTierCommand struct {
	tiers *service.TierService
}

// NewRetireTierCommand creates a new retire tier command
func NewRetireTierCommand(tiers *service.TierService) *RetireTierCommand {
	return &RetireTierCommand{tiers: tiers}
}

// Archive hides the tier from new subscribers
func (c *RetireTierCommand) Archive(ctx context.Context, actor service.Actor, tierID string) (*dto.TierResponse, error) {
	id, err := dto.ParseID("tier_id", tierID)
	if err != nil {
		return nil, err
	}

	tier, err := c.tiers.Archive(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewTierResponse(tier)
	return &resp, nil
}

// Delete removes a tier without subscribers
func (c *RetireTierCommand) Delete(ctx context.Context, actor service.Actor, tierID string) error {
	id, err := dto.ParseID("tier_id", tierID)
	if err != nil {
		return err
	}
	return c.tiers.Delete(ctx, actor, id)
}
