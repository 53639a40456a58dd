package command

import (
	"context"

	"github.com/bivex/creatorhub/internal/application/dto"
	"github.com/bivex/creatorhub/internal/domain/entity"
	"github.com/bivex/creatorhub/internal/domain/service"
)

// ApplyEarningsCommand adjusts a creator's earnings
type ApplyEarningsCommand struct {
	creators *service.CreatorProfileService
}

// NewApplyEarningsCommand creates a new apply earnings command
func NewApplyEarningsCommand(creators *service.CreatorProfileService) *ApplyEarningsCommand {
	return &ApplyEarningsCommand{creators: creators}
}

// Execute executes the apply earnings command
func (c *ApplyEarningsCommand) Execute(ctx context.Context, profileID string, req *dto.ApplyEarningsRequest) (*dto.CreatorProfileResponse, error) {
	id, err := dto.ParseID("creator_profile_id", profileID)
	if err != nil {
		return nil, err
	}
	delta, err := dto.ParseAmount("delta", req.Delta)
	if err != nil {
		return nil, err
	}

	profile, err := c.creators.ApplyEarnings(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	resp := dto.NewCreatorProfileResponse(profile)
	return &resp, nil
}

// CreatorProfileCommand creates profiles and moves them through review and deactivation
type CreatorProfileCommand struct {
	creators *service.CreatorProfileService
}

// NewCreatorProfileCommand creates a new creator profile command
func NewCreatorProfileCommand(creators *service.CreatorProfileService) *CreatorProfileCommand {
	return &CreatorProfileCommand{creators: creators}
}

// Create opens a profile for the calling creator
func (c *CreatorProfileCommand) Create(ctx context.Context, actor service.Actor, req *dto.CreateCreatorProfileRequest) (*dto.CreatorProfileResponse, error) {
	category, err := entity.ParseCreatorCategory(req.Category)
	if err != nil {
		return nil, err
	}

	profile, err := c.creators.Create(ctx, actor, service.CreateProfileParams{Category: category, Bio: req.Bio})
	if err != nil {
		return nil, err
	}
	return mapProfile(profile), nil
}

// Deactivate closes a profile with a reason
func (c *CreatorProfileCommand) Deactivate(ctx context.Context, profileID string, req *dto.DeactivateCreatorRequest) (*dto.CreatorProfileResponse, error) {
	id, err := dto.ParseID("creator_profile_id", profileID)
	if err != nil {
		return nil, err
	}
	profile, err := c.creators.Deactivate(ctx, id, req.Reason)
	if err != nil {
		return nil, err
	}
	return mapProfile(profile), nil
}

// Reactivate reopens a profile
func (c *CreatorProfileCommand) Reactivate(ctx context.Context, profileID string) (*dto.CreatorProfileResponse, error) {
	id, err := dto.ParseID("creator_profile_id", profileID)
	if err != nil {
		return nil, err
	}
	profile, err := c.creators.Reactivate(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapProfile(profile), nil
}

// SetVerification records a review decision
func (c *CreatorProfileCommand) SetVerification(ctx context.Context, profileID string, req *dto.VerificationRequest) (*dto.CreatorProfileResponse, error) {
	id, err := dto.ParseID("creator_profile_id", profileID)
	if err != nil {
		return nil, err
	}
	status, err := entity.ParseVerificationStatus(req.Status)
	if err != nil {
		return nil, err
	}
	profile, err := c.creators.SetVerificationStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	return mapProfile(profile), nil
}

func mapProfile(p *entity.CreatorProfile) *dto.CreatorProfileResponse {
	resp := dto.NewCreatorProfileResponse(p)
	return &resp
}
