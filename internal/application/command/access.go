package command

import (
	"context"

	"github.com/bivex/creatorhub/internal/application/dto"
	"github.com/bivex/creatorhub/internal/domain/entity"
	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
	"github.com/bivex/creatorhub/internal/domain/service"
)

// ConsumeAccessCommand decides access to content and records the access
type ConsumeAccessCommand struct {
	entitlements *service.EntitlementService
}

// NewConsumeAccessCommand creates a new consume access command
func NewConsumeAccessCommand(entitlements *service.EntitlementService) *ConsumeAccessCommand {
	return &ConsumeAccessCommand{entitlements: entitlements}
}

// Execute executes the consume access command
func (c *ConsumeAccessCommand) Execute(ctx context.Context, actor service.Actor, contentID string) (*dto.AccessDecisionResponse, error) {
	id, err := dto.ParseID("content_id", contentID)
	if err != nil {
		return nil, err
	}

	res, err := c.entitlements.ConsumeAccess(ctx, actor.UserID, id)
	if err != nil {
		return nil, err
	}
	return dto.NewAccessDecisionResponse(res), nil
}

// GrantAccessCommand issues a content access grant
type GrantAccessCommand struct {
	grants *service.AccessGrantService
}

// NewGrantAccessCommand creates a new grant access command
func NewGrantAccessCommand(grants *service.AccessGrantService) *GrantAccessCommand {
	return &GrantAccessCommand{grants: grants}
}

// Execute executes the grant access command
func (c *GrantAccessCommand) Execute(ctx context.Context, req *dto.GrantAccessRequest) (*dto.GrantResponse, error) {
	userID, err := dto.ParseID("user_id", req.UserID)
	if err != nil {
		return nil, err
	}
	contentID, err := dto.ParseID("content_id", req.ContentID)
	if err != nil {
		return nil, err
	}
	accessType, err := entity.ParseAccessType(req.AccessType)
	if err != nil {
		return nil, err
	}

	params := service.GrantParams{
		UserID:     userID,
		ContentID:  contentID,
		AccessType: accessType,
		ExpiresAt:  req.ExpiresAt,
		Unlimited:  req.Unlimited,
	}
	if req.TierID != nil && *req.TierID != "" {
		tierID, err := dto.ParseID("tier_id", *req.TierID)
		if err != nil {
			return nil, err
		}
		params.TierID = &tierID
	}
	if params.ExpiresAt != nil && params.Unlimited {
		return nil, domainErrors.NewValidationError("expires_at", "unlimited grants cannot expire")
	}

	grant, err := c.grants.Grant(ctx, params)
	if err != nil {
		return nil, err
	}
	resp := dto.NewGrantResponse(grant)
	return &resp, nil
}

// RevokeAccessCommand revokes a content access grant
type RevokeAccessCommand struct {
	grants *service.AccessGrantService
}

// NewRevokeAccessCommand creates a new revoke access command
func NewRevokeAccessCommand(grants *service.AccessGrantService) *RevokeAccessCommand {
	return &RevokeAccessCommand{grants: grants}
}

// Execute executes the revoke access command
func (c *RevokeAccessCommand) Execute(ctx context.Context, grantID, reason string) (*dto.GrantResponse, error) {
	id, err := dto.ParseID("grant_id", grantID)
	if err != nil {
		return nil, err
	}

	grant, err := c.grants.Revoke(ctx, id, reason)
	if err != nil {
		return nil, err
	}
	resp := dto.NewGrantResponse(grant)
	return &resp, nil
}
