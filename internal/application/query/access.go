package query

import (
	"context"

	"github.com/bivex/creatorhub/internal/application/dto"
	"github.com/bivex/creatorhub/internal/domain/service"
)

// CheckAccessQuery handles read-only access checks
type CheckAccessQuery struct {
	entitlements *service.EntitlementService
}

// NewCheckAccessQuery creates a new check access query
func NewCheckAccessQuery(entitlements *service.EntitlementService) *CheckAccessQuery {
	return &CheckAccessQuery{entitlements: entitlements}
}

// Execute executes the check access query
func (q *CheckAccessQuery) Execute(ctx context.Context, actor service.Actor, contentID string) (*dto.AccessDecisionResponse, error) {
	id, err := dto.ParseID("content_id", contentID)
	if err != nil {
		return nil, err
	}

	res, err := q.entitlements.CheckAccess(ctx, actor.UserID, id)
	if err != nil {
		return nil, err
	}
	return dto.NewAccessDecisionResponse(res), nil
}
