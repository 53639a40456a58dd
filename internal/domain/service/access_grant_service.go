package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bivex/creatorhub/internal/domain/entitlement"
	"github.com/bivex/creatorhub/internal/domain/entity"
	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
	"github.com/bivex/creatorhub/internal/domain/repository"
)

// GrantParams describes a new content access grant
type GrantParams struct {
	UserID     uuid.UUID
	ContentID  uuid.UUID
	TierID     *uuid.UUID
	AccessType entity.AccessType
	ExpiresAt  *time.Time
	Unlimited  bool
}

// AccessGrantService issues, revokes and expires content access grants.
type AccessGrantService struct {
	clock   entitlement.Clock
	tx      repository.TxManager
	users   repository.UserRepository
	content repository.ContentRepository
	tiers   repository.SubscriptionTierRepository
	grants  repository.ContentAccessRepository
	logger  *zap.Logger
}

// NewAccessGrantService creates a new access grant service
func NewAccessGrantService(
	clock entitlement.Clock,
	tx repository.TxManager,
	users repository.UserRepository,
	content repository.ContentRepository,
	tiers repository.SubscriptionTierRepository,
	grants repository.ContentAccessRepository,
	logger *zap.Logger,
) *AccessGrantService {
	if clock == nil {
		clock = entitlement.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccessGrantService{
		clock:   clock,
		tx:      tx,
		users:   users,
		content: content,
		tiers:   tiers,
		grants:  grants,
		logger:  logger,
	}
}

// Grant issues an active grant. Only active users may receive one, and
// subscription grants must name the tier they come from.
func (s *AccessGrantService) Grant(ctx context.Context, params GrantParams) (*entity.ContentAccess, error) {
	if params.AccessType == entity.AccessSubscription && params.TierID == nil {
		return nil, domainErrors.NewInvalidStateError("content_access", "", domainErrors.ErrMissingTier)
	}
	now := s.clock.Now()

	var grant *entity.ContentAccess
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		user, err := s.users.GetByID(ctx, params.UserID)
		if err != nil {
			return err
		}
		if !user.CanTransact() {
			return domainErrors.NewInvalidStateError("user", user.ID.String(), domainErrors.ErrUserNotActive)
		}
		if _, err := s.content.GetByID(ctx, params.ContentID); err != nil {
			return err
		}
		if params.TierID != nil {
			if _, err := s.tiers.GetByID(ctx, *params.TierID); err != nil {
				return err
			}
		}

		grant = entity.NewContentAccess(params.UserID, params.ContentID, params.TierID,
			params.AccessType, params.ExpiresAt, params.Unlimited, now)
		return s.grants.Create(ctx, grant)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("content access granted",
		zap.String("grant_id", grant.ID.String()),
		zap.String("user_id", grant.UserID.String()),
		zap.String("content_id", grant.ContentID.String()),
		zap.String("access_type", string(grant.AccessType)),
	)
	return grant, nil
}

// Revoke revokes a grant; revoking twice is an invalid transition
func (s *AccessGrantService) Revoke(ctx context.Context, grantID uuid.UUID, reason string) (*entity.ContentAccess, error) {
	var grant *entity.ContentAccess
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		grant, err = s.grants.GetByID(ctx, grantID)
		if err != nil {
			return err
		}
		if err := grant.Revoke(s.clock.Now(), reason); err != nil {
			return err
		}
		return s.grants.UpdateStatus(ctx, grant)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("content access revoked",
		zap.String("grant_id", grant.ID.String()),
		zap.String("reason", reason),
	)
	return grant, nil
}

// ExpireLapsed expires up to limit active, limited grants past their expiry
func (s *AccessGrantService) ExpireLapsed(ctx context.Context, limit int) (int64, error) {
	n, err := s.grants.ExpireLapsed(ctx, s.clock.Now(), limit)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("expired lapsed grants", zap.Int64("count", n))
	}
	return n, nil
}
