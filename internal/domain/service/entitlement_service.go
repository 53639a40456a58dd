package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bivex/creatorhub/internal/domain/entitlement"
	"github.com/bivex/creatorhub/internal/domain/entity"
	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
	"github.com/bivex/creatorhub/internal/domain/repository"
)

// AccessResult is an access decision plus the grant it was based on, if any
type AccessResult struct {
	Decision        entitlement.Decision
	Grant           *entity.ContentAccess
	HasExpiry       bool
	DaysUntilExpiry int
}

// TierPrice is the effective price of a tier at the time of the call
type TierPrice struct {
	Tier        *entity.SubscriptionTier
	Price       decimal.Decimal
	HasDiscount bool
}

// EntitlementService loads snapshots for the entitlement engine and writes
// back the usage it records.
type EntitlementService struct {
	engine   *entitlement.Engine
	tx       repository.TxManager
	users    repository.UserRepository
	content  repository.ContentRepository
	grants   repository.ContentAccessRepository
	subs     repository.SubscriptionRepository
	tiers    repository.SubscriptionTierRepository
	profiles repository.CreatorProfileRepository
	cache    TierCache
	logger   *zap.Logger
}

// NewEntitlementService creates a new entitlement service
func NewEntitlementService(
	engine *entitlement.Engine,
	tx repository.TxManager,
	users repository.UserRepository,
	content repository.ContentRepository,
	grants repository.ContentAccessRepository,
	subs repository.SubscriptionRepository,
	tiers repository.SubscriptionTierRepository,
	profiles repository.CreatorProfileRepository,
	cache TierCache,
	logger *zap.Logger,
) *EntitlementService {
	if cache == nil {
		cache = noopTierCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntitlementService{
		engine:   engine,
		tx:       tx,
		users:    users,
		content:  content,
		grants:   grants,
		subs:     subs,
		tiers:    tiers,
		profiles: profiles,
		cache:    cache,
		logger:   logger,
	}
}

// loadedRequest is an access request plus whether its grant was derived from
// a subscription and has no row yet.
type loadedRequest struct {
	entitlement.AccessRequest
	derived bool
}

// CheckAccess decides access without recording usage
func (s *EntitlementService) CheckAccess(ctx context.Context, userID, contentID uuid.UUID) (*AccessResult, error) {
	req, err := s.load(ctx, userID, contentID)
	if err != nil {
		return nil, err
	}
	grant := req.Grant
	if req.derived {
		grant = nil
	}
	return s.result(s.engine.Check(req.AccessRequest), grant), nil
}

// ConsumeAccess decides access and, when a grant allowed it, records the access
func (s *EntitlementService) ConsumeAccess(ctx context.Context, userID, contentID uuid.UUID) (*AccessResult, error) {
	var res *AccessResult
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		req, err := s.load(ctx, userID, contentID)
		if err != nil {
			return err
		}

		decision := s.engine.Consume(req.AccessRequest)
		if decision.Allowed && decision.Reason == entitlement.ReasonGranted {
			if req.derived {
				if err := s.grants.Create(ctx, req.Grant); err != nil {
					return fmt.Errorf("failed to issue subscription grant: %w", err)
				}
			} else {
				count, err := s.grants.RecordAccess(ctx, req.Grant.ID, *req.Grant.LastAccessedAt)
				if err != nil {
					return fmt.Errorf("failed to record access: %w", err)
				}
				req.Grant.AccessCount = count
			}
		}

		res = s.result(decision, req.Grant)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("access consumed",
		zap.String("user_id", userID.String()),
		zap.String("content_id", contentID.String()),
		zap.Bool("allowed", res.Decision.Allowed),
		zap.String("reason", res.Decision.Reason.String()),
	)
	return res, nil
}

// TierPrice returns the effective price of a tier now
func (s *EntitlementService) TierPrice(ctx context.Context, tierID uuid.UUID) (*TierPrice, error) {
	tier, err := s.tier(ctx, tierID)
	if err != nil {
		return nil, err
	}
	return &TierPrice{
		Tier:        tier,
		Price:       s.engine.Price(tier),
		HasDiscount: s.engine.HasActiveDiscount(tier),
	}, nil
}

// TierRevenue projects the revenue of a tier. Only the owning creator or an admin may see it.
func (s *EntitlementService) TierRevenue(ctx context.Context, actor Actor, tierID uuid.UUID) (*entitlement.Revenue, *entity.SubscriptionTier, error) {
	tier, err := s.tier(ctx, tierID)
	if err != nil {
		return nil, nil, err
	}
	if err := authorizeTierOwner(ctx, actor, tier, s.profiles); err != nil {
		return nil, nil, err
	}
	rev := s.engine.ProjectedRevenue(tier)
	return &rev, tier, nil
}

func (s *EntitlementService) result(d entitlement.Decision, grant *entity.ContentAccess) *AccessResult {
	res := &AccessResult{Decision: d, Grant: grant}
	if grant != nil {
		res.DaysUntilExpiry, res.HasExpiry = entitlement.GrantDaysUntilExpiry(grant, s.engine.Now())
	}
	return res
}

// load gathers the snapshots for one decision. Inactive users and published
// public content are decided without a grant lookup. Subscriber content with
// no usable grant resolves through the user's subscription to the creator.
func (s *EntitlementService) load(ctx context.Context, userID, contentID uuid.UUID) (loadedRequest, error) {
	var req loadedRequest

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return req, err
	}
	content, err := s.content.GetByID(ctx, contentID)
	if err != nil {
		return req, err
	}
	req.User = user
	req.Content = content
	if !user.IsActive() || (content.IsPublic() && content.IsPublished()) {
		return req, nil
	}

	grant, err := s.grants.GetForUserContent(ctx, userID, contentID)
	switch {
	case errors.Is(err, domainErrors.ErrGrantNotFound):
		return s.deriveGrant(ctx, req)
	case err != nil:
		return req, err
	}
	req.Grant = grant

	if grant.AccessType == entity.AccessSubscription && grant.SubscriptionTierID != nil {
		sub, err := s.subs.GetLatestByUserAndTier(ctx, userID, *grant.SubscriptionTierID)
		switch {
		case errors.Is(err, domainErrors.ErrSubscriptionNotFound):
		case err != nil:
			return req, err
		default:
			req.Subscription = sub
		}
	}

	if grant.Status != entity.AccessStatusRevoked && !entitlement.CanAccess(grant, s.engine.Now()) {
		derived, err := s.deriveGrant(ctx, req)
		if err != nil {
			return req, err
		}
		if derived.derived && entitlement.EffectivelyActive(derived.Subscription, s.engine.Now()) {
			return derived, nil
		}
	}
	return req, nil
}

// deriveGrant builds an unsaved subscription grant for published subscriber
// content. subscribers_only content accepts any tier of its creator,
// tier_specific content only its required tier.
func (s *EntitlementService) deriveGrant(ctx context.Context, req loadedRequest) (loadedRequest, error) {
	content := req.Content
	if !content.IsPublished() || !content.IsSubscriberContent() {
		return req, nil
	}

	var (
		sub *entity.Subscription
		err error
	)
	if content.Visibility == entity.VisibilityTierSpecific {
		if content.RequiredTierID == nil {
			return req, nil
		}
		sub, err = s.subs.GetLatestByUserAndTier(ctx, req.User.ID, *content.RequiredTierID)
	} else {
		sub, err = s.subs.GetLatestByUserAndCreator(ctx, req.User.ID, content.CreatorProfileID)
	}
	switch {
	case errors.Is(err, domainErrors.ErrSubscriptionNotFound):
		return req, nil
	case err != nil:
		return req, err
	}

	tierID := sub.TierID
	out := req
	out.Grant = entity.NewContentAccess(req.User.ID, content.ID, &tierID, entity.AccessSubscription, nil, false, s.engine.Now())
	out.Subscription = sub
	out.derived = true
	return out, nil
}

func (s *EntitlementService) tier(ctx context.Context, id uuid.UUID) (*entity.SubscriptionTier, error) {
	if tier, err := s.cache.Get(ctx, id); err == nil {
		return tier, nil
	} else if !errors.Is(err, ErrCacheMiss) {
		s.logger.Warn("tier cache read failed", zap.String("tier_id", id.String()), zap.Error(err))
	}

	tier, err := s.tiers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, tier); err != nil {
		s.logger.Warn("tier cache write failed", zap.String("tier_id", id.String()), zap.Error(err))
	}
	return tier, nil
}

// authorizeTierOwner allows admins and the creator owning the tier
func authorizeTierOwner(ctx context.Context, actor Actor, tier *entity.SubscriptionTier, profiles repository.CreatorProfileRepository) error {
	if actor.IsAdmin() {
		return nil
	}
	profile, err := profiles.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrCreatorProfileNotFound) {
			return domainErrors.ErrNotOwner
		}
		return err
	}
	if profile.ID != tier.CreatorProfileID {
		return domainErrors.ErrNotOwner
	}
	return nil
}
