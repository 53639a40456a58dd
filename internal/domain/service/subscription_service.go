package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bivex/creatorhub/internal/domain/entitlement"
	"github.com/bivex/creatorhub/internal/domain/entity"
	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
	"github.com/bivex/creatorhub/internal/domain/repository"
)

// DefaultCurrency is charged when a tier does not say otherwise
const DefaultCurrency = "USD"

// SubscriptionView is a subscription with its derived billing figures
type SubscriptionView struct {
	Subscription      *entity.Subscription
	EffectivelyActive bool
	DaysUntilExpiry   int
	NetPaid           decimal.Decimal
}

// SubscriptionService drives subscriptions through their lifecycle and keeps
// the subscriber counters in step with every transition.
type SubscriptionService struct {
	engine   *entitlement.Engine
	tx       repository.TxManager
	users    repository.UserRepository
	tiers    repository.SubscriptionTierRepository
	profiles repository.CreatorProfileRepository
	subs     repository.SubscriptionRepository
	payments repository.PaymentRepository
	cache    TierCache
	logger   *zap.Logger
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(
	engine *entitlement.Engine,
	tx repository.TxManager,
	users repository.UserRepository,
	tiers repository.SubscriptionTierRepository,
	profiles repository.CreatorProfileRepository,
	subs repository.SubscriptionRepository,
	payments repository.PaymentRepository,
	cache TierCache,
	logger *zap.Logger,
) *SubscriptionService {
	if cache == nil {
		cache = noopTierCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubscriptionService{
		engine:   engine,
		tx:       tx,
		users:    users,
		tiers:    tiers,
		profiles: profiles,
		subs:     subs,
		payments: payments,
		cache:    cache,
		logger:   logger,
	}
}

// Subscribe creates a pending subscription priced at the tier's effective
// price, together with the pending payment that will activate it.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID, tierID uuid.UUID, autoRenew, isGift bool) (*entity.Subscription, *entity.Payment, error) {
	var sub *entity.Subscription
	var payment *entity.Payment

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if !user.CanTransact() {
			return domainErrors.NewInvalidStateError("user", userID.String(), domainErrors.ErrUserNotActive)
		}

		tier, err := s.tiers.GetByID(ctx, tierID)
		if err != nil {
			return err
		}
		if tier.Status != entity.TierStatusActive {
			return domainErrors.NewInvalidStateError("subscription_tier", tierID.String(), domainErrors.ErrTierUnavailable)
		}
		if err := entitlement.CheckCapacity(tier, 1); err != nil {
			return err
		}
		if _, err := activeProfile(ctx, s.profiles, tier.CreatorProfileID); err != nil {
			return err
		}

		existing, err := s.subs.GetLatestByUserAndTier(ctx, userID, tierID)
		switch {
		case errors.Is(err, domainErrors.ErrSubscriptionNotFound):
		case err != nil:
			return err
		case entitlement.EffectivelyActive(existing, s.engine.Now()) || existing.Status == entity.StatusPending:
			return domainErrors.NewInvalidStateError("subscription", existing.ID.String(), domainErrors.ErrAlreadySubscribed)
		}

		price := s.engine.Price(tier)
		discount := tier.Price.Sub(price)
		sub = entity.NewSubscription(userID, tierID, tier.Price, discount, entitlement.FinalAmount(tier.Price, discount), autoRenew)
		sub.IsGift = isGift
		now := s.engine.Now()
		sub.StartDate, sub.EndDate = now, now
		sub.CreatedAt, sub.UpdatedAt = now, now

		if err := s.subs.Create(ctx, sub); err != nil {
			return err
		}

		subID := sub.ID
		payment = entity.NewPayment(userID, &subID, entity.PaymentTypeSubscription,
			sub.FinalAmount, decimal.Zero, decimal.Zero, sub.FinalAmount, DefaultCurrency)
		payment.CreatedAt, payment.UpdatedAt = now, now
		return s.payments.Create(ctx, payment)
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("subscription created",
		zap.String("subscription_id", sub.ID.String()),
		zap.String("tier_id", tierID.String()),
		zap.String("final_amount", sub.FinalAmount.String()),
	)
	return sub, payment, nil
}

// Activate moves a pending subscription to active for one billing period and
// counts the new subscriber on the tier and the creator profile.
func (s *SubscriptionService) Activate(ctx context.Context, subscriptionID uuid.UUID) (*entity.Subscription, error) {
	var sub *entity.Subscription
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		sub, err = s.activate(ctx, subscriptionID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, sub.TierID)
	return sub, nil
}

// activate runs inside the caller's transaction
func (s *SubscriptionService) activate(ctx context.Context, subscriptionID uuid.UUID) (*entity.Subscription, error) {
	sub, err := s.subs.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	tier, err := s.tiers.GetByID(ctx, sub.TierID)
	if err != nil {
		return nil, err
	}
	if err := entitlement.CheckCapacity(tier, 1); err != nil {
		return nil, err
	}

	start := s.engine.Now()
	if err := sub.Activate(start, entitlement.NextBillingDate(start, tier.BillingCycle)); err != nil {
		return nil, err
	}
	if err := s.subs.Update(ctx, sub); err != nil {
		return nil, err
	}
	if err := s.adjustCounters(ctx, tier, 1); err != nil {
		return nil, err
	}

	s.logger.Info("subscription activated",
		zap.String("subscription_id", sub.ID.String()),
		zap.Time("end_date", sub.EndDate),
	)
	return sub, nil
}

// Cancel ends a subscription at the subscriber's request. Counters drop only
// when the subscription was active.
func (s *SubscriptionService) Cancel(ctx context.Context, actor Actor, subscriptionID uuid.UUID, reason entity.CancellationReason, note string) (*entity.Subscription, error) {
	var sub *entity.Subscription
	var wasActive bool

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		sub, err = s.subs.GetByID(ctx, subscriptionID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() && sub.SubscriberID != actor.UserID {
			return domainErrors.ErrNotOwner
		}

		wasActive = sub.Status == entity.StatusActive
		if err := sub.Cancel(s.engine.Now(), reason, note); err != nil {
			return err
		}
		if err := s.subs.Update(ctx, sub); err != nil {
			return err
		}
		if !wasActive {
			return nil
		}

		tier, err := s.tiers.GetByID(ctx, sub.TierID)
		if err != nil {
			return err
		}
		return s.adjustCounters(ctx, tier, -1)
	})
	if err != nil {
		return nil, err
	}

	if wasActive {
		s.invalidate(ctx, sub.TierID)
	}
	s.logger.Info("subscription cancelled",
		zap.String("subscription_id", sub.ID.String()),
		zap.String("reason", string(reason)),
		zap.Bool("was_active", wasActive),
	)
	return sub, nil
}

// Get returns a subscription with its billing figures. Subscribers see their
// own subscriptions; admins see all.
func (s *SubscriptionService) Get(ctx context.Context, actor Actor, subscriptionID uuid.UUID) (*SubscriptionView, error) {
	sub, err := s.subs.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && sub.SubscriberID != actor.UserID {
		return nil, domainErrors.ErrNotOwner
	}

	payments, err := s.payments.ListBySubscription(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	now := s.engine.Now()
	return &SubscriptionView{
		Subscription:      sub,
		EffectivelyActive: entitlement.EffectivelyActive(sub, now),
		DaysUntilExpiry:   entitlement.DaysUntilExpiry(sub, now),
		NetPaid:           entitlement.NetPaid(payments),
	}, nil
}

// ExpireLapsed expires up to limit active subscriptions past their end date,
// one transaction per subscription. It returns how many were expired.
func (s *SubscriptionService) ExpireLapsed(ctx context.Context, limit int) (int, error) {
	lapsed, err := s.subs.ListLapsed(ctx, s.engine.Now(), limit)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, candidate := range lapsed {
		id := candidate.ID
		var tierID uuid.UUID
		var changed bool

		err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
			changed = false
			sub, err := s.subs.GetByID(ctx, id)
			if err != nil {
				return err
			}
			now := s.engine.Now()
			if !entitlement.IsActive(sub) || !entitlement.IsExpired(sub, now) {
				return nil
			}
			if err := sub.Expire(now); err != nil {
				return err
			}
			if err := s.subs.Update(ctx, sub); err != nil {
				return err
			}
			tier, err := s.tiers.GetByID(ctx, sub.TierID)
			if err != nil {
				return err
			}
			tierID = tier.ID
			changed = true
			return s.adjustCounters(ctx, tier, -1)
		})
		if err != nil {
			s.logger.Error("failed to expire subscription",
				zap.String("subscription_id", id.String()),
				zap.Error(err),
			)
			continue
		}
		if changed {
			expired++
			s.invalidate(ctx, tierID)
		}
	}

	if expired > 0 {
		s.logger.Info("expired lapsed subscriptions", zap.Int("count", expired))
	}
	return expired, nil
}

func (s *SubscriptionService) adjustCounters(ctx context.Context, tier *entity.SubscriptionTier, delta int) error {
	if err := s.tiers.AdjustSubscribers(ctx, tier.ID, delta); err != nil {
		return err
	}
	return s.profiles.AdjustSubscribers(ctx, tier.CreatorProfileID, delta)
}

func (s *SubscriptionService) invalidate(ctx context.Context, ids ...uuid.UUID) {
	if err := s.cache.Invalidate(ctx, ids...); err != nil {
		s.logger.Warn("tier cache invalidation failed", zap.Error(err))
	}
}
