package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bivex/creatorhub/internal/domain/entitlement"
	"github.com/bivex/creatorhub/internal/domain/entity"
	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
	"github.com/bivex/creatorhub/internal/domain/repository"
	"github.com/bivex/creatorhub/internal/domain/valueobject"
)

// DirectPaymentParams describes a tip, donation or one-time payment made
// straight to a creator
type DirectPaymentParams struct {
	UserID    uuid.UUID
	ProfileID uuid.UUID
	Type      entity.PaymentType
	Amount    decimal.Decimal
	Tax       decimal.Decimal
	Fee       decimal.Decimal
	Currency  string
}

// PaymentService records payment outcomes and credits creators with them.
type PaymentService struct {
	engine        *entitlement.Engine
	tx            repository.TxManager
	users         repository.UserRepository
	payments      repository.PaymentRepository
	subs          repository.SubscriptionRepository
	tiers         repository.SubscriptionTierRepository
	subscriptions *SubscriptionService
	creators      *CreatorProfileService
	cache         TierCache
	logger        *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	engine *entitlement.Engine,
	tx repository.TxManager,
	users repository.UserRepository,
	payments repository.PaymentRepository,
	subs repository.SubscriptionRepository,
	tiers repository.SubscriptionTierRepository,
	subscriptions *SubscriptionService,
	creators *CreatorProfileService,
	cache TierCache,
	logger *zap.Logger,
) *PaymentService {
	if cache == nil {
		cache = noopTierCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		engine:        engine,
		tx:            tx,
		users:         users,
		payments:      payments,
		subs:          subs,
		tiers:         tiers,
		subscriptions: subscriptions,
		creators:      creators,
		cache:         cache,
		logger:        logger,
	}
}

// CreateDirect records a pending payment to a creator outside any subscription
func (s *PaymentService) CreateDirect(ctx context.Context, params DirectPaymentParams) (*entity.Payment, error) {
	switch params.Type {
	case entity.PaymentTypeTip, entity.PaymentTypeDonation, entity.PaymentTypeOneTime:
	default:
		return nil, domainErrors.NewValidationError("type", "must be tip, donation or one_time")
	}
	if !params.Amount.IsPositive() {
		return nil, domainErrors.ErrInvalidAmount
	}
	if params.Tax.IsNegative() || params.Fee.IsNegative() {
		return nil, domainErrors.ErrInvalidAmount
	}
	currency := params.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	amount := valueobject.RoundMoney(params.Amount)
	net := valueobject.RoundMoney(amount.Sub(params.Tax).Sub(params.Fee))
	if net.IsNegative() {
		return nil, domainErrors.ErrInvalidAmount
	}

	var payment *entity.Payment
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		user, err := s.users.GetByID(ctx, params.UserID)
		if err != nil {
			return err
		}
		if !user.CanTransact() {
			return domainErrors.NewInvalidStateError("user", user.ID.String(), domainErrors.ErrUserNotActive)
		}
		if _, err := activeProfile(ctx, s.creators.profiles, params.ProfileID); err != nil {
			return err
		}

		payment = entity.NewPayment(params.UserID, nil, params.Type, amount,
			valueobject.RoundMoney(params.Tax), valueobject.RoundMoney(params.Fee), net, currency)
		profileID := params.ProfileID
		payment.RecipientProfileID = &profileID
		now := s.engine.Now()
		payment.CreatedAt, payment.UpdatedAt = now, now
		return s.payments.Create(ctx, payment)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("direct payment created",
		zap.String("payment_id", payment.ID.String()),
		zap.String("type", string(payment.Type)),
		zap.String("amount", payment.Amount.String()),
	)
	return payment, nil
}

// Complete marks a payment completed, activates the pending subscription it
// pays for and credits the net amount to the creator.
func (s *PaymentService) Complete(ctx context.Context, paymentID uuid.UUID) (*entity.Payment, error) {
	var payment *entity.Payment
	var tierID *uuid.UUID

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		tierID = nil
		var err error
		payment, err = s.payments.GetByID(ctx, paymentID)
		if err != nil {
			return err
		}
		user, err := s.users.GetByID(ctx, payment.UserID)
		if err != nil {
			return err
		}
		if !user.CanTransact() {
			return domainErrors.NewInvalidStateError("user", user.ID.String(), domainErrors.ErrUserNotActive)
		}

		if err := payment.Complete(s.engine.Now()); err != nil {
			return err
		}
		if err := s.payments.Update(ctx, payment); err != nil {
			return err
		}

		if payment.SubscriptionID != nil {
			sub, err := s.subs.GetByID(ctx, *payment.SubscriptionID)
			if err != nil {
				return err
			}
			if sub.Status == entity.StatusPending {
				if _, err := s.subscriptions.activate(ctx, sub.ID); err != nil {
					return err
				}
				id := sub.TierID
				tierID = &id
			}
		}

		profileID, err := s.recipient(ctx, payment)
		if err != nil {
			return err
		}
		_, err = s.creators.applyEarnings(ctx, profileID, payment.NetAmount)
		return err
	})
	if err != nil {
		return nil, err
	}

	if tierID != nil {
		if err := s.cache.Invalidate(ctx, *tierID); err != nil {
			s.logger.Warn("tier cache invalidation failed", zap.Error(err))
		}
	}
	s.logger.Info("payment completed",
		zap.String("payment_id", payment.ID.String()),
		zap.String("net_amount", payment.NetAmount.String()),
	)
	return payment, nil
}

// Refund refunds part or all of a completed payment and takes the amount
// back out of the creator's earnings.
func (s *PaymentService) Refund(ctx context.Context, paymentID uuid.UUID, amount decimal.Decimal, reason string) (*entity.Payment, error) {
	amount = valueobject.RoundMoney(amount)

	var payment *entity.Payment
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		payment, err = s.payments.GetByID(ctx, paymentID)
		if err != nil {
			return err
		}
		if err := payment.Refund(s.engine.Now(), amount, reason); err != nil {
			return err
		}
		if err := s.payments.Update(ctx, payment); err != nil {
			return err
		}

		profileID, err := s.recipient(ctx, payment)
		if err != nil {
			return err
		}
		_, err = s.creators.applyEarnings(ctx, profileID, amount.Neg())
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment refunded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("amount", amount.String()),
		zap.String("status", string(payment.Status)),
	)
	return payment, nil
}

// recipient resolves the creator profile credited by a payment
func (s *PaymentService) recipient(ctx context.Context, payment *entity.Payment) (uuid.UUID, error) {
	if payment.SubscriptionID != nil {
		sub, err := s.subs.GetByID(ctx, *payment.SubscriptionID)
		if err != nil {
			return uuid.Nil, err
		}
		tier, err := s.tiers.GetByID(ctx, sub.TierID)
		if err != nil {
			return uuid.Nil, err
		}
		return tier.CreatorProfileID, nil
	}
	if payment.RecipientProfileID != nil {
		return *payment.RecipientProfileID, nil
	}
	return uuid.Nil, domainErrors.NewInvalidStateError("payment", payment.ID.String(), domainErrors.ErrNoRecipient)
}
