package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bivex/creatorhub/internal/domain/entitlement"
	"github.com/bivex/creatorhub/internal/domain/entity"
	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
	"github.com/bivex/creatorhub/internal/domain/repository"
)

// ReconcileReport lists the counter drift found and corrected by Reconcile
type ReconcileReport struct {
	Profiles []repository.ProfileCounterDrift `json:"profiles"`
	Tiers    []repository.TierCounterDrift    `json:"tiers"`
}

// Drifted returns true if any counter disagreed with the source rows
func (r *ReconcileReport) Drifted() bool {
	return len(r.Profiles) > 0 || len(r.Tiers) > 0
}

// CreateProfileParams describes a new creator profile
type CreateProfileParams struct {
	Category entity.CreatorCategory
	Bio      string
}

// CreatorProfileService owns the creator profile lifecycle, earnings and the
// derived counters.
type CreatorProfileService struct {
	clock    entitlement.Clock
	tx       repository.TxManager
	profiles repository.CreatorProfileRepository
	tiers    repository.SubscriptionTierRepository
	cache    TierCache
	logger   *zap.Logger
}

// NewCreatorProfileService creates a new creator profile service
func NewCreatorProfileService(
	clock entitlement.Clock,
	tx repository.TxManager,
	profiles repository.CreatorProfileRepository,
	tiers repository.SubscriptionTierRepository,
	cache TierCache,
	logger *zap.Logger,
) *CreatorProfileService {
	if clock == nil {
		clock = entitlement.SystemClock{}
	}
	if cache == nil {
		cache = noopTierCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CreatorProfileService{
		clock:    clock,
		tx:       tx,
		profiles: profiles,
		tiers:    tiers,
		cache:    cache,
		logger:   logger,
	}
}

// Create opens a profile for the calling creator. A user holds at most one.
func (s *CreatorProfileService) Create(ctx context.Context, actor Actor, params CreateProfileParams) (*entity.CreatorProfile, error) {
	if actor.Role != entity.RoleCreator {
		return nil, domainErrors.ErrForbidden
	}

	var profile *entity.CreatorProfile
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.profiles.GetByUserID(ctx, actor.UserID)
		switch {
		case err == nil:
			return domainErrors.NewInvalidStateError("creator_profile", existing.ID.String(), domainErrors.ErrProfileExists)
		case !errors.Is(err, domainErrors.ErrCreatorProfileNotFound):
			return err
		}

		profile = entity.NewCreatorProfile(actor.UserID, params.Category)
		profile.Bio = strings.TrimSpace(params.Bio)
		now := s.clock.Now()
		profile.CreatedAt, profile.UpdatedAt = now, now
		return s.profiles.Create(ctx, profile)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("creator profile created",
		zap.String("profile_id", profile.ID.String()),
		zap.String("user_id", actor.UserID.String()),
	)
	return profile, nil
}

// Deactivate closes a profile to new subscriptions and direct payments
func (s *CreatorProfileService) Deactivate(ctx context.Context, profileID uuid.UUID, reason string) (*entity.CreatorProfile, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domainErrors.NewValidationError("reason", "must not be empty")
	}
	return s.updateStatus(ctx, profileID, func(p *entity.CreatorProfile, now time.Time) error {
		return p.Deactivate(now, reason)
	})
}

// Reactivate reopens a deactivated profile
func (s *CreatorProfileService) Reactivate(ctx context.Context, profileID uuid.UUID) (*entity.CreatorProfile, error) {
	return s.updateStatus(ctx, profileID, func(p *entity.CreatorProfile, now time.Time) error {
		return p.Reactivate(now)
	})
}

// SetVerificationStatus records the outcome of a creator review
func (s *CreatorProfileService) SetVerificationStatus(ctx context.Context, profileID uuid.UUID, status entity.VerificationStatus) (*entity.CreatorProfile, error) {
	return s.updateStatus(ctx, profileID, func(p *entity.CreatorProfile, now time.Time) error {
		p.SetVerification(now, status)
		return nil
	})
}

func (s *CreatorProfileService) updateStatus(ctx context.Context, profileID uuid.UUID, fn func(*entity.CreatorProfile, time.Time) error) (*entity.CreatorProfile, error) {
	var profile *entity.CreatorProfile
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		profile, err = s.profiles.GetByID(ctx, profileID)
		if err != nil {
			return err
		}
		if err := fn(profile, s.clock.Now()); err != nil {
			return err
		}
		return s.profiles.UpdateStatus(ctx, profile)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("creator profile updated",
		zap.String("profile_id", profile.ID.String()),
		zap.Bool("active", profile.IsActive),
		zap.String("verification_status", string(profile.VerificationStatus)),
	)
	return profile, nil
}

// activeProfile loads a profile and refuses a deactivated one
func activeProfile(ctx context.Context, profiles repository.CreatorProfileRepository, id uuid.UUID) (*entity.CreatorProfile, error) {
	profile, err := profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !profile.IsActive {
		return nil, domainErrors.NewInvalidStateError("creator_profile", id.String(), domainErrors.ErrCreatorInactive)
	}
	return profile, nil
}

// ApplyEarnings adds delta to the profile's total and monthly earnings.
// Negative deltas are refunds; the total may not drop below zero.
func (s *CreatorProfileService) ApplyEarnings(ctx context.Context, profileID uuid.UUID, delta decimal.Decimal) (*entity.CreatorProfile, error) {
	var profile *entity.CreatorProfile
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		profile, err = s.applyEarnings(ctx, profileID, delta)
		return err
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *CreatorProfileService) applyEarnings(ctx context.Context, profileID uuid.UUID, delta decimal.Decimal) (*entity.CreatorProfile, error) {
	current, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	// validate against the snapshot before the guarded write
	if err := entitlement.ApplyEarnings(current, delta); err != nil {
		return nil, err
	}

	profile, err := s.profiles.ApplyEarnings(ctx, profileID, delta)
	if err != nil {
		return nil, err
	}

	s.logger.Info("creator earnings applied",
		zap.String("profile_id", profileID.String()),
		zap.String("delta", delta.String()),
		zap.String("total_earnings", profile.TotalEarnings.String()),
	)
	return profile, nil
}

// ResetMonthlyEarnings zeroes the monthly figure on every profile
func (s *CreatorProfileService) ResetMonthlyEarnings(ctx context.Context) (int64, error) {
	n, err := s.profiles.ResetMonthlyEarnings(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info("monthly earnings reset", zap.Int64("profiles", n))
	return n, nil
}

// Reconcile recomputes the subscriber and content counters from the source
// rows, logs every drift found and corrects it in one transaction.
func (s *CreatorProfileService) Reconcile(ctx context.Context) (*ReconcileReport, error) {
	report := &ReconcileReport{}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		report.Profiles, report.Tiers = nil, nil

		tiers, err := s.tiers.FindSubscriberDrift(ctx)
		if err != nil {
			return err
		}
		for _, d := range tiers {
			s.logger.Warn("tier subscriber counter drift",
				zap.String("tier_id", d.TierID.String()),
				zap.Int("stored", d.Stored),
				zap.Int("actual", d.Actual),
			)
			if err := s.tiers.SetSubscribers(ctx, d.TierID, d.Actual); err != nil {
				return err
			}
		}

		profiles, err := s.profiles.FindCounterDrift(ctx)
		if err != nil {
			return err
		}
		for _, d := range profiles {
			s.logger.Warn("creator profile counter drift",
				zap.String("profile_id", d.ProfileID.String()),
				zap.Int("stored_subscribers", d.StoredSubscribers),
				zap.Int("actual_subscribers", d.ActualSubscribers),
				zap.Int("stored_content", d.StoredContent),
				zap.Int("actual_content", d.ActualContent),
			)
			if err := s.profiles.SetCounters(ctx, d.ProfileID, d.ActualSubscribers, d.ActualContent); err != nil {
				return err
			}
		}

		report.Tiers, report.Profiles = tiers, profiles
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(report.Tiers) > 0 {
		ids := make([]uuid.UUID, 0, len(report.Tiers))
		for _, d := range report.Tiers {
			ids = append(ids, d.TierID)
		}
		if err := s.cache.Invalidate(ctx, ids...); err != nil {
			s.logger.Warn("tier cache invalidation failed", zap.Error(err))
		}
	}

	s.logger.Info("counter reconciliation finished",
		zap.Int("tiers_fixed", len(report.Tiers)),
		zap.Int("profiles_fixed", len(report.Profiles)),
	)
	return report, nil
}
