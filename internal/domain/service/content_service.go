package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bivex/creatorhub/internal/domain/entitlement"
	"github.com/bivex/creatorhub/internal/domain/entity"
	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
	"github.com/bivex/creatorhub/internal/domain/repository"
)

// CreateContentParams describes a new piece of content
type CreateContentParams struct {
	Title      string
	Type       entity.ContentType
	Visibility entity.ContentVisibility
	// TierID names the tier that unlocks tier_specific content
	TierID *uuid.UUID
}

// ContentService manages creator content and the profile content counter.
type ContentService struct {
	clock    entitlement.Clock
	tx       repository.TxManager
	content  repository.ContentRepository
	profiles repository.CreatorProfileRepository
	tiers    repository.SubscriptionTierRepository
	logger   *zap.Logger
}

// NewContentService creates a new content service
func NewContentService(
	clock entitlement.Clock,
	tx repository.TxManager,
	content repository.ContentRepository,
	profiles repository.CreatorProfileRepository,
	tiers repository.SubscriptionTierRepository,
	logger *zap.Logger,
) *ContentService {
	if clock == nil {
		clock = entitlement.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentService{
		clock:    clock,
		tx:       tx,
		content:  content,
		profiles: profiles,
		tiers:    tiers,
		logger:   logger,
	}
}

// Create stores a draft and counts it on the creator's profile
func (s *ContentService) Create(ctx context.Context, actor Actor, params CreateContentParams) (*entity.Content, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, domainErrors.NewValidationError("title", "must not be empty")
	}
	contentType := params.Type
	if contentType == "" {
		contentType = entity.ContentTypePost
	}
	switch {
	case params.Visibility == entity.VisibilityTierSpecific && params.TierID == nil:
		return nil, domainErrors.NewValidationError("tier_id", "required for tier_specific content")
	case params.Visibility != entity.VisibilityTierSpecific && params.TierID != nil:
		return nil, domainErrors.NewValidationError("tier_id", "only allowed for tier_specific content")
	}

	var content *entity.Content
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		profile, err := creatorProfileOf(ctx, s.profiles, actor)
		if err != nil {
			return err
		}

		if params.TierID != nil {
			tier, err := s.tiers.GetByID(ctx, *params.TierID)
			if err != nil {
				return err
			}
			if tier.CreatorProfileID != profile.ID {
				return domainErrors.ErrNotOwner
			}
		}

		content = entity.NewContent(actor.UserID, profile.ID, title, contentType, params.Visibility)
		content.RequiredTierID = params.TierID
		now := s.clock.Now()
		content.CreatedAt, content.UpdatedAt = now, now
		if err := s.content.Create(ctx, content); err != nil {
			return err
		}
		return s.profiles.AdjustContent(ctx, profile.ID, 1)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("content created",
		zap.String("content_id", content.ID.String()),
		zap.String("profile_id", content.CreatorProfileID.String()),
	)
	return content, nil
}

// Publish makes a draft or scheduled item visible
func (s *ContentService) Publish(ctx context.Context, actor Actor, contentID uuid.UUID) (*entity.Content, error) {
	return s.mutate(ctx, actor, contentID, func(ctx context.Context, c *entity.Content) error {
		switch c.Status {
		case entity.ContentDraft, entity.ContentScheduled:
		default:
			return fmt.Errorf("publish %s content: %w", c.Status, domainErrors.ErrInvalidTransition)
		}
		now := s.clock.Now()
		c.Status = entity.ContentPublished
		c.PublishedAt = &now
		return nil
	})
}

// Delete marks content deleted and uncounts it
func (s *ContentService) Delete(ctx context.Context, actor Actor, contentID uuid.UUID) (*entity.Content, error) {
	return s.mutate(ctx, actor, contentID, func(ctx context.Context, c *entity.Content) error {
		if c.IsDeleted() {
			return fmt.Errorf("delete content: already deleted: %w", domainErrors.ErrInvalidTransition)
		}
		c.Status = entity.ContentDeleted
		return s.profiles.AdjustContent(ctx, c.CreatorProfileID, -1)
	})
}

func (s *ContentService) mutate(ctx context.Context, actor Actor, contentID uuid.UUID, fn func(context.Context, *entity.Content) error) (*entity.Content, error) {
	var content *entity.Content
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		content, err = s.content.GetByID(ctx, contentID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() && content.CreatorID != actor.UserID {
			return domainErrors.ErrNotOwner
		}
		if err := fn(ctx, content); err != nil {
			return err
		}
		content.UpdatedAt = s.clock.Now()
		return s.content.Update(ctx, content)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("content updated",
		zap.String("content_id", content.ID.String()),
		zap.String("status", string(content.Status)),
	)
	return content, nil
}
