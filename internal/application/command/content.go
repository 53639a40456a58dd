package command

import (
	"context"

	"github.com/bivex/creatorhub/internal/application/dto"
	"github.com/bivex/creatorhub/internal/domain/entity"
	"github.com/bivex/creatorhub/internal/domain/service"
)

// ContentCommand creates, publishes and deletes content
type ContentCommand struct {
	content *service.ContentService
}

// NewContentCommand creates a new content command
func NewContentCommand(content *service.ContentService) *ContentCommand {
	return &ContentCommand{content: content}
}

// Create stores a draft for the calling creator
func (c *ContentCommand) Create(ctx context.Context, actor service.Actor, req *dto.CreateContentRequest) (*dto.ContentResponse, error) {
	params := service.CreateContentParams{
		Title:      req.Title,
		Type:       entity.ContentType(req.Type),
		Visibility: entity.ContentVisibility(req.Visibility),
	}
	if req.TierID != nil {
		id, err := dto.ParseID("tier_id", *req.TierID)
		if err != nil {
			return nil, err
		}
		params.TierID = &id
	}

	content, err := c.content.Create(ctx, actor, params)
	if err != nil {
		return nil, err
	}
	resp := dto.NewContentResponse(content)
	return &resp, nil
}

// Publish makes the content visible
func (c *ContentCommand) Publish(ctx context.Context, actor service.Actor, contentID string) (*dto.ContentResponse, error) {
	id, err := dto.ParseID("content_id", contentID)
	if err != nil {
		return nil, err
	}

	content, err := c.content.Publish(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewContentResponse(content)
	return &resp, nil
}

// Delete marks the content deleted
func (c *ContentCommand) Delete(ctx context.Context, actor service.Actor, contentID string) error {
	id, err := dto.ParseID("content_id", contentID)
	if err != nil {
		return err
	}
	_, err = c.content.Delete(ctx, actor, id)
	return err
}
