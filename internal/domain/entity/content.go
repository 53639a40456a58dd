package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ContentStatus string

const (
	ContentDraft     ContentStatus = "draft"
	ContentPublished ContentStatus = "published"
	ContentScheduled ContentStatus = "scheduled"
	ContentArchived  ContentStatus = "archived"
	ContentDeleted   ContentStatus = "deleted"
)

type ContentVisibility string

const (
	VisibilityPublic          ContentVisibility = "public"
	VisibilitySubscribersOnly ContentVisibility = "subscribers_only"
	VisibilityTierSpecific    ContentVisibility = "tier_specific"
	VisibilityPrivate         ContentVisibility = "private"
)

type ContentType string

const (
	ContentTypePost     ContentType = "post"
	ContentTypeImage    ContentType = "image"
	ContentTypeVideo    ContentType = "video"
	ContentTypeAudio    ContentType = "audio"
	ContentTypeDocument ContentType = "document"
	ContentTypeOther    ContentType = "other"
)

type Content struct {
	ID               uuid.UUID
	CreatorID        uuid.UUID
	CreatorProfileID uuid.UUID
	Title            string
	Type             ContentType
	Status           ContentStatus
	Visibility       ContentVisibility
	RequiredTierID   *uuid.UUID
	PublishedAt      *time.Time
	ViewCount        int
	LikeCount        int
	CommentCount     int
	ShareCount       int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewContent creates a draft visible to subscribers only
func NewContent(creatorID, profileID uuid.UUID, title string, contentType ContentType, visibility ContentVisibility) *Content {
	now := time.Now()
	if visibility == "" {
		visibility = VisibilitySubscribersOnly
	}
	return &Content{
		ID:               uuid.New(),
		CreatorID:        creatorID,
		CreatorProfileID: profileID,
		Title:            title,
		Type:             contentType,
		Status:           ContentDraft,
		Visibility:       visibility,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func (c *Content) IsPublished() bool {
	return c.Status == ContentPublished
}

func (c *Content) IsPublic() bool {
	return c.Visibility == VisibilityPublic
}

// IsSubscriberContent reports whether a subscription to the creator can unlock the content
func (c *Content) IsSubscriberContent() bool {
	return c.Visibility == VisibilitySubscribersOnly || c.Visibility == VisibilityTierSpecific
}

func (c *Content) IsDeleted() bool {
	return c.Status == ContentDeleted
}

// TotalEngagement sums views, likes, comments and shares
func (c *Content) TotalEngagement() int {
	return c.ViewCount + c.LikeCount + c.CommentCount + c.ShareCount
}

// EngagementRate is total engagement as a percentage of views, zero without views
func (c *Content) EngagementRate() decimal.Decimal {
	if c.ViewCount == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(c.TotalEngagement())).
		Div(decimal.NewFromInt(int64(c.ViewCount))).
		Mul(decimal.NewFromInt(100))
}
