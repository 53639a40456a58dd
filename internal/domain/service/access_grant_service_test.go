package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bivex/creatorhub/internal/domain/entity"
	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
	"github.com/bivex/creatorhub/internal/domain/service"
)

func newAccessGrantService(f *fixture) *service.AccessGrantService {
	return service.NewAccessGrantService(f.clock, f.tx, f.users, f.content, f.tiers, f.grants, nil)
}

func TestAccessGrantService(t *testing.T) {
	ctx := context.Background()

	t.Run("Grant issues an active grant", func(t *testing.T) {
		f := newFixture(t)
		svc := newAccessGrantService(f)
		user := activeUser(entity.RoleConsumer)
		content := entity.NewContent(uuid.New(), uuid.New(), "Course", entity.ContentTypeVideo, "")
		tier := monthlyTier(uuid.New(), "5", 0)
		expires := now.Add(30 * 24 * time.Hour)

		f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		f.content.On("GetByID", mock.Anything, content.ID).Return(content, nil)
		f.tiers.On("GetByID", mock.Anything, tier.ID).Return(tier, nil)
		f.grants.On("Create", mock.Anything, mock.AnythingOfType("*entity.ContentAccess")).Return(nil)

		grant, err := svc.Grant(ctx, service.GrantParams{
			UserID: user.ID, ContentID: content.ID, TierID: &tier.ID,
			AccessType: entity.AccessSubscription, ExpiresAt: &expires,
		})
		require.NoError(t, err)
		assert.Equal(t, entity.AccessStatusActive, grant.Status)
		assert.Equal(t, now, grant.GrantedAt)
		assert.Equal(t, 0, grant.AccessCount)
	})

	t.Run("subscription grants require a tier", func(t *testing.T) {
		f := newFixture(t)
		svc := newAccessGrantService(f)

		_, err := svc.Grant(ctx, service.GrantParams{UserID: uuid.New(), ContentID: uuid.New(), AccessType: entity.AccessSubscription})
		assert.ErrorIs(t, err, domainErrors.ErrMissingTier)
	})

	t.Run("inactive users cannot be granted access", func(t *testing.T) {
		f := newFixture(t)
		svc := newAccessGrantService(f)
		user := activeUser(entity.RoleConsumer)
		user.Status = entity.UserStatusInactive

		f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)

		_, err := svc.Grant(ctx, service.GrantParams{UserID: user.ID, ContentID: uuid.New(), AccessType: entity.AccessFree, Unlimited: true})
		assert.ErrorIs(t, err, domainErrors.ErrUserNotActive)
	})

	t.Run("Revoke twice fails the second time", func(t *testing.T) {
		f := newFixture(t)
		svc := newAccessGrantService(f)
		grant := entity.NewContentAccess(uuid.New(), uuid.New(), nil, entity.AccessInvite, nil, true, now)

		f.grants.On("GetByID", mock.Anything, grant.ID).Return(grant, nil)
		f.grants.On("UpdateStatus", mock.Anything, grant).Return(nil).Once()

		revoked, err := svc.Revoke(ctx, grant.ID, "refund")
		require.NoError(t, err)
		assert.Equal(t, entity.AccessStatusRevoked, revoked.Status)
		assert.Equal(t, "refund", revoked.RevokeReason)

		_, err = svc.Revoke(ctx, grant.ID, "again")
		assert.ErrorIs(t, err, domainErrors.ErrInvalidTransition)
	})

	t.Run("ExpireLapsed passes the clock to the repository", func(t *testing.T) {
		f := newFixture(t)
		svc := newAccessGrantService(f)

		f.grants.On("ExpireLapsed", mock.Anything, now, 200).Return(int64(5), nil)

		n, err := svc.ExpireLapsed(ctx, 200)
		require.NoError(t, err)
		assert.Equal(t, int64(5), n)
	})
}
