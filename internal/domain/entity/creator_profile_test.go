package entity_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bivex/creatorhub/internal/domain/entity"
	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
)

func TestCreatorProfileEntity(t *testing.T) {
	now := time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)

	t.Run("Deactivate records the reason once", func(t *testing.T) {
		p := entity.NewCreatorProfile(uuid.New(), entity.CategoryMusician)

		require.NoError(t, p.Deactivate(now, "on hiatus"))
		assert.False(t, p.IsActive)
		assert.Equal(t, "on hiatus", p.DeactivationReason)
		assert.Equal(t, now, p.UpdatedAt)
		assert.ErrorIs(t, p.Deactivate(now, "again"), domainErrors.ErrInvalidTransition)
	})

	t.Run("Reactivate clears the reason", func(t *testing.T) {
		p := entity.NewCreatorProfile(uuid.New(), entity.CategoryMusician)
		assert.ErrorIs(t, p.Reactivate(now), domainErrors.ErrInvalidTransition)

		require.NoError(t, p.Deactivate(now, "on hiatus"))
		require.NoError(t, p.Reactivate(now))
		assert.True(t, p.IsActive)
		assert.Empty(t, p.DeactivationReason)
	})

	t.Run("ParseVerificationStatus", func(t *testing.T) {
		s, err := entity.ParseVerificationStatus("verified")
		require.NoError(t, err)
		assert.Equal(t, entity.VerificationVerified, s)

		_, err = entity.ParseVerificationStatus("approved")
		assert.ErrorIs(t, err, domainErrors.ErrInvalidStatus)
	})

	t.Run("ParseCreatorCategory", func(t *testing.T) {
		c, err := entity.ParseCreatorCategory("")
		require.NoError(t, err)
		assert.Equal(t, entity.CategoryOther, c)

		c, err = entity.ParseCreatorCategory("gaming")
		require.NoError(t, err)
		assert.Equal(t, entity.CategoryGaming, c)

		_, err = entity.ParseCreatorCategory("influencer")
		assert.ErrorIs(t, err, domainErrors.ErrInvalidCategory)
	})
}
