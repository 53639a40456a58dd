package entity_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bivex/creatorhub/internal/domain/entity"
	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
)

func newCompletedPayment(t *testing.T) *entity.Payment {
	t.Helper()
	p := entity.NewPayment(uuid.New(), nil, entity.PaymentTypeOneTime,
		decimal.RequireFromString("20"), decimal.RequireFromString("2"), decimal.RequireFromString("1"),
		decimal.RequireFromString("18"), "USD")
	require.NoError(t, p.Complete(time.Now()))
	return p
}

func TestPaymentEntity(t *testing.T) {
	t.Run("NewPayment creates pending payment", func(t *testing.T) {
		p := entity.NewPayment(uuid.New(), nil, entity.PaymentTypeTip, decimal.NewFromInt(5), decimal.Zero, decimal.Zero, decimal.NewFromInt(5), "USD")

		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.TransactionID)
		assert.Equal(t, entity.PaymentPending, p.Status)
		assert.True(t, p.RefundedAmount.IsZero())
		assert.False(t, p.IsSuccessful())
	})

	t.Run("TotalAmount adds tax and fee", func(t *testing.T) {
		p := newCompletedPayment(t)
		assert.True(t, p.TotalAmount().Equal(decimal.NewFromInt(23)))
	})

	t.Run("Complete twice is rejected", func(t *testing.T) {
		p := newCompletedPayment(t)

		err := p.Complete(time.Now())
		assert.ErrorIs(t, err, domainErrors.ErrInvalidTransition)
		assert.True(t, p.IsSuccessful())
		assert.NotNil(t, p.ProcessedAt)
	})

	t.Run("partial then full refund", func(t *testing.T) {
		p := newCompletedPayment(t)

		require.NoError(t, p.Refund(time.Now(), decimal.NewFromInt(8), "requested"))
		assert.Equal(t, entity.PaymentPartiallyRefunded, p.Status)
		assert.True(t, p.RemainingRefundable().Equal(decimal.NewFromInt(10)))

		require.NoError(t, p.Refund(time.Now(), decimal.NewFromInt(10), "requested"))
		assert.Equal(t, entity.PaymentRefunded, p.Status)
		assert.True(t, p.IsRefunded())
		assert.True(t, p.RemainingRefundable().IsZero())
	})

	t.Run("refund beyond net amount is rejected", func(t *testing.T) {
		p := newCompletedPayment(t)

		err := p.Refund(time.Now(), decimal.NewFromInt(19), "")
		assert.ErrorIs(t, err, domainErrors.ErrRefundExceedsNet)
		assert.True(t, p.RefundedAmount.IsZero())
		assert.Equal(t, entity.PaymentCompleted, p.Status)
	})

	t.Run("refund of pending payment is rejected", func(t *testing.T) {
		p := entity.NewPayment(uuid.New(), nil, entity.PaymentTypeTip, decimal.NewFromInt(5), decimal.Zero, decimal.Zero, decimal.NewFromInt(5), "USD")

		err := p.Refund(time.Now(), decimal.NewFromInt(1), "")
		assert.ErrorIs(t, err, domainErrors.ErrInvalidTransition)
	})

	t.Run("non-positive refund is invalid input", func(t *testing.T) {
		p := newCompletedPayment(t)

		err := p.Refund(time.Now(), decimal.Zero, "")
		assert.ErrorIs(t, err, domainErrors.ErrInvalidInput)
	})
}

func decimalFrom(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
