package tasks_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
	"github.com/bivex/creatorhub/internal/domain/entity"
	"github.com/bivex/creatorhub/internal/domain/service"
	"github.com/bivex/creatorhub/internal/worker/tasks"
)

type registrar struct {
	specs map[string]string
}

func (r *registrar) Register(cronspec string, task *asynq.Task, _ ...asynq.Option) (string, error) {
	r.specs[task.Type()] = cronspec
	return uuid.NewString(), nil
}

type subscriptionExpirer struct{ mock.Mock }

func (m *subscriptionExpirer) ExpireLapsed(ctx context.Context, limit int) (int, error) {
	args := m.Called(ctx, limit)
	return args.Int(0), args.Error(1)
}

type grantExpirer struct{ mock.Mock }

func (m *grantExpirer) ExpireLapsed(ctx context.Context, limit int) (int64, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).(int64), args.Error(1)
}

type creatorMaintainer struct{ mock.Mock }

func (m *creatorMaintainer) ResetMonthlyEarnings(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *creatorMaintainer) Reconcile(ctx context.Context) (*service.ReconcileReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReconcileReport), args.Error(1)
}

type paymentSettler struct{ mock.Mock }

func (m *paymentSettler) Complete(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

func (m *paymentSettler) Refund(ctx context.Context, id uuid.UUID, amount decimal.Decimal, reason string) (*entity.Payment, error) {
	args := m.Called(ctx, id, amount, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

func TestRegisterScheduledTasks(t *testing.T) {
	r := &registrar{specs: map[string]string{}}
	require.NoError(t, tasks.RegisterScheduledTasks(r))

	assert.Equal(t, map[string]string{
		tasks.TypeExpireSubscriptions:  "@every 15m",
		tasks.TypeExpireGrants:         "@every 15m",
		tasks.TypeResetMonthlyEarnings: "0 0 1 * *",
		tasks.TypeReconcileCounters:    "0 3 * * *",
	}, r.specs)
}

func TestSweepJobHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("subscriptions drain full batches", func(t *testing.T) {
		subs := new(subscriptionExpirer)
		subs.On("ExpireLapsed", ctx, 2).Return(2, nil).Twice()
		subs.On("ExpireLapsed", ctx, 2).Return(1, nil).Once()
		h := tasks.NewSweepJobHandler(subs, new(grantExpirer), 10, zap.NewNop())

		payload, _ := json.Marshal(tasks.SweepPayload{Limit: 2})
		require.NoError(t, h.HandleExpireSubscriptions(ctx, asynq.NewTask(tasks.TypeExpireSubscriptions, payload)))
		subs.AssertNumberOfCalls(t, "ExpireLapsed", 3)
	})

	t.Run("grants use configured batch size without payload", func(t *testing.T) {
		grants := new(grantExpirer)
		grants.On("ExpireLapsed", ctx, 50).Return(int64(7), nil).Once()
		h := tasks.NewSweepJobHandler(new(subscriptionExpirer), grants, 50, zap.NewNop())

		require.NoError(t, h.HandleExpireGrants(ctx, asynq.NewTask(tasks.TypeExpireGrants, nil)))
		grants.AssertExpectations(t)
	})

	t.Run("store failure is retried", func(t *testing.T) {
		subs := new(subscriptionExpirer)
		subs.On("ExpireLapsed", ctx, tasks.DefaultBatchSize).Return(0, errors.New("connection reset"))
		h := tasks.NewSweepJobHandler(subs, new(grantExpirer), 0, zap.NewNop())

		err := h.HandleExpireSubscriptions(ctx, asynq.NewTask(tasks.TypeExpireSubscriptions, nil))
		require.Error(t, err)
		assert.False(t, errors.Is(err, asynq.SkipRetry))
	})

	t.Run("malformed payload is not retried", func(t *testing.T) {
		h := tasks.NewSweepJobHandler(new(subscriptionExpirer), new(grantExpirer), 10, zap.NewNop())

		err := h.HandleExpireGrants(ctx, asynq.NewTask(tasks.TypeExpireGrants, []byte("{")))
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})
}

func TestCreatorJobHandler(t *testing.T) {
	ctx := context.Background()
	creators := new(creatorMaintainer)
	creators.On("ResetMonthlyEarnings", ctx).Return(int64(3), nil)
	creators.On("Reconcile", ctx).Return(&service.ReconcileReport{}, nil)
	h := tasks.NewCreatorJobHandler(creators, zap.NewNop())

	require.NoError(t, h.HandleResetMonthlyEarnings(ctx, asynq.NewTask(tasks.TypeResetMonthlyEarnings, nil)))
	require.NoError(t, h.HandleReconcileCounters(ctx, asynq.NewTask(tasks.TypeReconcileCounters, nil)))
	creators.AssertExpectations(t)
}

func TestPaymentJobHandler(t *testing.T) {
	ctx := context.Background()
	paymentID := uuid.New()

	task := func(t *testing.T, p tasks.SettlePaymentPayload) *asynq.Task {
		task, err := tasks.NewSettlePaymentTask(p)
		require.NoError(t, err)
		assert.Equal(t, tasks.TypeSettlePayment, task.Type())
		return task
	}

	t.Run("completed event completes payment", func(t *testing.T) {
		payments := new(paymentSettler)
		payments.On("Complete", ctx, paymentID).
			Return(&entity.Payment{ID: paymentID, Status: entity.PaymentCompleted}, nil)
		h := tasks.NewPaymentJobHandler(payments, zap.NewNop())

		err := h.HandleSettlePayment(ctx, task(t, tasks.SettlePaymentPayload{
			EventID: "evt_1", EventType: tasks.EventPaymentCompleted, PaymentID: paymentID,
		}))
		require.NoError(t, err)
		payments.AssertExpectations(t)
	})

	t.Run("refunded event refunds amount", func(t *testing.T) {
		payments := new(paymentSettler)
		amount := decimal.RequireFromString("4.50")
		payments.On("Refund", ctx, paymentID, mock.MatchedBy(amount.Equal), "chargeback").
			Return(&entity.Payment{ID: paymentID, Status: entity.PaymentPartiallyRefunded}, nil)
		h := tasks.NewPaymentJobHandler(payments, zap.NewNop())

		err := h.HandleSettlePayment(ctx, task(t, tasks.SettlePaymentPayload{
			EventID: "evt_2", EventType: tasks.EventPaymentRefunded, PaymentID: paymentID,
			Amount: amount, Reason: "chargeback",
		}))
		require.NoError(t, err)
		payments.AssertExpectations(t)
	})

	t.Run("rule violation skips retry", func(t *testing.T) {
		payments := new(paymentSettler)
		payments.On("Complete", ctx, paymentID).Return(nil, domainErrors.ErrInvalidTransition)
		h := tasks.NewPaymentJobHandler(payments, zap.NewNop())

		err := h.HandleSettlePayment(ctx, task(t, tasks.SettlePaymentPayload{
			EventID: "evt_3", EventType: tasks.EventPaymentCompleted, PaymentID: paymentID,
		}))
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})

	t.Run("collision is retried", func(t *testing.T) {
		payments := new(paymentSettler)
		payments.On("Complete", ctx, paymentID).Return(nil, domainErrors.ErrConcurrentModification)
		h := tasks.NewPaymentJobHandler(payments, zap.NewNop())

		err := h.HandleSettlePayment(ctx, task(t, tasks.SettlePaymentPayload{
			EventID: "evt_4", EventType: tasks.EventPaymentCompleted, PaymentID: paymentID,
		}))
		require.Error(t, err)
		assert.False(t, errors.Is(err, asynq.SkipRetry))
	})
}

func TestSettlePaymentPayloadValidate(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name    string
		payload tasks.SettlePaymentPayload
		wantErr bool
	}{
		{"completed", tasks.SettlePaymentPayload{EventID: "e", EventType: tasks.EventPaymentCompleted, PaymentID: id}, false},
		{"missing event id", tasks.SettlePaymentPayload{EventType: tasks.EventPaymentCompleted, PaymentID: id}, true},
		{"missing payment", tasks.SettlePaymentPayload{EventID: "e", EventType: tasks.EventPaymentCompleted}, true},
		{"refund without amount", tasks.SettlePaymentPayload{EventID: "e", EventType: tasks.EventPaymentRefunded, PaymentID: id}, true},
		{"unknown event", tasks.SettlePaymentPayload{EventID: "e", EventType: "payment.disputed", PaymentID: id}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, domainErrors.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
