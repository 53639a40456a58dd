package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
	"github.com/bivex/creatorhub/internal/domain/entity"
)

// Payment provider event types
const (
	EventPaymentCompleted = "payment.completed"
	EventPaymentRefunded  = "payment.refunded"
)

// SettlePaymentPayload is a verified payment provider event
type SettlePaymentPayload struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	PaymentID uuid.UUID       `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason,omitempty"`
}

// Validate checks the payload before it is queued
func (p SettlePaymentPayload) Validate() error {
	if p.EventID == "" {
		return domainErrors.NewValidationError("event_id", "must not be empty")
	}
	if p.PaymentID == uuid.Nil {
		return domainErrors.NewValidationError("payment_id", "must not be empty")
	}
	switch p.EventType {
	case EventPaymentCompleted:
	case EventPaymentRefunded:
		if !p.Amount.IsPositive() {
			return domainErrors.NewValidationError("amount", "refunds must carry a positive amount")
		}
	default:
		return domainErrors.NewValidationError("event_type", "unsupported event "+p.EventType)
	}
	return nil
}

// NewSettlePaymentTask builds the task for a provider event; the event id
// deduplicates redeliveries.
func NewSettlePaymentTask(p SettlePaymentPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSettlePayment, payload,
		asynq.TaskID("payment-event:"+p.EventID),
		asynq.Queue(QueueCritical),
		asynq.MaxRetry(10),
		asynq.Retention(24*time.Hour),
	), nil
}

// PaymentSettler applies provider outcomes to payments
type PaymentSettler interface {
	Complete(ctx context.Context, paymentID uuid.UUID) (*entity.Payment, error)
	Refund(ctx context.Context, paymentID uuid.UUID, amount decimal.Decimal, reason string) (*entity.Payment, error)
}

// PaymentJobHandler handles payment settlement jobs
type PaymentJobHandler struct {
	payments PaymentSettler
	logger   *zap.Logger
}

// NewPaymentJobHandler creates a new payment job handler
func NewPaymentJobHandler(payments PaymentSettler, logger *zap.Logger) *PaymentJobHandler {
	return &PaymentJobHandler{payments: payments, logger: logger}
}

// HandleSettlePayment completes or refunds the payment named by the event
func (h *PaymentJobHandler) HandleSettlePayment(ctx context.Context, t *asynq.Task) error {
	var p SettlePaymentPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	var (
		payment *entity.Payment
		err     error
	)
	switch p.EventType {
	case EventPaymentCompleted:
		payment, err = h.payments.Complete(ctx, p.PaymentID)
	case EventPaymentRefunded:
		payment, err = h.payments.Refund(ctx, p.PaymentID, p.Amount, p.Reason)
	}
	if err != nil {
		// Not found and rule violations are final.
		if permanent(err) {
			h.logger.Warn("payment event rejected",
				zap.String("event_id", p.EventID),
				zap.String("payment_id", p.PaymentID.String()),
				zap.Error(err),
			)
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return fmt.Errorf("failed to settle payment %s: %w", p.PaymentID, err)
	}

	h.logger.Info("payment settled",
		zap.String("event_id", p.EventID),
		zap.String("payment_id", payment.ID.String()),
		zap.String("status", string(payment.Status)),
	)
	return nil
}

func permanent(err error) bool {
	if domainErrors.IsConcurrentModification(err) {
		return false
	}
	return domainErrors.IsNotFound(err) ||
		domainErrors.IsInvalidState(err) ||
		errors.Is(err, domainErrors.ErrInvalidInput)
}
