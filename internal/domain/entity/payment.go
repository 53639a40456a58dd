package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
)

type PaymentStatus string

const (
	PaymentPending           PaymentStatus = "pending"
	PaymentProcessing        PaymentStatus = "processing"
	PaymentCompleted         PaymentStatus = "completed"
	PaymentFailed            PaymentStatus = "failed"
	PaymentCancelled         PaymentStatus = "cancelled"
	PaymentRefunded          PaymentStatus = "refunded"
	PaymentPartiallyRefunded PaymentStatus = "partially_refunded"
)

type PaymentType string

const (
	PaymentTypeSubscription PaymentType = "subscription"
	PaymentTypeOneTime      PaymentType = "one_time"
	PaymentTypeTip          PaymentType = "tip"
	PaymentTypeDonation     PaymentType = "donation"
)

type PaymentMethod string

const (
	MethodCreditCard   PaymentMethod = "credit_card"
	MethodDebitCard    PaymentMethod = "debit_card"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodPaypal       PaymentMethod = "paypal"
	MethodStripe       PaymentMethod = "stripe"
	MethodCrypto       PaymentMethod = "crypto"
	MethodOther        PaymentMethod = "other"
)

// Payment is a charge against a user, optionally for a subscription.
// RefundedAmount never exceeds NetAmount.
type Payment struct {
	ID                 uuid.UUID
	TransactionID      string
	UserID             uuid.UUID
	SubscriptionID     *uuid.UUID
	// RecipientProfileID names the creator paid by a payment outside a subscription
	RecipientProfileID *uuid.UUID
	Type               PaymentType
	Method             PaymentMethod
	Status             PaymentStatus
	Amount             decimal.Decimal
	TaxAmount          decimal.Decimal
	FeeAmount          decimal.Decimal
	NetAmount          decimal.Decimal
	RefundedAmount     decimal.Decimal
	Currency           string
	FailureReason      string
	ProcessedAt        *time.Time
	RefundedAt         *time.Time
	RefundReason       string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewPayment creates a new pending payment entity
func NewPayment(userID uuid.UUID, subscriptionID *uuid.UUID, paymentType PaymentType, amount, tax, fee, net decimal.Decimal, currency string) *Payment {
	now := time.Now()
	return &Payment{
		ID:             uuid.New(),
		TransactionID:  uuid.NewString(),
		UserID:         userID,
		SubscriptionID: subscriptionID,
		Type:           paymentType,
		Method:         MethodCreditCard,
		Status:         PaymentPending,
		Amount:         amount,
		TaxAmount:      tax,
		FeeAmount:      fee,
		NetAmount:      net,
		RefundedAmount: decimal.Zero,
		Currency:       currency,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsSuccessful returns true if the payment completed
func (p *Payment) IsSuccessful() bool {
	return p.Status == PaymentCompleted
}

// IsFailed returns true if the payment failed
func (p *Payment) IsFailed() bool {
	return p.Status == PaymentFailed
}

// IsRefunded returns true if any part of the payment was refunded
func (p *Payment) IsRefunded() bool {
	return p.Status == PaymentRefunded || p.Status == PaymentPartiallyRefunded
}

// TotalAmount is what the payer was charged: amount + tax + fee
func (p *Payment) TotalAmount() decimal.Decimal {
	return p.Amount.Add(p.TaxAmount).Add(p.FeeAmount)
}

// RemainingRefundable is the part of the net amount not yet refunded
func (p *Payment) RemainingRefundable() decimal.Decimal {
	return p.NetAmount.Sub(p.RefundedAmount)
}

// Complete marks a pending or processing payment as completed
func (p *Payment) Complete(now time.Time) error {
	if p.Status != PaymentPending && p.Status != PaymentProcessing {
		return fmt.Errorf("complete %s payment: %w", p.Status, domainErrors.ErrInvalidTransition)
	}
	p.Status = PaymentCompleted
	p.ProcessedAt = &now
	p.UpdatedAt = now
	return nil
}

// Fail marks a pending or processing payment as failed
func (p *Payment) Fail(now time.Time, reason string) error {
	if p.Status != PaymentPending && p.Status != PaymentProcessing {
		return fmt.Errorf("fail %s payment: %w", p.Status, domainErrors.ErrInvalidTransition)
	}
	p.Status = PaymentFailed
	p.FailureReason = reason
	p.UpdatedAt = now
	return nil
}

// Refund records a refund of amount, keeping RefundedAmount <= NetAmount
func (p *Payment) Refund(now time.Time, amount decimal.Decimal, reason string) error {
	if p.Status != PaymentCompleted && p.Status != PaymentPartiallyRefunded {
		return fmt.Errorf("refund %s payment: %w", p.Status, domainErrors.ErrInvalidTransition)
	}
	if !amount.IsPositive() {
		return domainErrors.ErrInvalidAmount
	}
	if amount.GreaterThan(p.RemainingRefundable()) {
		return domainErrors.ErrRefundExceedsNet
	}

	p.RefundedAmount = p.RefundedAmount.Add(amount)
	if p.RemainingRefundable().IsZero() {
		p.Status = PaymentRefunded
	} else {
		p.Status = PaymentPartiallyRefunded
	}
	p.RefundedAt = &now
	p.RefundReason = reason
	p.UpdatedAt = now
	return nil
}
