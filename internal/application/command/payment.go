package command

import (
	"context"

	"github.com/bivex/creatorhub/internal/application/dto"
	"github.com/bivex/creatorhub/internal/domain/entity"
	"github.com/bivex/creatorhub/internal/domain/service"
)

// CreatePaymentCommand records a direct payment from the caller to a creator
type CreatePaymentCommand struct {
	payments *service.PaymentService
}

// NewCreatePaymentCommand creates a new create payment command
func NewCreatePaymentCommand(payments *service.PaymentService) *CreatePaymentCommand {
	return &CreatePaymentCommand{payments: payments}
}

// Execute executes the create payment command
func (c *CreatePaymentCommand) Execute(ctx context.Context, actor service.Actor, req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	profileID, err := dto.ParseID("creator_profile_id", req.CreatorProfileID)
	if err != nil {
		return nil, err
	}
	amount, err := dto.ParseAmount("amount", req.Amount)
	if err != nil {
		return nil, err
	}
	tax, err := dto.ParseAmount("tax_amount", req.TaxAmount)
	if err != nil {
		return nil, err
	}
	fee, err := dto.ParseAmount("fee_amount", req.FeeAmount)
	if err != nil {
		return nil, err
	}

	payment, err := c.payments.CreateDirect(ctx, service.DirectPaymentParams{
		UserID:    actor.UserID,
		ProfileID: profileID,
		Type:      entity.PaymentType(req.Type),
		Amount:    amount,
		Tax:       tax,
		Fee:       fee,
		Currency:  req.Currency,
	})
	if err != nil {
		return nil, err
	}
	resp := dto.NewPaymentResponse(payment)
	return &resp, nil
}

// SettlePaymentCommand completes or refunds payments
type SettlePaymentCommand struct {
	payments *service.PaymentService
}

// NewSettlePaymentCommand creates a new settle payment command
func NewSettlePaymentCommand(payments *service.PaymentService) *SettlePaymentCommand {
	return &SettlePaymentCommand{payments: payments}
}

// Complete marks the payment completed
func (c *SettlePaymentCommand) Complete(ctx context.Context, paymentID string) (*dto.PaymentResponse, error) {
	id, err := dto.ParseID("payment_id", paymentID)
	if err != nil {
		return nil, err
	}

	payment, err := c.payments.Complete(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewPaymentResponse(payment)
	return &resp, nil
}

// Refund refunds part or all of the payment
func (c *SettlePaymentCommand) Refund(ctx context.Context, paymentID string, req *dto.RefundPaymentRequest) (*dto.PaymentResponse, error) {
	id, err := dto.ParseID("payment_id", paymentID)
	if err != nil {
		return nil, err
	}
	amount, err := dto.ParseAmount("amount", req.Amount)
	if err != nil {
		return nil, err
	}

	payment, err := c.payments.Refund(ctx, id, amount, req.Reason)
	if err != nil {
		return nil, err
	}
	resp := dto.NewPaymentResponse(payment)
	return &resp, nil
}
