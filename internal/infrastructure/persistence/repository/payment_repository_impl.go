package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bivex/creatorhub/internal/domain/entity"
	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
	"github.com/bivex/creatorhub/internal/domain/repository"
)

const paymentColumns = `id, transaction_id, user_id, subscription_id, recipient_profile_id, type, method, status,
	amount, tax_amount, fee_amount, net_amount, refunded_amount, currency, failure_reason, processed_at,
	refunded_at, refund_reason, created_at, updated_at`

type paymentRepositoryImpl struct {
	conn
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(pool *pgxpool.Pool) repository.PaymentRepository {
	return &paymentRepositoryImpl{conn{pool: pool}}
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	p := &entity.Payment{}
	err := row.Scan(
		&p.ID,
		&p.TransactionID,
		&p.UserID,
		&p.SubscriptionID,
		&p.RecipientProfileID,
		&p.Type,
		&p.Method,
		&p.Status,
		&p.Amount,
		&p.TaxAmount,
		&p.FeeAmount,
		&p.NetAmount,
		&p.RefundedAmount,
		&p.Currency,
		&p.FailureReason,
		&p.ProcessedAt,
		&p.RefundedAt,
		&p.RefundReason,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func (r *paymentRepositoryImpl) Create(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`
	_, err := r.db(ctx).Exec(ctx, query,
		p.ID,
		p.TransactionID,
		p.UserID,
		p.SubscriptionID,
		p.RecipientProfileID,
		p.Type,
		p.Method,
		p.Status,
		p.Amount,
		p.TaxAmount,
		p.FeeAmount,
		p.NetAmount,
		p.RefundedAmount,
		p.Currency,
		p.FailureReason,
		p.ProcessedAt,
		p.RefundedAt,
		p.RefundReason,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", mapError(err))
	}
	return nil
}

func (r *paymentRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	p, err := scanPayment(r.db(ctx).QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", notFound(err, domainErrors.ErrPaymentNotFound))
	}
	return p, nil
}

func (r *paymentRepositoryImpl) ListBySubscription(ctx context.Context, subscriptionID uuid.UUID) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE subscription_id = $1 ORDER BY created_at`

	rows, err := r.db(ctx).Query(ctx, query, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", mapError(err))
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *paymentRepositoryImpl) Update(ctx context.Context, p *entity.Payment) error {
	query := `
		UPDATE payments
		SET status = $2, refunded_amount = $3, failure_reason = $4, processed_at = $5,
		    refunded_at = $6, refund_reason = $7, updated_at = $8
		WHERE id = $1
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		p.ID,
		p.Status,
		p.RefundedAmount,
		p.FailureReason,
		p.ProcessedAt,
		p.RefundedAt,
		p.RefundReason,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrPaymentNotFound
	}
	return nil
}
