package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// DefaultBatchSize bounds one sweep pass when the payload carries no limit
const DefaultBatchSize = 500

// maxSweepPasses caps the batches one task run works through
const maxSweepPasses = 20

// SweepPayload is the payload for the expiry sweeps
type SweepPayload struct {
	Limit int `json:"limit"`
}

// SubscriptionExpirer expires subscriptions past their end date
type SubscriptionExpirer interface {
	ExpireLapsed(ctx context.Context, limit int) (int, error)
}

// GrantExpirer expires access grants past their expiry
type GrantExpirer interface {
	ExpireLapsed(ctx context.Context, limit int) (int64, error)
}

// SweepJobHandler handles the periodic expiry sweeps
type SweepJobHandler struct {
	subscriptions SubscriptionExpirer
	grants        GrantExpirer
	batchSize     int
	logger        *zap.Logger
}

// NewSweepJobHandler creates a new sweep job handler
func NewSweepJobHandler(subscriptions SubscriptionExpirer, grants GrantExpirer, batchSize int, logger *zap.Logger) *SweepJobHandler {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &SweepJobHandler{
		subscriptions: subscriptions,
		grants:        grants,
		batchSize:     batchSize,
		logger:        logger,
	}
}

// HandleExpireSubscriptions expires active subscriptions whose end date has passed
func (h *SweepJobHandler) HandleExpireSubscriptions(ctx context.Context, t *asynq.Task) error {
	limit, err := h.limit(t)
	if err != nil {
		return err
	}

	total := 0
	for pass := 0; pass < maxSweepPasses; pass++ {
		n, err := h.subscriptions.ExpireLapsed(ctx, limit)
		if err != nil {
			return fmt.Errorf("failed to expire subscriptions: %w", err)
		}
		total += n
		if n < limit {
			break
		}
	}

	h.logger.Info("expired lapsed subscriptions", zap.Int("count", total))
	return nil
}

// HandleExpireGrants expires time-limited grants whose expiry has passed
func (h *SweepJobHandler) HandleExpireGrants(ctx context.Context, t *asynq.Task) error {
	limit, err := h.limit(t)
	if err != nil {
		return err
	}

	var total int64
	for pass := 0; pass < maxSweepPasses; pass++ {
		n, err := h.grants.ExpireLapsed(ctx, limit)
		if err != nil {
			return fmt.Errorf("failed to expire grants: %w", err)
		}
		total += n
		if n < int64(limit) {
			break
		}
	}

	h.logger.Info("expired lapsed grants", zap.Int64("count", total))
	return nil
}

func (h *SweepJobHandler) limit(t *asynq.Task) (int, error) {
	if len(t.Payload()) == 0 {
		return h.batchSize, nil
	}
	var p SweepPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return 0, fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	if p.Limit <= 0 {
		return h.batchSize, nil
	}
	return p.Limit, nil
}
