package tasks

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/bivex/creatorhub/internal/domain/service"
)

// CreatorMaintainer runs the periodic creator profile jobs
type CreatorMaintainer interface {
	ResetMonthlyEarnings(ctx context.Context) (int64, error)
	Reconcile(ctx context.Context) (*service.ReconcileReport, error)
}

// CreatorJobHandler handles creator profile maintenance jobs
type CreatorJobHandler struct {
	creators CreatorMaintainer
	logger   *zap.Logger
}

// NewCreatorJobHandler creates a new creator job handler
func NewCreatorJobHandler(creators CreatorMaintainer, logger *zap.Logger) *CreatorJobHandler {
	return &CreatorJobHandler{creators: creators, logger: logger}
}

// HandleResetMonthlyEarnings zeroes monthly earnings at the start of a month
func (h *CreatorJobHandler) HandleResetMonthlyEarnings(ctx context.Context, _ *asynq.Task) error {
	n, err := h.creators.ResetMonthlyEarnings(ctx)
	if err != nil {
		return fmt.Errorf("failed to reset monthly earnings: %w", err)
	}

	h.logger.Info("monthly earnings reset", zap.Int64("profiles", n))
	return nil
}

// HandleReconcileCounters recomputes denormalized subscriber and content counters
func (h *CreatorJobHandler) HandleReconcileCounters(ctx context.Context, _ *asynq.Task) error {
	report, err := h.creators.Reconcile(ctx)
	if err != nil {
		return fmt.Errorf("failed to reconcile counters: %w", err)
	}

	h.logger.Info("counters reconciled",
		zap.Int("profiles_fixed", len(report.Profiles)),
		zap.Int("tiers_fixed", len(report.Tiers)),
	)
	return nil
}
