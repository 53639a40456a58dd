package tasks

import (
	"fmt"

	"github.com/hibiken/asynq"
)

// Task names
const (
	TypeExpireSubscriptions  = "subscription:expire_lapsed"
	TypeExpireGrants         = "access:expire_lapsed"
	TypeResetMonthlyEarnings = "creator:reset_monthly_earnings"
	TypeReconcileCounters    = "creator:reconcile_counters"
	TypeSettlePayment        = "payment:settle"
)

// Queue names
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// Schedule entries
const (
	SweepSchedule     = "@every 15m"
	ResetSchedule     = "0 0 1 * *"
	ReconcileSchedule = "0 3 * * *"
)

// Handlers groups the job handlers served by the worker
type Handlers struct {
	Sweeps   *SweepJobHandler
	Creators *CreatorJobHandler
	Payments *PaymentJobHandler
}

// RegisterHandlers registers all task handlers with the server mux.
func RegisterHandlers(mux *asynq.ServeMux, h Handlers) {
	mux.HandleFunc(TypeExpireSubscriptions, h.Sweeps.HandleExpireSubscriptions)
	mux.HandleFunc(TypeExpireGrants, h.Sweeps.HandleExpireGrants)
	mux.HandleFunc(TypeResetMonthlyEarnings, h.Creators.HandleResetMonthlyEarnings)
	mux.HandleFunc(TypeReconcileCounters, h.Creators.HandleReconcileCounters)
	mux.HandleFunc(TypeSettlePayment, h.Payments.HandleSettlePayment)
}

// Registrar is the part of asynq.Scheduler used to install cron entries
type Registrar interface {
	Register(cronspec string, task *asynq.Task, opts ...asynq.Option) (string, error)
}

// RegisterScheduledTasks registers all scheduled (cron) tasks
func RegisterScheduledTasks(scheduler Registrar) error {
	entries := []struct {
		spec string
		task *asynq.Task
	}{
		{SweepSchedule, asynq.NewTask(TypeExpireSubscriptions, nil)},
		{SweepSchedule, asynq.NewTask(TypeExpireGrants, nil)},
		{ResetSchedule, asynq.NewTask(TypeResetMonthlyEarnings, nil)},
		{ReconcileSchedule, asynq.NewTask(TypeReconcileCounters, nil)},
	}

	for _, e := range entries {
		if _, err := scheduler.Register(e.spec, e.task, asynq.Queue(QueueDefault)); err != nil {
			return fmt.Errorf("failed to schedule %s: %w", e.task.Type(), err)
		}
	}
	return nil
}
