package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bivex/creatorhub/internal/application/dto"
)

// NewRevenueCommand creates the revenue command.
func NewRevenueCommand(rootOpts *RootOptions, open Opener) *cobra.Command {
	var tierID string

	cmd := &cobra.Command{
		Use:   "revenue",
		Short: "Project revenue for a stored tier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			id, err := uuid.Parse(tierID)
			if err != nil {
				return f.Fail(ExitCommandError, "invalid --tier", err)
			}

			ops, closeFn, err := open(cmd.Context(), rootOpts)
			if err != nil {
				return f.Fail(ExitCommandError, "failed to connect", err)
			}
			defer closeFn()

			rev, tier, err := ops.TierRevenue(cmd.Context(), id)
			if err != nil {
				return f.Fail(ExitFailure, "revenue projection failed", err)
			}

			resp := dto.NewTierRevenueResponse(tier, *rev)
			text := fmt.Sprintf("tier %s: %d subscribers, %s per %s, %s monthly",
				resp.TierID, resp.CurrentSubscribers, resp.NativeCycleTotal, resp.BillingCycle, resp.MonthlyNormalized)
			return f.Success(resp, text)
		},
	}

	cmd.Flags().StringVar(&tierID, "tier", "", "tier id (required)")
	_ = cmd.MarkFlagRequired("tier")

	return cmd
}
