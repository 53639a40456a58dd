package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bivex/creatorhub/internal/worker/tasks"
)

// ExpireResult reports how many rows one sweep moved to expired
type ExpireResult struct {
	Subscriptions int   `json:"subscriptions"`
	Grants        int64 `json:"grants"`
}

// NewExpireCommand creates the expire command.
func NewExpireCommand(rootOpts *RootOptions, open Opener) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "expire",
		Short: "Expire lapsed subscriptions and access grants once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if limit <= 0 {
				return f.Fail(ExitCommandError, "invalid --limit", fmt.Errorf("must be positive, got %d", limit))
			}

			ops, closeFn, err := open(cmd.Context(), rootOpts)
			if err != nil {
				return f.Fail(ExitCommandError, "failed to connect", err)
			}
			defer closeFn()

			var res ExpireResult
			if res.Subscriptions, err = ops.ExpireSubscriptions(cmd.Context(), limit); err != nil {
				return f.Fail(ExitFailure, "subscription sweep failed", err)
			}
			f.VerboseLog("expired %d subscriptions", res.Subscriptions)

			if res.Grants, err = ops.ExpireGrants(cmd.Context(), limit); err != nil {
				return f.Fail(ExitFailure, "grant sweep failed", err)
			}

			return f.Success(res, fmt.Sprintf("expired %d subscriptions, %d grants", res.Subscriptions, res.Grants))
		},
	}

	cmd.Flags().IntVar(&limit, "limit", tasks.DefaultBatchSize, "max rows per entity")

	return cmd
}
