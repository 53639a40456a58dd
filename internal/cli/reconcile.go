package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewReconcileCommand creates the reconcile command.
func NewReconcileCommand(rootOpts *RootOptions, open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Repair drifted subscriber and content counters",
		Long: `Recount active subscriptions and published content and overwrite any
cached counter that disagrees. Prints every corrected row.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			ops, closeFn, err := open(cmd.Context(), rootOpts)
			if err != nil {
				return f.Fail(ExitCommandError, "failed to connect", err)
			}
			defer closeFn()

			report, err := ops.Reconcile(cmd.Context())
			if err != nil {
				return f.Fail(ExitFailure, "reconcile failed", err)
			}

			if !report.Drifted() {
				return f.Success(report, "counters consistent")
			}

			var b strings.Builder
			for _, p := range report.Profiles {
				fmt.Fprintf(&b, "profile %s: subscribers %d -> %d, content %d -> %d\n",
					p.ProfileID, p.StoredSubscribers, p.ActualSubscribers, p.StoredContent, p.ActualContent)
			}
			for _, t := range report.Tiers {
				fmt.Fprintf(&b, "tier %s: subscribers %d -> %d\n", t.TierID, t.Stored, t.Actual)
			}
			return f.Success(report, strings.TrimSuffix(b.String(), "\n"))
		},
	}
}
