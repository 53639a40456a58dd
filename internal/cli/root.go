package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bivex/creatorhub/internal/domain/entitlement"
	"github.com/bivex/creatorhub/internal/domain/entity"
	"github.com/bivex/creatorhub/internal/domain/service"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Operations are the database-backed actions the CLI runs
type Operations interface {
	TierRevenue(ctx context.Context, tierID uuid.UUID) (*entitlement.Revenue, *entity.SubscriptionTier, error)
	Reconcile(ctx context.Context) (*service.ReconcileReport, error)
	ExpireSubscriptions(ctx context.Context, limit int) (int, error)
	ExpireGrants(ctx context.Context, limit int) (int64, error)
}

// Opener connects Operations; the returned func releases the connections
type Opener func(ctx context.Context, opts *RootOptions) (Operations, func(), error)

// NewRootCommand creates the root command for creatorctl.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithOpener(OpenServices)
}

// NewRootCommandWithOpener creates the root command with a custom backend
func NewRootCommandWithOpener(open Opener) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "creatorctl",
		Short: "creatorctl - creatorhub operations",
		Long:  "Operator tooling for creatorhub tier pricing, revenue projection and maintenance sweeps.",
		// main prints the error once and maps it to an exit code
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return WrapExitError(ExitCommandError, "invalid flags",
					fmt.Errorf("format %q must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewPriceCommand(opts))
	cmd.AddCommand(NewRevenueCommand(opts, open))
	cmd.AddCommand(NewReconcileCommand(opts, open))
	cmd.AddCommand(NewExpireCommand(opts, open))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
