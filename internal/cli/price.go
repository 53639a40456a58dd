package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/bivex/creatorhub/internal/application/dto"
	"github.com/bivex/creatorhub/internal/domain/entitlement"
	"github.com/bivex/creatorhub/internal/domain/entity"
	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
	"github.com/bivex/creatorhub/internal/domain/valueobject"
)

type priceOptions struct {
	price      string
	cycle      string
	discount   string
	validUntil string
	at         string
}

// NewPriceCommand creates the price command.
func NewPriceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &priceOptions{}

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Compute the effective price of a tier offline",
		Long: `Compute a tier's effective price from flags without touching the database.

A discount applies only while --valid-until is after --at.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrice(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.price, "price", "", "base price (required)")
	cmd.Flags().StringVar(&opts.cycle, "cycle", string(valueobject.CycleMonthly), "billing cycle")
	cmd.Flags().StringVar(&opts.discount, "discount", "", "discount percentage [0,100]")
	cmd.Flags().StringVar(&opts.validUntil, "valid-until", "", "discount end (RFC3339)")
	cmd.Flags().StringVar(&opts.at, "at", "", "evaluation time (RFC3339, default now)")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func runPrice(rootOpts *RootOptions, opts *priceOptions, cmd *cobra.Command) error {
	f := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	tier, at, err := opts.tier()
	if err != nil {
		return f.Fail(ExitCommandError, "invalid price flags", err)
	}
	f.VerboseLog("evaluating at %s", at.Format(time.RFC3339))

	effective := entitlement.EffectivePrice(tier, at)
	resp := dto.TierPriceResponse{
		BasePrice:      tier.Price.StringFixed(valueobject.MoneyScale),
		EffectivePrice: effective.StringFixed(valueobject.MoneyScale),
		HasDiscount:    entitlement.HasActiveDiscount(tier, at),
		BillingCycle:   tier.BillingCycle.String(),
	}

	text := fmt.Sprintf("base %s  effective %s  (%s)", resp.BasePrice, resp.EffectivePrice, resp.BillingCycle)
	if resp.HasDiscount {
		text += "  discount active"
	}
	return f.Success(resp, text)
}

func (o *priceOptions) tier() (*entity.SubscriptionTier, time.Time, error) {
	at := time.Now().UTC()
	if o.at != "" {
		t, err := time.Parse(time.RFC3339, o.at)
		if err != nil {
			return nil, at, fmt.Errorf("--at: %w", err)
		}
		at = t
	}

	price, err := decimal.NewFromString(o.price)
	if err != nil {
		return nil, at, fmt.Errorf("--price: %w", err)
	}
	if price.IsNegative() {
		return nil, at, domainErrors.ErrNegativePrice
	}
	cycle, err := valueobject.NewBillingCycle(o.cycle)
	if err != nil {
		return nil, at, fmt.Errorf("--cycle: %w", err)
	}

	tier := entity.NewSubscriptionTier(uuid.Nil, "cli", price, cycle, 0)
	if o.discount != "" || o.validUntil != "" {
		pct, err := decimal.NewFromString(o.discount)
		if err != nil {
			return nil, at, fmt.Errorf("--discount: %w", err)
		}
		until, err := time.Parse(time.RFC3339, o.validUntil)
		if err != nil {
			return nil, at, fmt.Errorf("--valid-until: %w", err)
		}
		d, err := valueobject.NewDiscount(pct, until)
		if err != nil {
			return nil, at, err
		}
		tier.SetDiscount(*d)
	}
	return tier, at, nil
}
