package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bivex/creatorhub/internal/domain/entitlement"
	"github.com/bivex/creatorhub/internal/domain/entity"
	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
	"github.com/bivex/creatorhub/internal/domain/repository"
	"github.com/bivex/creatorhub/internal/domain/service"
	"github.com/bivex/creatorhub/internal/domain/valueobject"
)

type fakeOps struct {
	tier        *entity.SubscriptionTier
	revenue     *entitlement.Revenue
	revenueErr  error
	report      *service.ReconcileReport
	subsExpired int
	grantsErr   error
	limits      []int
}

func (f *fakeOps) TierRevenue(ctx context.Context, tierID uuid.UUID) (*entitlement.Revenue, *entity.SubscriptionTier, error) {
	if f.revenueErr != nil {
		return nil, nil, f.revenueErr
	}
	return f.revenue, f.tier, nil
}

func (f *fakeOps) Reconcile(ctx context.Context) (*service.ReconcileReport, error) {
	return f.report, nil
}

func (f *fakeOps) ExpireSubscriptions(ctx context.Context, limit int) (int, error) {
	f.limits = append(f.limits, limit)
	return f.subsExpired, nil
}

func (f *fakeOps) ExpireGrants(ctx context.Context, limit int) (int64, error) {
	f.limits = append(f.limits, limit)
	return 2, f.grantsErr
}

func run(t *testing.T, ops Operations, args ...string) (string, error) {
	t.Helper()
	open := func(ctx context.Context, opts *RootOptions) (Operations, func(), error) {
		if ops == nil {
			return nil, nil, errors.New("no backend")
		}
		return ops, func() {}, nil
	}

	cmd := NewRootCommandWithOpener(open)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPriceCommand(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		effective string
		discount  bool
	}{
		{"no discount", []string{"--price", "10"}, "10.00", false},
		{"active discount", []string{"--price", "10", "--discount", "20",
			"--valid-until", "2026-12-01T00:00:00Z", "--at", "2026-11-01T00:00:00Z"}, "8.00", true},
		{"expired discount", []string{"--price", "10", "--discount", "20",
			"--valid-until", "2026-10-01T00:00:00Z", "--at", "2026-11-01T00:00:00Z"}, "10.00", false},
		{"full discount", []string{"--price", "9.99", "--discount", "100",
			"--valid-until", "2026-12-01T00:00:00Z", "--at", "2026-11-01T00:00:00Z"}, "0.00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, nil, append([]string{"price", "--format", "json"}, tt.args...)...)
			require.NoError(t, err)

			var resp struct {
				Status string `json:"status"`
				Data   struct {
					EffectivePrice string `json:"effective_price"`
					HasDiscount    bool   `json:"has_discount"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal([]byte(out), &resp))
			assert.Equal(t, "ok", resp.Status)
			assert.Equal(t, tt.effective, resp.Data.EffectivePrice)
			assert.Equal(t, tt.discount, resp.Data.HasDiscount)
		})
	}
}

func TestPriceCommand_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative price", []string{"--price", "-1"}},
		{"unknown cycle", []string{"--price", "10", "--cycle", "weekly"}},
		{"discount over 100", []string{"--price", "10", "--discount", "101", "--valid-until", "2026-12-01T00:00:00Z"}},
		{"discount without end", []string{"--price", "10", "--discount", "10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, nil, append([]string{"price"}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
		})
	}
}

func TestPriceCommand_TextOutput(t *testing.T) {
	out, err := run(t, nil, "price", "--price", "30", "--cycle", "quarterly")
	require.NoError(t, err)
	assert.Equal(t, "base 30.00  effective 30.00  (quarterly)\n", out)
}

func TestInvalidFormat(t *testing.T) {
	_, err := run(t, nil, "price", "--price", "1", "--format", "yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRevenueCommand(t *testing.T) {
	tier := entity.NewSubscriptionTier(uuid.New(), "Gold", decimal.NewFromInt(10), valueobject.CycleYearly, 0)
	tier.CurrentSubscribers = 3
	rev := entitlement.ProjectedRevenue(tier, tier.CreatedAt)

	t.Run("prints projection", func(t *testing.T) {
		out, err := run(t, &fakeOps{tier: tier, revenue: &rev}, "revenue", "--tier", tier.ID.String())
		require.NoError(t, err)
		assert.Contains(t, out, "3 subscribers")
		assert.Contains(t, out, "360.00 per yearly")
		assert.Contains(t, out, "30.00 monthly")
	})

	t.Run("malformed tier id", func(t *testing.T) {
		_, err := run(t, &fakeOps{}, "revenue", "--tier", "nope")
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})

	t.Run("tier not found", func(t *testing.T) {
		_, err := run(t, &fakeOps{revenueErr: domainErrors.ErrTierNotFound}, "revenue", "--tier", uuid.NewString())
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainErrors.ErrNotFound))
		assert.Equal(t, ExitFailure, GetExitCode(err))
	})
}

func TestReconcileCommand(t *testing.T) {
	t.Run("consistent", func(t *testing.T) {
		out, err := run(t, &fakeOps{report: &service.ReconcileReport{}}, "reconcile")
		require.NoError(t, err)
		assert.Equal(t, "counters consistent\n", out)
	})

	t.Run("lists drift", func(t *testing.T) {
		tierID := uuid.New()
		report := &service.ReconcileReport{
			Tiers: []repository.TierCounterDrift{{TierID: tierID, Stored: 5, Actual: 4}},
		}
		out, err := run(t, &fakeOps{report: report}, "reconcile")
		require.NoError(t, err)
		assert.Equal(t, "tier "+tierID.String()+": subscribers 5 -> 4\n", out)
	})
}

func TestExpireCommand(t *testing.T) {
	t.Run("uses limit for both sweeps", func(t *testing.T) {
		ops := &fakeOps{subsExpired: 7}
		out, err := run(t, ops, "expire", "--limit", "50", "--format", "json")
		require.NoError(t, err)
		assert.Equal(t, []int{50, 50}, ops.limits)

		var resp struct {
			Data ExpireResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.Equal(t, ExpireResult{Subscriptions: 7, Grants: 2}, resp.Data)
	})

	t.Run("rejects non-positive limit", func(t *testing.T) {
		ops := &fakeOps{}
		_, err := run(t, ops, "expire", "--limit", "0")
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Empty(t, ops.limits)
	})

	t.Run("grant sweep failure", func(t *testing.T) {
		_, err := run(t, &fakeOps{grantsErr: errors.New("db down")}, "expire")
		assert.Equal(t, ExitFailure, GetExitCode(err))
	})
}
