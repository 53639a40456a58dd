package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/bivex/creatorhub/internal/domain/entitlement"
	"github.com/bivex/creatorhub/internal/domain/entity"
	"github.com/bivex/creatorhub/internal/domain/valueobject"
	"github.com/bivex/creatorhub/tests/mocks"
)

var now = time.Date(2026, time.May, 4, 9, 30, 0, 0, time.UTC)

type fixture struct {
	clock    entitlement.FixedClock
	engine   *entitlement.Engine
	tx       *mocks.TxManagerStub
	users    *mocks.MockUserRepository
	profiles *mocks.MockCreatorProfileRepository
	tiers    *mocks.MockSubscriptionTierRepository
	subs     *mocks.MockSubscriptionRepository
	payments *mocks.MockPaymentRepository
	content  *mocks.MockContentRepository
	grants   *mocks.MockContentAccessRepository
	cache    *mocks.MockTierCache
}

func newFixture(t *testing.T) *fixture {
	clock := entitlement.FixedClock{At: now}
	f := &fixture{
		clock:    clock,
		engine:   entitlement.NewEngine(clock),
		tx:       &mocks.TxManagerStub{},
		users:    mocks.NewMockUserRepository(),
		profiles: mocks.NewMockCreatorProfileRepository(),
		tiers:    mocks.NewMockSubscriptionTierRepository(),
		subs:     mocks.NewMockSubscriptionRepository(),
		payments: mocks.NewMockPaymentRepository(),
		content:  mocks.NewMockContentRepository(),
		grants:   mocks.NewMockContentAccessRepository(),
		cache:    &mocks.MockTierCache{},
	}
	t.Cleanup(func() {
		f.users.AssertExpectations(t)
		f.profiles.AssertExpectations(t)
		f.tiers.AssertExpectations(t)
		f.subs.AssertExpectations(t)
		f.payments.AssertExpectations(t)
		f.content.AssertExpectations(t)
		f.grants.AssertExpectations(t)
		f.cache.AssertExpectations(t)
	})
	return f
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// decEq matches a decimal argument by value
func decEq(s string) interface{} {
	want := dec(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func activeUser(role entity.UserRole) *entity.User {
	u := entity.NewUser(uuid.NewString()+"@example.com", "member", role)
	u.Status = entity.UserStatusActive
	return u
}

func creatorProfile(userID uuid.UUID) *entity.CreatorProfile {
	return entity.NewCreatorProfile(userID, entity.CategoryWriter)
}

func monthlyTier(profileID uuid.UUID, price string, max int) *entity.SubscriptionTier {
	return entity.NewSubscriptionTier(profileID, "Supporter", dec(price), valueobject.CycleMonthly, max)
}

// profileFor returns an active profile owning the tier
func profileFor(tier *entity.SubscriptionTier) *entity.CreatorProfile {
	p := creatorProfile(uuid.New())
	p.ID = tier.CreatorProfileID
	return p
}
