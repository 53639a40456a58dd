package valueobject

import (
	"time"

	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
)

// BillingCycle is the recurrence period a tier is billed on
type BillingCycle string

const (
	CycleMonthly   BillingCycle = "monthly"
	CycleQuarterly BillingCycle = "quarterly"
	CycleYearly    BillingCycle = "yearly"
)

// NewBillingCycle creates a new BillingCycle value object
func NewBillingCycle(cycle string) (BillingCycle, error) {
	bc := BillingCycle(cycle)
	if !bc.IsValid() {
		return "", domainErrors.ErrInvalidBillingCycle
	}
	return bc, nil
}

// String returns the string representation of the billing cycle
func (b BillingCycle) String() string {
	return string(b)
}

// IsValid returns true if the billing cycle is known
func (b BillingCycle) IsValid() bool {
	switch b {
	case CycleMonthly, CycleQuarterly, CycleYearly:
		return true
	default:
		return false
	}
}

// Months returns the number of calendar months covered by one cycle.
// Unknown cycles count as monthly.
func (b BillingCycle) Months() int {
	switch b {
	case CycleQuarterly:
		return 3
	case CycleYearly:
		return 12
	default:
		return 1
	}
}

// Advance moves t forward by one cycle using calendar months.
// A day past the end of the target month lands on its last day.
func (b BillingCycle) Advance(t time.Time) time.Time {
	year, month, day := t.Date()
	target := time.Date(year, month+time.Month(b.Months()), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(target.Year(), target.Month(), t.Location()); day > last {
		day = last
	}
	hour, minute, sec := t.Clock()
	return time.Date(target.Year(), target.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
