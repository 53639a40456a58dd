package valueobject

import (
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
)

var hundred = decimal.NewFromInt(100)

// Discount is a percentage off a tier price that is valid until a point in time
type Discount struct {
	Percentage decimal.Decimal
	ValidUntil time.Time
}

// NewDiscount validates the percentage range and returns a Discount
func NewDiscount(percentage decimal.Decimal, validUntil time.Time) (*Discount, error) {
	if err := ValidateDiscountPercentage(percentage); err != nil {
		return nil, err
	}
	if validUntil.IsZero() {
		return nil, domainErrors.ErrIncompleteDiscount
	}
	return &Discount{Percentage: percentage, ValidUntil: validUntil}, nil
}

// ValidateDiscountPercentage rejects percentages outside [0,100]
func ValidateDiscountPercentage(percentage decimal.Decimal) error {
	if percentage.IsNegative() || percentage.GreaterThan(hundred) {
		return domainErrors.ErrInvalidDiscount
	}
	return nil
}

// Factor returns the multiplier applied to a price, 1 - pct/100.
func (d Discount) Factor() decimal.Decimal {
	return decimal.NewFromInt(1).Sub(d.Percentage.Div(hundred))
}
