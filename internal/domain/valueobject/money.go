package valueobject

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
)

// MoneyScale is the number of fractional digits stored for every amount (NUMERIC(10,2)).
const MoneyScale = 2

var ErrInvalidCurrency = fmt.Errorf("invalid currency code: %w", domainErrors.ErrInvalidInput)

// Money represents a monetary value
type Money struct {
	Amount   decimal.Decimal
	Currency string // ISO 4217 currency code (e.g., "USD", "EUR")
}

// NewMoney creates a new Money value object
func NewMoney(amount decimal.Decimal, currency string) (*Money, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrInvalidAmount, amount)
	}
	if !isValidCurrency(currency) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCurrency, currency)
	}
	return &Money{
		Amount:   RoundMoney(amount),
		Currency: strings.ToUpper(currency),
	}, nil
}

// ParseMoney parses a decimal string such as "9.99" into Money
func ParseMoney(amount, currency string) (*Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrInvalidAmount, amount)
	}
	return NewMoney(d, currency)
}

// RoundMoney rounds half away from zero to MoneyScale digits.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// isValidCurrency checks if the currency code is valid (3 letters)
func isValidCurrency(currency string) bool {
	if len(currency) != 3 {
		return false
	}
	for _, c := range currency {
		if !((c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')) {
			return false
		}
	}
	return true
}

// String returns a string representation of the money
func (m *Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(MoneyScale), m.Currency)
}

// IsZero returns true if the amount is zero
func (m *Money) IsZero() bool {
	return m.Amount.IsZero()
}

// Add adds another Money value to this one
func (m *Money) Add(other *Money) (*Money, error) {
	if m.Currency != other.Currency {
		return nil, fmt.Errorf("cannot add different currencies: %s and %s", m.Currency, other.Currency)
	}
	return NewMoney(m.Amount.Add(other.Amount), m.Currency)
}
