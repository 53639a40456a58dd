package dto

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
)

// ParseID parses a path or body identifier
func ParseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domainErrors.NewValidationError(field, "must be a UUID")
	}
	return id, nil
}

// ParseAmount parses a decimal money string; empty means zero
func ParseAmount(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, domainErrors.NewValidationError(field, "must be a decimal number")
	}
	return d, nil
}
