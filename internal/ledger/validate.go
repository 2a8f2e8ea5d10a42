package ledger

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Floor plan bounds for seat positions, in pixels.
const (
	MinSeatPosition = 0
	MaxSeatPosition = 2000
)

func ValidateQuantity(q int32) error {
	if q <= 0 {
		return fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}
	return nil
}

func ValidatePercentage(p int32) error {
	if p < 0 || p > 100 {
		return fmt.Errorf("%w: percentage must be between 0 and 100", ErrValidation)
	}
	return nil
}

func ValidateDiscount(d decimal.Decimal) error {
	return ValidateMoney("discount", d)
}

// ValidateMoney rejects amounts a NUMERIC(12,2) column cannot hold exactly.
func ValidateMoney(field string, d decimal.Decimal) error {
	switch {
	case d.IsNegative():
		return fmt.Errorf("%w: %s must be >= 0", ErrValidation, field)
	case !d.Equal(d.Round(2)):
		return fmt.Errorf("%w: %s must have at most 2 decimal places", ErrValidation, field)
	case d.GreaterThan(MaxMoney):
		return fmt.Errorf("%w: %s must be <= %s", ErrValidation, field, MaxMoney.StringFixed(2))
	}
	return nil
}

func ValidateSeatRef(id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: seat_id is required", ErrValidation)
	}
	return nil
}

// ValidateSeat checks a seat definition before it is stored.
func ValidateSeat(s Seat) error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: seat name is required", ErrValidation)
	}
	if s.PositionX < MinSeatPosition || s.PositionX > MaxSeatPosition ||
		s.PositionY < MinSeatPosition || s.PositionY > MaxSeatPosition {
		return fmt.Errorf("%w: seat position must be within %d..%d", ErrValidation, MinSeatPosition, MaxSeatPosition)
	}
	return nil
}
