package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// LineTotalMode selects how a line's percentage enters the subtotal.
type LineTotalMode string

const (
	// LineTotalNet folds the percentage into the line total:
	// unitPrice x quantity x percentage / 100.
	LineTotalNet LineTotalMode = "net"

	// LineTotalGross ignores the percentage for billing:
	// unitPrice x quantity. The percentage is display-only.
	LineTotalGross LineTotalMode = "gross"
)

var hundred = decimal.NewFromInt(100)

// MaxMoney is the largest amount a NUMERIC(12,2) column holds.
var MaxMoney = decimal.RequireFromString("9999999999.99")

// ParseLineTotalMode accepts "net" or "gross" (case-insensitive). Empty
// input yields LineTotalNet.
func ParseLineTotalMode(s string) (LineTotalMode, error) {
	switch LineTotalMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", LineTotalNet:
		return LineTotalNet, nil
	case LineTotalGross:
		return LineTotalGross, nil
	}
	return "", fmt.Errorf("%w: unknown line total mode %q", ErrValidation, s)
}

// LineTotal computes one line's contribution to the subtotal, rounded to
// cents (half away from zero).
func LineTotal(unitPrice decimal.Decimal, quantity, percentage int32, mode LineTotalMode) decimal.Decimal {
	gross := unitPrice.Mul(decimal.NewFromInt32(quantity))
	if mode == LineTotalGross {
		return gross.Round(2)
	}
	return gross.Mul(decimal.NewFromInt32(percentage)).Div(hundred).Round(2)
}

// GrandTotal is subtotal minus the order discount. Over-discounting is
// passed through as a negative total.
func GrandTotal(subtotal, discount decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(discount)
}

// FormatMoney renders an amount with exactly two decimals, the wire format
// for every currency field.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// ParseMoney parses a non-negative currency amount from its string form.
// Amounts finer than a cent or above MaxMoney are rejected rather than
// rounded on store.
func ParseMoney(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s must be a decimal amount", ErrValidation, field)
	}
	if err := ValidateMoney(field, d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}
