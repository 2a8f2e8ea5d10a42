package ledger

import "errors"

// Error taxonomy shared by the aggregator, the settlement guards and the
// service layer. Callers match with errors.Is; the concrete message carries
// the offending ids.
var (
	// ErrIllegalState is returned when mutating a settled order.
	ErrIllegalState = errors.New("illegal state")

	// ErrConflict is returned when deleting or changing an order or line
	// item that the kitchen already has a dispatch record for.
	ErrConflict = errors.New("conflict")

	// ErrOrphanLineItem is returned when a line item row references an
	// order id that no row introduces.
	ErrOrphanLineItem = errors.New("orphan line item")

	// ErrValidation covers malformed input: non-positive quantity,
	// percentage outside 0-100, negative discount, missing seat.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when the referenced order, line item, seat
	// or menu item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable wraps store/network failures. It is never
	// swallowed; the original driver error stays reachable via errors.Is/As.
	ErrStoreUnavailable = errors.New("store unavailable")
)
