package ledger

import (
	"fmt"
	"time"
)

// allowedTransitions lists the states each state may move to.
// Settled has no entry: it is terminal.
var allowedTransitions = map[State][]State{
	StateOpen: {StateSettled},
}

// ValidateTransition checks if the transition from current to next is
// allowed. Staying in the same state is reported as noop so callers can
// treat repeated requests as success.
func ValidateTransition(current, next State) (noop bool, err error) {
	if current == next {
		return true, nil
	}
	for _, s := range allowedTransitions[current] {
		if s == next {
			return false, nil
		}
	}
	return false, fmt.Errorf("%w: cannot transition from %s to %s", ErrIllegalState, current, next)
}

// Settle applies the settle transition. Settling a settled order returns it
// unchanged with changed == false.
func Settle(o Order, at time.Time) (settled Order, changed bool, err error) {
	noop, err := ValidateTransition(o.State(), StateSettled)
	if err != nil {
		return o, false, err
	}
	if noop {
		return o, false, nil
	}
	at = at.UTC()
	o.Settled = true
	o.SettledAt = &at
	o.UpdatedAt = at
	return o, true, nil
}

// CheckEditable guards edit and addLineItem: the order must be open.
func CheckEditable(o Order) error {
	if o.Settled {
		return fmt.Errorf("%w: order %s is settled", ErrIllegalState, o.ID)
	}
	return nil
}

// CheckLineItemMutable guards removeLineItem and percentage changes: the
// owning order must be open and the item must not have been dispatched.
func CheckLineItemMutable(o Order, li LineItem) error {
	if err := CheckEditable(o); err != nil {
		return err
	}
	if li.Sent {
		return fmt.Errorf("%w: line item %s was already sent to the kitchen", ErrConflict, li.ID)
	}
	return nil
}

// CheckDeletable guards order deletion: only open orders without any
// dispatched line item may be deleted.
func CheckDeletable(o Order, sentItems int64) error {
	if o.Settled {
		return fmt.Errorf("%w: order %s is settled", ErrConflict, o.ID)
	}
	if sentItems > 0 {
		return fmt.Errorf("%w: order %s has %d line item(s) sent to the kitchen", ErrConflict, o.ID, sentItems)
	}
	return nil
}
