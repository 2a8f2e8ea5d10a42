package enum

// ── Group A: State machines ──

const (
	OrderStateOpen    = "OPEN"
	OrderStateSettled = "SETTLED"
)

const (
	DispatchStatusPending = "PENDING"
	DispatchStatusUrgent  = "URGENT"
	DispatchStatusDone    = "DONE"
)

// ── Group C: Borderline (CHECK constrained in DB) ──

const (
	UserRoleManager = "MANAGER"
	UserRoleCashier = "CASHIER"
	UserRoleKitchen = "KITCHEN"
)

// ── Group B: Configurable labels (no DB constraint) ──

// WebSocket rooms. Front-of-house terminals join floor, kitchen displays
// join kitchen.
const (
	RoomFloor   = "floor"
	RoomKitchen = "kitchen"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderUpdated       = "order.updated"
	EventOrderSettled       = "order.settled"
	EventOrderDeleted       = "order.deleted"
	EventLineItemAdded      = "line_item.added"
	EventLineItemUpdated    = "line_item.updated"
	EventLineItemRemoved    = "line_item.removed"
	EventLineItemDispatched = "line_item.dispatched"
)

// IsValidRole reports whether role is one of the staff roles.
func IsValidRole(role string) bool {
	switch role {
	case UserRoleManager, UserRoleCashier, UserRoleKitchen:
		return true
	}
	return false
}

// IsValidRoom reports whether room is a known WebSocket room.
func IsValidRoom(room string) bool {
	return room == RoomFloor || room == RoomKitchen
}
