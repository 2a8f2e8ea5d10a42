package ledger

import (
	"sort"

	"github.com/google/uuid"
)

// SeatOccupancy pairs a seat with its count of unsettled orders.
type SeatOccupancy struct {
	Seat       Seat
	OpenOrders int
}

// Occupancy counts open orders per seat. It is derived fresh from the
// given order set and is advisory only.
func Occupancy(orders []Order) map[uuid.UUID]int {
	counts := make(map[uuid.UUID]int)
	for _, o := range orders {
		if o.Settled {
			continue
		}
		counts[o.SeatID]++
	}
	return counts
}

// OccupancyBySeat lists every seat with its open order count, sorted by
// seat name. Seats without open orders report zero.
func OccupancyBySeat(seats []Seat, orders []Order) []SeatOccupancy {
	counts := Occupancy(orders)
	out := make([]SeatOccupancy, len(seats))
	for i, s := range seats {
		out[i] = SeatOccupancy{Seat: s, OpenOrders: counts[s.ID]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Seat.Name < out[j].Seat.Name
	})
	return out
}
