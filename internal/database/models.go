package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	FullName       string    `json:"full_name"`
	HashedPassword string    `json:"hashed_password"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

type Seat struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	PositionX int32     `json:"position_x"`
	PositionY int32     `json:"position_y"`
	CreatedAt time.Time `json:"created_at"`
}

type MenuItem struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Price     pgtype.Numeric `json:"price"`
	CreatedAt time.Time      `json:"created_at"`
}

type Order struct {
	ID        uuid.UUID          `json:"id"`
	SeatID    uuid.UUID          `json:"seat_id"`
	Note      string             `json:"note"`
	Discount  pgtype.Numeric     `json:"discount"`
	Settled   bool               `json:"settled"`
	SettledAt pgtype.Timestamptz `json:"settled_at"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type LineItem struct {
	ID         uuid.UUID          `json:"id"`
	OrderID    uuid.UUID          `json:"order_id"`
	ItemID     uuid.UUID          `json:"item_id"`
	ItemName   string             `json:"item_name"`
	UnitPrice  pgtype.Numeric     `json:"unit_price"`
	Quantity   int32              `json:"quantity"`
	Percentage int32              `json:"percentage"`
	Sent       bool               `json:"sent"`
	SentAt     pgtype.Timestamptz `json:"sent_at"`
	CreatedAt  time.Time          `json:"created_at"`
}
