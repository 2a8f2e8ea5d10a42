package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const orderColumns = `id, seat_id, note, discount, settled, settled_at, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (Order, error) {
	var i Order
	err := row.Scan(
		&i.ID,
		&i.SeatID,
		&i.Note,
		&i.Discount,
		&i.Settled,
		&i.SettledAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createOrder = `-- name: CreateOrder :one
INSERT INTO orders (seat_id, note, discount)
VALUES ($1, $2, $3)
RETURNING ` + orderColumns

type CreateOrderParams struct {
	SeatID   uuid.UUID      `json:"seat_id"`
	Note     string         `json:"note"`
	Discount pgtype.Numeric `json:"discount"`
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	return scanOrder(q.db.QueryRow(ctx, createOrder, arg.SeatID, arg.Note, arg.Discount))
}

const getOrder = `-- name: GetOrder :one
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1
`

func (q *Queries) GetOrder(ctx context.Context, id uuid.UUID) (Order, error) {
	return scanOrder(q.db.QueryRow(ctx, getOrder, id))
}

const getOrderForUpdate = `-- name: GetOrderForUpdate :one
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1
FOR UPDATE
`

// GetOrderForUpdate locks the order row until the surrounding transaction
// ends. Settle, edit and line item changes serialize on this lock.
func (q *Queries) GetOrderForUpdate(ctx context.Context, id uuid.UUID) (Order, error) {
	return scanOrder(q.db.QueryRow(ctx, getOrderForUpdate, id))
}

const updateOrder = `-- name: UpdateOrder :one
UPDATE orders
SET seat_id = $2, note = $3, discount = $4, updated_at = now()
WHERE id = $1 AND NOT settled
RETURNING ` + orderColumns

type UpdateOrderParams struct {
	ID       uuid.UUID      `json:"id"`
	SeatID   uuid.UUID      `json:"seat_id"`
	Note     string         `json:"note"`
	Discount pgtype.Numeric `json:"discount"`
}

func (q *Queries) UpdateOrder(ctx context.Context, arg UpdateOrderParams) (Order, error) {
	return scanOrder(q.db.QueryRow(ctx, updateOrder, arg.ID, arg.SeatID, arg.Note, arg.Discount))
}

const settleOrder = `-- name: SettleOrder :one
UPDATE orders
SET settled = true, settled_at = now(), updated_at = now()
WHERE id = $1 AND NOT settled
RETURNING ` + orderColumns

// SettleOrder returns pgx.ErrNoRows when the order is missing or already
// settled.
func (q *Queries) SettleOrder(ctx context.Context, id uuid.UUID) (Order, error) {
	return scanOrder(q.db.QueryRow(ctx, settleOrder, id))
}

const touchOrder = `-- name: TouchOrder :exec
UPDATE orders SET updated_at = now() WHERE id = $1
`

func (q *Queries) TouchOrder(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, touchOrder, id)
	return err
}

const deleteOrder = `-- name: DeleteOrder :execrows
DELETE FROM orders o
WHERE o.id = $1
  AND NOT o.settled
  AND NOT EXISTS (SELECT 1 FROM line_items li WHERE li.order_id = o.id AND li.sent)
`

// DeleteOrder removes an open order with no dispatched line items. Zero
// rows affected means the order is missing or guarded.
func (q *Queries) DeleteOrder(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.Exec(ctx, deleteOrder, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listOrders = `-- name: ListOrders :many
SELECT o.id, o.seat_id, s.name AS seat_name, o.note, o.discount, o.settled, o.settled_at, o.created_at, o.updated_at
FROM orders o
JOIN seats s ON s.id = o.seat_id
WHERE ($1::boolean IS NULL OR o.settled = $1)
  AND ($2::uuid IS NULL OR o.seat_id = $2)
  AND ($3::timestamptz IS NULL OR o.created_at >= $3)
  AND ($4::timestamptz IS NULL OR o.created_at < $4)
ORDER BY o.created_at, o.id
`

type ListOrdersParams struct {
	Settled     pgtype.Bool        `json:"settled"`
	SeatID      pgtype.UUID        `json:"seat_id"`
	CreatedFrom pgtype.Timestamptz `json:"created_from"`
	CreatedTo   pgtype.Timestamptz `json:"created_to"`
}

type ListOrdersRow struct {
	ID        uuid.UUID          `json:"id"`
	SeatID    uuid.UUID          `json:"seat_id"`
	SeatName  string             `json:"seat_name"`
	Note      string             `json:"note"`
	Discount  pgtype.Numeric     `json:"discount"`
	Settled   bool               `json:"settled"`
	SettledAt pgtype.Timestamptz `json:"settled_at"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (q *Queries) ListOrders(ctx context.Context, arg ListOrdersParams) ([]ListOrdersRow, error) {
	rows, err := q.db.Query(ctx, listOrders,
		arg.Settled,
		arg.SeatID,
		arg.CreatedFrom,
		arg.CreatedTo,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListOrdersRow{}
	for rows.Next() {
		var i ListOrdersRow
		if err := rows.Scan(
			&i.ID,
			&i.SeatID,
			&i.SeatName,
			&i.Note,
			&i.Discount,
			&i.Settled,
			&i.SettledAt,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listLedgerRows = `-- name: ListLedgerRows :many
SELECT o.id, o.seat_id, s.name AS seat_name, o.note, o.discount, o.settled, o.created_at,
       li.id AS line_item_id, li.item_name, li.unit_price, li.quantity, li.percentage, li.sent
FROM orders o
JOIN seats s ON s.id = o.seat_id
LEFT JOIN line_items li ON li.order_id = o.id
WHERE ($1::uuid IS NULL OR o.id = $1)
  AND ($2::boolean IS NULL OR o.settled = $2)
  AND ($3::uuid IS NULL OR o.seat_id = $3)
  AND ($4::timestamptz IS NULL OR o.created_at >= $4)
  AND ($5::timestamptz IS NULL OR o.created_at < $5)
ORDER BY o.created_at, o.id, li.created_at, li.id
`

type ListLedgerRowsParams struct {
	OrderID     pgtype.UUID        `json:"order_id"`
	Settled     pgtype.Bool        `json:"settled"`
	SeatID      pgtype.UUID        `json:"seat_id"`
	CreatedFrom pgtype.Timestamptz `json:"created_from"`
	CreatedTo   pgtype.Timestamptz `json:"created_to"`
}

// ListLedgerRowsRow is one order LEFT JOIN line item. Orders without line
// items produce a single row with every line item column NULL.
type ListLedgerRowsRow struct {
	ID         uuid.UUID      `json:"id"`
	SeatID     uuid.UUID      `json:"seat_id"`
	SeatName   string         `json:"seat_name"`
	Note       string         `json:"note"`
	Discount   pgtype.Numeric `json:"discount"`
	Settled    bool           `json:"settled"`
	CreatedAt  time.Time      `json:"created_at"`
	LineItemID pgtype.UUID    `json:"line_item_id"`
	ItemName   pgtype.Text    `json:"item_name"`
	UnitPrice  pgtype.Numeric `json:"unit_price"`
	Quantity   pgtype.Int4    `json:"quantity"`
	Percentage pgtype.Int4    `json:"percentage"`
	Sent       pgtype.Bool    `json:"sent"`
}

func (q *Queries) ListLedgerRows(ctx context.Context, arg ListLedgerRowsParams) ([]ListLedgerRowsRow, error) {
	rows, err := q.db.Query(ctx, listLedgerRows,
		arg.OrderID,
		arg.Settled,
		arg.SeatID,
		arg.CreatedFrom,
		arg.CreatedTo,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListLedgerRowsRow{}
	for rows.Next() {
		var i ListLedgerRowsRow
		if err := rows.Scan(
			&i.ID,
			&i.SeatID,
			&i.SeatName,
			&i.Note,
			&i.Discount,
			&i.Settled,
			&i.CreatedAt,
			&i.LineItemID,
			&i.ItemName,
			&i.UnitPrice,
			&i.Quantity,
			&i.Percentage,
			&i.Sent,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
