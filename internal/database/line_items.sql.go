package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const lineItemColumns = `id, order_id, item_id, item_name, unit_price, quantity, percentage, sent, sent_at, created_at`

func scanLineItem(row interface{ Scan(...any) error }) (LineItem, error) {
	var i LineItem
	err := row.Scan(
		&i.ID,
		&i.OrderID,
		&i.ItemID,
		&i.ItemName,
		&i.UnitPrice,
		&i.Quantity,
		&i.Percentage,
		&i.Sent,
		&i.SentAt,
		&i.CreatedAt,
	)
	return i, err
}

const createLineItem = `-- name: CreateLineItem :one
INSERT INTO line_items (order_id, item_id, item_name, unit_price, quantity, percentage)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + lineItemColumns

type CreateLineItemParams struct {
	OrderID    uuid.UUID      `json:"order_id"`
	ItemID     uuid.UUID      `json:"item_id"`
	ItemName   string         `json:"item_name"`
	UnitPrice  pgtype.Numeric `json:"unit_price"`
	Quantity   int32          `json:"quantity"`
	Percentage int32          `json:"percentage"`
}

func (q *Queries) CreateLineItem(ctx context.Context, arg CreateLineItemParams) (LineItem, error) {
	return scanLineItem(q.db.QueryRow(ctx, createLineItem,
		arg.OrderID,
		arg.ItemID,
		arg.ItemName,
		arg.UnitPrice,
		arg.Quantity,
		arg.Percentage,
	))
}

const getLineItem = `-- name: GetLineItem :one
SELECT ` + lineItemColumns + `
FROM line_items
WHERE id = $1
`

func (q *Queries) GetLineItem(ctx context.Context, id uuid.UUID) (LineItem, error) {
	return scanLineItem(q.db.QueryRow(ctx, getLineItem, id))
}

const getLineItemForUpdate = `-- name: GetLineItemForUpdate :one
SELECT ` + lineItemColumns + `
FROM line_items
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetLineItemForUpdate(ctx context.Context, id uuid.UUID) (LineItem, error) {
	return scanLineItem(q.db.QueryRow(ctx, getLineItemForUpdate, id))
}

const listLineItemsByOrder = `-- name: ListLineItemsByOrder :many
SELECT ` + lineItemColumns + `
FROM line_items
WHERE order_id = $1
ORDER BY created_at, id
`

func (q *Queries) ListLineItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]LineItem, error) {
	rows, err := q.db.Query(ctx, listLineItemsByOrder, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []LineItem{}
	for rows.Next() {
		i, err := scanLineItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateLineItemPercentage = `-- name: UpdateLineItemPercentage :one
UPDATE line_items
SET percentage = $2
WHERE id = $1 AND NOT sent
RETURNING ` + lineItemColumns

type UpdateLineItemPercentageParams struct {
	ID         uuid.UUID `json:"id"`
	Percentage int32     `json:"percentage"`
}

func (q *Queries) UpdateLineItemPercentage(ctx context.Context, arg UpdateLineItemPercentageParams) (LineItem, error) {
	return scanLineItem(q.db.QueryRow(ctx, updateLineItemPercentage, arg.ID, arg.Percentage))
}

const deleteLineItem = `-- name: DeleteLineItem :execrows
DELETE FROM line_items
WHERE id = $1 AND NOT sent
`

func (q *Queries) DeleteLineItem(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.Exec(ctx, deleteLineItem, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const markLineItemSent = `-- name: MarkLineItemSent :one
UPDATE line_items
SET sent = true, sent_at = now()
WHERE id = $1 AND NOT sent
RETURNING ` + lineItemColumns

// MarkLineItemSent flips the dispatch flag in one statement. It returns
// pgx.ErrNoRows when the item is missing or already sent.
func (q *Queries) MarkLineItemSent(ctx context.Context, id uuid.UUID) (LineItem, error) {
	return scanLineItem(q.db.QueryRow(ctx, markLineItemSent, id))
}

const countSentLineItems = `-- name: CountSentLineItems :one
SELECT count(*) FROM line_items
WHERE order_id = $1 AND sent
`

func (q *Queries) CountSentLineItems(ctx context.Context, orderID uuid.UUID) (int64, error) {
	row := q.db.QueryRow(ctx, countSentLineItems, orderID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const listDispatchItemsBetween = `-- name: ListDispatchItemsBetween :many
SELECT li.id, li.order_id, o.seat_id, s.name AS seat_name, li.item_name, li.quantity,
       o.note, o.created_at AS order_created_at, li.created_at, li.sent
FROM line_items li
JOIN orders o ON o.id = li.order_id
JOIN seats s ON s.id = o.seat_id
WHERE o.created_at >= $1 AND o.created_at < $2
ORDER BY o.created_at, li.created_at, li.id
`

type ListDispatchItemsBetweenParams struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type ListDispatchItemsBetweenRow struct {
	ID             uuid.UUID `json:"id"`
	OrderID        uuid.UUID `json:"order_id"`
	SeatID         uuid.UUID `json:"seat_id"`
	SeatName       string    `json:"seat_name"`
	ItemName       string    `json:"item_name"`
	Quantity       int32     `json:"quantity"`
	Note           string    `json:"note"`
	OrderCreatedAt time.Time `json:"order_created_at"`
	CreatedAt      time.Time `json:"created_at"`
	Sent           bool      `json:"sent"`
}

func (q *Queries) ListDispatchItemsBetween(ctx context.Context, arg ListDispatchItemsBetweenParams) ([]ListDispatchItemsBetweenRow, error) {
	rows, err := q.db.Query(ctx, listDispatchItemsBetween, arg.Start, arg.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListDispatchItemsBetweenRow{}
	for rows.Next() {
		var i ListDispatchItemsBetweenRow
		if err := rows.Scan(
			&i.ID,
			&i.OrderID,
			&i.SeatID,
			&i.SeatName,
			&i.ItemName,
			&i.Quantity,
			&i.Note,
			&i.OrderCreatedAt,
			&i.CreatedAt,
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
