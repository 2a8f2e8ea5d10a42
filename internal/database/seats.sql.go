package database

import (
	"context"

	"github.com/google/uuid"
)

const createSeat = `-- name: CreateSeat :one
INSERT INTO seats (name, position_x, position_y)
VALUES ($1, $2, $3)
ON CONFLICT (name) DO UPDATE SET position_x = EXCLUDED.position_x, position_y = EXCLUDED.position_y
RETURNING id, name, position_x, position_y, created_at
`

type CreateSeatParams struct {
	Name      string `json:"name"`
	PositionX int32  `json:"position_x"`
	PositionY int32  `json:"position_y"`
}

func (q *Queries) CreateSeat(ctx context.Context, arg CreateSeatParams) (Seat, error) {
	row := q.db.QueryRow(ctx, createSeat, arg.Name, arg.PositionX, arg.PositionY)
	var i Seat
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.PositionX,
		&i.PositionY,
		&i.CreatedAt,
	)
	return i, err
}

const getSeat = `-- name: GetSeat :one
SELECT id, name, position_x, position_y, created_at
FROM seats
WHERE id = $1
`

func (q *Queries) GetSeat(ctx context.Context, id uuid.UUID) (Seat, error) {
	row := q.db.QueryRow(ctx, getSeat, id)
	var i Seat
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.PositionX,
		&i.PositionY,
		&i.CreatedAt,
	)
	return i, err
}

const listSeats = `-- name: ListSeats :many
SELECT id, name, position_x, position_y, created_at
FROM seats
ORDER BY name
`

func (q *Queries) ListSeats(ctx context.Context) ([]Seat, error) {
	rows, err := q.db.Query(ctx, listSeats)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Seat{}
	for rows.Next() {
		var i Seat
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.PositionX,
			&i.PositionY,
			&i.CreatedAt,
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
