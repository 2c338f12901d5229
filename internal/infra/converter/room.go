package converter

import (
	"staybook/internal/domain/room"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const RoomColumns = `r.id, r.property_id, r.base_price, r.capacity, p.timezone`

type RoomRow struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	BasePrice  int64
	Capacity   int32
	TimeZone   string
}

func ScanRoom(row pgx.Row) (RoomRow, error) {
	var r RoomRow
	err := row.Scan(&r.ID, &r.PropertyID, &r.BasePrice, &r.Capacity, &r.TimeZone)
	return r, err
}

func (r RoomRow) ToDomain() (*room.Room, error) {
	return room.NewRoom(r.ID, r.PropertyID, r.BasePrice, int(r.Capacity), r.TimeZone)
}
