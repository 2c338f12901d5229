package readstore

import (
	"context"
	"log/slog"

	"staybook/internal/domain/room"
	"staybook/internal/infra"
	"staybook/internal/infra/converter"
	"staybook/internal/infra/db"
	"staybook/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const roomByIDSQL = `
SELECT ` + converter.RoomColumns + `
FROM rooms r
JOIN properties p ON p.id = r.property_id
WHERE r.id = $1`

type RoomReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewRoomReadStore(dbtx db.DBTX, logger *slog.Logger) *RoomReadStore {
	return &RoomReadStore{db: dbtx, logger: logger}
}

func (r *RoomReadStore) RoomByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	row, err := converter.ScanRoom(r.db.QueryRow(ctx, roomByIDSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "room not found", err)
		}
		return nil, infra.WrapPgErr(r.logger, "failed to get room by id", err)
	}
	rm, err := row.ToDomain()
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to map room", err)
	}
	return rm, nil
}
