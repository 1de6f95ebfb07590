package models

import (
	"database/sql"
	"time"
)

// Location mirrors a row of the locations table.
// Columns added by later schema checks are nullable on old rows.
type Location struct {
	ID                int64          `db:"id"`
	MinecraftUsername string         `db:"minecraft_username"`
	LocationName      string         `db:"location_name"`
	XCoord            int32          `db:"x_coord"`
	ZCoord            int32          `db:"z_coord"`
	Status            sql.NullString `db:"status"`
	CreatedAt         time.Time      `db:"created_at"`
	ModifiedAt        time.Time      `db:"modified_at"`
	ApprovedBy        sql.NullString `db:"approved_by"`
	DiscordUserID     sql.NullString `db:"discord_user_id"`
	DiscordUsername   sql.NullString `db:"discord_username"`
	MarkerID          sql.NullString `db:"marker_id"`
	Removed           sql.NullBool   `db:"removed"`
}
