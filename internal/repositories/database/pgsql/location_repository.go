package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/location_approval_bot/internal/apperrors"
	"github.com/SscSPs/location_approval_bot/internal/core/domain"
	portsrepo "github.com/SscSPs/location_approval_bot/internal/core/ports/repositories"
	"github.com/SscSPs/location_approval_bot/internal/models"
	"github.com/SscSPs/location_approval_bot/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxLocationRepository struct {
	BaseRepository
}

// newPgxLocationRepository creates a new repository for location data.
func newPgxLocationRepository(db DB) *PgxLocationRepository {
	return &PgxLocationRepository{
		BaseRepository: BaseRepository{DB: db},
	}
}

// Ensure implementation matches interface
var _ portsrepo.LocationRepositoryFacade = (*PgxLocationRepository)(nil)

const locationColumns = `id, minecraft_username, location_name, x_coord, z_coord, status,
	created_at, modified_at, approved_by, discord_user_id, discord_username, marker_id, removed`

func scanLocation(row pgx.Row) (models.Location, error) {
	var m models.Location
	err := row.Scan(
		&m.ID,
		&m.MinecraftUsername,
		&m.LocationName,
		&m.XCoord,
		&m.ZCoord,
		&m.Status,
		&m.CreatedAt,
		&m.ModifiedAt,
		&m.ApprovedBy,
		&m.DiscordUserID,
		&m.DiscordUsername,
		&m.MarkerID,
		&m.Removed,
	)
	return m, err
}

// queryOne runs a single-row statement and maps the result.
func (r *PgxLocationRepository) queryOne(ctx context.Context, msg, query string, args ...any) (*domain.Location, error) {
	m, err := scanLocation(r.DB.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, msg)
	}
	loc := mapping.ToDomainLocation(m)
	return &loc, nil
}

func (r *PgxLocationRepository) queryMany(ctx context.Context, msg, query string, args ...any) ([]domain.Location, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, msg)
	}
	defer rows.Close()

	modelLocations, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Location, error) {
		return scanLocation(row)
	})
	if err != nil {
		return nil, mapError(err, msg)
	}
	return mapping.ToDomainLocationSlice(modelLocations), nil
}

// InsertLocation persists a validated location as pending and returns its id.
func (r *PgxLocationRepository) InsertLocation(ctx context.Context, loc domain.NewLocation) (int64, error) {
	query := `
		INSERT INTO locations (minecraft_username, location_name, x_coord, z_coord, status, discord_user_id, discord_username)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;
	`
	var id int64
	err := r.DB.QueryRow(ctx, query,
		loc.MinecraftUsername,
		loc.LocationName,
		int32(loc.XCoord),
		int32(loc.ZCoord),
		string(domain.StatusPending),
		loc.DiscordUserID,
		loc.DiscordUsername,
	).Scan(&id)
	if err != nil {
		return 0, mapError(err, "failed to insert location "+loc.LocationName)
	}
	return id, nil
}

// FindLocationByID retrieves a location by id.
func (r *PgxLocationRepository) FindLocationByID(ctx context.Context, id int64) (*domain.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = $1;`
	return r.queryOne(ctx, fmt.Sprintf("failed to find location %d", id), query, id)
}

// ListLocationsByStatus retrieves locations with a status, ordered by id.
func (r *PgxLocationRepository) ListLocationsByStatus(ctx context.Context, status domain.LocationStatus) ([]domain.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE COALESCE(status, 'pending') = $1 ORDER BY id;`
	return r.queryMany(ctx, "failed to list locations by status "+string(status), query, string(status))
}

// ListLocations retrieves all locations, ordered by id.
func (r *PgxLocationRepository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations ORDER BY id;`
	return r.queryMany(ctx, "failed to list locations", query)
}

// UpdateLocationStatus records a review decision in one statement.
// The WHERE clause keeps denied and removed rows untouched; when no row comes back
// the current row is read to tell a missing id from a refused transition.
func (r *PgxLocationRepository) UpdateLocationStatus(ctx context.Context, id int64, status domain.LocationStatus, actor string) (*domain.Location, error) {
	query := `
		UPDATE locations
		SET status = $1, approved_by = $2, modified_at = CURRENT_TIMESTAMP
		WHERE id = $3 AND COALESCE(status, 'pending') <> 'denied' AND COALESCE(removed, FALSE) = FALSE
		RETURNING ` + locationColumns + `;`

	loc, err := r.queryOne(ctx, fmt.Sprintf("failed to update status of location %d", id), query, string(status), actor, id)
	if err == nil {
		return loc, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	current, findErr := r.FindLocationByID(ctx, id)
	if findErr != nil {
		return nil, findErr
	}
	if terr := current.CanTransitionTo(status); terr != nil {
		return nil, terr
	}
	// The row changed between the two statements; report it as a refused transition.
	return nil, apperrors.NewPreconditionError(fmt.Sprintf("location %d changed concurrently", id))
}

// SetMarkerID stores the marker id of a location.
func (r *PgxLocationRepository) SetMarkerID(ctx context.Context, id int64, markerID string) (*domain.Location, error) {
	query := `
		UPDATE locations
		SET marker_id = $1, modified_at = CURRENT_TIMESTAMP
		WHERE id = $2
		RETURNING ` + locationColumns + `;`
	return r.queryOne(ctx, fmt.Sprintf("failed to set marker id of location %d", id), query, markerID, id)
}

// MarkLocationRemoved flips the soft-delete flag of a location.
// Only one caller wins the flip; the others get a precondition error.
func (r *PgxLocationRepository) MarkLocationRemoved(ctx context.Context, id int64) (*domain.Location, error) {
	query := `
		UPDATE locations
		SET removed = TRUE, modified_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND COALESCE(removed, FALSE) = FALSE
		RETURNING ` + locationColumns + `;`

	loc, err := r.queryOne(ctx, fmt.Sprintf("failed to mark location %d removed", id), query, id)
	if err == nil {
		return loc, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if _, findErr := r.FindLocationByID(ctx, id); findErr != nil {
		return nil, findErr
	}
	return nil, apperrors.NewPreconditionError("location has already been removed")
}
