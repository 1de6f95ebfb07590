package repositories

import (
	"context"

	"github.com/SscSPs/location_approval_bot/internal/core/domain"
)

// LocationReader defines read operations for location data.
type LocationReader interface {
	// FindLocationByID retrieves a location by id, apperrors.ErrNotFound if absent.
	FindLocationByID(ctx context.Context, id int64) (*domain.Location, error)

	// ListLocationsByStatus retrieves locations with the given status, ordered by id.
	ListLocationsByStatus(ctx context.Context, status domain.LocationStatus) ([]domain.Location, error)

	// ListLocations retrieves every location, ordered by id.
	ListLocations(ctx context.Context) ([]domain.Location, error)
}

// LocationWriter defines write operations for location data.
// Every method is a single-row, single-statement mutation returning the updated row.
type LocationWriter interface {
	// InsertLocation persists a new pending location and returns its id.
	InsertLocation(ctx context.Context, loc domain.NewLocation) (int64, error)

	// UpdateLocationStatus records a review decision. A denied or removed location is never updated.
	UpdateLocationStatus(ctx context.Context, id int64, status domain.LocationStatus, actor string) (*domain.Location, error)

	// SetMarkerID stores the map marker id. It does not check the status.
	SetMarkerID(ctx context.Context, id int64, markerID string) (*domain.Location, error)

	// MarkLocationRemoved flips the soft-delete flag. marker_id is kept.
	MarkLocationRemoved(ctx context.Context, id int64) (*domain.Location, error)
}

// LocationRepositoryFacade combines all location-related repository interfaces.
type LocationRepositoryFacade interface {
	LocationReader
	LocationWriter
}
