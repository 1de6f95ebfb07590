package services

import (
	"context"

	"github.com/SscSPs/location_approval_bot/internal/core/domain"
)

// MarkerSyncSvc projects approved locations onto the live map through the remote console.
// Each call opens its own connection and sends exactly one command.
type MarkerSyncSvc interface {
	// AddMarker creates a marker and returns its id. If the console answered but no id
	// could be parsed, the error is an *apperrors.MarkerParseError.
	AddMarker(ctx context.Context, loc domain.Location) (string, error)

	// RemoveMarker deletes a marker. Any response that is not a transport error counts as success.
	RemoveMarker(ctx context.Context, markerID string) error

	// Ping sends a harmless command and returns the raw response.
	Ping(ctx context.Context) (string, error)
}
