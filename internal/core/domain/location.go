package domain

import (
	"time"

	"github.com/SscSPs/location_approval_bot/internal/apperrors"
)

// LocationStatus is the review decision recorded for a location.
type LocationStatus string

const (
	StatusPending  LocationStatus = "pending"
	StatusApproved LocationStatus = "approved"
	StatusDenied   LocationStatus = "denied"
)

// Location is a submitted point of interest and its review state.
// Removal is a soft-delete flag that sits beside Status, it never changes it.
type Location struct {
	ID                int64          `json:"id"`
	MinecraftUsername string         `json:"minecraftUsername"`
	LocationName      string         `json:"locationName"`
	XCoord            int            `json:"xCoord"`
	ZCoord            int            `json:"zCoord"`
	Status            LocationStatus `json:"status"`
	CreatedAt         time.Time      `json:"createdAt"`
	ModifiedAt        time.Time      `json:"modifiedAt"`
	ApprovedBy        *string        `json:"approvedBy,omitempty"` // set on approve and deny
	DiscordUserID     string         `json:"discordUserID"`
	DiscordUsername   string         `json:"discordUsername"`
	MarkerID          *string        `json:"markerID,omitempty"` // set only after a successful sync
	Removed           bool           `json:"removed"`
}

// HasMarker reports whether the location has a recorded map marker.
func (l Location) HasMarker() bool {
	return l.MarkerID != nil && *l.MarkerID != ""
}

// CanTransitionTo checks whether a review decision may be recorded.
// Denied is terminal. Approved may still be overwritten by a later deny.
func (l Location) CanTransitionTo(status LocationStatus) error {
	if l.Status == StatusDenied {
		return apperrors.NewPreconditionError("location has already been denied")
	}
	if l.Removed {
		return apperrors.NewPreconditionError("location has been removed")
	}
	if status != StatusApproved && status != StatusDenied {
		return apperrors.NewValidationFailedError("unknown status " + string(status))
	}
	return nil
}

// CheckRemovable checks the preconditions of a marker removal.
func (l Location) CheckRemovable() error {
	if l.Removed {
		return apperrors.NewPreconditionError("location has already been removed")
	}
	if !l.HasMarker() {
		return apperrors.NewPreconditionError("location doesn't have a marker ID, it may not have been approved yet")
	}
	return nil
}
