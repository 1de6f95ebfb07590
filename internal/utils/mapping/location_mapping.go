package mapping

import (
	"database/sql"

	"github.com/SscSPs/location_approval_bot/internal/core/domain"
	"github.com/SscSPs/location_approval_bot/internal/models"
)

// ToDomainLocation converts a model Location to a domain Location.
// A NULL status reads as pending and a NULL removed flag as false, matching the column defaults.
func ToDomainLocation(m models.Location) domain.Location {
	status := domain.StatusPending
	if m.Status.Valid && m.Status.String != "" {
		status = domain.LocationStatus(m.Status.String)
	}
	return domain.Location{
		ID:                m.ID,
		MinecraftUsername: m.MinecraftUsername,
		LocationName:      m.LocationName,
		XCoord:            int(m.XCoord),
		ZCoord:            int(m.ZCoord),
		Status:            status,
		CreatedAt:         m.CreatedAt,
		ModifiedAt:        m.ModifiedAt,
		ApprovedBy:        nullStringPtr(m.ApprovedBy),
		DiscordUserID:     m.DiscordUserID.String,
		DiscordUsername:   m.DiscordUsername.String,
		MarkerID:          nullStringPtr(m.MarkerID),
		Removed:           m.Removed.Valid && m.Removed.Bool,
	}
}

// ToDomainLocationSlice converts a slice of model Locations to domain Locations.
func ToDomainLocationSlice(ms []models.Location) []domain.Location {
	ds := make([]domain.Location, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLocation(m)
	}
	return ds
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
