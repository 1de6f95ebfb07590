package pgsql

import (
	portsrepo "github.com/SscSPs/location_approval_bot/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgx-backed repositories.
func NewRepositoryProvider(db DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LocationRepo: newPgxLocationRepository(db),
		AuditRepo:    newPgxAuditRepository(db),
	}
}
