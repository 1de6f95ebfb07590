package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/location_approval_bot/internal/core/domain"
	portsrepo "github.com/SscSPs/location_approval_bot/internal/core/ports/repositories"
	"github.com/SscSPs/location_approval_bot/internal/utils/mapping"
)

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(db DB) *PgxAuditRepository {
	return &PgxAuditRepository{
		BaseRepository: BaseRepository{DB: db},
	}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

// AppendAuditEntry inserts an audit entry. modified_at is taken from the database clock.
func (r *PgxAuditRepository) AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	m, err := mapping.ToModelAuditEntry(entry)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO audit_log (location_id, action_type, modified_by, old_values, new_values)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err = r.DB.Exec(ctx, query,
		m.LocationID,
		m.ActionType,
		m.ModifiedBy,
		m.OldValues,
		m.NewValues,
	)
	if err != nil {
		return mapError(err, fmt.Sprintf("failed to append %s audit entry for location %d", m.ActionType, m.LocationID))
	}
	return nil
}
