package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/location_approval_bot/internal/core/domain"
	"github.com/SscSPs/location_approval_bot/internal/models"
)

// ToModelAuditEntry converts a domain AuditEntry to a model AuditEntry, encoding the snapshots.
func ToModelAuditEntry(d domain.AuditEntry) (models.AuditEntry, error) {
	oldValues, err := json.Marshal(d.OldValues)
	if err != nil {
		return models.AuditEntry{}, fmt.Errorf("failed to encode old values: %w", err)
	}
	newValues, err := json.Marshal(d.NewValues)
	if err != nil {
		return models.AuditEntry{}, fmt.Errorf("failed to encode new values: %w", err)
	}
	return models.AuditEntry{
		ID:         d.ID,
		LocationID: d.LocationID,
		ActionType: string(d.ActionType),
		ModifiedBy: d.ModifiedBy,
		ModifiedAt: d.ModifiedAt,
		OldValues:  oldValues,
		NewValues:  newValues,
	}, nil
}
