package models

import "time"

// AuditEntry mirrors a row of the audit_log table. Value snapshots are JSONB.
type AuditEntry struct {
	ID         int64     `db:"id"`
	LocationID int64     `db:"location_id"`
	ActionType string    `db:"action_type"`
	ModifiedBy string    `db:"modified_by"`
	ModifiedAt time.Time `db:"modified_at"`
	OldValues  []byte    `db:"old_values"`
	NewValues  []byte    `db:"new_values"`
}
