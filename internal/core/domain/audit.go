package domain

import "time"

// AuditAction tags the kind of change recorded in an audit entry.
type AuditAction string

const (
	ActionApprove AuditAction = "APPROVE"
	ActionDeny    AuditAction = "DENY"
	ActionMarker  AuditAction = "MARKER"
	ActionRemove  AuditAction = "REMOVE"
)

// AuditEntry is an append-only record of a mutating action on a location.
type AuditEntry struct {
	ID         int64          `json:"id"`
	LocationID int64          `json:"locationID"`
	ActionType AuditAction    `json:"actionType"`
	ModifiedBy string         `json:"modifiedBy"`
	ModifiedAt time.Time      `json:"modifiedAt"`
	OldValues  map[string]any `json:"oldValues"`
	NewValues  map[string]any `json:"newValues"`
}
