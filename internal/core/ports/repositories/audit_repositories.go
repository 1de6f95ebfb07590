package repositories

import (
	"context"

	"github.com/SscSPs/location_approval_bot/internal/core/domain"
)

// AuditWriter appends audit entries. Entries are never updated or deleted.
type AuditWriter interface {
	AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error
}

// AuditRepositoryFacade combines the audit repository interfaces.
// The trail is write-only from the bot; it is read with SQL.
type AuditRepositoryFacade interface {
	AuditWriter
}
