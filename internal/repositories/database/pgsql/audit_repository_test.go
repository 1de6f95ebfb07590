package pgsql

import (
	"context"
	"testing"

	"github.com/SscSPs/location_approval_bot/internal/core/domain"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAuditEntry(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := newPgxAuditRepository(mock)

	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs(int64(5), "REMOVE", "mod", []byte(`{"removed":false}`), []byte(`{"removed":true}`)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.AppendAuditEntry(context.Background(), domain.AuditEntry{
		LocationID: 5,
		ActionType: domain.ActionRemove,
		ModifiedBy: "mod",
		OldValues:  map[string]any{"removed": false},
		NewValues:  map[string]any{"removed": true},
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
