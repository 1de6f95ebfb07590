package pgsql

import (
	"context"
	"io"
	"log/slog"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSchema_AddsOnlyMissingColumns(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	manager := NewSchemaManager(mock, slog.New(slog.NewTextHandler(io.Discard, nil)))

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS locations`).WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	for _, c := range additiveColumns {
		exists := c.Column != "discord_username"
		mock.ExpectQuery(`information_schema.columns WHERE table_schema = current_schema\(\) AND table_name = \$1`).
			WithArgs(c.Table, c.Column).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(exists))
		if !exists {
			mock.ExpectExec(`ALTER TABLE locations ADD COLUMN discord_username VARCHAR\(255\)`).
				WillReturnResult(pgxmock.NewResult("ALTER TABLE", 0))
		}
	}
	mock.ExpectCommit()

	added, err := manager.EnsureSchema(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"locations.discord_username"}, added)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema_RollsBackOnFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	manager := NewSchemaManager(mock, slog.New(slog.NewTextHandler(io.Discard, nil)))

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS locations`).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err = manager.EnsureSchema(context.Background())

	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
