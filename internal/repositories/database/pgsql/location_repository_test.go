package pgsql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/location_approval_bot/internal/apperrors"
	"github.com/SscSPs/location_approval_bot/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var locationColumnNames = []string{
	"id", "minecraft_username", "location_name", "x_coord", "z_coord", "status",
	"created_at", "modified_at", "approved_by", "discord_user_id", "discord_username", "marker_id", "removed",
}

type rowSpec struct {
	id       int64
	status   string
	approver any
	marker   any
	removed  bool
}

func locationRows(specs ...rowSpec) *pgxmock.Rows {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows(locationColumnNames)
	for _, s := range specs {
		rows.AddRow(s.id, "Notch", "Spawn Castle", int32(100), int32(-200), s.status,
			now, now, s.approver, "42", "steve", s.marker, s.removed)
	}
	return rows
}

func newMockLocationRepo(t *testing.T) (*PgxLocationRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return newPgxLocationRepository(mock), mock
}

func TestInsertLocation(t *testing.T) {
	repo, mock := newMockLocationRepo(t)
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO locations`).
		WithArgs("Notch", "Spawn Castle", int32(100), int32(-200), "pending", "42", "steve").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := repo.InsertLocation(ctx, domain.NewLocation{
		MinecraftUsername: "Notch",
		LocationName:      "Spawn Castle",
		XCoord:            100,
		ZCoord:            -200,
		DiscordUserID:     "42",
		DiscordUsername:   "steve",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertLocation_StoreError(t *testing.T) {
	repo, mock := newMockLocationRepo(t)

	mock.ExpectQuery(`INSERT INTO locations`).
		WithArgs("", "x", int32(0), int32(0), "pending", "", "").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.InsertLocation(context.Background(), domain.NewLocation{LocationName: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertThenFind_IsPendingWithoutMarker(t *testing.T) {
	repo, mock := newMockLocationRepo(t)
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO locations`).
		WithArgs("Notch", "Spawn Castle", int32(100), int32(-200), "pending", "", "").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery(`SELECT id, minecraft_username`).
		WithArgs(int64(1)).
		WillReturnRows(locationRows(rowSpec{id: 1, status: "pending", removed: false}))

	id, err := repo.InsertLocation(ctx, domain.NewLocation{MinecraftUsername: "Notch", LocationName: "Spawn Castle", XCoord: 100, ZCoord: -200})
	require.NoError(t, err)

	loc, err := repo.FindLocationByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, loc.Status)
	assert.Nil(t, loc.MarkerID)
	assert.False(t, loc.Removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindLocationByID_NotFound(t *testing.T) {
	repo, mock := newMockLocationRepo(t)

	mock.ExpectQuery(`SELECT id, minecraft_username`).WithArgs(int64(99)).WillReturnError(pgx.ErrNoRows)

	loc, err := repo.FindLocationByID(context.Background(), 99)

	assert.Nil(t, loc)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListLocationsByStatus(t *testing.T) {
	repo, mock := newMockLocationRepo(t)

	mock.ExpectQuery(`WHERE COALESCE\(status, 'pending'\) = \$1 ORDER BY id`).
		WithArgs("pending").
		WillReturnRows(locationRows(rowSpec{id: 1, status: "pending"}, rowSpec{id: 3, status: "pending"}))

	locs, err := repo.ListLocationsByStatus(context.Background(), domain.StatusPending)

	require.NoError(t, err)
	require.Len(t, locs, 2)
	assert.Equal(t, int64(1), locs[0].ID)
	assert.Equal(t, int64(3), locs[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListLocations_Empty(t *testing.T) {
	repo, mock := newMockLocationRepo(t)

	mock.ExpectQuery(`FROM locations ORDER BY id`).WillReturnRows(locationRows())

	locs, err := repo.ListLocations(context.Background())

	require.NoError(t, err)
	assert.Empty(t, locs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLocationStatus_Success(t *testing.T) {
	repo, mock := newMockLocationRepo(t)

	mock.ExpectQuery(`UPDATE locations\s+SET status = \$1, approved_by = \$2`).
		WithArgs("approved", "mod", int64(5)).
		WillReturnRows(locationRows(rowSpec{id: 5, status: "approved", approver: "mod"}))

	loc, err := repo.UpdateLocationStatus(context.Background(), 5, domain.StatusApproved, "mod")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, loc.Status)
	require.NotNil(t, loc.ApprovedBy)
	assert.Equal(t, "mod", *loc.ApprovedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLocationStatus_MissingID(t *testing.T) {
	repo, mock := newMockLocationRepo(t)

	mock.ExpectQuery(`UPDATE locations\s+SET status`).
		WithArgs("denied", "mod", int64(8)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`SELECT id, minecraft_username`).WithArgs(int64(8)).WillReturnError(pgx.ErrNoRows)

	_, err := repo.UpdateLocationStatus(context.Background(), 8, domain.StatusDenied, "mod")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLocationStatus_DeniedIsTerminal(t *testing.T) {
	repo, mock := newMockLocationRepo(t)

	mock.ExpectQuery(`UPDATE locations\s+SET status`).
		WithArgs("approved", "mod", int64(2)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`SELECT id, minecraft_username`).
		WithArgs(int64(2)).
		WillReturnRows(locationRows(rowSpec{id: 2, status: "denied", approver: "mod"}))

	_, err := repo.UpdateLocationStatus(context.Background(), 2, domain.StatusApproved, "mod")

	assert.ErrorIs(t, err, apperrors.ErrPrecondition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetMarkerID(t *testing.T) {
	repo, mock := newMockLocationRepo(t)

	mock.ExpectQuery(`SET marker_id = \$1`).
		WithArgs("marker_42", int64(5)).
		WillReturnRows(locationRows(rowSpec{id: 5, status: "approved", marker: "marker_42"}))

	loc, err := repo.SetMarkerID(context.Background(), 5, "marker_42")

	require.NoError(t, err)
	require.NotNil(t, loc.MarkerID)
	assert.Equal(t, "marker_42", *loc.MarkerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkLocationRemoved_KeepsMarker(t *testing.T) {
	repo, mock := newMockLocationRepo(t)

	mock.ExpectQuery(`SET removed = TRUE, modified_at = CURRENT_TIMESTAMP\s+WHERE id = \$1 AND COALESCE\(removed, FALSE\) = FALSE`).
		WithArgs(int64(5)).
		WillReturnRows(locationRows(rowSpec{id: 5, status: "approved", marker: "marker_42", removed: true}))

	loc, err := repo.MarkLocationRemoved(context.Background(), 5)

	require.NoError(t, err)
	assert.True(t, loc.Removed)
	assert.True(t, loc.HasMarker())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMapError_ForeignKey(t *testing.T) {
	err := mapError(&pgconn.PgError{Code: "23503"}, "insert audit")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = mapError(&pgconn.PgError{Code: "22003", Message: "integer out of range"}, "insert location")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestMarkLocationRemoved_AlreadyRemovedIsPrecondition(t *testing.T) {
	repo, mock := newMockLocationRepo(t)

	mock.ExpectQuery(`SET removed = TRUE`).
		WithArgs(int64(5)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`SELECT id, minecraft_username`).
		WithArgs(int64(5)).
		WillReturnRows(locationRows(rowSpec{id: 5, status: "approved", marker: "marker_42", removed: true}))

	loc, err := repo.MarkLocationRemoved(context.Background(), 5)

	assert.Nil(t, loc)
	assert.ErrorIs(t, err, apperrors.ErrPrecondition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkLocationRemoved_MissingID(t *testing.T) {
	repo, mock := newMockLocationRepo(t)

	mock.ExpectQuery(`SET removed = TRUE`).
		WithArgs(int64(9)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`SELECT id, minecraft_username`).
		WithArgs(int64(9)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.MarkLocationRemoved(context.Background(), 9)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
