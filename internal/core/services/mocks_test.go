package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/location_approval_bot/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock LocationRepository ---
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) FindLocationByID(ctx context.Context, id int64) (*domain.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

func (m *MockLocationRepository) ListLocationsByStatus(ctx context.Context, status domain.LocationStatus) ([]domain.Location, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Location), args.Error(1)
}

func (m *MockLocationRepository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Location), args.Error(1)
}

func (m *MockLocationRepository) InsertLocation(ctx context.Context, loc domain.NewLocation) (int64, error) {
	args := m.Called(ctx, loc)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLocationRepository) UpdateLocationStatus(ctx context.Context, id int64, status domain.LocationStatus, actor string) (*domain.Location, error) {
	args := m.Called(ctx, id, status, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

func (m *MockLocationRepository) SetMarkerID(ctx context.Context, id int64, markerID string) (*domain.Location, error) {
	args := m.Called(ctx, id, markerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

func (m *MockLocationRepository) MarkLocationRemoved(ctx context.Context, id int64) (*domain.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

// --- Mock AuditRepository ---
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// --- Mock MarkerSync ---
type MockMarkerSync struct {
	mock.Mock
}

func (m *MockMarkerSync) AddMarker(ctx context.Context, loc domain.Location) (string, error) {
	args := m.Called(ctx, loc)
	return args.String(0), args.Error(1)
}

func (m *MockMarkerSync) RemoveMarker(ctx context.Context, markerID string) error {
	args := m.Called(ctx, markerID)
	return args.Error(0)
}

func (m *MockMarkerSync) Ping(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// --- Mock Messenger ---
type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) SendToChannel(ctx context.Context, channelID, content string) error {
	args := m.Called(ctx, channelID, content)
	return args.Error(0)
}

func (m *MockMessenger) SendToUser(ctx context.Context, userID, content string) error {
	args := m.Called(ctx, userID, content)
	return args.Error(0)
}

func (m *MockMessenger) Ask(ctx context.Context, requester domain.Requester, question string, timeout time.Duration) (string, error) {
	args := m.Called(ctx, requester, question, timeout)
	return args.String(0), args.Error(1)
}
