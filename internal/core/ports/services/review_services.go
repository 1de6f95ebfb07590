package services

import (
	"context"

	"github.com/SscSPs/location_approval_bot/internal/core/domain"
)

// ReviewReaderSvc defines read operations used by the administrative commands.
type ReviewReaderSvc interface {
	GetLocation(ctx context.Context, id int64) (*domain.Location, error)
	ListPending(ctx context.Context) ([]domain.Location, error)
	ListAll(ctx context.Context) ([]domain.Location, error)
}

// ReviewWorkflowSvc drives the review state machine.
// The workflow methods notify the submitter and the administrators themselves; the
// returned error is for the caller to report in the originating channel.
type ReviewWorkflowSvc interface {
	// Submit validates and persists a draft as a pending location.
	Submit(ctx context.Context, draft domain.LocationDraft) (*domain.Location, error)

	// Approve records the approval, then creates the map marker.
	// A failed or ambiguous sync leaves the location approved.
	Approve(ctx context.Context, id int64, actor string) (*ApproveResult, error)

	// Deny records a denial. No remote call is made.
	Deny(ctx context.Context, id int64, actor string) (*domain.Location, error)

	// Remove deletes the map marker and then flags the location removed.
	// A failed remote call leaves the location untouched.
	Remove(ctx context.Context, id int64, actor string) (*domain.Location, error)

	// TestConnection checks that the remote console answers.
	TestConnection(ctx context.Context) (string, error)
}

// ApproveResult reports the outcome of an approval and its marker sync.
// SyncErr is nil when the marker id was recorded.
type ApproveResult struct {
	Location *domain.Location
	MarkerID string
	SyncErr  error
}

// ReviewSvcFacade combines all review-related service interfaces.
type ReviewSvcFacade interface {
	ReviewReaderSvc
	ReviewWorkflowSvc
}

// IntakeSvc runs the interactive submission dialog.
type IntakeSvc interface {
	// Collect asks the four intake questions. It returns apperrors.ErrInputTimeout when the
	// requester stops answering and apperrors.ErrBusy when a dialog is already open.
	Collect(ctx context.Context, requester domain.Requester) (*domain.LocationDraft, error)
}
