package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/location_approval_bot/internal/apperrors"
	"github.com/SscSPs/location_approval_bot/internal/core/domain"
	portsrepo "github.com/SscSPs/location_approval_bot/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/location_approval_bot/internal/core/ports/services"
	"github.com/SscSPs/location_approval_bot/internal/metrics"
)

// reviewService implements the ReviewSvcFacade interface
type reviewService struct {
	BaseService
	locationRepo   portsrepo.LocationRepositoryFacade
	auditRepo      portsrepo.AuditWriter
	markers        portssvc.MarkerSyncSvc
	notifier       portssvc.Notifier
	adminChannelID string
}

// ReviewOption is a functional option for configuring the review service
type ReviewOption func(*reviewService)

// WithReviewMetrics records workflow transitions.
func WithReviewMetrics(m *metrics.Metrics) ReviewOption {
	return func(s *reviewService) {
		s.Metrics = m
	}
}

// NewReviewService creates the review workflow service. Administrator notifications
// go to adminChannelID.
func NewReviewService(
	repos portsrepo.RepositoryProvider,
	markers portssvc.MarkerSyncSvc,
	notifier portssvc.Notifier,
	adminChannelID string,
	options ...ReviewOption,
) portssvc.ReviewSvcFacade {
	svc := &reviewService{
		locationRepo:   repos.LocationRepo,
		auditRepo:      repos.AuditRepo,
		markers:        markers,
		notifier:       notifier,
		adminChannelID: adminChannelID,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure reviewService implements the ReviewSvcFacade interface
var _ portssvc.ReviewSvcFacade = (*reviewService)(nil)

func (s *reviewService) GetLocation(ctx context.Context, id int64) (*domain.Location, error) {
	loc, err := s.locationRepo.FindLocationByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get location", slog.Int64("location_id", id))
		}
		return nil, err
	}
	return loc, nil
}

func (s *reviewService) ListPending(ctx context.Context) ([]domain.Location, error) {
	locs, err := s.locationRepo.ListLocationsByStatus(ctx, domain.StatusPending)
	if err != nil {
		s.LogError(ctx, err, "Failed to list pending locations")
		return nil, err
	}
	return locs, nil
}

func (s *reviewService) ListAll(ctx context.Context) ([]domain.Location, error) {
	locs, err := s.locationRepo.ListLocations(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list locations")
		return nil, err
	}
	return locs, nil
}

func (s *reviewService) Submit(ctx context.Context, draft domain.LocationDraft) (*domain.Location, error) {
	newLoc, err := draft.Validate()
	if err != nil {
		s.Metrics.IncTransition("submit", "invalid")
		s.LogInfo(ctx, "Rejected invalid submission",
			slog.String("user_id", draft.Submitter.UserID),
			slog.String("reason", err.Error()))
		return nil, err
	}

	id, err := s.locationRepo.InsertLocation(ctx, newLoc)
	if err != nil {
		s.Metrics.IncTransition("submit", "error")
		s.LogError(ctx, err, "Failed to insert location", slog.String("user_id", draft.Submitter.UserID))
		return nil, fmt.Errorf("failed to submit location: %w", err)
	}
	s.Metrics.IncTransition("submit", "ok")

	now := time.Now().UTC()
	loc := &domain.Location{
		ID:                id,
		MinecraftUsername: newLoc.MinecraftUsername,
		LocationName:      newLoc.LocationName,
		XCoord:            newLoc.XCoord,
		ZCoord:            newLoc.ZCoord,
		Status:            domain.StatusPending,
		CreatedAt:         now,
		ModifiedAt:        now,
		DiscordUserID:     newLoc.DiscordUserID,
		DiscordUsername:   newLoc.DiscordUsername,
	}
	s.LogInfo(ctx, "Location submitted", slog.Int64("location_id", id))

	s.notifySubmitter(ctx, loc, fmt.Sprintf("Thank you! Your location %q has been submitted for approval.", loc.LocationName))
	s.notifyAdmins(ctx, fmt.Sprintf(
		"New location submitted:\nDiscord User: %s\nMinecraft User: %s\nLocation: %s\nCoordinates: %d, %d\nID: %d",
		loc.DiscordUsername, loc.MinecraftUsername, loc.LocationName, loc.XCoord, loc.ZCoord, loc.ID))

	return loc, nil
}

// Approve flips the status first and syncs the marker second. A sync failure is
// reported but never rolls the approval back.
func (s *reviewService) Approve(ctx context.Context, id int64, actor string) (*portssvc.ApproveResult, error) {
	prev, loc, err := s.decide(ctx, id, domain.StatusApproved, actor, domain.ActionApprove)
	if err != nil {
		return nil, err
	}
	s.notifyAdmins(ctx, fmt.Sprintf("Location %s (ID: %d) has been approved.", loc.LocationName, loc.ID))

	result := &portssvc.ApproveResult{Location: loc}
	if prev.HasMarker() {
		// re-approval of an already synced location
		result.MarkerID = *prev.MarkerID
		s.notifyAdmins(ctx, fmt.Sprintf("Location %s (ID: %d) already has Marker ID: %s", loc.LocationName, loc.ID, result.MarkerID))
		return result, nil
	}

	if prev.Status == domain.StatusApproved {
		s.notifyAdmins(ctx, fmt.Sprintf(
			"Location %s (ID: %d) was already approved without a recorded marker. A marker may already be on the map, so this can create a duplicate.",
			loc.LocationName, loc.ID))
	}

	s.LogDebug(ctx, "Adding marker", slog.Int64("location_id", id), slog.String("location_name", loc.LocationName))
	markerID, err := s.markers.AddMarker(ctx, *loc)
	if err != nil {
		result.SyncErr = err
		var parseErr *apperrors.MarkerParseError
		if errors.As(err, &parseErr) {
			s.Metrics.IncTransition("marker", "parse_error")
			s.GetLogger(ctx).Warn("Marker may exist but its id could not be parsed",
				slog.Int64("location_id", id),
				slog.String("response", parseErr.Response))
			s.notifyAdmins(ctx, fmt.Sprintf("Marker added to Dynmap for %s, but couldn't extract marker ID.", loc.LocationName))
			return result, nil
		}
		s.Metrics.IncTransition("marker", "error")
		s.LogError(ctx, err, "Failed to add marker", slog.Int64("location_id", id))
		s.notifyAdmins(ctx, fmt.Sprintf("Error adding marker to Dynmap for %s. The location stays approved without a marker.", loc.LocationName))
		return result, nil
	}

	updated, err := s.locationRepo.SetMarkerID(ctx, id, markerID)
	if err != nil {
		result.SyncErr = err
		s.Metrics.IncTransition("marker", "error")
		s.LogError(ctx, err, "Failed to save marker id",
			slog.Int64("location_id", id),
			slog.String("marker_id", markerID))
		s.notifyAdmins(ctx, fmt.Sprintf("Marker added to Dynmap for %s, but failed to save Marker ID in database. Marker ID: %s", loc.LocationName, markerID))
		return result, nil
	}
	s.Metrics.IncTransition("marker", "ok")
	s.appendAudit(ctx, id, domain.ActionMarker, actor,
		map[string]any{"marker_id": nil},
		map[string]any{"marker_id": markerID})

	result.Location = updated
	result.MarkerID = markerID
	s.notifyAdmins(ctx, fmt.Sprintf("Marker added to Dynmap for %s. Marker ID: %s", loc.LocationName, markerID))
	s.notifySubmitter(ctx, updated, fmt.Sprintf("Your location %q has been approved and added to the map!", loc.LocationName))
	return result, nil
}

func (s *reviewService) Deny(ctx context.Context, id int64, actor string) (*domain.Location, error) {
	prev, loc, err := s.decide(ctx, id, domain.StatusDenied, actor, domain.ActionDeny)
	if err != nil {
		return nil, err
	}
	s.notifyAdmins(ctx, fmt.Sprintf("Location %s (ID: %d) has been denied.", loc.LocationName, loc.ID))
	if prev.HasMarker() {
		s.notifyAdmins(ctx, fmt.Sprintf("Marker %s is still on the map. Use !remove %d to delete it.", *prev.MarkerID, loc.ID))
	}
	s.notifySubmitter(ctx, loc, fmt.Sprintf("Your location %q was not approved.", loc.LocationName))
	return loc, nil
}

// Remove deletes the marker first. Local state only changes after the console accepted the deletion.
func (s *reviewService) Remove(ctx context.Context, id int64, actor string) (*domain.Location, error) {
	loc, err := s.locationRepo.FindLocationByID(ctx, id)
	if err != nil {
		s.Metrics.IncTransition("remove", "error")
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load location for removal", slog.Int64("location_id", id))
		}
		return nil, err
	}
	if err := loc.CheckRemovable(); err != nil {
		s.Metrics.IncTransition("remove", "rejected")
		return nil, err
	}

	s.LogDebug(ctx, "Deleting marker", slog.Int64("location_id", id), slog.String("marker_id", *loc.MarkerID))
	if err := s.markers.RemoveMarker(ctx, *loc.MarkerID); err != nil {
		s.Metrics.IncTransition("remove", "error")
		s.LogError(ctx, err, "Failed to remove marker",
			slog.Int64("location_id", id),
			slog.String("marker_id", *loc.MarkerID))
		return nil, err
	}

	updated, err := s.locationRepo.MarkLocationRemoved(ctx, id)
	if err != nil {
		s.Metrics.IncTransition("remove", "error")
		s.LogError(ctx, err, "Marker deleted but location could not be flagged removed", slog.Int64("location_id", id))
		return nil, fmt.Errorf("failed to flag location %d removed: %w", id, err)
	}
	s.Metrics.IncTransition("remove", "ok")
	s.appendAudit(ctx, id, domain.ActionRemove, actor,
		map[string]any{"removed": false},
		map[string]any{"removed": true})

	s.notifyAdmins(ctx, fmt.Sprintf("Location %s (ID: %d) has been removed from Dynmap.", updated.LocationName, updated.ID))
	return updated, nil
}

func (s *reviewService) TestConnection(ctx context.Context) (string, error) {
	response, err := s.markers.Ping(ctx)
	if err != nil {
		s.LogError(ctx, err, "Remote console connection test failed")
		return "", err
	}
	return response, nil
}

// decide records an approve or deny decision and its audit entry.
func (s *reviewService) decide(ctx context.Context, id int64, status domain.LocationStatus, actor string, action domain.AuditAction) (prev, updated *domain.Location, err error) {
	label := string(status)

	prev, err = s.locationRepo.FindLocationByID(ctx, id)
	if err != nil {
		s.Metrics.IncTransition(label, "error")
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load location", slog.Int64("location_id", id))
		}
		return nil, nil, err
	}
	if err := prev.CanTransitionTo(status); err != nil {
		s.Metrics.IncTransition(label, "rejected")
		return nil, nil, err
	}

	updated, err = s.locationRepo.UpdateLocationStatus(ctx, id, status, actor)
	if err != nil {
		s.Metrics.IncTransition(label, "error")
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrPrecondition) {
			s.LogError(ctx, err, "Failed to update location status",
				slog.Int64("location_id", id),
				slog.String("status", label))
		}
		return nil, nil, err
	}
	s.Metrics.IncTransition(label, "ok")
	s.LogInfo(ctx, "Location status updated",
		slog.Int64("location_id", id),
		slog.String("status", label),
		slog.String("actor", actor))

	s.appendAudit(ctx, id, action, actor,
		map[string]any{"status": string(prev.Status), "approved_by": derefOrNil(prev.ApprovedBy)},
		map[string]any{"status": label, "approved_by": actor})

	return prev, updated, nil
}

// appendAudit records an action that already happened. A failure is logged, not returned.
func (s *reviewService) appendAudit(ctx context.Context, id int64, action domain.AuditAction, actor string, oldValues, newValues map[string]any) {
	entry := domain.AuditEntry{
		LocationID: id,
		ActionType: action,
		ModifiedBy: actor,
		OldValues:  oldValues,
		NewValues:  newValues,
	}
	if err := s.auditRepo.AppendAuditEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to append audit entry",
			slog.Int64("location_id", id),
			slog.String("action", string(action)))
	}
}

func (s *reviewService) notifyAdmins(ctx context.Context, content string) {
	if err := s.notifier.SendToChannel(ctx, s.adminChannelID, content); err != nil {
		s.LogError(ctx, err, "Failed to notify administrators")
	}
}

func (s *reviewService) notifySubmitter(ctx context.Context, loc *domain.Location, content string) {
	if loc == nil || loc.DiscordUserID == "" {
		return
	}
	if err := s.notifier.SendToUser(ctx, loc.DiscordUserID, content); err != nil {
		s.LogError(ctx, err, "Failed to notify submitter", slog.String("user_id", loc.DiscordUserID))
	}
}

func derefOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
