package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/location_approval_bot/internal/apperrors"
	"github.com/SscSPs/location_approval_bot/internal/chat"
	"github.com/SscSPs/location_approval_bot/internal/core/domain"
	portssvc "github.com/SscSPs/location_approval_bot/internal/core/ports/services"
)

// reviewHandler serves the administrative commands. Workflow notifications are sent
// by the review service; these handlers only report listings and failures.
type reviewHandler struct {
	review   portssvc.ReviewSvcFacade
	notifier portssvc.Notifier
}

func newReviewHandler(review portssvc.ReviewSvcFacade, notifier portssvc.Notifier) *reviewHandler {
	return &reviewHandler{review: review, notifier: notifier}
}

type idHandlerFunc func(ctx context.Context, msg *chat.Message, id int64)

// withLocationID parses the first argument as a location id.
func withLocationID(notifier portssvc.Notifier, next idHandlerFunc) chat.HandlerFunc {
	return func(ctx context.Context, msg *chat.Message) {
		if len(msg.Args) == 0 {
			reply(ctx, notifier, msg, fmt.Sprintf("Usage: %s <id>", msg.Command))
			return
		}
		id, err := parseLocationID(msg.Args[0])
		if err != nil {
			reply(ctx, notifier, msg, "Invalid location ID. IDs are positive whole numbers.")
			return
		}
		next(ctx, msg, id)
	}
}

func (h *reviewHandler) pending(ctx context.Context, msg *chat.Message) {
	locs, err := h.review.ListPending(ctx)
	if err != nil {
		reply(ctx, h.notifier, msg, "Error fetching pending locations.")
		return
	}
	if len(locs) == 0 {
		reply(ctx, h.notifier, msg, "No pending locations.")
		return
	}

	lines := make([]string, 0, len(locs))
	for _, loc := range locs {
		lines = append(lines, formatPendingLine(loc))
	}
	for _, chunk := range chunkLines(lines, MaxChunkLen) {
		reply(ctx, h.notifier, msg, "Pending locations:\n"+chunk)
	}
}

func (h *reviewHandler) listAll(ctx context.Context, msg *chat.Message) {
	locs, err := h.review.ListAll(ctx)
	if err != nil {
		reply(ctx, h.notifier, msg, "Error fetching locations.")
		return
	}
	if len(locs) == 0 {
		reply(ctx, h.notifier, msg, "No locations found in the database.")
		return
	}

	lines := make([]string, 0, len(locs))
	for _, loc := range locs {
		lines = append(lines, formatListLine(loc))
	}
	for i, chunk := range chunkLines(lines, MaxChunkLen) {
		reply(ctx, h.notifier, msg, fmt.Sprintf("Locations (%d):\n%s", i+1, chunk))
	}
}

func (h *reviewHandler) approve(ctx context.Context, msg *chat.Message, id int64) {
	if _, err := h.review.Approve(ctx, id, msg.AuthorName); err != nil {
		h.replyDecisionError(ctx, msg, id, "approved", err)
	}
}

func (h *reviewHandler) deny(ctx context.Context, msg *chat.Message, id int64) {
	if _, err := h.review.Deny(ctx, id, msg.AuthorName); err != nil {
		h.replyDecisionError(ctx, msg, id, "denied", err)
	}
}

func (h *reviewHandler) replyDecisionError(ctx context.Context, msg *chat.Message, id int64, verb string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		reply(ctx, h.notifier, msg, fmt.Sprintf("No location found with ID %d", id))
	case errors.Is(err, apperrors.ErrPrecondition):
		reply(ctx, h.notifier, msg, fmt.Sprintf("Location %d cannot be %s: %s.", id, verb, reason(err)))
	default:
		reply(ctx, h.notifier, msg, fmt.Sprintf("Error updating location %d.", id))
	}
}

func (h *reviewHandler) remove(ctx context.Context, msg *chat.Message, id int64) {
	_, err := h.review.Remove(ctx, id, msg.AuthorName)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrNotFound):
		reply(ctx, h.notifier, msg, fmt.Sprintf("No active location found with ID %d", id))
	case errors.Is(err, apperrors.ErrPrecondition):
		reply(ctx, h.notifier, msg, fmt.Sprintf("Location %d cannot be removed: %s.", id, reason(err)))
	case errors.Is(err, apperrors.ErrRemoteSync):
		reply(ctx, h.notifier, msg, "Error removing marker from Dynmap. The location was not changed.")
	default:
		reply(ctx, h.notifier, msg, "Error removing location.")
	}
}

func (h *reviewHandler) checkMarker(ctx context.Context, msg *chat.Message, id int64) {
	loc, err := h.review.GetLocation(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			reply(ctx, h.notifier, msg, fmt.Sprintf("No location found with ID %d", id))
			return
		}
		reply(ctx, h.notifier, msg, "Error checking marker ID.")
		return
	}
	reply(ctx, h.notifier, msg, markerStatus(loc))
}

func markerStatus(loc *domain.Location) string {
	if loc.HasMarker() {
		return fmt.Sprintf("Location %s (ID: %d) has Marker ID: %s", loc.LocationName, loc.ID, *loc.MarkerID)
	}
	return fmt.Sprintf("Location %s (ID: %d) does not have a Marker ID.", loc.LocationName, loc.ID)
}

func (h *reviewHandler) testRCON(ctx context.Context, msg *chat.Message) {
	response, err := h.review.TestConnection(ctx)
	if err != nil {
		reply(ctx, h.notifier, msg, "RCON test failed. Check the bot logs for details.")
		return
	}
	reply(ctx, h.notifier, msg, "RCON test successful. Response: "+response)
}
