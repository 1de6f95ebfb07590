package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/location_approval_bot/internal/apperrors"
	"github.com/SscSPs/location_approval_bot/internal/chat"
	"github.com/SscSPs/location_approval_bot/internal/core/domain"
	portssvc "github.com/SscSPs/location_approval_bot/internal/core/ports/services"
	"github.com/SscSPs/location_approval_bot/internal/middleware"
)

const (
	MessageCheckDMs        = "Let's add a new location! Please check your DMs."
	MessageDialogBusy      = "You already have a submission in progress. Please answer the questions in your DMs."
	MessageSubmissionError = "There was an error submitting your location. Please try again later."
)

// intakeHandler runs the !add dialog and submits its result.
type intakeHandler struct {
	intake   portssvc.IntakeSvc
	review   portssvc.ReviewWorkflowSvc
	notifier portssvc.Notifier
}

func newIntakeHandler(intake portssvc.IntakeSvc, review portssvc.ReviewWorkflowSvc, notifier portssvc.Notifier) *intakeHandler {
	return &intakeHandler{intake: intake, review: review, notifier: notifier}
}

func (h *intakeHandler) add(ctx context.Context, msg *chat.Message) {
	logger := middleware.GetLoggerFromCtx(ctx)
	requester := domain.Requester{UserID: msg.AuthorID, Username: msg.AuthorName}

	if !msg.Direct {
		reply(ctx, h.notifier, msg, MessageCheckDMs)
	}

	draft, err := h.intake.Collect(ctx, requester)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInputTimeout):
			// the dialog already told the requester
		case errors.Is(err, apperrors.ErrBusy):
			h.sendToUser(ctx, requester.UserID, MessageDialogBusy)
		default:
			logger.Error("Intake dialog failed", slog.String("error", err.Error()))
			h.sendToUser(ctx, requester.UserID, MessageSubmissionError)
		}
		return
	}

	if _, err := h.review.Submit(ctx, *draft); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			h.sendToUser(ctx, requester.UserID, "Your submission could not be accepted: "+reason(err)+". Use !add to try again.")
			return
		}
		h.sendToUser(ctx, requester.UserID, MessageSubmissionError)
	}
}

func (h *intakeHandler) sendToUser(ctx context.Context, userID, content string) {
	if err := h.notifier.SendToUser(ctx, userID, content); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to send private message",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
	}
}
