package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/location_approval_bot/internal/apperrors"
	"github.com/SscSPs/location_approval_bot/internal/core/domain"
	portssvc "github.com/SscSPs/location_approval_bot/internal/core/ports/services"
	"github.com/SscSPs/location_approval_bot/internal/metrics"
)

const (
	QuestionMinecraftUsername = "What's your Minecraft username?"
	QuestionLocationName      = "What's the name of this location?"
	QuestionXCoord            = "What's the X coordinate?"
	QuestionZCoord            = "What's the Z coordinate?"

	MessageIntakeTimeout = "Submission cancelled due to timeout."
)

// DefaultDialogTimeout is the per-question wait window.
const DefaultDialogTimeout = 60 * time.Second

type intakeService struct {
	BaseService
	messenger portssvc.Messenger
	timeout   time.Duration

	// one open dialog per requester
	active sync.Map
}

// IntakeOption is a functional option for configuring the intake service
type IntakeOption func(*intakeService)

// WithDialogTimeout overrides the per-question wait window.
func WithDialogTimeout(d time.Duration) IntakeOption {
	return func(s *intakeService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithIntakeMetrics records dialog outcomes.
func WithIntakeMetrics(m *metrics.Metrics) IntakeOption {
	return func(s *intakeService) {
		s.Metrics = m
	}
}

// NewIntakeService creates the intake dialog service.
func NewIntakeService(messenger portssvc.Messenger, options ...IntakeOption) portssvc.IntakeSvc {
	svc := &intakeService{
		messenger: messenger,
		timeout:   DefaultDialogTimeout,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.IntakeSvc = (*intakeService)(nil)

func (s *intakeService) Collect(ctx context.Context, requester domain.Requester) (*domain.LocationDraft, error) {
	if _, open := s.active.LoadOrStore(requester.UserID, struct{}{}); open {
		s.Metrics.IncDialog("busy")
		return nil, apperrors.ErrBusy
	}
	defer s.active.Delete(requester.UserID)

	questions := []string{QuestionMinecraftUsername, QuestionLocationName, QuestionXCoord, QuestionZCoord}
	answers := make([]string, 0, len(questions))

	for i, question := range questions {
		answer, err := s.messenger.Ask(ctx, requester, question, s.timeout)
		if err != nil {
			if errors.Is(err, apperrors.ErrInputTimeout) {
				s.Metrics.IncDialog("timeout")
				s.LogInfo(ctx, "Intake dialog timed out",
					slog.String("user_id", requester.UserID),
					slog.Int("step", i+1))
				if notifyErr := s.messenger.SendToUser(ctx, requester.UserID, MessageIntakeTimeout); notifyErr != nil {
					s.LogError(ctx, notifyErr, "Failed to send timeout notice", slog.String("user_id", requester.UserID))
				}
				return nil, err
			}
			s.Metrics.IncDialog("error")
			s.LogError(ctx, err, "Intake dialog failed",
				slog.String("user_id", requester.UserID),
				slog.Int("step", i+1))
			return nil, fmt.Errorf("failed to ask intake question %d: %w", i+1, err)
		}
		answers = append(answers, answer)
	}

	s.Metrics.IncDialog("completed")
	return &domain.LocationDraft{
		MinecraftUsername: answers[0],
		LocationName:      answers[1],
		XCoord:            answers[2],
		ZCoord:            answers[3],
		Submitter:         requester,
	}, nil
}
