package services

import (
	portsrepo "github.com/SscSPs/location_approval_bot/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/location_approval_bot/internal/core/ports/services"
	"github.com/SscSPs/location_approval_bot/internal/metrics"
	"github.com/SscSPs/location_approval_bot/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	markers portssvc.MarkerSyncSvc,
	messenger portssvc.Messenger,
	m *metrics.Metrics,
) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Review: NewReviewService(repos, markers, messenger, cfg.AdminChannelID, WithReviewMetrics(m)),
		Intake: NewIntakeService(messenger, WithDialogTimeout(cfg.DialogTimeout), WithIntakeMetrics(m)),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ReviewSvcFacade = (*reviewService)(nil)
	_ portssvc.IntakeSvc       = (*intakeService)(nil)
)
