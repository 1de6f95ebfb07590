package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the bot's prometheus collectors. All methods are safe on a nil *Metrics.
type Metrics struct {
	Transitions     *prometheus.CounterVec
	ConsoleDuration *prometheus.HistogramVec
	DialogsFinished *prometheus.CounterVec
	CommandsHandled *prometheus.CounterVec
}

// New registers the collectors on reg. Tests pass a fresh prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "locations_transitions_total",
			Help: "Workflow transitions by action and outcome",
		}, []string{"action", "outcome"}),
		ConsoleDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "locations_console_command_duration_seconds",
			Help:    "Duration of remote console round-trips, connect included",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"command", "outcome"}),
		DialogsFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "locations_intake_dialogs_total",
			Help: "Intake dialogs by outcome",
		}, []string{"outcome"}),
		CommandsHandled: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "locations_commands_total",
			Help: "Inbound chat commands by name",
		}, []string{"command"}),
	}
}

func (m *Metrics) IncTransition(action, outcome string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) ObserveConsole(command, outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.ConsoleDuration.WithLabelValues(command, outcome).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncDialog(outcome string) {
	if m == nil {
		return
	}
	m.DialogsFinished.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncCommand(command string) {
	if m == nil {
		return
	}
	m.CommandsHandled.WithLabelValues(command).Inc()
}
