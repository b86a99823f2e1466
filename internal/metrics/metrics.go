// Package metrics exposes tournament counters in the Prometheus format.
package metrics

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "nations_league"

// Recorder records domain events. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry             *prometheus.Registry
	matchesResolved      *prometheus.CounterVec
	goals                prometheus.Counter
	roundsAdvanced       *prometheus.CounterVec
	tournamentsCompleted prometheus.Counter
	narrativeFallbacks   prometheus.Counter
	notifications        *prometheus.CounterVec
}

// NewRecorder creates a recorder backed by its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		matchesResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_resolved_total",
			Help:      "Matches resolved, by mode.",
		}, []string{"mode"}),
		goals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "goals_total",
			Help:      "Goal events recorded.",
		}),
		roundsAdvanced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_advanced_total",
			Help:      "Bracket advancements, by the round entered.",
		}, []string{"round"}),
		tournamentsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tournaments_completed_total",
			Help:      "Tournaments that reached a champion.",
		}),
		narrativeFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "narrative_fallbacks_total",
			Help:      "Played matches that kept fallback commentary.",
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Match result notifications, by status.",
		}, []string{"status"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.matchesResolved,
		r.goals,
		r.roundsAdvanced,
		r.tournamentsCompleted,
		r.narrativeFallbacks,
		r.notifications,
	)
	return r
}

// MatchResolved counts a resolved match and its goals.
func (r *Recorder) MatchResolved(mode string, goals int) {
	if r == nil {
		return
	}
	r.matchesResolved.WithLabelValues(mode).Inc()
	r.goals.Add(float64(goals))
}

// RoundAdvanced counts a bracket advancement into round.
func (r *Recorder) RoundAdvanced(round string) {
	if r == nil {
		return
	}
	r.roundsAdvanced.WithLabelValues(round).Inc()
}

// TournamentCompleted counts a finished tournament.
func (r *Recorder) TournamentCompleted() {
	if r == nil {
		return
	}
	r.tournamentsCompleted.Inc()
}

// NarrativeFallback counts a played match whose generated commentary failed.
func (r *Recorder) NarrativeFallback() {
	if r == nil {
		return
	}
	r.narrativeFallbacks.Inc()
}

// Notification counts a notification attempt with status "sent", "failed" or "skipped".
func (r *Recorder) Notification(status string) {
	if r == nil {
		return
	}
	r.notifications.WithLabelValues(status).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// RegisterRoutes mounts GET /metrics.
func RegisterRoutes(router *gin.Engine, r *Recorder) {
	router.GET("/metrics", gin.WrapH(r.Handler()))
}
