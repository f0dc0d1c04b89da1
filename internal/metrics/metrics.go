// Package metrics exposes roster health and use-case telemetry as Prometheus
// metrics on a private registry.
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/alexanderramin/muster/internal/app"
	"github.com/alexanderramin/muster/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder holds the muster metrics. A nil *Recorder is a valid no-op.
type Recorder struct {
	registry *prometheus.Registry

	UseCaseTotal    *prometheus.CounterVec
	UseCaseDuration *prometheus.HistogramVec

	MembersEvaluated prometheus.Gauge
	MembersByVerdict *prometheus.GaugeVec
	SessionsTotal    prometheus.Gauge
	AveragePercent   prometheus.Gauge
	LastReport       prometheus.Gauge
}

var _ service.UseCaseObserver = (*Recorder)(nil)

func New() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		registry: reg,

		UseCaseTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "muster_use_case_total",
			Help: "Service use cases executed, by name and outcome",
		}, []string{"use_case", "success"}),

		UseCaseDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "muster_use_case_duration_seconds",
			Help:    "Duration of service use cases",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"use_case"}),

		MembersEvaluated: f.NewGauge(prometheus.GaugeOpts{
			Name: "muster_report_members",
			Help: "Members in the most recent eligibility report",
		}),

		MembersByVerdict: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "muster_report_members_by_verdict",
			Help: "Members in the most recent report by verdict",
		}, []string{"verdict"}), // eligible, ineligible, promotable, terminal, unresponsive

		SessionsTotal: f.NewGauge(prometheus.GaugeOpts{
			Name: "muster_sessions_total",
			Help: "Sessions counted as the attendance denominator",
		}),

		AveragePercent: f.NewGauge(prometheus.GaugeOpts{
			Name: "muster_attendance_percent_average",
			Help: "Average attendance percentage in the most recent report",
		}),

		LastReport: f.NewGauge(prometheus.GaugeOpts{
			Name: "muster_report_timestamp_seconds",
			Help: "Evaluation time of the most recent report",
		}),
	}
}

// ObserveUseCase counts and times service use cases.
func (r *Recorder) ObserveUseCase(_ context.Context, e service.UseCaseEvent) {
	if r == nil {
		return
	}
	r.UseCaseTotal.WithLabelValues(e.Name, fmt.Sprint(e.Success)).Inc()
	r.UseCaseDuration.WithLabelValues(e.Name).Observe(e.Duration.Seconds())
}

// RecordReport publishes the summary of an eligibility report.
func (r *Recorder) RecordReport(resp *app.EligibilityResponse) {
	if r == nil || resp == nil {
		return
	}
	s := resp.Summary
	r.MembersEvaluated.Set(float64(s.Members))
	r.MembersByVerdict.WithLabelValues("eligible").Set(float64(s.Eligible))
	r.MembersByVerdict.WithLabelValues("ineligible").Set(float64(s.Ineligible))
	r.MembersByVerdict.WithLabelValues("promotable").Set(float64(s.Promotable))
	r.MembersByVerdict.WithLabelValues("terminal").Set(float64(s.TerminalRank))
	r.MembersByVerdict.WithLabelValues("unresponsive").Set(float64(s.Unresponsive))
	r.SessionsTotal.Set(float64(s.TotalSessions))
	r.AveragePercent.Set(s.AveragePercent)
	r.LastReport.Set(float64(s.GeneratedAt.Unix()))
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// WriteTextfile writes the registry to path for node_exporter's textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
