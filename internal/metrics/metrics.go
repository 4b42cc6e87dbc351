// Package metrics exposes the Prometheus counters the server publishes at
// /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SubmissionsTotal counts successfully submitted attendance sessions.
	SubmissionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smartattend_attendance_submissions_total",
		Help: "Number of attendance sessions submitted.",
	})

	// DuplicateSubmissionsTotal counts submissions rejected by the
	// one-session-per-slot-per-date constraint.
	DuplicateSubmissionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smartattend_attendance_duplicate_submissions_total",
		Help: "Number of attendance submissions rejected as duplicates.",
	})

	// AbsenceNotificationsTotal counts absence warning notifications written.
	AbsenceNotificationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smartattend_absence_notifications_total",
		Help: "Number of absence warning notifications emitted.",
	})

	// RiskScansTotal counts completed risk pattern scans, by trigger.
	RiskScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartattend_risk_scans_total",
		Help: "Number of completed risk pattern scans.",
	}, []string{"trigger"})
)
