package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zkpulse_login_attempts_total",
			Help: "Login attempts by outcome",
		},
		[]string{"result"}, // success|rejected|invalid_request|error
	)

	PipelineRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zkpulse_auth_rejections_total",
			Help: "Requests rejected by the auth pipeline, by reason",
		},
		[]string{"reason"}, // missing_token|invalid_token|ownership_mismatch
	)

	PaymentsRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "zkpulse_payments_recorded_total",
			Help: "Verified payment records accepted",
		},
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		LoginAttempts,
		PipelineRejections,
		PaymentsRecorded,
	)
}
