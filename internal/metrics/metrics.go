package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ApplicationsDecided = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loan_applications_decided_total",
			Help: "Total number of applications decided, by outcome",
		},
		[]string{"status"},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loan_validation_failures_total",
			Help: "Total number of rejected submissions, by validation code",
		},
		[]string{"code"},
	)

	StorageSaveFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loan_storage_save_failures_total",
			Help: "Total number of failed writes to the application store",
		},
	)
)
