package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "sentry"
	subsystem = "deploy"

	LabelEnvironment = "environment"
	LabelExitCode    = "exit_code"
)

// Registry holds every collector in this package. It is written to a node-exporter
// textfile after the run.
var Registry = prometheus.NewRegistry()

// Registration records the outcome of one deploy registration.
func Registration(start time.Time, environment string, exitCode int) {
	registrations.With(prometheus.Labels{
		LabelEnvironment: environment,
		LabelExitCode:    strconv.Itoa(exitCode),
	}).Inc()

	registrationDuration.With(prometheus.Labels{
		LabelEnvironment: environment,
	}).Observe(time.Since(start).Seconds())

	if exitCode == 0 {
		lastSuccess.With(prometheus.Labels{
			LabelEnvironment: environment,
		}).SetToCurrentTime()
	}
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}

var (
	registrations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:      "registrations_total",
		Help:      "number of deploy registrations attempted, by sentry-deploy exit code",
		Namespace: namespace,
		Subsystem: subsystem,
	},
		[]string{
			LabelEnvironment,
			LabelExitCode,
		},
	)

	registrationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:      "registration_duration_seconds",
		Help:      "time spent registering a deploy, including the sentry-cli call",
		Namespace: namespace,
		Subsystem: subsystem,
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
	},
		[]string{
			LabelEnvironment,
		},
	)

	lastSuccess = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name:      "last_success_timestamp_seconds",
		Help:      "unix time of the last successful deploy registration",
		Namespace: namespace,
		Subsystem: subsystem,
	},
		[]string{
			LabelEnvironment,
		},
	)
)

func init() {
	Registry.MustRegister(registrations)
	Registry.MustRegister(registrationDuration)
	Registry.MustRegister(lastSuccess)
}
