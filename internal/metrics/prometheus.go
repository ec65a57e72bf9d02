package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	configUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fraudconfig_config_updates_total",
		Help: "Total number of applied configuration mutations, by entity",
	}, []string{"entity"})

	mirrorPushes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fraudconfig_mirror_push_total",
		Help: "Total number of successful etcd mirror pushes",
	})

	mirrorFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fraudconfig_mirror_failures_total",
		Help: "Total number of failed etcd mirror pushes",
	})

	validationRejects = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fraudconfig_validation_rejects_total",
		Help: "Total number of writes rejected by range validation",
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}

func RecordConfigUpdate(entity string) {
	configUpdates.WithLabelValues(entity).Inc()
}

func RecordMirrorPush() {
	mirrorPushes.Inc()
}

func RecordMirrorFailure() {
	mirrorFailures.Inc()
}

func RecordValidationReject() {
	validationRejects.Inc()
}
