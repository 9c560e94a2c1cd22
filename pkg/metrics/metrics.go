package metrics

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AdmissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mirrorbox_admissions_total",
		Help: "Upload admissions by outcome (admitted, rejected, deleted).",
	}, []string{"outcome"})

	MirrorAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mirrorbox_mirror_attempts_total",
		Help: "Terminal mirror attempt results by mirror.",
	}, []string{"mirror", "result"})

	WorkerCallDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mirrorbox_worker_call_duration_seconds",
		Help:    "Duration of delegated-upload worker calls.",
		Buckets: prometheus.DefBuckets,
	}, []string{"mirror"})
)

func init() {
	prometheus.MustRegister(AdmissionsTotal, MirrorAttemptsTotal, WorkerCallDuration)
}

func StartRecordingMetrics(h *mux.Router) {
	h.Handle("/metrics", promhttp.Handler())
}
