package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "eventvault"

// Sync outcome labels besides the created/updated/linked event outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	syncTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_total",
		Help:      "Luma sync operations by action and outcome",
	}, []string{"action", "outcome"})

	guestsUpserted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_guests_upserted_total",
		Help:      "Participants written by guest sync",
	})

	guestsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_guests_failed_total",
		Help:      "Guests skipped by guest sync because they could not be stored",
	})

	providerRequestSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "provider_request_seconds",
		Help:      "Latency of outbound provider requests",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})
)

// RecordSync counts one finished sync call.
func RecordSync(action, outcome string) {
	syncTotal.WithLabelValues(action, outcome).Inc()
}

// RecordGuests counts stored and skipped guests of one guest sync.
func RecordGuests(stored, failed int) {
	guestsUpserted.Add(float64(stored))
	guestsFailed.Add(float64(failed))
}

// ObserveProviderRequest records the latency of one provider call.
func ObserveProviderRequest(endpoint string, d time.Duration) {
	providerRequestSeconds.WithLabelValues(endpoint).Observe(d.Seconds())
}

// Handler exposes the default registry for gin.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
