package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordSync(t *testing.T) {
	before := testutil.ToFloat64(syncTotal.WithLabelValues("sync_event", "created"))
	RecordSync("sync_event", "created")
	RecordSync("sync_event", "created")

	if got := testutil.ToFloat64(syncTotal.WithLabelValues("sync_event", "created")); got != before+2 {
		t.Errorf("sync_total = %v, want %v", got, before+2)
	}
}

func TestRecordGuests(t *testing.T) {
	stored := testutil.ToFloat64(guestsUpserted)
	failed := testutil.ToFloat64(guestsFailed)

	RecordGuests(4, 1)

	if got := testutil.ToFloat64(guestsUpserted); got != stored+4 {
		t.Errorf("guests upserted = %v, want %v", got, stored+4)
	}
	if got := testutil.ToFloat64(guestsFailed); got != failed+1 {
		t.Errorf("guests failed = %v, want %v", got, failed+1)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ObserveProviderRequest("/event/get", 120*time.Millisecond)

	router := gin.New()
	router.GET("/metrics", Handler())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "eventvault_provider_request_seconds") {
		t.Error("provider latency histogram missing from /metrics output")
	}
}
