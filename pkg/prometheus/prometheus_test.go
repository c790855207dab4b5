package prometheus_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/groove-lab/backend/internal/common"
	"github.com/groove-lab/backend/pkg/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNewHandler(t *testing.T) {
	common.PromCounters[common.EventAdmissionTotal].WithLabelValues("confirmed").Inc()

	w := httptest.NewRecorder()
	prometheus.NewHandler(common.PromCollectors()...).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `event_admission_total{result="confirmed"}`)
	require.Contains(t, w.Body.String(), "go_goroutines")
}
