package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_CountsByLabel(t *testing.T) {
	before := testutil.ToFloat64(notificationsCreated.WithLabelValues("task_assigned"))
	Recorder{}.NotificationCreated("task_assigned")
	Recorder{}.NotificationCreated("task_assigned")
	assert.Equal(t, before+2, testutil.ToFloat64(notificationsCreated.WithLabelValues("task_assigned")))

	before = testutil.ToFloat64(historyRecorded.WithLabelValues("CREATED"))
	Recorder{}.HistoryRecorded("CREATED")
	assert.Equal(t, before+1, testutil.ToFloat64(historyRecorded.WithLabelValues("CREATED")))
}

func TestHandler_ExposesHTTPMetrics(t *testing.T) {
	RecordHTTPRequest("get", "/api/tasks/{id}", http.StatusOK, 20*time.Millisecond)
	RecordLogin(LoginFailure)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `task_tracker_http_requests_total{method="GET",path="/api/tasks/{id}",status="200"}`))
	assert.True(t, strings.Contains(body, `task_tracker_auth_logins_total{result="failure"}`))
}
