package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRequest(t *testing.T) {
	before := testutil.ToFloat64(RequestsTotal.WithLabelValues("/api/posts", "GET", "200"))
	RecordRequest("/api/posts", "GET", http.StatusOK, 0.01)
	after := testutil.ToFloat64(RequestsTotal.WithLabelValues("/api/posts", "GET", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordOutcomes(t *testing.T) {
	before := testutil.ToFloat64(SharesTotal.WithLabelValues("failed"))
	RecordShare("failed")
	assert.Equal(t, before+1, testutil.ToFloat64(SharesTotal.WithLabelValues("failed")))

	before = testutil.ToFloat64(CommentsTotal.WithLabelValues("created"))
	RecordComment("created")
	assert.Equal(t, before+1, testutil.ToFloat64(CommentsTotal.WithLabelValues("created")))

	before = testutil.ToFloat64(SearchesTotal)
	RecordSearch()
	assert.Equal(t, before+1, testutil.ToFloat64(SearchesTotal))
}

func TestHandlerExposesMetrics(t *testing.T) {
	RecordSearch()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pressroom_searches_total")
}
