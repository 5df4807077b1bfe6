package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveCountsByOutcome(t *testing.T) {
	m := New()

	m.Observe("insert", OutcomeSuccess, time.Now())
	m.Observe("insert", OutcomeSuccess, time.Now())
	m.Observe("find", OutcomeNotFound, time.Now())
	m.IncrementRecordsCreated()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RecordOperations.WithLabelValues("insert", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordOperations.WithLabelValues("find", OutcomeNotFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordsCreated))
}

func TestInstancesDoNotShareRegistries(t *testing.T) {
	a, b := New(), New()
	a.IncrementRecordsCreated()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.RecordsCreated))
}

func TestHandlerServesTextFormat(t *testing.T) {
	m := New()
	m.Observe("list", OutcomeSuccess, time.Now())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `emp_records_operations_total{operation="list",outcome="success"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
