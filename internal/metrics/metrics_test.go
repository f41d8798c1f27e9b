package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counts(t *testing.T) {
	r := New()
	r.Created()
	r.Created()
	r.Transition("approve", OutcomeOK)
	r.Transition("approve", OutcomeConflict)
	r.Transition("approve", OutcomeConflict)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.created))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.transitions.WithLabelValues("approve", OutcomeOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.transitions.WithLabelValues("approve", OutcomeConflict)))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.Created()
		r.Transition("reject", OutcomeError)
	})
}

func TestRecorder_Handler(t *testing.T) {
	r := New()
	r.Transition("reject", OutcomeOK)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `restock_transitions_total{action="reject",outcome="ok"} 1`)
}
