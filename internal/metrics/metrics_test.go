package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveSubmission(t *testing.T) {
	m := New()

	m.ObserveSubmission(entity.ModeRegister, "success")
	m.ObserveSubmission(entity.ModeRegister, "success")
	m.ObserveSubmission(entity.ModeEdit, "invalid_dates")

	require.Equal(t, float64(2), testutil.ToFloat64(m.Submissions.WithLabelValues("register", "success")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.Submissions.WithLabelValues("edit", "invalid_dates")))
}

func TestMetrics_ObserveSweep(t *testing.T) {
	m := New()

	m.ObserveSweep(3, 5)
	m.ObserveSweep(1, 4)

	require.Equal(t, float64(4), testutil.ToFloat64(m.SweptForms))
	require.Equal(t, float64(4), testutil.ToFloat64(m.OpenForms))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveSubmission(entity.ModeEdit, "success")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `advertisement_form_submissions_total{mode="edit",outcome="success"} 1`)
	require.Contains(t, string(body), "go_goroutines")
}
